package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RedeemError is a redemption the server refused. Outcome is one of the
// api.Outcome* codes.
type RedeemError struct {
	Outcome  string
	Reason   string
	Platform string
}

func (e *RedeemError) Error() string {
	switch {
	case e.Platform != "":
		return fmt.Sprintf("redeem refused: %s (%s)", e.Outcome, e.Platform)
	case e.Reason != "":
		return fmt.Sprintf("redeem refused: %s: %s", e.Outcome, e.Reason)
	default:
		return "redeem refused: " + e.Outcome
	}
}
