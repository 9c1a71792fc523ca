package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

// Redemption outcomes. Anything else returned by TokenVerifier.Redeem is a
// storage failure.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrPolicyNotFound   = errors.New("policy not found")
	ErrAlreadyUsed      = errors.New("token already used on this device")
)

// PermissionRequiredError means the device has not granted the permission
// its platform's enforcement agent needs.
type PermissionRequiredError struct {
	Platform models.Platform
}

func (e *PermissionRequiredError) Error() string {
	return fmt.Sprintf("permission required on %s", e.Platform)
}

// OutOfWindowError carries the evaluator's reason. Malformed is set when the
// stored window could not be parsed.
type OutOfWindowError struct {
	Reason    string
	Malformed bool
}

func (e *OutOfWindowError) Error() string {
	return "out of window: " + e.Reason
}
