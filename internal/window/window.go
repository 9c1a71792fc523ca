// Package window evaluates recurring day-of-week + time-of-day windows.
//
// An encoded window looks like "09:00-10:00" or "09:00-10:00|월수". Times are
// 24h HH:mm and are always read in common.PolicyZone, never in the local zone
// of the machine doing the evaluation. The optional day set after '|' uses the
// local weekday alphabet (see Symbol). An empty encoding means "always valid".
//
// Evaluation is a pure function of (encoding, now).
package window

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/common"
)

// LeadTime is how long before its nominal start a window already counts as open.
const LeadTime = 10 * time.Minute

var ErrMalformed = errors.New("malformed time window")

// Status is the outcome class of an evaluation.
type Status int

const (
	Valid Status = iota
	OutOfWindow
	ParseError
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case OutOfWindow:
		return "out_of_window"
	case ParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Result is returned by Evaluate. Reason is empty for Valid results.
type Result struct {
	Status Status
	Reason string
}

func (r Result) Valid() bool { return r.Status == Valid }

// Window is a decoded time window. Start and End are minutes after midnight.
// End < Start means the window spans midnight. Empty Days means every day.
type Window struct {
	Start int
	End   int
	Days  []time.Weekday
}

// ParseClock reads a strict "HH:mm" value into minutes after midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: bad time %q", ErrMalformed, s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrMalformed, s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrMalformed, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes after midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Parse decodes an encoded window. The encoding must not be empty.
func Parse(encoding string) (Window, error) {
	timePart, dayPart, _ := strings.Cut(strings.TrimSpace(encoding), "|")

	startStr, endStr, ok := strings.Cut(strings.TrimSpace(timePart), "-")
	if !ok {
		return Window{}, fmt.Errorf("%w: missing '-' in %q", ErrMalformed, encoding)
	}

	start, err := ParseClock(strings.TrimSpace(startStr))
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(strings.TrimSpace(endStr))
	if err != nil {
		return Window{}, err
	}

	days, err := ParseDays(dayPart)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return Window{Start: start, End: end, Days: days}, nil
}

// Encode builds an encoded window from "HH:mm" bounds and an optional day set.
func Encode(start, end string, days []time.Weekday) (string, error) {
	if _, err := ParseClock(start); err != nil {
		return "", err
	}
	if _, err := ParseClock(end); err != nil {
		return "", err
	}
	enc := start + "-" + end
	if len(days) > 0 {
		enc += "|" + FormatDays(days)
	}
	return enc, nil
}

// Evaluate reports whether now falls inside the encoded window.
//
// The weekday check looks at the current day only, also for windows that span
// midnight: the part after midnight belongs to the next calendar day and is
// rejected unless that day is in the set as well.
func Evaluate(encoding string, now time.Time) Result {
	if strings.TrimSpace(encoding) == "" {
		return Result{Status: Valid}
	}

	w, err := Parse(encoding)
	if err != nil {
		return Result{Status: ParseError, Reason: "parse error: " + err.Error()}
	}

	local := now.In(common.PolicyZone)

	if len(w.Days) > 0 && !containsDay(w.Days, local.Weekday()) {
		return Result{
			Status: OutOfWindow,
			Reason: fmt.Sprintf("today is %s, allowed days are %s", Symbol(local.Weekday()), FormatDays(w.Days)),
		}
	}

	current := local.Hour()*60 + local.Minute()
	start := w.Start - int(LeadTime/time.Minute)
	end := w.End

	var inside bool
	if end < start {
		inside = current >= start || current <= end
	} else {
		inside = start <= current && current <= end
	}

	if !inside {
		return Result{
			Status: OutOfWindow,
			Reason: fmt.Sprintf("current time %s is outside %s-%s", FormatClock(current), FormatClock(w.Start), FormatClock(w.End)),
		}
	}

	return Result{Status: Valid}
}

// Covers reports whether now lies inside w without any lead time, using the
// same current-day weekday rule as Evaluate.
func (w Window) Covers(now time.Time) bool {
	local := now.In(common.PolicyZone)
	if len(w.Days) > 0 && !containsDay(w.Days, local.Weekday()) {
		return false
	}
	current := local.Hour()*60 + local.Minute()
	if w.End < w.Start {
		return current >= w.Start || current < w.End
	}
	return w.Start <= current && current < w.End
}

func containsDay(days []time.Weekday, d time.Weekday) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}
