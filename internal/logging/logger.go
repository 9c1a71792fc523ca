// Package logging is the structured logger shared by the lock server and the
// device agent. SlogLogger backs it in production; Nop discards everything.
package logging

import "context"

// Logger takes a message plus alternating key/value attributes:
//
//	log.Info(ctx, "token redeemed", "token_id", id, "device_id", deviceID)
//
// Components derive a child with With("module", name) once at construction.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for degraded but recoverable paths, e.g. a source fetch that
	// fell back to cached schedules.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
