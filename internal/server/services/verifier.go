package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
	"github.com/dmitrijs2005/focuslock/internal/window"
)

// Redemption is the resolved policy a device may now enforce.
type Redemption struct {
	TokenID  string
	DeviceID string
	Policy   *models.RestrictionPolicy
	// Window is nil unless the policy is scheduled.
	Window *window.Window
	// AttendanceRecorded is true when this call wrote a new attendance row.
	AttendanceRecorded bool
}

// TokenVerifier runs the redemption checks in a fixed order and stops at the
// first failure.
type TokenVerifier struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *tokens.Codec
	clock       clock.Clock
	log         logging.Logger
}

func NewTokenVerifier(db *sql.DB, m repomanager.RepositoryManager, codec *tokens.Codec, c clock.Clock, l logging.Logger) *TokenVerifier {
	return &TokenVerifier{db: db, repomanager: m, codec: codec, clock: c, log: l.With("module", "verifier")}
}

// Redeem verifies p on behalf of the device identified by deviceKey (device
// id or hardware id).
func (s *TokenVerifier) Redeem(ctx context.Context, p tokens.Payload, deviceKey string) (*Redemption, error) {
	if !s.codec.Verify(p.TokenID, p.Expiry, p.Signature) {
		return nil, ErrInvalidSignature
	}

	now := s.clock.Now()
	if p.Expiry < now.Unix() {
		return nil, ErrExpired
	}

	device, err := s.repomanager.Devices(s.db).Find(ctx, deviceKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("error finding device: %w", err)
	}

	if !device.PermissionGranted() {
		return nil, &PermissionRequiredError{Platform: device.Platform}
	}

	policy, err := s.repomanager.Policies(s.db).FindByTokenID(ctx, p.TokenID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("error finding policy: %w", err)
	}

	res := window.Evaluate(policy.Window, now)
	if !res.Valid() {
		return nil, &OutOfWindowError{Reason: res.Reason, Malformed: res.Status == window.ParseError}
	}

	out := &Redemption{TokenID: p.TokenID, DeviceID: device.ID, Policy: policy}
	if policy.Scheduled() {
		w, err := window.Parse(policy.Window)
		if err != nil {
			// Evaluate already accepted it.
			return nil, &OutOfWindowError{Reason: err.Error(), Malformed: true}
		}
		out.Window = &w
	}

	if policy.OncePerDevice || policy.Purpose.IncludesAttendance() {
		if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return s.recordUse(ctx, tx, out, now)
		}); err != nil {
			return nil, err
		}
	}

	s.log.Info(ctx, "token redeemed", "token", p.TokenID, "device", device.ID, "policy", policy.ID)
	return out, nil
}

// recordUse inserts the usage row and the attendance row. The usage insert is
// the single-use check: the primary key rejects a second redemption even when
// two requests race.
func (s *TokenVerifier) recordUse(ctx context.Context, tx dbx.DBTX, r *Redemption, now time.Time) error {
	if r.Policy.OncePerDevice {
		err := s.repomanager.Usages(tx).Insert(ctx, &models.UsageRecord{TokenID: r.TokenID, DeviceID: r.DeviceID, UsedAt: now})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return ErrAlreadyUsed
			}
			return fmt.Errorf("error recording usage: %w", err)
		}
	}

	if r.Policy.Purpose.IncludesAttendance() {
		local := now.In(common.PolicyZone)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, common.PolicyZone)
		inserted, err := s.repomanager.Attendance(tx).Record(ctx, &models.AttendanceRecord{
			TokenID: r.TokenID, DeviceID: r.DeviceID, AttendedOn: day, RecordedAt: now,
		})
		if err != nil {
			return fmt.Errorf("error recording attendance: %w", err)
		}
		r.AttendanceRecorded = inserted
	}
	return nil
}
