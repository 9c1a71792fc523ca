package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focuslock/internal/clock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/logging"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFixture struct {
	store *store
	clock *clock.FakeClock
	codec *tokens.Codec
	mock  sqlmock.Sqlmock
	v     *TokenVerifier
}

// newVerifierFixture registers device "dev-1" (hardware id "hw-1", Android,
// usage access granted) and freezes the clock at Monday 08:55 UTC+9.
func newVerifierFixture(t *testing.T) *verifierFixture {
	t.Helper()
	db, mock := newMockDB(t)
	f := &verifierFixture{
		store: newStore(),
		clock: clock.Fake(monday0855),
		codec: newTestCodec(t),
		mock:  mock,
	}
	f.v = NewTokenVerifier(db, &fakeRepoManager{f.store}, f.codec, f.clock, logging.Nop{})
	f.store.addDevice(&models.Device{ID: "dev-1", HardwareID: "hw-1", Platform: models.PlatformAndroid, UsageAccessGranted: true})
	return f
}

// seed stores p behind a token and returns a correctly signed payload that
// expires in 24 hours.
func (f *verifierFixture) seed(tokenID string, p models.RestrictionPolicy) tokens.Payload {
	p.ID = "pol-" + tokenID
	expiry := f.clock.Now().Add(TokenValidity).Unix()
	sig := f.codec.Sign(tokenID, expiry)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.policies[p.ID] = &p
	f.store.tokens[tokenID] = &models.LockToken{ID: tokenID, PolicyID: p.ID, Signature: sig, ExpiresAt: time.Unix(expiry, 0)}
	return tokens.Payload{TokenID: tokenID, Expiry: expiry, Signature: sig}
}

var mathPolicy = models.RestrictionPolicy{
	Name: "Math", Purpose: "focus", DurationMinutes: 50,
	BlockedApps: []string{"com.game"}, Window: "09:00-10:00|월",
}

func TestRedeem_Success(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	got, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.NoError(t, err)

	assert.Equal(t, "dev-1", got.DeviceID)
	assert.Equal(t, "Math", got.Policy.Name)
	assert.Equal(t, models.ModeAppList, got.Policy.Mode())
	require.NotNil(t, got.Window)
	assert.Equal(t, 9*60, got.Window.Start)
	assert.Equal(t, []time.Weekday{time.Monday}, got.Window.Days)
	assert.False(t, got.AttendanceRecorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRedeem_InvalidSignatureIsCheckedFirst(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	// Tampered and expired: the signature failure wins and nothing is looked up.
	p.Expiry = f.clock.Now().Add(-time.Hour).Unix()
	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Zero(t, f.store.deviceFinds)
}

func TestRedeem_Expired(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	f.clock.Advance(TokenValidity + time.Second)
	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	assert.ErrorIs(t, err, ErrExpired)
	assert.Zero(t, f.store.deviceFinds)
}

func TestRedeem_ValidAtExactExpiry(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", models.RestrictionPolicy{Name: "Focus", Purpose: "focus", DurationMinutes: 10})

	f.clock.Set(time.Unix(p.Expiry, 0))
	_, err := f.v.Redeem(context.Background(), p, "dev-1")
	assert.NoError(t, err)
}

func TestRedeem_DeviceNotFound(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	_, err := f.v.Redeem(context.Background(), p, "unknown")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestRedeem_DeviceLookupFailureIsNotAnOutcome(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)
	f.store.deviceErr = errors.New("db down")

	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDeviceNotFound))
}

func TestRedeem_PermissionRequired(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	f.store.addDevice(&models.Device{ID: "dev-a", HardwareID: "hw-a", Platform: models.PlatformAndroid, ScreenTimeGranted: true})
	f.store.addDevice(&models.Device{ID: "dev-i", HardwareID: "hw-i", Platform: models.PlatformIOS, UsageAccessGranted: true})

	_, err := f.v.Redeem(context.Background(), p, "hw-a")
	var perr *PermissionRequiredError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.PlatformAndroid, perr.Platform)

	_, err = f.v.Redeem(context.Background(), p, "hw-i")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.PlatformIOS, perr.Platform)
}

func TestRedeem_PolicyNotFound(t *testing.T) {
	f := newVerifierFixture(t)
	expiry := f.clock.Now().Add(time.Hour).Unix()
	p := tokens.Payload{TokenID: "orphan", Expiry: expiry, Signature: f.codec.Sign("orphan", expiry)}

	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestRedeem_OutOfWindow(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", mathPolicy)

	// 08:40 is before the 10-minute lead of a 09:00 start.
	f.clock.Set(time.Date(2026, 3, 2, 8, 40, 0, 0, common.PolicyZone))
	_, err := f.v.Redeem(context.Background(), p, "hw-1")

	var oerr *OutOfWindowError
	require.ErrorAs(t, err, &oerr)
	assert.False(t, oerr.Malformed)
	assert.NotEmpty(t, oerr.Reason)
}

func TestRedeem_MalformedWindowFailsClosed(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", models.RestrictionPolicy{Name: "Broken", Purpose: "focus", DurationMinutes: 10, Window: "nine-ten"})

	_, err := f.v.Redeem(context.Background(), p, "hw-1")

	var oerr *OutOfWindowError
	require.ErrorAs(t, err, &oerr)
	assert.True(t, oerr.Malformed)
}

func TestRedeem_OncePerDevice(t *testing.T) {
	f := newVerifierFixture(t)
	policy := mathPolicy
	policy.OncePerDevice = true
	p := f.seed("tok", policy)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.NoError(t, err)

	_, err = f.v.Redeem(context.Background(), p, "dev-1")
	assert.ErrorIs(t, err, ErrAlreadyUsed)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRedeem_OncePerDeviceUnderConcurrency(t *testing.T) {
	f := newVerifierFixture(t)
	policy := mathPolicy
	policy.OncePerDevice = true
	p := f.seed("tok", policy)

	const attempts = 8

	// One connection: transactions queue behind each other the way row locks
	// on the primary key serialize them in the database.
	f.v.db.SetMaxOpenConns(1)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	for i := 1; i < attempts; i++ {
		f.mock.ExpectBegin()
		f.mock.ExpectRollback()
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		used      int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.v.Redeem(context.Background(), p, "hw-1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrAlreadyUsed):
				used++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, used)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRedeem_AttendanceIsRecordedOncePerDay(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", models.RestrictionPolicy{Name: "Homeroom", Purpose: "class_attendance", DurationMinutes: 30})

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	got, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.NoError(t, err)
	assert.True(t, got.AttendanceRecorded)

	got, err = f.v.Redeem(context.Background(), p, "hw-1")
	require.NoError(t, err)
	assert.False(t, got.AttendanceRecorded)

	assert.Contains(t, f.store.attendance, "tok/dev-1/2026-03-02")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestRedeem_AttendanceFailureRollsBackUsage(t *testing.T) {
	f := newVerifierFixture(t)
	p := f.seed("tok", models.RestrictionPolicy{Name: "Homeroom", Purpose: "attendance", DurationMinutes: 30, OncePerDevice: true})
	f.store.attendanceErr = errors.New("db down")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error recording attendance")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestIssueThenRedeem_EndToEnd(t *testing.T) {
	f := newVerifierFixture(t)
	issuer := NewTokenIssuer(f.v.db, &fakeRepoManager{f.store}, f.codec, f.clock)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	issued, err := issuer.Issue(context.Background(), IssueRequest{
		Name: "Math", Purpose: "focus", DurationMinutes: 50,
		WindowStart: "09:00", WindowEnd: "10:00", Days: "월",
	})
	require.NoError(t, err)

	p, err := tokens.DecodePayload(issued.Payload)
	require.NoError(t, err)

	// Monday 08:55 is inside the lead time.
	got, err := f.v.Redeem(context.Background(), p, "hw-1")
	require.NoError(t, err)
	assert.Equal(t, issued.Policy.ID, got.Policy.ID)

	// Monday 08:40 is not.
	f.clock.Set(time.Date(2026, 3, 2, 8, 40, 0, 0, common.PolicyZone))
	_, err = f.v.Redeem(context.Background(), p, "hw-1")
	var oerr *OutOfWindowError
	assert.ErrorAs(t, err, &oerr)

	assert.NoError(t, f.mock.ExpectationsWereMet())
}
