package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/attendance"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/devices"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/policies"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/schedules"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/usages"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// store is an in-memory stand-in for the database shared by the fake
// repositories below. Uniqueness rules mirror the real schema.
type store struct {
	mu         sync.Mutex
	devices    map[string]*models.Device
	policies   map[string]*models.RestrictionPolicy
	tokens     map[string]*models.LockToken
	usages     map[string]bool
	attendance map[string]bool
	schedules  map[string]*models.Schedule

	deviceErr     error
	policyErr     error
	tokenErr      error
	usageErr      error
	attendanceErr error
	scheduleErr   error

	deviceFinds int
}

func newStore() *store {
	return &store{
		devices:    map[string]*models.Device{},
		policies:   map[string]*models.RestrictionPolicy{},
		tokens:     map[string]*models.LockToken{},
		usages:     map[string]bool{},
		attendance: map[string]bool{},
		schedules:  map[string]*models.Schedule{},
	}
}

func (s *store) addDevice(d *models.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[d.ID] = d
}

type fakeRepoManager struct{ s *store }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Devices(dbx.DBTX) devices.Repository          { return fakeDevices{m.s} }
func (m *fakeRepoManager) Policies(dbx.DBTX) policies.Repository        { return fakePolicies{m.s} }
func (m *fakeRepoManager) Tokens(dbx.DBTX) tokens.Repository            { return fakeTokens{m.s} }
func (m *fakeRepoManager) Usages(dbx.DBTX) usages.Repository            { return fakeUsages{m.s} }
func (m *fakeRepoManager) Attendance(dbx.DBTX) attendance.Repository    { return fakeAttendance{m.s} }
func (m *fakeRepoManager) Schedules(dbx.DBTX) schedules.Repository      { return fakeSchedules{m.s} }

type fakeDevices struct{ s *store }

func (f fakeDevices) Register(_ context.Context, d *models.Device) (*models.Device, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.deviceErr != nil {
		return nil, f.s.deviceErr
	}
	for _, existing := range f.s.devices {
		if existing.HardwareID == d.HardwareID {
			existing.Platform = d.Platform
			existing.LastSeenAt = d.LastSeenAt
			cp := *existing
			return &cp, nil
		}
	}
	cp := *d
	cp.CreatedAt = d.LastSeenAt
	f.s.devices[d.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeDevices) Find(_ context.Context, key string) (*models.Device, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.deviceFinds++
	if f.s.deviceErr != nil {
		return nil, f.s.deviceErr
	}
	for _, d := range f.s.devices {
		if d.ID == key || d.HardwareID == key {
			cp := *d
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f fakeDevices) UpdatePermissions(_ context.Context, id string, usageAccess, screenTime bool, seenAt time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.devices[id]
	if !ok {
		return common.ErrorNotFound
	}
	d.UsageAccessGranted = usageAccess
	d.ScreenTimeGranted = screenTime
	d.LastSeenAt = seenAt
	return nil
}

type fakePolicies struct{ s *store }

func (f fakePolicies) Create(_ context.Context, p *models.RestrictionPolicy) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.policyErr != nil {
		return f.s.policyErr
	}
	f.s.policies[p.ID] = p
	return nil
}

func (f fakePolicies) FindByTokenID(_ context.Context, tokenID string) (*models.RestrictionPolicy, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.policyErr != nil {
		return nil, f.s.policyErr
	}
	t, ok := f.s.tokens[tokenID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p, ok := f.s.policies[t.PolicyID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

type fakeTokens struct{ s *store }

func (f fakeTokens) Create(_ context.Context, t *models.LockToken) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.tokenErr != nil {
		return f.s.tokenErr
	}
	f.s.tokens[t.ID] = t
	return nil
}

func (f fakeTokens) Find(_ context.Context, id string) (*models.LockToken, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tokens[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

type fakeUsages struct{ s *store }

func (f fakeUsages) Insert(_ context.Context, u *models.UsageRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.usageErr != nil {
		return f.s.usageErr
	}
	key := u.TokenID + "/" + u.DeviceID
	if f.s.usages[key] {
		return common.ErrAlreadyExists
	}
	f.s.usages[key] = true
	return nil
}

type fakeAttendance struct{ s *store }

func (f fakeAttendance) Record(_ context.Context, a *models.AttendanceRecord) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.attendanceErr != nil {
		return false, f.s.attendanceErr
	}
	key := a.TokenID + "/" + a.DeviceID + "/" + a.AttendedOn.Format("2006-01-02")
	if f.s.attendance[key] {
		return false, nil
	}
	f.s.attendance[key] = true
	return true, nil
}

type fakeSchedules struct{ s *store }

func (f fakeSchedules) Upsert(_ context.Context, sc *models.Schedule) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.scheduleErr != nil {
		return f.s.scheduleErr
	}
	if existing, ok := f.s.schedules[sc.ID]; ok && existing.CreatorID != sc.CreatorID {
		return common.ErrAlreadyExists
	}
	cp := *sc
	f.s.schedules[sc.ID] = &cp
	return nil
}

func (f fakeSchedules) ListForIdentity(_ context.Context, identity string) ([]*models.Schedule, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.scheduleErr != nil {
		return nil, f.s.scheduleErr
	}
	var out []*models.Schedule
	for _, sc := range f.s.schedules {
		if sc.OwnerID == identity || sc.CreatorID == identity {
			out = append(out, sc)
		}
	}
	return out, nil
}
