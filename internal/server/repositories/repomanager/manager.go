package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/attendance"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/devices"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/policies"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/schedules"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/usages"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Devices(db dbx.DBTX) devices.Repository
	Policies(db dbx.DBTX) policies.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Usages(db dbx.DBTX) usages.Repository
	Attendance(db dbx.DBTX) attendance.Repository
	Schedules(db dbx.DBTX) schedules.Repository
}
