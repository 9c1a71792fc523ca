package attendance

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, a *models.AttendanceRecord) (bool, error) {
	query :=
		`INSERT INTO attendance_records (token_id, device_id, attended_on, recorded_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (token_id, device_id, attended_on) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, a.TokenID, a.DeviceID, a.AttendedOn.Format("2006-01-02"), a.RecordedAt)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
