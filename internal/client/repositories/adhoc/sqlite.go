package adhoc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/rowcodec"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, token_id, name, start_time, end_time, days, mode, apps, active
		FROM adhoc_schedules
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad-hoc schedules: %w", err)
	}
	defer rows.Close()

	var result []*models.Schedule
	for rows.Next() {
		s := models.Schedule{Origin: models.OriginAdhoc}
		var days, apps string
		if err := rows.Scan(&s.ID, &s.ExternalKey, &s.Name, &s.Start, &s.End, &days, &s.Mode, &apps, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan ad-hoc row: %w", err)
		}
		s.Days = rowcodec.DecodeDays(days)
		if s.Apps, err = rowcodec.DecodeApps(apps); err != nil {
			return nil, fmt.Errorf("ad-hoc schedule %s: bad app list: %w", s.ID, err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ad-hoc rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Schedule) error {
	apps, err := rowcodec.EncodeApps(s.Apps)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO adhoc_schedules (id, token_id, name, start_time, end_time, days, mode, apps, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			days = excluded.days,
			mode = excluded.mode,
			apps = excluded.apps,
			active = excluded.active
	`, s.ID, s.ExternalKey, s.Name, s.Start, s.End, rowcodec.EncodeDays(s.Days), s.Mode, apps, s.Active)
	if err != nil {
		return fmt.Errorf("failed to save ad-hoc schedule %s: %w", s.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM adhoc_schedules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete ad-hoc schedule %s: %w", id, err)
	}
	return nil
}
