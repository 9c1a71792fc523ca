package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/client/repositories/rowcodec"
	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
)

const selectPreset = `
	SELECT id, name, kind, start_time, end_time, days, mode, apps, duration_minutes, active
	FROM presets`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (*models.Preset, error) {
	var (
		p          models.Preset
		days, apps string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Kind, &p.Start, &p.End, &days, &p.Mode, &apps, &p.DurationMinutes, &p.Active); err != nil {
		return nil, err
	}
	p.Days = rowcodec.DecodeDays(days)
	var err error
	if p.Apps, err = rowcodec.DecodeApps(apps); err != nil {
		return nil, fmt.Errorf("preset %s: bad app list: %w", p.ID, err)
	}
	return &p, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Preset, error) {
	rows, err := r.db.QueryContext(ctx, selectPreset+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var result []*models.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset row: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preset rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Preset, error) {
	p, err := scanPreset(r.db.QueryRowContext(ctx, selectPreset+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %s: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, p *models.Preset) error {
	apps, err := rowcodec.EncodeApps(p.Apps)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO presets (id, name, kind, start_time, end_time, days, mode, apps, duration_minutes, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			days = excluded.days,
			mode = excluded.mode,
			apps = excluded.apps,
			duration_minutes = excluded.duration_minutes,
			active = excluded.active
	`, p.ID, p.Name, p.Kind, p.Start, p.End, rowcodec.EncodeDays(p.Days), p.Mode, apps, p.DurationMinutes, p.Active)
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", id, err)
	}
	return nil
}
