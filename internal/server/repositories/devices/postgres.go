package devices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Register(ctx context.Context, d *models.Device) (*models.Device, error) {
	query :=
		`INSERT INTO devices (id, hardware_id, platform, last_seen_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (hardware_id) DO UPDATE SET platform = excluded.platform, last_seen_at = excluded.last_seen_at
		 RETURNING id, usage_access_granted, screen_time_granted, created_at
		 `

	out := *d
	err := r.db.QueryRowContext(ctx, query, d.ID, d.HardwareID, string(d.Platform), d.LastSeenAt).
		Scan(&out.ID, &out.UsageAccessGranted, &out.ScreenTimeGranted, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &out, nil
}

func (r *PostgresRepository) Find(ctx context.Context, key string) (*models.Device, error) {
	query :=
		`SELECT id, hardware_id, platform, usage_access_granted, screen_time_granted, last_seen_at, created_at
		 FROM devices
		 WHERE id::text = $1 OR hardware_id = $1
		 ORDER BY (id::text = $1) DESC
		 LIMIT 1
		 `

	d := &models.Device{}
	var platform string
	err := r.db.QueryRowContext(ctx, query, key).
		Scan(&d.ID, &d.HardwareID, &platform, &d.UsageAccessGranted, &d.ScreenTimeGranted, &d.LastSeenAt, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	d.Platform = models.Platform(platform)

	return d, nil
}

func (r *PostgresRepository) UpdatePermissions(ctx context.Context, id string, usageAccess, screenTime bool, seenAt time.Time) error {
	query :=
		`UPDATE devices
		 SET usage_access_granted = $2, screen_time_granted = $3, last_seen_at = $4
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, usageAccess, screenTime, seenAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
