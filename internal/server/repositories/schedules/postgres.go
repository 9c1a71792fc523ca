package schedules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/focuslock/internal/common"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
	"github.com/dmitrijs2005/focuslock/internal/server/models"
	"github.com/dmitrijs2005/focuslock/internal/server/repositories/pgutil"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.Schedule) error {
	apps, err := pgutil.EncodeList(s.Apps)
	if err != nil {
		return fmt.Errorf("encode apps: %w", err)
	}

	query :=
		`INSERT INTO schedules (id, owner_id, creator_id, name, start_time, end_time, days, mode, apps, active, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			name = EXCLUDED.name,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			days = EXCLUDED.days,
			mode = EXCLUDED.mode,
			apps = EXCLUDED.apps,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
		 WHERE schedules.creator_id = EXCLUDED.creator_id
		 `

	res, err := r.db.ExecContext(ctx, query,
		s.ID, s.OwnerID, s.CreatorID, s.Name, s.StartTime, s.EndTime, s.Days, string(s.Mode), apps, s.Active, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadyExists
	}
	return nil
}

func (r *PostgresRepository) ListForIdentity(ctx context.Context, identity string) ([]*models.Schedule, error) {
	query :=
		`SELECT id, owner_id, creator_id, name, start_time, end_time, days, mode, apps, active, updated_at
		 FROM schedules
		 WHERE owner_id = $1 OR creator_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, identity)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Schedule
	for rows.Next() {
		var (
			s    = &models.Schedule{}
			mode string
			apps string
		)
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.CreatorID, &s.Name, &s.StartTime, &s.EndTime,
			&s.Days, &mode, &apps, &s.Active, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		s.Mode = models.Mode(mode)
		if s.Apps, err = pgutil.DecodeList(apps); err != nil {
			return nil, fmt.Errorf("decode apps: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
