package policies

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Create(ctx context.Context, p *models.RestrictionPolicy) error {
	blocked, err := pgutil.EncodeList(p.BlockedApps)
	if err != nil {
		return fmt.Errorf("encode blocked apps: %w", err)
	}
	allowed, err := pgutil.EncodeList(p.AllowedApps)
	if err != nil {
		return fmt.Errorf("encode allowed apps: %w", err)
	}

	query :=
		`INSERT INTO restriction_policies
			(id, name, purpose, duration_minutes, blocked_apps, allowed_apps, time_window, once_per_device, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, string(p.Purpose), p.DurationMinutes, blocked, allowed, p.Window, p.OncePerDevice, p.CreatedBy, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByTokenID(ctx context.Context, tokenID string) (*models.RestrictionPolicy, error) {
	query :=
		`SELECT p.id, p.name, p.purpose, p.duration_minutes, p.blocked_apps, p.allowed_apps,
				p.time_window, p.once_per_device, p.created_by, p.created_at
		 FROM lock_tokens t
		 JOIN restriction_policies p ON p.id = t.policy_id
		 WHERE t.id = $1
		 `

	var (
		p                = &models.RestrictionPolicy{}
		purpose          string
		blocked, allowed string
		createdBy        sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, tokenID).Scan(
		&p.ID, &p.Name, &purpose, &p.DurationMinutes, &blocked, &allowed,
		&p.Window, &p.OncePerDevice, &createdBy, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.Purpose = models.Purpose(purpose)
	if createdBy.Valid {
		p.CreatedBy = &createdBy.String
	}
	if p.BlockedApps, err = pgutil.DecodeList(blocked); err != nil {
		return nil, fmt.Errorf("decode blocked apps: %w", err)
	}
	if p.AllowedApps, err = pgutil.DecodeList(allowed); err != nil {
		return nil, fmt.Errorf("decode allowed apps: %w", err)
	}

	return p, nil
}
