package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, t *models.LockToken) error {
	query :=
		`INSERT INTO lock_tokens (id, policy_id, issuer_id, signature, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query, t.ID, t.PolicyID, t.IssuerID, t.Signature, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.LockToken, error) {
	query :=
		`SELECT id, policy_id, issuer_id, signature, expires_at, created_at
		 FROM lock_tokens
		 WHERE id = $1
		 `

	t := &models.LockToken{}
	var issuer sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.PolicyID, &issuer, &t.Signature, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if issuer.Valid {
		t.IssuerID = &issuer.String
	}
	return t, nil
}
