package usages

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

func (r *PostgresRepository) Insert(ctx context.Context, u *models.UsageRecord) error {
	query := `INSERT INTO token_usages (token_id, device_id, used_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, u.TokenID, u.DeviceID, u.UsedAt)
	if err != nil {
		if pgutil.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
