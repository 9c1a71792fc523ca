package schedules

import (
	"context"
	"database/sql"
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

func (r *SQLiteRepository) Load(ctx context.Context) ([]*models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, start_time, end_time, days, mode, apps, active, origin, external_key, read_only
		FROM schedule_cache
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule cache: %w", err)
	}
	defer rows.Close()

	var result []*models.Schedule
	for rows.Next() {
		var (
			s          models.Schedule
			days, apps string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Start, &s.End, &days, &s.Mode, &apps, &s.Active, &s.Origin, &s.ExternalKey, &s.ReadOnly); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		s.Days = rowcodec.DecodeDays(days)
		if s.Apps, err = rowcodec.DecodeApps(apps); err != nil {
			return nil, fmt.Errorf("schedule %s: bad app list: %w", s.ID, err)
		}
		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_cache`); err != nil {
		return fmt.Errorf("failed to clear schedule cache: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, position int, s *models.Schedule) error {
	apps, err := rowcodec.EncodeApps(s.Apps)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO schedule_cache (id, position, name, start_time, end_time, days, mode, apps, active, origin, external_key, read_only)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, position, s.Name, s.Start, s.End, rowcodec.EncodeDays(s.Days), s.Mode, apps, s.Active, s.Origin, s.ExternalKey, s.ReadOnly)
	if err != nil {
		return fmt.Errorf("failed to cache schedule %s: %w", s.ID, err)
	}
	return nil
}

// SQLiteCache implements Cache on top of SQLiteRepository.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db}
}

func (c *SQLiteCache) Load(ctx context.Context) ([]*models.Schedule, error) {
	return NewSQLiteRepository(c.db).Load(ctx)
}

// Replace swaps the cached set for list in a single transaction; readers
// never see a partially written set.
func (c *SQLiteCache) Replace(ctx context.Context, list []*models.Schedule) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Clear(ctx); err != nil {
			return err
		}
		for i, s := range list {
			if err := r.Insert(ctx, i, s); err != nil {
				return err
			}
		}
		return nil
	})
}
