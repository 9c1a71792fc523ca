package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/focuslock/internal/client/models"
	"github.com/dmitrijs2005/focuslock/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

// KVStore implements Store over any Repository.
type KVStore struct {
	repo Repository
}

func NewKVStore(repo Repository) *KVStore {
	return &KVStore{repo: repo}
}

// Load returns models.DefaultSettings overlaid with whatever keys are set.
func (s *KVStore) Load(ctx context.Context) (models.Settings, error) {
	out := models.DefaultSettings()

	v, err := s.repo.Get(ctx, KeyPreventRemoval)
	if err != nil {
		return out, err
	}
	if v != nil {
		if out.PreventRemoval, err = strconv.ParseBool(string(v)); err != nil {
			return out, fmt.Errorf("bad %s value %q: %w", KeyPreventRemoval, v, err)
		}
	}

	v, err = s.repo.Get(ctx, KeyNotificationLeadMinutes)
	if err != nil {
		return out, err
	}
	if v != nil {
		if out.NotificationLeadMinutes, err = strconv.Atoi(string(v)); err != nil {
			return out, fmt.Errorf("bad %s value %q: %w", KeyNotificationLeadMinutes, v, err)
		}
	}

	return out, nil
}

func (s *KVStore) Save(ctx context.Context, st models.Settings) error {
	if st.NotificationLeadMinutes < 0 {
		return fmt.Errorf("%s must not be negative", KeyNotificationLeadMinutes)
	}
	if err := s.repo.Set(ctx, KeyPreventRemoval, []byte(strconv.FormatBool(st.PreventRemoval))); err != nil {
		return err
	}
	return s.repo.Set(ctx, KeyNotificationLeadMinutes, []byte(strconv.Itoa(st.NotificationLeadMinutes)))
}

// DeviceID returns the id the server assigned at registration, or "".
func (s *KVStore) DeviceID(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyDeviceID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *KVStore) SetDeviceID(ctx context.Context, id string) error {
	return s.repo.Set(ctx, KeyDeviceID, []byte(id))
}
