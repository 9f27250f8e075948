package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
)

const sharedModeKey = "shared_mode_enabled"

// SQLiteSettingsRepository persists device-level preferences in the local
// store. The shared-mode preference lives here so it survives restarts even
// when the shared backend is unreachable.
type SQLiteSettingsRepository struct {
	db *sql.DB
}

func newSQLiteSettingsRepository(db *sql.DB) portsrepo.SettingsRepositoryFacade {
	return &SQLiteSettingsRepository{db: db}
}

var _ portsrepo.SettingsRepositoryFacade = (*SQLiteSettingsRepository)(nil)

func (s *SQLiteSettingsRepository) LoadSharedModePreference(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, sharedModeKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load shared mode preference: %w", err)
	}
	return value == "true", nil
}

func (s *SQLiteSettingsRepository) SaveSharedModePreference(ctx context.Context, shared bool) error {
	value := "false"
	if shared {
		value = "true"
	}
	query := `
		INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, sharedModeKey, value); err != nil {
		return fmt.Errorf("failed to save shared mode preference: %w", err)
	}
	return nil
}
