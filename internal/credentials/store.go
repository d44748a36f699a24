package credentials

import (
	"database/sql"
	"fmt"

	"github.com/quizforge/backend/internal/models"
)

// Store persists provider credentials and the selected provider.
// Saves are last-write-wins upserts; there is no history and no
// cross-writer conflict detection.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save upserts the credential and marks its provider as selected,
// matching the settings-panel behavior where saving a key activates
// that model.
func (s *Store) Save(provider models.Provider, apiKey string) error {
	_, err := s.db.Exec(
		`INSERT INTO model_credentials (provider, api_key, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (provider) DO UPDATE SET api_key = EXCLUDED.api_key, updated_at = NOW()`,
		provider, apiKey,
	)
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO model_selection (id, provider, updated_at)
		 VALUES (TRUE, $1, NOW())
		 ON CONFLICT (id) DO UPDATE SET provider = EXCLUDED.provider, updated_at = NOW()`,
		provider,
	)
	if err != nil {
		return fmt.Errorf("save selection: %w", err)
	}

	return nil
}

// Settings returns every stored credential plus the selected provider.
// An empty store yields empty settings, not an error.
func (s *Store) Settings() (models.ModelSettings, error) {
	var settings models.ModelSettings

	rows, err := s.db.Query(
		`SELECT provider, api_key, updated_at FROM model_credentials ORDER BY provider`,
	)
	if err != nil {
		return settings, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.ModelCredential
		if err := rows.Scan(&c.Provider, &c.APIKey, &c.UpdatedAt); err != nil {
			return settings, fmt.Errorf("scan credential: %w", err)
		}
		settings.Credentials = append(settings.Credentials, c)
	}
	if err := rows.Err(); err != nil {
		return settings, fmt.Errorf("list credentials: %w", err)
	}

	err = s.db.QueryRow(`SELECT provider FROM model_selection WHERE id = TRUE`).Scan(&settings.Selected)
	if err != nil && err != sql.ErrNoRows {
		return settings, fmt.Errorf("load selection: %w", err)
	}

	return settings, nil
}
