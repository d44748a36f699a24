package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "quizforge_user")
	password := getEnv("DB_PASSWORD", "quizforge_password")
	dbname := getEnv("DB_NAME", "quizforge")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS model_credentials (
		provider   VARCHAR(20) PRIMARY KEY,
		api_key    TEXT NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS model_selection (
		id         BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
		provider   VARCHAR(20) NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS quiz_history (
		id             BIGSERIAL PRIMARY KEY,
		session_id     VARCHAR(36) NOT NULL,
		topic          TEXT NOT NULL,
		question_count INT NOT NULL,
		score          DOUBLE PRECISION NOT NULL,
		total_marks    DOUBLE PRECISION NOT NULL,
		graded_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_history_graded_at ON quiz_history(graded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_history_session ON quiz_history(session_id);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
