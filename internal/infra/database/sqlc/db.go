package sqlc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Settings are the Postgres connection options.
type Settings struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

func (s Settings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		s.Host, s.Port, s.Username, s.Password, s.Database, sslMode, s.Schema)
}

// Open connects with lib/pq and verifies the connection.
func Open(ctx context.Context, settings Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return db, nil
}
