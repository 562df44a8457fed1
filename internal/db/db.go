package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

func Open(dsn string) (*sql.DB, error) {
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return database, nil
}

func MustOpen(dsn string, logger zerolog.Logger) *sql.DB {
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_DSN not set")
	}
	database, err := Open(dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	return database
}
