// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/shopfloor-sync/internal/logger"
	"github.com/MKhiriev/shopfloor-sync/migrations"
)

const sqliteParams = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"

// NewConnectSQLite opens the SQLite file at path, creating it and its
// directory when missing, and applies the local store migrations.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if err := createLocalDBDirIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error creating database directory")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error opening database")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// one writer per store: a single connection serialises transactions
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error connecting database (ping)")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	db := &DB{
		DB:      conn,
		dialect: migrations.SQLite,
		logger:  log,
	}

	if err = db.Migrate(); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("error migrating database")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return "file:" + path + "&" + sqliteParams
	}
	return "file:" + path + "?" + sqliteParams
}

func createLocalDBDirIfNotExists(dbFile string) error {
	dir := filepath.Dir(dbFile)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating DB dir: %w", err)
	}
	return nil
}
