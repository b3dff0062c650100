package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLStore implements Store on top of a single-table SQL database. The
// sqlite3 driver is the default; libsql is supported for hosted Turso
// deployments, matching the drivers the connection layer registers.
type SQLStore struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewSQLStore opens a connection for the specified driver and ensures the
// kv_store table exists.
func NewSQLStore(driverName, dataSourceName string, logger *logging.ChanneledLogger) (*SQLStore, error) {
	start := time.Now()
	logger.Store().Debug("Opening kv store", "driverName", driverName)

	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		logger.Store().Error("Failed to open kv store", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)

	if err = db.Ping(); err != nil {
		logger.Store().Error("Kv store ping failed", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}

	logger.Store().Info("Kv store ready", "driverName", driverName, "duration", time.Since(start))
	return &SQLStore{db: db, logger: logger}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string, dest any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *SQLStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM kv_store WHERE key LIKE ? || '%'", prefix)
	if err != nil {
		return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("kv scan %q: %w", prefix, err)
		}
		entries = append(entries, Entry{Key: key, Value: json.RawMessage(raw)})
	}
	return entries, rows.Err()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
