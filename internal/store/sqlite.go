package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/nishs1729/simulation-manager/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveSeries(ctx context.Context, series model.Series) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSeries(series)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO series (name, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, series.Name, series.SchemaVersion, series.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetSeries(ctx context.Context, name string) (model.Series, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Series{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM series WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Series{}, false, nil
		}
		return model.Series{}, false, err
	}

	series, err := DecodeSeries(payload)
	if err != nil {
		return model.Series{}, false, fmt.Errorf("decode series %s: %w", name, err)
	}
	return series, true, nil
}

func (s *SQLiteStore) ListSeries(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT name FROM series ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) SaveRunMeta(ctx context.Context, meta model.RunMeta) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeRunMeta(meta)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (run_id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, meta.RunID, meta.SchemaVersion, meta.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetRunMeta(ctx context.Context, runID string) (model.RunMeta, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.RunMeta{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE run_id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RunMeta{}, false, nil
		}
		return model.RunMeta{}, false, err
	}

	meta, err := DecodeRunMeta(payload)
	if err != nil {
		return model.RunMeta{}, false, fmt.Errorf("decode run meta %s: %w", runID, err)
	}
	return meta, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS series (
			name TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
