//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"neuronet/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func DefaultStoreKind() string {
	return KindSQLite
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
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

func (s *SQLiteStore) SaveProfile(ctx context.Context, profile model.Profile) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeProfile(profile)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO profiles (name, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, profile.Name, profile.SchemaVersion, profile.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetProfile(ctx context.Context, name string) (model.Profile, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Profile{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM profiles WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, false, nil
		}
		return model.Profile{}, false, err
	}

	profile, err := DecodeProfile(payload)
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("decode profile %s: %w", name, err)
	}
	return profile, true, nil
}

func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT name, payload FROM profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return nil, err
		}
		profile, err := DecodeProfile(payload)
		if err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", name, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (s *SQLiteStore) SaveBuildRecord(ctx context.Context, record model.BuildRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	createdAt, err := createdAtKey(record.CreatedAtUTC)
	if err != nil {
		return fmt.Errorf("build record %s: %w", record.ID, err)
	}
	payload, err := EncodeBuildRecord(record)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO build_records (id, created_at_unix_nano, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at_unix_nano = excluded.created_at_unix_nano,
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, record.ID, createdAt, record.SchemaVersion, record.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetBuildRecord(ctx context.Context, id string) (model.BuildRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.BuildRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM build_records WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BuildRecord{}, false, nil
		}
		return model.BuildRecord{}, false, err
	}

	record, err := DecodeBuildRecord(payload)
	if err != nil {
		return model.BuildRecord{}, false, fmt.Errorf("decode build record %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListBuildRecords(ctx context.Context, limit int) ([]model.BuildRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, payload FROM build_records ORDER BY created_at_unix_nano DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.BuildRecord
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		record, err := DecodeBuildRecord(payload)
		if err != nil {
			return nil, fmt.Errorf("decode build record %s: %w", id, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
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
		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS build_records (
			id TEXT PRIMARY KEY,
			created_at_unix_nano INTEGER NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
