package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const defaultPostgresTable = "pow_store"

// PostgresStore keeps records as JSONB rows with an optional deadline.
// Rows past their deadline are invisible to every read; Cleanup removes them.
type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = defaultPostgresTable
	}
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
}

// OpenPostgresStore opens dsn with the lib/pq driver and checks connectivity.
func OpenPostgresStore(ctx context.Context, dsn, table string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresStore(db, table), nil
}

var (
	_ Store          = (*PostgresStore)(nil)
	_ ReadAndDeleter = (*PostgresStore)(nil)
	_ Creator        = (*PostgresStore)(nil)
)

const liveRow = "(expires_at IS NULL OR expires_at > now())"

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key        TEXT PRIMARY KEY,
	fields     JSONB NOT NULL,
	expires_at TIMESTAMPTZ NULL
)`, s.table))
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE key = $1 AND %s)`, s.table, liveRow)
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// WriteFields merges fields into a live row and keeps its deadline; an
// expired row is replaced outright.
func (s *PostgresStore) WriteFields(ctx context.Context, key string, fields map[string]string) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`INSERT INTO %[1]s (key, fields, expires_at) VALUES ($1, $2, NULL)
ON CONFLICT (key) DO UPDATE SET
	fields = CASE WHEN %[1]s.expires_at IS NOT NULL AND %[1]s.expires_at <= now()
		THEN EXCLUDED.fields ELSE %[1]s.fields || EXCLUDED.fields END,
	expires_at = CASE WHEN %[1]s.expires_at IS NOT NULL AND %[1]s.expires_at <= now()
		THEN NULL ELSE %[1]s.expires_at END`, s.table)
	_, err = s.db.ExecContext(ctx, q, key, string(raw))
	return err
}

func (s *PostgresStore) ReadField(ctx context.Context, key, field string) (string, bool, error) {
	var val sql.NullString
	q := fmt.Sprintf(`SELECT fields ->> $2::text FROM %s WHERE key = $1 AND %s`, s.table, liveRow)
	err := s.db.QueryRowContext(ctx, q, key, field).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val.String, val.Valid, nil
}

func (s *PostgresStore) SetTTL(ctx context.Context, key string, ttl time.Duration) error {
	q := fmt.Sprintf(`UPDATE %s SET expires_at = now() + ($2::double precision) * interval '1 millisecond' WHERE key = $1 AND %s`, s.table, liveRow)
	res, err := s.db.ExecContext(ctx, q, key, ttl.Milliseconds())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSuchKey
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) (bool, error) {
	var live bool
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = $1 RETURNING %s`, s.table, liveRow)
	err := s.db.QueryRowContext(ctx, q, key).Scan(&live)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return live, nil
}

func (s *PostgresStore) ReadAndDelete(ctx context.Context, key string) (map[string]string, bool, error) {
	var (
		raw  []byte
		live bool
	)
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = $1 RETURNING fields, %s`, s.table, liveRow)
	err := s.db.QueryRowContext(ctx, q, key).Scan(&raw, &live)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !live {
		return nil, false, nil
	}
	fields := make(map[string]string)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false, err
	}
	return fields, true, nil
}

func (s *PostgresStore) CreateWithTTL(ctx context.Context, key string, fields map[string]string, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return false, err
	}
	q := fmt.Sprintf(`INSERT INTO %[1]s (key, fields, expires_at)
VALUES ($1, $2, now() + ($3::double precision) * interval '1 millisecond')
ON CONFLICT (key) DO UPDATE SET fields = EXCLUDED.fields, expires_at = EXCLUDED.expires_at
	WHERE %[1]s.expires_at IS NOT NULL AND %[1]s.expires_at <= now()
RETURNING key`, s.table)
	var got string
	err = s.db.QueryRowContext(ctx, q, key, string(raw), ttl.Milliseconds()).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cleanup deletes expired rows and returns how many were removed.
func (s *PostgresStore) Cleanup(ctx context.Context) (int64, error) {
	q := fmt.Sprintf(`DELETE FROM %s WHERE expires_at IS NOT NULL AND expires_at <= now()`, s.table)
	res, err := s.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
