package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

const defaultPageSize = 1000

type SQLiteRepository struct {
	db       *sql.DB
	now      func() time.Time
	pageSize int
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db, now: time.Now, pageSize: defaultPageSize}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_kv_expires_at ON kv(expires_at);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`

	var value string
	err := r.db.QueryRowContext(ctx, query, key, r.now().Unix()).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, key, value string, opts ports.PutOptions) error {
	query := `INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`

	var expiresAt sql.NullInt64
	if opts.ExpirationTTL > 0 {
		expiresAt = sql.NullInt64{Int64: r.now().Add(opts.ExpirationTTL).Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, key, value, expiresAt)
	return err
}

// List pages through keys in order. The cursor is the last key of the previous page.
func (r *SQLiteRepository) List(ctx context.Context, opts ports.ListOptions) (*ports.ListResult, error) {
	limit := opts.Limit
	if limit <= 0 || limit > r.pageSize {
		limit = r.pageSize
	}

	// substr avoids LIKE wildcards in ad ids
	query := `SELECT key FROM kv
			  WHERE substr(key, 1, ?) = ? AND key > ?
			  AND (expires_at IS NULL OR expires_at > ?)
			  ORDER BY key LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, utf8.RuneCountInString(opts.Prefix), opts.Prefix, opts.Cursor, r.now().Unix(), limit+1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res := &ports.ListResult{}
	if len(names) > limit {
		names = names[:limit]
		res.Cursor = names[limit-1]
	}
	res.Keys = make([]ports.KeyEntry, len(names))
	for i, n := range names {
		res.Keys[i] = ports.KeyEntry{Name: n}
	}
	return res, nil
}

// PurgeExpired deletes rows whose expiration has passed. Reads already ignore them.
func (r *SQLiteRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?`, r.now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Ensure interface compliance
var _ ports.CounterStore = (*SQLiteRepository)(nil)
