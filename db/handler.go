package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"scribe/config"
	"scribe/interfaces"
)

//go:embed schema.sql
var schemaSQL string

// Handler is the SQL storage. Writes go through one Batch at a time, reads
// use the connection pool and may run while a batch is open.
type Handler struct {
	db      *sql.DB
	driver  string
	builder sq.StatementBuilderType

	// writeMu is held from Begin until Commit or Rollback.
	writeMu sync.Mutex
}

var (
	_ interfaces.Database = (*Handler)(nil)
	_ interfaces.Reader   = (*Handler)(nil)
)

// Open connects to the configured database and creates the base tables.
func Open(ctx context.Context, cfg config.DBConfig) (*Handler, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverSQLite
	}
	dsn := cfg.DSN
	if driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}
	slog.Info("connecting to DB", "driver", driver)
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	h := New(conn, driver)
	if err := h.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return h, nil
}

// New wraps an open connection. Migrate must run before first use.
func New(conn *sql.DB, driver string) *Handler {
	format := sq.PlaceholderFormat(sq.Question)
	if driver == config.DriverPostgres {
		format = sq.Dollar
	}
	return &Handler{
		db:      conn,
		driver:  driver,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// sqliteDSN adds the pragmas every pooled connection needs.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}

func (h *Handler) Migrate(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (h *Handler) Close() error {
	return h.db.Close()
}

// Begin opens the write batch for one block. It blocks while another batch
// is open.
func (h *Handler) Begin(ctx context.Context) (interfaces.Batch, error) {
	h.writeMu.Lock()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		h.writeMu.Unlock()
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	return newBatch(h, tx), nil
}

// Head returns the last committed block. found is false until the first commit.
func (h *Handler) Head(ctx context.Context) (uint64, bool, error) {
	return head(ctx, h.db, h.builder)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func head(ctx context.Context, q queryRower, b sq.StatementBuilderType) (uint64, bool, error) {
	query, args, err := b.Select("head").From("indexer_head").Where(sq.Eq{"id": 1}).ToSql()
	if err != nil {
		return 0, false, err
	}
	var n int64
	err = q.QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read head: %w", err)
	}
	return uint64(n), true, nil
}

// quote renders an identifier for both SQLite and PostgreSQL.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
