package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"workday/internal/core"
	applog "workday/internal/log"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Options tunes how the database file is opened.
type Options struct {
	BusyTimeout time.Duration
	Logger      *applog.Logger
}

// Repository is the single entry point to the workday SQLite file.
type Repository struct {
	db     *sqlx.DB
	path   string
	logger *applog.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// brings its schema up to date.
func NewSQLiteRepository(dbPath string, opts Options) (*Repository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentStorage)

	if err := RunMigrations(abs); err != nil {
		logger.Error("Database initialization failed",
			applog.FieldDBPath, abs,
			applog.FieldOperation, applog.OpMigrate,
			applog.FieldError, err)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	busy := int(opts.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time keeps the attendance transaction free of lock upgrades.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("SQLite repository ready", applog.FieldDBPath, abs)

	return &Repository{db: db, path: abs, logger: logger}, nil
}

// Path is the absolute location of the database file.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping checks that the database still answers.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// expectOne maps a zero-row mutation to core.ErrNotFound.
func expectOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, core.ErrNotFound)
	}
	return nil
}
