// Package database owns the process-wide connection pool, the table bootstrap
// and the unit-of-work helper used by every repository.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/taiwoajasa245/gratitude-api/pkg/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Service is the storage engine handle. It is built once in main and passed
// to every repository.
type Service interface {
	DB() *sql.DB
	Dialect() Dialect
	// WithTx runs fn inside a transaction that is committed when fn returns
	// nil and rolled back otherwise, including on panic. fn receives a context
	// detached from the caller's cancellation.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
	EnsureSchema(ctx context.Context) error
	Health() map[string]string
	Close() error
}

type service struct {
	db      *sql.DB
	dialect Dialect
	log     *zap.Logger
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}

// New opens the database named by cfg.DatabaseURL, verifies the connection
// and creates missing tables.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Service, error) {
	return Open(ctx, cfg.DatabaseURL, OptionsFromConfig(cfg), log)
}

func Open(ctx context.Context, databaseURL string, opts Options, log *zap.Logger) (Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	target, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", target.Dialect, err)
	}

	if target.InMemory() {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		if opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			db.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if opts.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", target.Dialect, err)
	}

	s := &service{db: db, dialect: target.Dialect, log: log}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("database connected", zap.String("dialect", string(target.Dialect)))
	return s, nil
}

func (s *service) DB() *sql.DB { return s.db }

func (s *service) Dialect() Dialect { return s.dialect }

// EnsureSchema creates the tables and indexes when they do not exist yet.
// It never alters existing tables.
func (s *service) EnsureSchema(ctx context.Context) error {
	ddl, err := schemaFS.ReadFile(fmt.Sprintf("schema/%s.sql", s.dialect))
	if err != nil {
		return fmt.Errorf("read %s schema: %w", s.dialect, err)
	}
	if _, err := s.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *service) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) (err error) {
	// a started unit of work always runs to commit or rollback
	ctx = context.WithoutCancel(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Warn("rollback failed", zap.Error(rbErr), zap.NamedError("cause", err))
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Health pings the database and reports pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	stats := make(map[string]string)
	stats["dialect"] = string(s.dialect)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}

func (s *service) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.log.Info("disconnected from database", zap.String("dialect", string(s.dialect)))
	return s.db.Close()
}
