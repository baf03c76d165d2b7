package db

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/chethan81/stockmonitor-backend/pkg/config"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/chethan81/stockmonitor-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Candidate names, in fallback order.
const (
	CandidatePooled    = "pooled"
	CandidateDirect    = "direct"
	CandidateEphemeral = "ephemeral"
)

// Conn is a resolved storage handle. Degraded connections are usable for reads
// and writes but callers that need durability must check Degraded() —
// ephemeral data does not survive a process restart.
type Conn struct {
	db        *gorm.DB
	candidate string
	degraded  bool
	ephemeral bool
}

// DB returns the underlying GORM handle.
func (c *Conn) DB() *gorm.DB {
	return c.db
}

// Candidate names the backend this connection resolved to.
func (c *Conn) Candidate() string {
	return c.candidate
}

// Degraded reports whether the connection came from a non-primary candidate.
func (c *Conn) Degraded() bool {
	return c.degraded
}

// Ephemeral reports whether writes on this connection are lost on restart.
func (c *Conn) Ephemeral() bool {
	return c.ephemeral
}

type candidate struct {
	name      string
	ephemeral bool
	open      func(ctx context.Context) (*gorm.DB, error)
}

// Connector resolves a usable storage handle from an ordered candidate chain:
// the pooled primary backend, a direct single-connection path to the same
// backend, and a last-resort ephemeral in-memory database. Each candidate is
// dialed with a bounded fixed-backoff retry before falling through.
type Connector struct {
	cfg     config.DBConfig
	logg    *logger.Logger
	metrics *metrics.StorageMetrics

	mu         sync.Mutex
	candidates []candidate
	cached     map[string]*gorm.DB
}

// NewConnector validates the configuration and builds the candidate chain.
// Nothing is dialed until the first Acquire.
func NewConnector(cfg config.DBConfig, logg *logger.Logger, m *metrics.StorageMetrics) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("storage config: %w", err)
	}

	c := &Connector{
		cfg:     cfg,
		logg:    logg,
		metrics: m,
		cached:  map[string]*gorm.DB{},
	}

	c.candidates = []candidate{
		{name: CandidatePooled, open: c.openPooled},
		{name: CandidateDirect, open: c.openDirect},
	}
	if !cfg.DisableFallback {
		c.candidates = append(c.candidates, candidate{
			name:      CandidateEphemeral,
			ephemeral: true,
			open:      c.openEphemeral,
		})
	}

	return c, nil
}

// Acquire walks the candidate chain and returns the first healthy connection.
// It fails with STORAGE_UNAVAILABLE only after every candidate is exhausted,
// carrying each candidate's failure in the cause chain.
func (c *Connector) Acquire(ctx context.Context) (*Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var failures error
	for i, cand := range c.candidates {
		db, err := c.resolveLocked(ctx, cand)
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", cand.name, err))
			continue
		}

		degraded := i > 0
		if degraded {
			c.metrics.IncDegraded()
			if c.logg != nil {
				lctx := c.logg.WithFields(ctx, map[string]any{
					"candidate": cand.name,
					"ephemeral": cand.ephemeral,
				})
				c.logg.Warn(lctx, "storage degraded: acquired fallback candidate")
			}
		}
		c.metrics.IncAcquisition(cand.name)

		return &Conn{
			db:        db,
			candidate: cand.name,
			degraded:  degraded,
			ephemeral: cand.ephemeral,
		}, nil
	}

	return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, failures, "all storage candidates exhausted")
}

// Probe reports whether any candidate currently yields a usable connection.
func (c *Connector) Probe(ctx context.Context) bool {
	_, err := c.Acquire(ctx)
	c.metrics.SetProbeHealthy(err == nil)
	return err == nil
}

// WithTx acquires a connection and executes fn inside a transaction, rolling
// back on error or panic.
func (c *Connector) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	conn, err := c.Acquire(ctx)
	if err != nil {
		return err
	}

	tx := conn.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, tx.Error, "begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "commit transaction")
	}
	return nil
}

// Close shuts down every dialed candidate.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs error
	for name, db := range c.cached {
		sqlDB, err := db.DB()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	c.cached = map[string]*gorm.DB{}
	return errs
}

// resolveLocked returns a healthy handle for the candidate, re-dialing with the
// configured bounded retry when the cached handle is gone or unresponsive.
func (c *Connector) resolveLocked(ctx context.Context, cand candidate) (*gorm.DB, error) {
	if db, ok := c.cached[cand.name]; ok {
		if pingDB(ctx, db) == nil {
			return db, nil
		}
		c.dropLocked(cand.name)
	}

	backoff := retry.WithMaxRetries(uint64(c.cfg.AcquireAttempts-1), retry.NewConstant(c.cfg.AcquireBackoff))

	var db *gorm.DB
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		opened, err := cand.open(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := pingDB(ctx, opened); err != nil {
			closeDB(opened)
			return retry.RetryableError(err)
		}
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cached[cand.name] = db
	return db, nil
}

func (c *Connector) dropLocked(name string) {
	if db, ok := c.cached[name]; ok {
		closeDB(db)
		delete(c.cached, name)
	}
}

func (c *Connector) openPooled(_ context.Context) (*gorm.DB, error) {
	db, err := openPostgres(c.cfg.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(c.cfg.PoolSize)
	sqlDB.SetMaxIdleConns(c.cfg.MaxIdleConns)
	if c.cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	}
	return db, nil
}

func (c *Connector) openDirect(_ context.Context) (*gorm.DB, error) {
	db, err := openPostgres(c.cfg.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Unpooled path: one connection, nothing idling.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(0)
	return db, nil
}

func (c *Connector) openEphemeral(_ context.Context) (*gorm.DB, error) {
	dsn := "file:stockmonitor_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; a single connection avoids lock contention.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(allModels()...); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrating ephemeral schema: %w", err)
	}
	return db, nil
}

func openPostgres(dsn string) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
	return gorm.Open(dialector, gormConfig())
}

func gormConfig() *gorm.Config {
	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)
	return &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
