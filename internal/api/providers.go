package api

import (
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/odariane19-ui/permiscard/internal/config"
	"github.com/odariane19-ui/permiscard/internal/permit/audit"
	"github.com/odariane19-ui/permiscard/internal/permit/cache"
	"github.com/odariane19-ui/permiscard/internal/permit/keys"
	"github.com/odariane19-ui/permiscard/internal/permit/scan"
	"github.com/odariane19-ui/permiscard/internal/permit/signer"
	"github.com/odariane19-ui/permiscard/internal/permit/storage"
	"github.com/odariane19-ui/permiscard/internal/permit/verifier"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#providers

func NewDB(cfg config.Server) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := storage.AutoMigrate(db); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}

// NewClock returns the real clock, or a mock clock when running under tests.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	if len(t) > 0 {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

func NewKeychain(cfg config.Server) (*keys.Keychain, error) {
	return keys.LoadOrGenerate(cfg.Permit.SigningKeyFile)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewStore(db *gorm.DB) storage.Store {
	return storage.New(db)
}

// NewCacheStore selects the verification cache backend. A configured
// database file gives a durable cache that survives restarts; otherwise
// snapshots live in process memory only.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewCacheStore(cfg config.Server) (cache.Store, error) {
	if cfg.Permit.CacheDatabaseFile == "" {
		return cache.NewMemory(), nil
	}

	return cache.NewSQLite(cfg.Permit.CacheDatabaseFile)
}

// NewAuditLogger spools scan events through store outages so every
// completed verification stays auditable.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewAuditLogger(store storage.Store) audit.Logger {
	return audit.NewSpoolingLogger(store, audit.NewSpool())
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewSignerService(keychain *keys.Keychain, clock time2.Clock) signer.Service {
	return signer.NewService(keychain, clock)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewVerifierService(
	cfg config.Server,
	keychain *keys.Keychain,
	clock time2.Clock,
	auditLogger audit.Logger,
) verifier.Service {
	return verifier.NewService(keychain.Public(), clock, cfg.Permit.MaxCredentialAge, auditLogger)
}

func NewOrchestrator(
	cfg config.Server,
	verifierService verifier.Service,
	store storage.Store,
	cacheStore cache.Store,
	auditLogger audit.Logger,
	clock time2.Clock,
) *scan.Orchestrator {
	return scan.NewOrchestrator(verifierService, store, cacheStore, auditLogger, clock, cfg.Permit.OnlineVerifyTimeout)
}
