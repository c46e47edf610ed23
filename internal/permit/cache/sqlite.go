package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

type cachedRecordModel struct {
	RecordID string `gorm:"primaryKey;column:record_id"`
	Snapshot []byte
	CachedAt time.Time
}

func (cachedRecordModel) TableName() string {
	return "cached_records"
}

type sqliteStore struct {
	db *gorm.DB
	mu sync.RWMutex
}

// NewSQLite opens (or creates) the durable device cache at path. Lookups
// never touch the network and never block on connectivity.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewSQLite(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("cache database file path is required, set PERMIT_CACHE_DATABASE_FILE")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open cache database %s", path)
	}

	if err := db.AutoMigrate(&cachedRecordModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate cache database")
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Put(ctx context.Context, rec *record.Record) error {
	if rec.ID == "" {
		return errors.New("record id must not be empty")
	}

	snapshot, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to serialize record snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}},
		UpdateAll: true,
	}).Create(&cachedRecordModel{
		RecordID: rec.ID,
		Snapshot: snapshot,
		CachedAt: time.Now(),
	})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to cache record")
	}

	return nil
}

func (s *sqliteStore) FetchRecord(ctx context.Context, id string) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m cachedRecordModel
	err := s.db.WithContext(ctx).Where("record_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, record.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to read cache")
	}

	var rec record.Record
	if err := json.Unmarshal(m.Snapshot, &rec); err != nil {
		return nil, errors.Wrap(err, "corrupt record snapshot")
	}

	return &rec, nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&cachedRecordModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}

	return nil
}
