package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

const defaultQueryLimit = 100

type gormStore struct {
	db *gorm.DB
}

// New 基于已打开的 gorm 连接创建存储
// 驱动由调用方决定，生产用 postgres，测试用 sqlite
//
//nolint:ireturn // returning interface is intentional for abstraction
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// SavePermit 整体插入或覆盖记录，不做部分合并
func (s *gormStore) SavePermit(ctx context.Context, rec *record.Record) error {
	if rec.ID == "" {
		return errors.New("record id must not be empty")
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_id"}},
		UpdateAll: true,
	}).Create(permitModelFromRecord(rec))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save permit record")
	}

	return nil
}

func (s *gormStore) GetPermit(ctx context.Context, recordID string) (*record.Record, error) {
	var m permitModel
	err := s.db.WithContext(ctx).Where("record_id = ?", recordID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, record.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get permit record")
	}

	return m.toRecord(), nil
}

// FetchRecord 实现 record.Source，供在线核验使用
func (s *gormStore) FetchRecord(ctx context.Context, id string) (*record.Record, error) {
	return s.GetPermit(ctx, id)
}

func (s *gormStore) ListPermits(ctx context.Context, filter *PermitFilter) ([]*record.Record, error) {
	query := s.db.WithContext(ctx).Model(&permitModel{})

	limit := defaultQueryLimit
	if filter != nil {
		if filter.Zone != "" {
			query = query.Where("zone = ?", filter.Zone)
		}
		if filter.Type != "" {
			query = query.Where("permit_type = ?", filter.Type)
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var models []permitModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list permit records")
	}

	records := make([]*record.Record, 0, len(models))
	for i := range models {
		records = append(records, models[i].toRecord())
	}

	return records, nil
}

// AttachCredential 将签发的载荷与签名挂到记录上
// 重新签发直接覆盖，旧卡不单独吊销，只随新鲜度窗口自然失效
func (s *gormStore) AttachCredential(ctx context.Context, recordID string, cred *record.IssuedCredential) error {
	issuedAt := cred.IssuedAt

	result := s.db.WithContext(ctx).Model(&permitModel{}).
		Where("record_id = ?", recordID).
		Updates(map[string]interface{}{
			"credential_payload":   cred.PayloadEncoded,
			"credential_signature": cred.Signature,
			"credential_issued_at": issuedAt,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to attach credential")
	}
	if result.RowsAffected == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (s *gormStore) SaveScanLog(ctx context.Context, entry *ScanLogEntry) error {
	m := &scanLogModel{
		CredentialID: entry.CredentialID,
		AgentID:      entry.AgentID,
		Timestamp:    entry.Timestamp,
		Outcome:      entry.Outcome,
		Mode:         entry.Mode,
		Message:      entry.Message,
	}

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "failed to save scan log")
	}

	return nil
}

// scanLogQuery 只应用过滤条件，不做分页，计数因此能看到完整匹配集
func (s *gormStore) scanLogQuery(ctx context.Context, filter *ScanLogFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&scanLogModel{})

	if filter == nil {
		return query
	}

	if filter.CredentialID != "" {
		query = query.Where("credential_id = ?", filter.CredentialID)
	}
	if filter.AgentID != "" {
		query = query.Where("agent_id = ?", filter.AgentID)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}
	if filter.Mode != "" {
		query = query.Where("mode = ?", filter.Mode)
	}
	if filter.StartTime != nil {
		query = query.Where("timestamp >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("timestamp <= ?", *filter.EndTime)
	}

	return query
}

func (s *gormStore) QueryScanLogs(ctx context.Context, filter *ScanLogFilter) ([]*ScanLogEntry, error) {
	query := s.scanLogQuery(ctx, filter)

	limit := defaultQueryLimit
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var models []scanLogModel
	if err := query.Order("timestamp DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query scan logs")
	}

	entries := make([]*ScanLogEntry, 0, len(models))
	for i := range models {
		m := models[i]
		entries = append(entries, &ScanLogEntry{
			CredentialID: m.CredentialID,
			AgentID:      m.AgentID,
			Timestamp:    m.Timestamp,
			Outcome:      m.Outcome,
			Mode:         m.Mode,
			Message:      m.Message,
		})
	}

	return entries, nil
}

func (s *gormStore) CountScanLogs(ctx context.Context, filter *ScanLogFilter) (int64, error) {
	var count int64
	if err := s.scanLogQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count scan logs")
	}

	return count, nil
}
