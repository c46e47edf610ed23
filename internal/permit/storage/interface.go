package storage

import (
	"context"
	"time"

	"github.com/odariane19-ui/permiscard/internal/permit/record"
)

// Store 定义权威端持久化接口
// 涵盖许可记录与扫描审计记录，同时充当在线核验的记录源（record.Source）
type Store interface {
	record.Source

	// 许可记录操作
	SavePermit(ctx context.Context, rec *record.Record) error
	GetPermit(ctx context.Context, recordID string) (*record.Record, error)
	ListPermits(ctx context.Context, filter *PermitFilter) ([]*record.Record, error)
	AttachCredential(ctx context.Context, recordID string, cred *record.IssuedCredential) error

	// 扫描日志操作
	SaveScanLog(ctx context.Context, entry *ScanLogEntry) error
	QueryScanLogs(ctx context.Context, filter *ScanLogFilter) ([]*ScanLogEntry, error)
	CountScanLogs(ctx context.Context, filter *ScanLogFilter) (int64, error)
}

// PermitFilter 许可列表过滤器
type PermitFilter struct {
	Zone   string
	Type   string
	Limit  int
	Offset int
}

// ScanLogFilter 扫描日志查询过滤器
type ScanLogFilter struct {
	StartTime    *time.Time
	EndTime      *time.Time
	CredentialID string
	AgentID      string
	Outcome      string
	Mode         string
	Limit        int
	Offset       int
}
