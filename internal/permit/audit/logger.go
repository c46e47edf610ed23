package audit

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/odariane19-ui/permiscard/internal/permit/storage"
)

// Logger 审计日志接口
type Logger interface {
	LogScan(ctx context.Context, event *ScanEvent) error
}

// loggerFunc 将函数适配为 Logger 接口
type loggerFunc func(ctx context.Context, event *ScanEvent) error

func (f loggerFunc) LogScan(ctx context.Context, event *ScanEvent) error {
	return f(ctx, event)
}

// logger 审计日志实现
type logger struct {
	store storage.Store
	spool *Spool
}

// NewLogger 创建新的审计日志，直写权威存储
// 存储失败直接返回给调用方
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewLogger(store storage.Store) Logger {
	return &logger{
		store: store,
	}
}

// NewSpoolingLogger 创建带暂存队列的审计日志
// 存储不可达时事件入队，下次写入成功时按序冲刷，断连期间扫描仍可审计
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewSpoolingLogger(store storage.Store, spool *Spool) Logger {
	return &logger{
		store: store,
		spool: spool,
	}
}

// LogScan 持久化一条扫描事件
// 时间戳未设置时补上当前时间
func (l *logger) LogScan(ctx context.Context, event *ScanEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	// 先冲刷积压事件，保证审计记录有序
	if l.spool != nil && l.spool.Len() > 0 {
		if err := l.spool.Drain(ctx, loggerFunc(l.write)); err != nil {
			return l.spool.LogScan(ctx, event)
		}
	}

	if err := l.write(ctx, event); err != nil {
		if l.spool != nil {
			return l.spool.LogScan(ctx, event)
		}

		return err
	}

	return nil
}

func (l *logger) write(ctx context.Context, event *ScanEvent) error {
	entry := &storage.ScanLogEntry{
		Timestamp: event.Timestamp,
		Outcome:   event.Outcome,
		Mode:      event.Mode,
		Message:   event.Message,
	}
	if event.CredentialID != "" {
		entry.CredentialID = &event.CredentialID
	}
	if event.AgentID != "" {
		entry.AgentID = &event.AgentID
	}

	if err := l.store.SaveScanLog(ctx, entry); err != nil {
		return errors.Wrap(err, "failed to save scan log")
	}

	return nil
}
