package audit

import (
	"context"
	"sync"
)

// Spool 核验端断连时的事件暂存队列
// 由同步方负责将队列回传权威端
type Spool struct {
	mu     sync.Mutex
	events []*ScanEvent
}

// NewSpool 创建空的暂存队列
func NewSpool() *Spool {
	return &Spool{}
}

// LogScan 实现 Logger 接口，将事件入队本地
func (s *Spool) LogScan(_ context.Context, event *ScanEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *event
	s.events = append(s.events, &copied)

	return nil
}

// Len 返回队列中的事件数
func (s *Spool) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

// Drain 按序将队列事件交给 sink，成功的移出队列
// 首个错误即停止，剩余事件保留，可安全重试
func (s *Spool) Drain(ctx context.Context, sink Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.events) > 0 {
		if err := sink.LogScan(ctx, s.events[0]); err != nil {
			return err
		}
		s.events = s.events[1:]
	}

	return nil
}
