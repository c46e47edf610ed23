package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/odariane19-ui/permiscard/internal/permit/audit"
	"github.com/odariane19-ui/permiscard/internal/permit/record"
	"github.com/odariane19-ui/permiscard/internal/permit/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockScanLogStore only implements the scan log part of storage.Store.
type mockScanLogStore struct {
	entries []*storage.ScanLogEntry
	fail    bool
}

func (m *mockScanLogStore) SaveScanLog(_ context.Context, entry *storage.ScanLogEntry) error {
	if m.fail {
		return errors.New("store unavailable")
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockScanLogStore) QueryScanLogs(_ context.Context, _ *storage.ScanLogFilter) ([]*storage.ScanLogEntry, error) {
	return m.entries, nil
}

func (m *mockScanLogStore) CountScanLogs(_ context.Context, _ *storage.ScanLogFilter) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *mockScanLogStore) SavePermit(_ context.Context, _ *record.Record) error { return nil }

func (m *mockScanLogStore) GetPermit(_ context.Context, _ string) (*record.Record, error) {
	return nil, record.ErrNotFound
}

func (m *mockScanLogStore) FetchRecord(_ context.Context, _ string) (*record.Record, error) {
	return nil, record.ErrNotFound
}

func (m *mockScanLogStore) ListPermits(_ context.Context, _ *storage.PermitFilter) ([]*record.Record, error) {
	return nil, nil
}

func (m *mockScanLogStore) AttachCredential(_ context.Context, _ string, _ *record.IssuedCredential) error {
	return nil
}

func TestLoggerStampsTimestamp(t *testing.T) {
	ctx := context.Background()
	store := &mockScanLogStore{}
	logger := audit.NewLogger(store)

	err := logger.LogScan(ctx, &audit.ScanEvent{
		CredentialID: "R1",
		AgentID:      "agent-7",
		Outcome:      audit.OutcomeValid,
		Mode:         audit.ModeOnline,
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.False(t, entry.Timestamp.IsZero())
	require.NotNil(t, entry.CredentialID)
	assert.Equal(t, "R1", *entry.CredentialID)
	require.NotNil(t, entry.AgentID)
	assert.Equal(t, "agent-7", *entry.AgentID)
}

func TestLoggerKeepsAbsentIdentifiers(t *testing.T) {
	ctx := context.Background()
	store := &mockScanLogStore{}
	logger := audit.NewLogger(store)

	err := logger.LogScan(ctx, &audit.ScanEvent{
		Timestamp: time.Now(),
		Outcome:   audit.OutcomeInvalid,
		Mode:      audit.ModeOffline,
		Message:   "malformed credential encoding",
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Nil(t, store.entries[0].CredentialID)
	assert.Nil(t, store.entries[0].AgentID)
}

func TestSpoolDrain(t *testing.T) {
	ctx := context.Background()
	spool := audit.NewSpool()

	for i := 0; i < 3; i++ {
		require.NoError(t, spool.LogScan(ctx, &audit.ScanEvent{
			Timestamp: time.Now(),
			Outcome:   audit.OutcomeValid,
			Mode:      audit.ModeOffline,
		}))
	}
	assert.Equal(t, 3, spool.Len())

	store := &mockScanLogStore{fail: true}
	sink := audit.NewLogger(store)

	// the first failure leaves everything queued
	require.Error(t, spool.Drain(ctx, sink))
	assert.Equal(t, 3, spool.Len())

	store.fail = false
	require.NoError(t, spool.Drain(ctx, sink))
	assert.Equal(t, 0, spool.Len())
	assert.Len(t, store.entries, 3)
}

func TestSpoolingLoggerBridgesOutage(t *testing.T) {
	ctx := context.Background()
	store := &mockScanLogStore{fail: true}
	logger := audit.NewSpoolingLogger(store, audit.NewSpool())

	// the store is down; events queue instead of failing the scan
	require.NoError(t, logger.LogScan(ctx, &audit.ScanEvent{
		CredentialID: "R1",
		Outcome:      audit.OutcomeValid,
		Mode:         audit.ModeOffline,
	}))
	require.NoError(t, logger.LogScan(ctx, &audit.ScanEvent{
		CredentialID: "R2",
		Outcome:      audit.OutcomeInvalid,
		Mode:         audit.ModeOffline,
	}))
	assert.Empty(t, store.entries)

	// connectivity returns; the next write flushes the queue in order
	store.fail = false
	require.NoError(t, logger.LogScan(ctx, &audit.ScanEvent{
		CredentialID: "R3",
		Outcome:      audit.OutcomeValid,
		Mode:         audit.ModeOnline,
	}))

	require.Len(t, store.entries, 3)
	assert.Equal(t, "R1", *store.entries[0].CredentialID)
	assert.Equal(t, "R2", *store.entries[1].CredentialID)
	assert.Equal(t, "R3", *store.entries[2].CredentialID)
}
