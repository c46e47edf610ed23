package signer_test

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/odariane19-ui/permiscard/internal/permit/keys"
	"github.com/odariane19-ui/permiscard/internal/permit/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProducesVerifiablePayload(t *testing.T) {
	ctx := context.Background()
	kc, err := keys.Generate()
	require.NoError(t, err)

	issuedAt := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	svc := signer.NewService(kc, time2.NewMockClock(issuedAt))

	cred, err := svc.Issue(ctx, "R1")
	require.NoError(t, err)

	payloadBytes, err := base64.RawURLEncoding.DecodeString(cred.PayloadEncoded)
	require.NoError(t, err)
	sigBytes, err := base64.RawURLEncoding.DecodeString(cred.Signature)
	require.NoError(t, err)

	assert.True(t, ed25519.Verify(kc.Public(), payloadBytes, sigBytes))

	payload, err := credential.Decode(payloadBytes)
	require.NoError(t, err)
	assert.Equal(t, "R1", payload.RecordID)
	assert.Equal(t, issuedAt.UnixMilli(), payload.IssuedAt)
	assert.Equal(t, credential.CurrentSchemaVersion, payload.SchemaVersion)
}

func TestIssueTwiceDiffersByTimestamp(t *testing.T) {
	ctx := context.Background()
	kc, err := keys.Generate()
	require.NoError(t, err)

	t0 := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	first, err := signer.NewService(kc, time2.NewMockClock(t0)).Issue(ctx, "R1")
	require.NoError(t, err)
	second, err := signer.NewService(kc, time2.NewMockClock(t0.Add(time.Second))).Issue(ctx, "R1")
	require.NoError(t, err)

	assert.NotEqual(t, first.PayloadEncoded, second.PayloadEncoded)
	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestIssueRejectsEmptyRecordID(t *testing.T) {
	kc, err := keys.Generate()
	require.NoError(t, err)
	svc := signer.NewService(kc, time2.NewMockClock(time.Now()))

	_, err = svc.Issue(context.Background(), "")
	require.ErrorIs(t, err, credential.ErrEmptyRecordID)
}
