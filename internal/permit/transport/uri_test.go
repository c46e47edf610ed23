package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odariane19-ui/permiscard/internal/permit/transport"
)

func TestURIRoundTrip(t *testing.T) {
	uri := transport.ToURI("MjoxMDAwOlIx", "c2lnbmF0dXJl")
	assert.Equal(t, "permit://verify?d=MjoxMDAwOlIx&s=c2lnbmF0dXJl", uri)

	payload, sig, err := transport.FromURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "MjoxMDAwOlIx", payload)
	assert.Equal(t, "c2lnbmF0dXJl", sig)
}

func TestFromURIRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain text", "not a uri at all"},
		{"wrong scheme", "https://verify?d=a&s=b"},
		{"wrong host", "permit://issue?d=a&s=b"},
		{"missing payload", "permit://verify?s=b"},
		{"missing signature", "permit://verify?d=a"},
		{"empty payload", "permit://verify?d=&s=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := transport.FromURI(tt.raw)
			require.ErrorIs(t, err, transport.ErrInvalidURI)
		})
	}
}

func TestEncodePNG(t *testing.T) {
	png, err := transport.EncodePNG(transport.ToURI("MjoxMDAwOlIx", "c2ln"), 256)
	require.NoError(t, err)

	// PNG magic bytes
	require.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, png[:8])
}
