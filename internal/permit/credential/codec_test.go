package credential_test

import (
	"testing"

	"github.com/odariane19-ui/permiscard/internal/permit/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	recordIDs := []string{
		"R1",
		"7e4c9a20-6f0b-4f5e-9f52-1c86a11a2dbb",
		"zone:A:serial:0042", // separator inside the opaque id
		" spaced id ",
	}

	for _, recordID := range recordIDs {
		encoded, err := credential.Encode(recordID, 1714060800123, 1)
		require.NoError(t, err, recordID)

		payload, err := credential.Decode(encoded)
		require.NoError(t, err, recordID)
		assert.Equal(t, recordID, payload.RecordID)
		assert.Equal(t, int64(1714060800123), payload.IssuedAt)
		assert.Equal(t, 1, payload.SchemaVersion)
	}
}

func TestEncodeByteStability(t *testing.T) {
	a, err := credential.Encode("R1", 1000, 2)
	require.NoError(t, err)
	b, err := credential.Encode("R1", 1000, 2)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "2:1000:R1", string(a))
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	_, err := credential.Encode("", 1000, 1)
	require.ErrorIs(t, err, credential.ErrEmptyRecordID)

	_, err = credential.Encode("R1", 1000, 0)
	require.ErrorIs(t, err, credential.ErrInvalidVersion)

	_, err = credential.Encode("R1", 1000, -3)
	require.ErrorIs(t, err, credential.ErrInvalidVersion)
}

func TestDecodeRejectsStructuralViolations(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single field", "1"},
		{"two fields", "1:1000"},
		{"non-numeric version", "x:1000:R1"},
		{"non-numeric timestamp", "1:soon:R1"},
		{"zero version", "0:1000:R1"},
		{"negative version", "-1:1000:R1"},
		{"empty record id", "1:1000:"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := credential.Decode([]byte(tc.input))
			require.ErrorIs(t, err, credential.ErrMalformedPayload)
		})
	}
}

func TestDecodeAcceptsUnexpectedButValidValues(t *testing.T) {
	// a future schema version is not a structural violation
	payload, err := credential.Decode([]byte("99:123:R1"))
	require.NoError(t, err)
	assert.Equal(t, 99, payload.SchemaVersion)

	// negative timestamps are structurally valid
	payload, err = credential.Decode([]byte("1:-5:R1"))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), payload.IssuedAt)
}
