package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	issuedAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(issuedAt, "0f8c2a3e-invoice")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedIssuedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err, "Decoding should not return an error")
	assert.True(t, issuedAt.Equal(decodedIssuedAt), "Issued at should match after decode")
	assert.Equal(t, "0f8c2a3e-invoice", decodedID)

	// non-UTC input is normalised
	local := time.Date(2023, 5, 15, 16, 30, 45, 0, time.FixedZone("CEST", 2*3600))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
	assert.Equal(t, time.UTC, decodedLocal.Location())
}

func TestDecodeTokenInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing separator", base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))},
		{"empty id", base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|"))},
		{"bad time", base64.StdEncoding.EncodeToString([]byte("yesterday|abc"))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeToken(tc.token)
			assert.Error(t, err)
		})
	}
}

func TestAfter(t *testing.T) {
	t1 := time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Minute)

	assert.True(t, After(t0, "b", t1, "a"), "older rows come after")
	assert.False(t, After(t1, "a", t0, "b"), "newer rows come before")
	assert.True(t, After(t1, "a", t1, "b"), "ties break on id descending")
	assert.False(t, After(t1, "b", t1, "b"), "the token row itself is excluded")
}
