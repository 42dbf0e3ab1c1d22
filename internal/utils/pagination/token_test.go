package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 15, 10, 30, 0, 123456789, time.UTC)
	id := "txn-abc-123"

	token := EncodeToken(createdAt, id)
	gotTime, gotID, err := DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, _, err := DecodeToken("not-base64!!")
	assert.Error(t, err)
}

func TestDecodeTokenRejectsMissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("no separator here"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeTokenRejectsBadTimestamp(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|some-id"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}
