package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestSealRoundTrip(t *testing.T) {
	s, err := NewSealer(testKey)
	require.NoError(t, err)

	sealed, err := s.Seal("donor@example.org", "donation-1")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "donor@example.org")

	got, err := s.Open(sealed, "donation-1")
	require.NoError(t, err)
	assert.Equal(t, "donor@example.org", got)
}

func TestOpenRejectsOtherRecord(t *testing.T) {
	s, err := NewSealer(testKey)
	require.NoError(t, err)

	sealed, err := s.Seal("donor@example.org", "donation-1")
	require.NoError(t, err)

	_, err = s.Open(sealed, "donation-2")
	require.Error(t, err)
	_, err = s.Open(sealed[:4], "donation-1")
	require.Error(t, err)
}

func TestNewSealerKeyLength(t *testing.T) {
	_, err := NewSealer("short")
	require.Error(t, err)
}
