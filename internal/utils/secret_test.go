package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	s := NewSealer("app-secret")
	sealed, err := s.Seal("sk_test_abc")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "sk_test_abc")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk_test_abc", plain)

	again, err := s.Seal("sk_test_abc")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")
}

func TestSealerRejectsOtherKeyAndTruncation(t *testing.T) {
	sealed, err := NewSealer("one").Seal("value")
	require.NoError(t, err)

	_, err = NewSealer("two").Open(sealed)
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = NewSealer("one").Open(sealed[:10])
	assert.ErrorIs(t, err, ErrUnseal)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("short"))
	assert.Equal(t, "****", MaskSecret("12345678"))
	assert.Equal(t, "sk_l...wxyz", MaskSecret("sk_live_abcdefwxyz"))
}
