package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewDefault()

	enc, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(enc, "$argon2id$"), enc)
	// параметры профиля зашиты в саму строку
	assert.Contains(t, enc, "m=65536,t=2")

	ok, err := h.Verify("s3cret-pass", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-pass", enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashWithoutParamsFails(t *testing.T) {
	var h *Hasher
	_, err := h.Hash("x")
	require.Error(t, err)
}
