package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectImageKeepsContent(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0xab}, 5000)...)

	ct, r, err := DetectImage(bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDetectImageRejectsOtherTypes(t *testing.T) {
	_, _, err := DetectImage(strings.NewReader("%PDF-1.7\n1 0 obj"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, _, err = DetectImage(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestAvatarKey(t *testing.T) {
	key := AvatarKey(42, "image/png")
	assert.True(t, strings.HasPrefix(key, "avatars/42/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.NotEqual(t, key, AvatarKey(42, "image/png"))
}
