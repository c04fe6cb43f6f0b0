package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutGetDelete(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	key := NewKey("avatar.png")
	url, err := s.Put(context.Background(), key, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(s.dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	// A second delete of the same key is a no-op.
	assert.NoError(t, s.Delete(context.Background(), key))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	root := t.TempDir()
	uploadDir := filepath.Join(root, "uploads")
	s, err := NewLocalStore(uploadDir, "/uploads")
	require.NoError(t, err)

	// A file next to the upload directory must be unreachable through the
	// store, whatever the key looks like.
	secret := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("keep"), 0o600))

	for _, key := range []string{
		"../secret.txt",
		"2026/../../secret.txt",
		"..",
		"",
		".",
	} {
		assert.ErrorIs(t, s.Delete(context.Background(), key), ErrKeyOutsideRoot, "key %q", key)
		_, err := s.Put(context.Background(), key, "text/plain", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrKeyOutsideRoot, "key %q", key)
	}

	data, err := os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
