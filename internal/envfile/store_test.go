package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Read(t *testing.T) {
	store := NewFileStore()

	t.Run("returns file content", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(name, []byte("FOO=bar\n"), 0o600))

		text, err := store.Read(name)
		require.NoError(t, err)
		assert.Equal(t, "FOO=bar\n", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Read(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFileStore_Write(t *testing.T) {
	store := NewFileStore()

	t.Run("creates file with restricted permissions", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), ".env")

		require.NoError(t, store.Write(name, "FOO=bar\n"))

		info, err := os.Stat(name)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		text, err := store.Read(name)
		require.NoError(t, err)
		assert.Equal(t, "FOO=bar\n", text)
	})

	t.Run("replaces existing content", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, store.Write(name, "FOO=bar\n"))

		require.NoError(t, store.Write(name, "FOO=baz\n"))

		text, err := store.Read(name)
		require.NoError(t, err)
		assert.Equal(t, "FOO=baz\n", text)
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, store.Write(filepath.Join(dir, ".env"), "FOO=bar\n"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ".env", entries[0].Name())
	})

	t.Run("missing directory", func(t *testing.T) {
		err := store.Write(filepath.Join(t.TempDir(), "nope", ".env"), "FOO=bar\n")
		assert.Error(t, err)
	})
}

func TestCodec_FileRoundTrip(t *testing.T) {
	codec, _ := newTestCodec(t)
	store := NewFileStore()
	secret := newTestSecret(t)
	name := filepath.Join(t.TempDir(), ".env")

	require.NoError(t, store.Write(name, "FOO=bar\n\nQUX=1"))

	_, err := codec.EncryptFile(store, name, secret)
	require.NoError(t, err)

	// The file on disk no longer contains the plaintext values.
	encrypted, err := store.Read(name)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "FOO=bar")
	assert.NotContains(t, encrypted, "QUX=1")

	_, err = codec.DecryptFile(store, name, secret)
	require.NoError(t, err)

	decrypted, err := store.Read(name)
	require.NoError(t, err)
	assert.Equal(t, "FOO=bar\n\nQUX=1", decrypted)
}
