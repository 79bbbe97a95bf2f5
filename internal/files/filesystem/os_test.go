package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := NewOSFileSystem()
	target := filepath.Join(dir, "out.csv")

	require.NoError(t, os.WriteFile(target, []byte("a much longer previous body"), 0644))

	w, err := p.Create(target)
	require.NoError(t, err)
	_, err = io.WriteString(w, "a,b\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := p.Open(target)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	entries, err := p.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestOSFileSystem_CreateInMissingDirFails(t *testing.T) {
	p := NewOSFileSystem()
	_, err := p.Create(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestOSFileSystem_ReadDirMissing(t *testing.T) {
	_, err := NewOSFileSystem().ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
