package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sources", "API.swift")

	wrote, err := WriteFile(path, []byte("enum API {\n}\n"), WriteOptions{})
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteFile(path, []byte("enum API {\n}\n"), WriteOptions{})
	require.NoError(t, err)
	assert.False(t, wrote, "identical content is not rewritten")

	wrote, err = WriteFile(path, []byte("enum Other {\n}\n"), WriteOptions{})
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "enum Other {\n}\n", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFile_Check(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "API.swift")

	_, err := WriteFile(path, []byte("a"), WriteOptions{Check: true})
	require.ErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, err.Error(), "does not exist")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "check mode never writes")

	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	wrote, err := WriteFile(path, []byte("a"), WriteOptions{Check: true})
	require.NoError(t, err)
	assert.False(t, wrote)

	_, err = WriteFile(path, []byte("b"), WriteOptions{Check: true})
	require.ErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, err.Error(), "differs")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}
