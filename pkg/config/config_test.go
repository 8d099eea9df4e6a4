package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swiftgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spec: https://example.com/openapi.yaml
validate: true
targets:
  - name: PetStore
    output: Sources/PetStore/PetStore.swift
    indent: "  "
    includeTags: ["pets"]
    excludeTags: ["internal"]
    strictPaths: true
    postCommand: ["swiftformat", "PetStore.swift"]
  - type: swift
    output: /tmp/Other.swift
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/openapi.yaml", cfg.Spec)
	assert.True(t, cfg.Validate)
	require.Len(t, cfg.Targets, 2)

	first := cfg.Targets[0]
	assert.Equal(t, DefaultType, first.Type)
	assert.Equal(t, "PetStore", first.Name)
	assert.True(t, filepath.IsAbs(first.Output))
	assert.Equal(t, "  ", first.Indent)
	assert.Equal(t, []string{"pets"}, first.IncludeTags)
	assert.Equal(t, []string{"internal"}, first.ExcludeTags)
	assert.True(t, first.StrictPaths)
	assert.Equal(t, []string{"swiftformat", "PetStore.swift"}, first.GetPostCommand())
	assert.Empty(t, first.GetPreCommand())
	assert.Equal(t, filepath.Dir(first.Output), first.OutDir())

	assert.Equal(t, "/tmp/Other.swift", cfg.Targets[1].Output)
	assert.Equal(t, "/tmp/Other.swift", cfg.Targets[1].Label())
}

func TestParse_RelativeSpecBecomesAbsolute(t *testing.T) {
	cfg, err := Parse([]byte("spec: api/openapi.yaml\ntargets:\n  - output: out.swift\n"))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "api", "openapi.yaml"), cfg.Spec)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"missing spec", "targets:\n  - output: a.swift\n", "config.spec is required"},
		{"no targets", "spec: a.yaml\n", "at least one target"},
		{"missing output", "spec: a.yaml\ntargets:\n  - name: A\n", "targets[0] missing required field (output)"},
		{"malformed", "spec: [", "parse config"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
