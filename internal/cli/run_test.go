package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/openapi-swift/pkg/generator"
)

var petstore = filepath.Join("..", "..", "testdata", "petstore.yaml")

func parse(t *testing.T, args ...string) GenerateParams {
	t.Helper()
	var p GenerateParams
	fs := GenerateFlags(&p)
	require.NoError(t, fs.Parse(args))
	return p
}

func golden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "PetStore.swift"))
	require.NoError(t, err)
	return string(data)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	spec, err := filepath.Abs(petstore)
	require.NoError(t, err)
	path := filepath.Join(dir, "swiftgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spec: "+spec+"\n"+body), 0o644))
	return path
}

func TestRunGenerate_Stdout(t *testing.T) {
	p := parse(t, "--input", petstore, "--name", "PetStore")
	var stdout bytes.Buffer
	p.Stdout = &stdout

	require.NoError(t, RunGenerate(context.Background(), p))
	assert.Equal(t, golden(t), stdout.String())
}

func TestRunGenerate_TabAndTags(t *testing.T) {
	p := parse(t, "--input", petstore, "--name", "PetStore", "--tab", "\t", "--exclude-tags", "pets")
	var stdout bytes.Buffer
	p.Stdout = &stdout

	require.NoError(t, RunGenerate(context.Background(), p))
	out := stdout.String()
	assert.Contains(t, out, "\n\tenum Operation {\n")
	assert.NotContains(t, out, "listPets")
	assert.Contains(t, out, "\tstruct Pet: Codable {\n")
}

func TestRunGenerate_OutAndCheck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "PetStore.swift")

	p := parse(t, "--input", petstore, "--name", "PetStore", "--out", out)
	require.NoError(t, RunGenerate(context.Background(), p))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, golden(t), string(data))

	p = parse(t, "--input", petstore, "--name", "PetStore", "--out", out, "--check")
	require.NoError(t, RunGenerate(context.Background(), p))

	p = parse(t, "--input", petstore, "--name", "Renamed", "--out", out, "--check")
	assert.ErrorIs(t, RunGenerate(context.Background(), p), generator.ErrOutOfDate)
}

func TestRunGenerate_Verbose(t *testing.T) {
	p := parse(t, "--input", petstore, "-v")
	var stdout, stderr bytes.Buffer
	p.Stdout = &stdout
	p.Stderr = &stderr

	require.NoError(t, RunGenerate(context.Background(), p))
	assert.True(t, strings.HasPrefix(stdout.String(), "enum SwaggerPetstore {\n"))
	assert.Contains(t, stderr.String(), "swiftgen: loaded")
}

func TestRunGenerate_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"nothing", nil},
		{"target without config", []string{"--input", "x.yaml", "--target", "A"}},
		{"check without out", []string{"--input", "x.yaml", "--check"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := RunGenerate(context.Background(), parse(t, test.args...))
			assert.ErrorIs(t, err, ErrUsage)
		})
	}
}

func TestRunGenerate_ConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "API.swift")
	path := writeConfig(t, dir, "targets:\n  - name: FromConfig\n    output: "+out+"\n")

	p := parse(t, "-c", path, "--name", "PetStore")
	require.NoError(t, RunGenerate(context.Background(), p))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, golden(t), string(data))

	other := filepath.Join(dir, "Other.swift")
	p = parse(t, "-c", path, "--out", other, "--tab", "  ")
	require.NoError(t, RunGenerate(context.Background(), p))

	data, err = os.ReadFile(other)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "enum FromConfig {\n  enum Operation {\n"))
}

func TestRunGenerate_ConfigTargets(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "targets:\n"+
		"  - name: A\n    output: "+filepath.Join(dir, "A.swift")+"\n"+
		"  - name: B\n    output: "+filepath.Join(dir, "B.swift")+"\n")

	err := RunGenerate(context.Background(), parse(t, "-c", path, "--out", filepath.Join(dir, "C.swift")))
	assert.ErrorIs(t, err, ErrUsage)

	require.NoError(t, RunGenerate(context.Background(), parse(t, "-c", path, "--target", "A")))
	assert.FileExists(t, filepath.Join(dir, "A.swift"))
	assert.NoFileExists(t, filepath.Join(dir, "B.swift"))
}

func TestRunValidate(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, RunValidate(context.Background(), petstore, &stdout))
	assert.Equal(t, petstore+" is valid\n", stdout.String())

	assert.ErrorIs(t, RunValidate(context.Background(), "", &stdout), ErrUsage)
	assert.Error(t, RunValidate(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), &stdout))
}
