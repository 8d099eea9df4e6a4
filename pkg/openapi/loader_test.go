package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func petstorePath() string {
	return filepath.Join("..", "..", "testdata", "petstore.yaml")
}

func TestLoadDocument_File(t *testing.T) {
	data, err := LoadDocument(context.Background(), petstorePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "operationId: listPets")
}

func TestLoadDocument_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  "},
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"unsupported scheme", "ftp://example.com/spec.yaml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadDocument(context.Background(), test.input)
			var se *SpecError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, InputError, se.Code)
		})
	}
}

func TestLoadDocument_HTTP(t *testing.T) {
	body, err := os.ReadFile(petstorePath())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	spec, err := LoadSpecification(context.Background(), srv.URL+"/openapi.yaml")
	require.NoError(t, err)
	assert.Len(t, spec.Operations(), 3)
}

func TestLoadDocument_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("openapi: 3.0.0\n"))
	}))
	defer srv.Close()

	data, err := LoadDocument(context.Background(), srv.URL, WithBackoffBase(time.Millisecond), WithMaxRetries(3))
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0\n", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestLoadDocument_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := LoadDocument(context.Background(), srv.URL, WithBackoffBase(time.Millisecond))
	var se *SpecError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, NetworkError, se.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestValidateDocument(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Validate(ctx, petstorePath()))

	err := ValidateDocument(ctx, []byte("openapi: 3.0.0\npaths: {}\n"))
	var se *SpecError
	require.True(t, errors.As(err, &se), "got %v", err)
}

func TestLoadSpecification_DecodeErrorCarriesLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swagger: '2.0'\n"), 0o644))

	_, err := LoadSpecification(context.Background(), path)
	var se *SpecError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ParseError, se.Code)
	assert.Equal(t, path, se.Location)
}
