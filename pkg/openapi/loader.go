package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	NetworkError    ErrorCode = "NetworkError"
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
)

// SpecError is a structured error with optional location and JSON pointer.
type SpecError struct {
	Code        ErrorCode
	Message     string
	Location    string // file path or URL
	JSONPointer string // e.g. "#/paths/~1pets/get"
	Cause       error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

// Settings configures how remote documents are fetched.
type Settings struct {
	HTTPTimeout time.Duration
	// MaxRetries bounds attempts for transient failures (>=500, 429, network errors).
	MaxRetries  int
	BackoffBase time.Duration
	Client      *http.Client
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
	return Settings{
		HTTPTimeout: 10 * time.Second,
		MaxRetries:  3,
		BackoffBase: 200 * time.Millisecond,
	}
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithMaxRetries(n int) Option { return func(s *Settings) { s.MaxRetries = n } }
func WithBackoffBase(d time.Duration) Option { return func(s *Settings) { s.BackoffBase = d } }
func WithHTTPClient(c *http.Client) Option { return func(s *Settings) { s.Client = c } }

// LoadDocument reads the raw bytes of a document from a local file path or an HTTP(S) URL.
func LoadDocument(ctx context.Context, input string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &SpecError{Code: InputError, Message: "spec: input is empty"}
	}

	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
		}
		data, err := fetchWithRetry(ctx, input, settings)
		if err != nil {
			return nil, &SpecError{Code: NetworkError, Message: fmt.Sprintf("fetch %s: %v", input, err), Location: input, Cause: err}
		}
		return data, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, &SpecError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", input, err), Location: input, Cause: err}
	}
	return data, nil
}

// LoadSpecification loads and decodes a document into the generator's model.
func LoadSpecification(ctx context.Context, input string, opts ...Option) (*ir.Specification, error) {
	data, err := LoadDocument(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	spec, err := Decode(data)
	if err != nil {
		var se *SpecError
		if errors.As(err, &se) && se.Location == "" {
			se.Location = input
		}
		return nil, err
	}
	return spec, nil
}

// ValidateDocument checks data against the OpenAPI 3 schema using kin-openapi.
func ValidateDocument(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return &SpecError{Code: ParseError, Message: fmt.Sprintf("parse spec: %v", err), Cause: err}
	}
	if err := doc.Validate(ctx); err != nil {
		return &SpecError{Code: ValidationError, Message: fmt.Sprintf("invalid spec: %v", err), Cause: err}
	}
	return nil
}

// Validate loads input and validates it.
func Validate(ctx context.Context, input string, opts ...Option) error {
	data, err := LoadDocument(ctx, input, opts...)
	if err != nil {
		return err
	}
	if err := ValidateDocument(ctx, data); err != nil {
		var se *SpecError
		if errors.As(err, &se) {
			se.Location = input
		}
		return err
	}
	return nil
}

func fetchWithRetry(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
	client := settings.Client
	if client == nil {
		client = &http.Client{Timeout: settings.HTTPTimeout}
	}
	backoff := settings.BackoffBase
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	attempts := settings.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		data, retry, err := fetchOnce(ctx, client, rawURL)
		if err == nil {
			return data, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	if lastErr == nil {
		lastErr = errors.New("fetch failed")
	}
	return nil, lastErr
}

// fetchOnce performs a single GET. retry reports whether the failure is transient.
func fetchOnce(ctx context.Context, client *http.Client, rawURL string) (data []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		data, err := io.ReadAll(resp.Body)
		return data, false, err
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("transient http error %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, false, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
