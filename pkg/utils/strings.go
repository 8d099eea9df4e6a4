package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnum   = regexp.MustCompile(`[^A-Za-z0-9]+`)
	camelSplit = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// separator is the character spaces and case boundaries are turned into before splitting.
const separator = '_'

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords splits a string into words, handling camelCase, PascalCase, snake_case, and kebab-case
func SplitWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = RemoveAccents(s)
	s = camelSplit.ReplaceAllString(s, "$1 $2")

	parts := nonAlnum.Split(s, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ToPascalCase converts a string to PascalCase. Used to derive a container name from
// a document title ("Swagger Petstore" -> "SwaggerPetstore").
func ToPascalCase(s string) string {
	parts := SplitWords(s)
	if len(parts) == 0 {
		return ""
	}

	b := strings.Builder{}
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(strings.ToLower(p[1:]))
		}
	}
	return b.String()
}

// Normalize converts an identifier (snake_case, space separated or already camelCased)
// into lower-camel form.
//
// Spaces become separators, and a separator is inserted wherever an upper-case letter
// follows a rune that is not upper-case. The first non-empty segment is lower-cased
// entirely; every later segment gets its first rune upper-cased and keeps the rest as is.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(identifier string) string {
	segments := splitSegments(strings.ReplaceAll(identifier, " ", string(separator)))

	var b strings.Builder
	first := true
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if first {
			b.WriteString(strings.ToLower(seg))
			first = false
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// splitSegments cuts s at separators and at case boundaries. Empty segments are kept
// so callers can decide to skip them.
func splitSegments(s string) []string {
	var segments []string
	var current strings.Builder
	prev := rune(-1)
	for _, r := range s {
		switch {
		case r == separator:
			segments = append(segments, current.String())
			current.Reset()
		case prev >= 0 && prev != separator && !unicode.IsUpper(prev) && unicode.IsUpper(r):
			segments = append(segments, current.String())
			current.Reset()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	return append(segments, current.String())
}
