package swift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompilePath(t *testing.T) {
	upper := func(name string) string { return "<" + strings.ToUpper(name) + ">" }

	tests := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"/pets", "/pets"},
		{"/pets/{petId}", "/pets/<PETID>"},
		{"/a/{x}/b/{y}", "/a/<X>/b/<Y>"},
		{"/files/{name}.{ext}", "/files/<NAME>.<EXT>"},
		{"/broken/{a/b}", "/broken/{a/b}"},
		{"/open/{", "/open/{"},
		{"/{}", "/{}"},
	}

	for _, test := range tests {
		result := CompilePath(test.path, upper)
		if result != test.expected {
			t.Errorf("CompilePath(%q) = %q, expected %q", test.path, result, test.expected)
		}
	}
}

func TestCompilePath_RendersInOrder(t *testing.T) {
	var seen []string
	result := CompilePath("/a/{x}/b/{y}", func(name string) string {
		seen = append(seen, name)
		return "_"
	})

	assert.Equal(t, []string{"x", "y"}, seen)
	assert.Equal(t, "/a/_/b/_", result)
}

func TestCompilePath_SwiftInterpolation(t *testing.T) {
	assert.Equal(t, `/pets/\(description(petId))`, CompilePath("/pets/{petId}", interpolate))
	assert.Equal(t, "/items/\\(description(`default`))", CompilePath("/items/{default}", interpolate))
}

func TestPlaceholderNames(t *testing.T) {
	assert.Nil(t, PlaceholderNames("/pets"))
	assert.Equal(t, []string{"owner", "petId"}, PlaceholderNames("/owners/{owner}/pets/{petId}"))
}
