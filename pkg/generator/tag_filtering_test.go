package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		includeTags []string
		excludeTags []string
		expected    bool
	}{
		{"no filters include all", []string{"users", "internal"}, nil, nil, true},
		{"include matches first tag", []string{"users", "internal"}, []string{"users"}, nil, true},
		{"include matches second tag", []string{"internal", "users"}, []string{"users"}, nil, true},
		{"include matches none", []string{"internal", "admin"}, []string{"users"}, nil, false},
		{"exclude matches any tag", []string{"users", "internal"}, nil, []string{"internal"}, false},
		{"exclude wins over include", []string{"users", "internal"}, []string{"users"}, []string{"internal"}, false},
		{"include matches and exclude does not", []string{"users", "public"}, []string{"users"}, []string{"internal"}, true},
		{"regex exclude", []string{"users_v1", "internal_api"}, []string{"^users_.*"}, []string{".*_api$"}, false},
		{"regex include", []string{"users_v1", "public"}, []string{"^users_.*"}, nil, true},
		{"any include pattern", []string{"orders", "billing"}, []string{"users", "orders"}, nil, true},
		{"misc matches untagged", []string{"misc"}, []string{"^misc$"}, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			include, exclude, err := compileTagFilters(test.includeTags, test.excludeTags)
			require.NoError(t, err)

			assert.Equal(t, test.expected, shouldIncludeOperation(test.tags, include, exclude))
		})
	}
}

func TestCompileTagFilters_InvalidPattern(t *testing.T) {
	_, _, err := compileTagFilters([]string{"("}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid includeTags pattern "("`)

	_, _, err = compileTagFilters(nil, []string{"[a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid excludeTags pattern")
}

func taggedSpec() *ir.Specification {
	return &ir.Specification{
		Title: "Store",
		Paths: []ir.PathItem{
			{Path: "/pets", Operations: []ir.Operation{
				{ID: "listPets", Method: "get", Path: "/pets", Tags: []string{"pets"}},
				{ID: "createPets", Method: "post", Path: "/pets", Tags: []string{"pets", "admin"}},
			}},
			{Path: "/health", Operations: []ir.Operation{
				{ID: "health", Method: "get", Path: "/health"},
			}},
			{Path: "/orders", Operations: []ir.Operation{
				{ID: "listOrders", Method: "get", Path: "/orders", Tags: []string{"orders"}},
			}},
		},
		Schemas: []ir.NamedSchema{{Name: "Pet", Schema: &ir.Object{}}},
	}
}

func operationIDs(spec *ir.Specification) []string {
	var ids []string
	for _, op := range spec.Operations() {
		ids = append(ids, op.ID)
	}
	return ids
}

func TestFilterOperations(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		exclude  []string
		expected []string
	}{
		{"no filters", nil, nil, []string{"listPets", "createPets", "health", "listOrders"}},
		{"include pets", []string{"pets"}, nil, []string{"listPets", "createPets"}},
		{"exclude admin", nil, []string{"admin"}, []string{"listPets", "health", "listOrders"}},
		{"untagged is misc", []string{"misc", "orders"}, nil, []string{"health", "listOrders"}},
		{"nothing left", []string{"billing"}, nil, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			spec := taggedSpec()
			filtered, err := FilterOperations(spec, test.include, test.exclude)
			require.NoError(t, err)

			assert.Equal(t, test.expected, operationIDs(filtered))
			assert.Equal(t, spec.Schemas, filtered.Schemas)
			assert.Len(t, spec.Operations(), 4, "input must not be modified")
		})
	}
}

func TestFilterOperations_DropsEmptyPaths(t *testing.T) {
	filtered, err := FilterOperations(taggedSpec(), []string{"orders"}, nil)
	require.NoError(t, err)
	require.Len(t, filtered.Paths, 1)
	assert.Equal(t, "/orders", filtered.Paths[0].Path)
}
