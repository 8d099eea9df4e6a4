package generator

import (
	"fmt"
	"regexp"

	"github.com/blimu-dev/openapi-swift/pkg/ir"
)

// FilterOperations keeps the operations whose tags pass the include/exclude patterns.
// Path and operation order is preserved and every component schema is kept.
func FilterOperations(spec *ir.Specification, includeTags, excludeTags []string) (*ir.Specification, error) {
	include, exclude, err := compileTagFilters(includeTags, excludeTags)
	if err != nil {
		return nil, err
	}
	if len(include) == 0 && len(exclude) == 0 {
		return spec, nil
	}

	filtered := *spec
	filtered.Paths = make([]ir.PathItem, 0, len(spec.Paths))
	for _, item := range spec.Paths {
		ops := make([]ir.Operation, 0, len(item.Operations))
		for _, op := range item.Operations {
			if shouldIncludeOperation(op.EffectiveTags(), include, exclude) {
				ops = append(ops, op)
			}
		}
		// Only keep the path if it still has at least one operation
		if len(ops) > 0 {
			filtered.Paths = append(filtered.Paths, ir.PathItem{Path: item.Path, Operations: ops})
		}
	}
	return &filtered, nil
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc, err := compilePatterns("includeTags", include)
	if err != nil {
		return nil, nil, err
	}
	exc, err := compilePatterns("excludeTags", exclude)
	if err != nil {
		return nil, nil, err
	}
	return inc, exc, nil
}

func compilePatterns(field string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", field, p, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// shouldIncludeOperation reports whether any tag matches an include pattern
// (or there are none) and no tag matches an exclude pattern.
func shouldIncludeOperation(tags []string, include, exclude []*regexp.Regexp) bool {
	if len(include) > 0 && !anyMatch(tags, include) {
		return false
	}
	return !anyMatch(tags, exclude)
}

func anyMatch(tags []string, patterns []*regexp.Regexp) bool {
	for _, tag := range tags {
		for _, r := range patterns {
			if r.MatchString(tag) {
				return true
			}
		}
	}
	return false
}
