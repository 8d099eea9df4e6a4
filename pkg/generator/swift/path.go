package swift

import "regexp"

var placeholder = regexp.MustCompile(`\{([^/{}]+)\}`)

// CompilePath replaces every {name} token of path with render(name), left to right.
// Everything else is copied unchanged. Names are not checked against any parameter list.
func CompilePath(path string, render func(name string) string) string {
	return placeholder.ReplaceAllStringFunc(path, func(token string) string {
		return render(token[1 : len(token)-1])
	})
}

// PlaceholderNames lists the names of path's tokens in order of appearance.
func PlaceholderNames(path string) []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(path, -1) {
		names = append(names, m[1])
	}
	return names
}

// interpolate renders a token as a Swift interpolation of the path function's
// description closure applied to the bound parameter.
func interpolate(name string) string {
	return `\(description(` + identifier(name) + `))`
}
