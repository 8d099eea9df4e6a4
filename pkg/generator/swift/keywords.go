package swift

import "strings"

// keywords that cannot appear bare as a case, field or parameter name.
var keywords = map[string]struct{}{
	"associatedtype": {}, "class": {}, "deinit": {}, "enum": {}, "extension": {},
	"fileprivate": {}, "func": {}, "import": {}, "init": {}, "inout": {}, "internal": {},
	"let": {}, "open": {}, "operator": {}, "private": {}, "precedencegroup": {},
	"protocol": {}, "public": {}, "rethrows": {}, "static": {}, "struct": {},
	"subscript": {}, "typealias": {}, "var": {}, "break": {}, "case": {}, "catch": {},
	"continue": {}, "default": {}, "defer": {}, "do": {}, "else": {}, "fallthrough": {},
	"for": {}, "guard": {}, "if": {}, "in": {}, "repeat": {}, "return": {}, "throw": {},
	"switch": {}, "where": {}, "while": {}, "as": {}, "false": {}, "is": {}, "nil": {},
	"super": {}, "throws": {}, "true": {}, "try": {}, "self": {}, "Self": {}, "Any": {},
}

// identifier back-quotes name when it collides with a reserved word.
func identifier(name string) string {
	if _, reserved := keywords[name]; reserved {
		return "`" + name + "`"
	}
	return name
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// swiftString renders s as a Swift string literal.
func swiftString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}
