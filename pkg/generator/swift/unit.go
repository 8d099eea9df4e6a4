package swift

import "strings"

// FragmentKind labels a piece of emitted source.
type FragmentKind string

const (
	FragmentOpen           FragmentKind = "open"
	FragmentOperationCases FragmentKind = "operation-cases"
	FragmentPathFunction   FragmentKind = "path-function"
	FragmentEndpoints      FragmentKind = "endpoints"
	FragmentComponent      FragmentKind = "component"
	FragmentClose          FragmentKind = "close"
)

// Fragment is a rendered declaration. Name is the component name for component
// fragments and empty otherwise.
type Fragment struct {
	Kind FragmentKind
	Name string
	Text string
}

// Unit is an append-only, ordered list of fragments making up one output file.
type Unit struct {
	fragments []Fragment
}

// Append adds f after every fragment appended so far.
func (u *Unit) Append(f Fragment) {
	u.fragments = append(u.fragments, f)
}

// Fragments returns a copy of the fragments in emission order.
func (u *Unit) Fragments() []Fragment {
	out := make([]Fragment, len(u.fragments))
	copy(out, u.fragments)
	return out
}

// Render concatenates the fragments.
func (u *Unit) Render() string {
	var b strings.Builder
	for _, f := range u.fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}
