// Package convention provides the injected "coding convention" capability:
// a predicate telling the Inline renamer's removeConst option which names
// are considered compile-time constants by convention, so their const-ness
// annotation can be stripped.
//
// Modeled as a small capability interface rather than a class hierarchy,
// in keeping with passing bare predicate functions for isolated questions
// like this instead of a "Convention" object with many methods.
package convention

import "strings"

// Convention answers coding-convention questions the renamer consults.
type Convention interface {
	// IsConstantName reports whether name is, by convention, a constant
	// (and therefore a candidate for removeConst to un-const).
	IsConstantName(name string) bool
}

// Closure is the default Convention, matching the ALL-CAPS-with-
// underscores/digits heuristic real Closure Compiler coding conventions
// use to recognize a constant by name alone (e.g. `MAX_SIZE`, `_FOO`).
// A name must contain at least one letter and no lowercase letters.
type Closure struct{}

// IsConstantName implements Convention.
func (Closure) IsConstantName(name string) bool {
	name = strings.TrimPrefix(name, "_")
	if name == "" {
		return false
	}
	sawLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			sawLetter = true
		case r >= 'a' && r <= 'z':
			return false
		case r == '_' || (r >= '0' && r <= '9'):
			// allowed separators/digits
		default:
			return false
		}
	}
	return sawLetter
}

// Func adapts a plain function to the Convention interface.
type Func func(name string) bool

// IsConstantName implements Convention.
func (f Func) IsConstantName(name string) bool { return f(name) }

var _ Convention = Closure{}
var _ Convention = Func(nil)
