// Package scope implements the in-memory representation of lexical scopes
// and their bindings.
//
// Per Design Notes §9, the cyclic Var<->Scope relationship is modeled as an
// arena: a Tree owns a flat slice of *Scope, each Scope holding a parent
// *index* rather than a parent pointer, and holding its own ordered table
// of *Var. This sidesteps the need for either package to hold the other in
// a way that would make the pair collectible only together, and makes
// scope lifetime explicit: scopes live exactly as long as their owning
// Tree.
package scope

import (
	"github.com/dolthub/swiss"
	"github.com/mna/jsuniq/ast"
)

// Kind tags what a Scope represents.
type Kind uint8

// The scope kinds.
const (
	Global Kind = iota
	Module
	Function
	FunctionBlock
	Block
	For
	Catch
	ClassBody
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Module:
		return "module"
	case Function:
		return "function"
	case FunctionBlock:
		return "function-block"
	case Block:
		return "block"
	case For:
		return "for"
	case Catch:
		return "catch"
	case ClassBody:
		return "class-body"
	default:
		return "unknown"
	}
}

// DeclKind tags the syntactic form that introduced a Var.
type DeclKind uint8

// The declaration kinds.
const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
	DeclClass
	DeclFunction
	DeclParam
	DeclCatch
	DeclImport
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclClass:
		return "class"
	case DeclFunction:
		return "function"
	case DeclParam:
		return "param"
	case DeclCatch:
		return "catch"
	case DeclImport:
		return "import"
	default:
		return "unknown"
	}
}

// Var is a single binding: a named slot introduced by a declaration.
type Var struct {
	Scope    *Scope
	Name     string
	Decl     *ast.Node // the NAME (or STRING_KEY/IMPORT_STAR) node that introduces the binding
	Kind     DeclKind
	IsParam  bool
	InputID  int
	hasInput bool

	// Seq is this Var's position in the whole-tree pre-order, depth-first,
	// left-to-right declaration order, independent of which scope happens
	// to own it. The inverter sorts by Seq when renumbering a base-name
	// group.
	Seq int

	// IsArguments marks the implicit `arguments` binding every Function
	// scope carries. It is never renamed and never counted for uniqueness.
	IsArguments bool
}

// HasInputID reports whether an input file id was recorded for this Var.
func (v *Var) HasInputID() bool { return v.hasInput }

// Scope is a single lexical scope.
type Scope struct {
	tree     *Tree
	id       int
	parentID int // -1 for the root (Global) scope
	Kind     Kind
	RootNode *ast.Node

	// Dirty marks a scope built while the builder was inside a change root
	// (scopebuilder.Config.ChangeRoots). A downstream incremental renamer
	// can use it to skip untouched scopes; the builder itself always
	// builds the whole tree regardless.
	Dirty bool

	order []string
	table *swiss.Map[string, *Var]
}

// ID returns s's index in its Tree, stable for the Tree's lifetime - the
// dump-scopes command uses it to print parent/child links without
// exposing Scope's arena internals.
func (s *Scope) ID() int { return s.id }

// Parent returns s's enclosing scope, or nil if s is the Global scope.
// Every non-Global scope has a non-null parent.
func (s *Scope) Parent() *Scope {
	if s.parentID < 0 {
		return nil
	}
	return s.tree.scopes[s.parentID]
}

// IsGlobal reports whether s is the Global scope.
func (s *Scope) IsGlobal() bool { return s.Kind == Global }

// IsFunctionScope reports whether s holds a function's parameters (and,
// for a named function expression, its own bleeding name).
func (s *Scope) IsFunctionScope() bool { return s.Kind == Function }

// IsFunctionBlockScope reports whether s is a function's body block scope.
func (s *Scope) IsFunctionBlockScope() bool { return s.Kind == FunctionBlock }

// IsCatchScope reports whether s is a catch clause's scope, holding its
// parameter and the catch body's own block-scoped declarations.
func (s *Scope) IsCatchScope() bool { return s.Kind == Catch }

// IsBlockScope reports whether s is an ordinary (non-function,
// non-catch) lexical block scope: Block or For.
func (s *Scope) IsBlockScope() bool {
	return s.Kind == Block || s.Kind == For
}

// GetOwnSlot returns the Var bound to name directly in s, not searching
// enclosing scopes. Callers must consult GetOwnSlot before Declare to
// detect redeclaration - Declare itself never does.
func (s *Scope) GetOwnSlot(name string) (*Var, bool) {
	return s.table.Get(name)
}

// GetSlot walks s and its enclosing scopes, returning the first Var bound
// to name.
func (s *Scope) GetSlot(name string) (*Var, bool) {
	for cur := s; cur != nil; cur = cur.Parent() {
		if v, ok := cur.table.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Declare binds name to a new Var in s and returns it. It does not check
// for an existing binding of the same name (see GetOwnSlot); a second call
// with the same name silently replaces the first in the lookup table
// while leaving it in place in Names, which is never relied upon - every
// caller in this module consults GetOwnSlot first.
func (s *Scope) Declare(name string, decl *ast.Node, kind DeclKind, inputID int, hasInput bool) *Var {
	v := &Var{
		Scope:    s,
		Name:     name,
		Decl:     decl,
		Kind:     kind,
		InputID:  inputID,
		hasInput: hasInput,
		Seq:      s.tree.nextSeq(),
	}
	if _, exists := s.table.Get(name); !exists {
		s.order = append(s.order, name)
	}
	s.table.Put(name, v)
	return v
}

// Names returns the bound names in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Vars returns the scope's bindings in declaration order.
func (s *Scope) Vars() []*Var {
	out := make([]*Var, 0, len(s.order))
	for _, name := range s.order {
		if v, ok := s.table.Get(name); ok {
			out = append(out, v)
		}
	}
	return out
}
