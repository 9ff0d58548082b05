// Package scope implements the scope-chain collaborator spec.md §3/§6
// describes as external to the normalizer core: for any identifier
// reference it answers isGlobal, isLocal, isDeclaredGlobal, enumerates
// possibly active with objects, and returns the declaration binding.
//
// Grounded on the teacher's internal/semantic.SymbolTable (a chained,
// enclosing-scope symbol table), generalized from DWScript's flat
// case-insensitive table into the exact lexical-closure chain an
// ESTree-shaped language needs, plus the With link spec.md adds on top.
package scope

import "github.com/cwbudde/go-esnorm/internal/ast"

// Binding is a single name bound by a parameter list or a catch clause.
type Binding struct {
	Name string
	Node ast.Attributed
}

// Decl is one hoisted declaration: a FunctionDeclaration or a
// VariableDeclarator, as spec.md §6 describes for the declaration
// collector's output.
type Decl struct {
	Name string
	Node ast.Attributed
}

// Scope is the capability set spec.md §3 lists for any link in the chain.
type Scope interface {
	// IsGlobal reports whether name resolves through the dynamic global
	// object: no enclosing Function or Catch scope declares it.
	IsGlobal(name string) bool

	// IsDeclaredGlobal reports whether name is one of the program's own
	// top-level hoisted declarations (a global we know statically exists,
	// as opposed to one only ever referenced implicitly).
	IsDeclaredGlobal(name string) bool

	// IsLocal reports whether name is bound by an enclosing Function
	// parameter/declaration or Catch parameter before the chain reaches
	// the program's top level.
	IsLocal(name string) bool

	// Lookup returns the binding node for name (a VariableDeclarator,
	// FunctionDeclaration, or parameter/catch Binding.Node), if any.
	Lookup(name string) (ast.Attributed, bool)

	// PossibleWithBindings returns the with-object temporary names that
	// might intercept a reference to name, innermost last.
	PossibleWithBindings(name string) []string

	// Decls returns the hoisted declarations of the nearest enclosing
	// function or program.
	Decls() []*Decl
}

type global struct {
	byName map[string]*Decl
	decls  []*Decl
}

// NewGlobal builds the program's top-level scope. decls are the
// program's own hoisted var/function declarations.
func NewGlobal(decls []*Decl) Scope {
	g := &global{byName: make(map[string]*Decl, len(decls)), decls: decls}
	for _, d := range decls {
		g.byName[d.Name] = d
	}
	return g
}

func (g *global) IsGlobal(name string) bool         { return true }
func (g *global) IsDeclaredGlobal(name string) bool { _, ok := g.byName[name]; return ok }
func (g *global) IsLocal(name string) bool          { return false }
func (g *global) Lookup(name string) (ast.Attributed, bool) {
	d, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return d.Node, true
}
func (g *global) PossibleWithBindings(name string) []string { return nil }
func (g *global) Decls() []*Decl                            { return g.decls }

type function struct {
	parent Scope
	byName map[string]*Binding
	decls  []*Decl
}

// NewFunction builds a scope for a function body: params is the
// function's parameter list, decls its own hoisted var/function
// declarations (never descending into nested function bodies).
func NewFunction(parent Scope, params []*Binding, decls []*Decl) Scope {
	f := &function{parent: parent, byName: make(map[string]*Binding, len(params)+len(decls)), decls: decls}
	for _, p := range params {
		f.byName[p.Name] = p
	}
	for _, d := range decls {
		if _, exists := f.byName[d.Name]; !exists {
			f.byName[d.Name] = &Binding{Name: d.Name, Node: d.Node}
		}
	}
	return f
}

func (f *function) IsGlobal(name string) bool {
	if _, ok := f.byName[name]; ok {
		return false
	}
	return f.parent.IsGlobal(name)
}

func (f *function) IsDeclaredGlobal(name string) bool {
	if _, ok := f.byName[name]; ok {
		return false
	}
	return f.parent.IsDeclaredGlobal(name)
}

func (f *function) IsLocal(name string) bool {
	if _, ok := f.byName[name]; ok {
		return true
	}
	return f.parent.IsLocal(name)
}

func (f *function) Lookup(name string) (ast.Attributed, bool) {
	if b, ok := f.byName[name]; ok {
		return b.Node, true
	}
	return f.parent.Lookup(name)
}

func (f *function) PossibleWithBindings(name string) []string {
	if _, ok := f.byName[name]; ok {
		return nil
	}
	return f.parent.PossibleWithBindings(name)
}

func (f *function) Decls() []*Decl { return f.decls }

type catch struct {
	parent Scope
	param  *Binding // nil for a parameterless catch
}

// NewCatch builds the scope inside a catch clause body: param is the
// caught-exception binding, or nil if the clause has none.
func NewCatch(parent Scope, param *Binding) Scope {
	return &catch{parent: parent, param: param}
}

func (c *catch) IsGlobal(name string) bool {
	if c.param != nil && c.param.Name == name {
		return false
	}
	return c.parent.IsGlobal(name)
}

func (c *catch) IsDeclaredGlobal(name string) bool {
	if c.param != nil && c.param.Name == name {
		return false
	}
	return c.parent.IsDeclaredGlobal(name)
}

func (c *catch) IsLocal(name string) bool {
	if c.param != nil && c.param.Name == name {
		return true
	}
	return c.parent.IsLocal(name)
}

func (c *catch) Lookup(name string) (ast.Attributed, bool) {
	if c.param != nil && c.param.Name == name {
		return c.param.Node, true
	}
	return c.parent.Lookup(name)
}

func (c *catch) PossibleWithBindings(name string) []string {
	if c.param != nil && c.param.Name == name {
		return nil
	}
	return c.parent.PossibleWithBindings(name)
}

func (c *catch) Decls() []*Decl { return c.parent.Decls() }

type withScope struct {
	parent   Scope
	tempName string
}

// NewWith builds the scope inside a with body: tempName is the fresh
// temporary holding the with-object's value.
func NewWith(parent Scope, tempName string) Scope {
	return &withScope{parent: parent, tempName: tempName}
}

func (w *withScope) IsGlobal(name string) bool         { return w.parent.IsGlobal(name) }
func (w *withScope) IsDeclaredGlobal(name string) bool { return w.parent.IsDeclaredGlobal(name) }
func (w *withScope) IsLocal(name string) bool          { return w.parent.IsLocal(name) }
func (w *withScope) Lookup(name string) (ast.Attributed, bool) { return w.parent.Lookup(name) }

func (w *withScope) PossibleWithBindings(name string) []string {
	return append(w.parent.PossibleWithBindings(name), w.tempName)
}

func (w *withScope) Decls() []*Decl { return w.parent.Decls() }
