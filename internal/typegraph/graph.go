package typegraph

import (
	"strings"
	"unicode"

	"github.com/alecthomas/errors"
)

// Graph is an in-memory type graph implementing [Introspector].
type Graph struct {
	packages map[string]*Element
	classes  map[string]*Element
	injects  map[*Element][]*Type
}

var _ Introspector = (*Graph)(nil)

func New() *Graph {
	return &Graph{
		packages: map[string]*Element{},
		classes:  map[string]*Element{},
		injects:  map[*Element][]*Type{},
	}
}

// Package returns the package element for name, creating it if necessary. The empty name is the
// default package.
func (g *Graph) Package(name string) *Element {
	if pkg, ok := g.packages[name]; ok {
		return pkg
	}
	pkg := &Element{Kind: PackageElement, Name: name}
	g.packages[name] = pkg
	return pkg
}

// Declare a class inside a package or another class.
func (g *Graph) Declare(enclosing *Element, name string, typeParams ...string) (*Element, error) {
	if enclosing == nil {
		return nil, errors.Errorf("class %s has no enclosing package or class", name)
	}
	if name == "" || strings.ContainsAny(name, ".<>") {
		return nil, errors.Errorf("invalid class name %q", name)
	}
	class := &Element{Kind: ClassElement, Name: name, Enclosing: enclosing, TypeParams: typeParams}
	key := class.String()
	if _, exists := g.classes[key]; exists {
		return nil, errors.Errorf("duplicate declaration of class %s", key)
	}
	g.classes[key] = class
	return class, nil
}

// Lookup a class by its canonical name, eg. "p.Outer.Inner".
func (g *Graph) Lookup(name string) (*Element, bool) {
	class, ok := g.classes[name]
	return class, ok
}

// External returns the class for a canonical name that has no declaration in the graph, registering
// it on first use.
//
// Package segments are the leading segments that do not start with an upper case letter, so
// "java.util.Map.Entry" is the nested class Map.Entry in package java.util. If no segment starts
// with an upper case letter the last segment is the class.
func (g *Graph) External(name string) *Element {
	if class, ok := g.classes[name]; ok {
		return class
	}
	segments := strings.Split(name, ".")
	split := len(segments) - 1
	for i, segment := range segments {
		if r := []rune(segment); len(r) > 0 && unicode.IsUpper(r[0]) {
			split = i
			break
		}
	}
	enclosing := g.Package(strings.Join(segments[:split], "."))
	for _, segment := range segments[split:] {
		key := (&Element{Kind: ClassElement, Name: segment, Enclosing: enclosing}).String()
		class, ok := g.classes[key]
		if !ok {
			class = &Element{Kind: ClassElement, Name: segment, Enclosing: enclosing}
			g.classes[key] = class
		}
		enclosing = class
	}
	return enclosing
}

// SetModuleInjects records the explicit injectable types declared by a module.
func (g *Graph) SetModuleInjects(module *Element, types []*Type) {
	g.injects[module] = types
}

func (g *Graph) CanonicalElement(t *Type) *Element {
	if t == nil || t.Kind != DeclaredType {
		return nil
	}
	return t.Element
}

func (g *Graph) GenericArguments(t *Type) []*Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case DeclaredType:
		return t.Args
	case ArrayType:
		return []*Type{t.Component}
	case WildcardType:
		if t.Bound != nil {
			return []*Type{t.Bound}
		}
	}
	return nil
}

func (g *Graph) SuperclassOf(t *Type) *Type {
	element := g.CanonicalElement(t)
	if element == nil || element.Superclass == nil {
		return nil
	}
	// Raw references leave the superclass's type variables unbound.
	if len(t.Args) == 0 || len(t.Args) != len(element.TypeParams) {
		return element.Superclass
	}
	bindings := make(map[string]*Type, len(t.Args))
	for i, param := range element.TypeParams {
		bindings[param] = t.Args[i]
	}
	return substitute(element.Superclass, bindings)
}

func (g *Graph) EnclosingScope(e *Element) *Element {
	if e == nil {
		return nil
	}
	return e.Enclosing
}

func (g *Graph) DeclaredType(e *Element) *Type {
	args := make([]*Type, 0, len(e.TypeParams))
	for _, param := range e.TypeParams {
		args = append(args, TypeVar(param))
	}
	return Declared(e, args...)
}

func (g *Graph) ModuleInjects(module *Element) ([]*Type, bool) {
	types, ok := g.injects[module]
	if !ok || len(types) == 0 {
		return nil, false
	}
	return types, true
}

func substitute(t *Type, bindings map[string]*Type) *Type {
	switch t.Kind {
	case TypeVariable:
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
		return t
	case DeclaredType:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]*Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = substitute(arg, bindings)
		}
		return Declared(t.Element, args...)
	case ArrayType:
		return ArrayOf(substitute(t.Component, bindings))
	case WildcardType:
		if t.Bound == nil {
			return t
		}
		return Wildcard(t.BoundKind, substitute(t.Bound, bindings))
	default:
		return t
	}
}
