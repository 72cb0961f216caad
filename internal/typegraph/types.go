// Package typegraph models the declared types of a JVM program and the introspection capability the
// keep-name engine uses to walk them.
package typegraph

import (
	"strings"
)

type ElementKind int

const (
	PackageElement ElementKind = iota
	ClassElement
)

func (k ElementKind) String() string {
	switch k {
	case PackageElement:
		return "package"
	case ClassElement:
		return "class"
	default:
		return "unknown"
	}
}

// Element is a package or a declared class/interface.
type Element struct {
	Kind ElementKind
	// Name is the simple name of a class, or the full dotted name of a package.
	Name string
	// Enclosing is the package or class this element is declared in. Nil for packages.
	Enclosing *Element
	// TypeParams are the names of the declared type variables, eg. [K, V] for Map<K, V>.
	TypeParams []string
	// Superclass is the superclass reference as written, or nil for interfaces and the root type.
	Superclass *Type
	Interface  bool
}

// String returns the canonical source name of the element, eg. "p.Outer.Inner".
func (e *Element) String() string {
	if e.Kind == PackageElement || e.Enclosing == nil {
		return e.Name
	}
	outer := e.Enclosing.String()
	if outer == "" {
		return e.Name
	}
	return outer + "." + e.Name
}

// Package returns the package the element is declared in, or nil.
func (e *Element) Package() *Element {
	for el := e; el != nil; el = el.Enclosing {
		if el.Kind == PackageElement {
			return el
		}
	}
	return nil
}

type TypeKind int

const (
	DeclaredType TypeKind = iota
	PrimitiveType
	VoidType
	TypeVariable
	WildcardType
	ArrayType
)

func (k TypeKind) String() string {
	switch k {
	case DeclaredType:
		return "declared"
	case PrimitiveType:
		return "primitive"
	case VoidType:
		return "void"
	case TypeVariable:
		return "typevar"
	case WildcardType:
		return "wildcard"
	case ArrayType:
		return "array"
	default:
		return "unknown"
	}
}

type BoundKind int

const (
	Unbounded BoundKind = iota
	ExtendsBound
	SuperBound
)

// Type is a possibly generic type reference.
type Type struct {
	Kind TypeKind
	// Name is the keyword of a primitive or the name of a type variable.
	Name string
	// Element is the declared class for DeclaredType.
	Element *Element
	// Args are the type arguments of a DeclaredType.
	Args []*Type
	// Component is the element type of an ArrayType.
	Component *Type
	// Bound is the bound of a WildcardType, nil when unbounded.
	Bound     *Type
	BoundKind BoundKind
}

var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// IsPrimitive returns true if name is a primitive type keyword.
func IsPrimitive(name string) bool { return primitives[name] }

// Declared creates a reference to a declared class.
func Declared(element *Element, args ...*Type) *Type {
	return &Type{Kind: DeclaredType, Element: element, Args: args}
}

func Primitive(name string) *Type { return &Type{Kind: PrimitiveType, Name: name} }
func Void() *Type                 { return &Type{Kind: VoidType, Name: "void"} }
func TypeVar(name string) *Type   { return &Type{Kind: TypeVariable, Name: name} }
func ArrayOf(component *Type) *Type {
	return &Type{Kind: ArrayType, Component: component}
}

// Wildcard creates a "?" type argument. A nil bound means unbounded.
func Wildcard(kind BoundKind, bound *Type) *Type {
	if bound == nil {
		kind = Unbounded
	}
	return &Type{Kind: WildcardType, Bound: bound, BoundKind: kind}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case DeclaredType:
		if len(t.Args) == 0 {
			return t.Element.String()
		}
		args := make([]string, 0, len(t.Args))
		for _, arg := range t.Args {
			args = append(args, arg.String())
		}
		return t.Element.String() + "<" + strings.Join(args, ", ") + ">"
	case ArrayType:
		return t.Component.String() + "[]"
	case WildcardType:
		switch t.BoundKind {
		case ExtendsBound:
			return "? extends " + t.Bound.String()
		case SuperBound:
			return "? super " + t.Bound.String()
		default:
			return "?"
		}
	default:
		return t.Name
	}
}

// Introspector answers questions about types and elements.
//
// It stands in for a compiler's element/type utilities so the keep-name engine never depends on a
// concrete toolchain.
type Introspector interface {
	// CanonicalElement returns the declared class a type refers to, or nil if the type is not a
	// declared type.
	CanonicalElement(t *Type) *Element
	// GenericArguments returns the nested types to descend into: type arguments of declared types,
	// the component of arrays and the bound of wildcards.
	GenericArguments(t *Type) []*Type
	// SuperclassOf returns the superclass of a declared type with its type arguments substituted,
	// or nil if there is none.
	SuperclassOf(t *Type) *Type
	// EnclosingScope returns the package or class an element is declared in.
	EnclosingScope(e *Element) *Element
	// DeclaredType returns the generic declaration of a class, eg. Store<V> for class Store<V>.
	DeclaredType(e *Element) *Type
	// ModuleInjects returns the explicit list of injectable types declared by a module. ok is false
	// when the module does not declare one.
	ModuleInjects(module *Element) (types []*Type, ok bool)
}
