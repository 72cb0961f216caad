package manifest

import (
	"slices"
	"strings"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/keepnames/internal/annotationparser"
	"github.com/alecthomas/keepnames/internal/typegraph"
)

// scope resolves type names as seen from inside a class.
type scope struct {
	graph    *typegraph.Graph
	class    *typegraph.Element
	typeVars []string
}

func (s *scope) withTypeVars(params []string) *scope {
	if len(params) == 0 {
		return s
	}
	typeVars := slices.Clone(s.typeVars)
	for _, param := range params {
		name, _, _ := strings.Cut(strings.TrimSpace(param), " ")
		typeVars = append(typeVars, name)
	}
	return &scope{graph: s.graph, class: s.class, typeVars: typeVars}
}

func (s *scope) resolveString(text string) (*typegraph.Type, error) {
	expr, err := annotationparser.ParseType(text)
	if err != nil {
		return nil, err
	}
	return s.resolve(expr)
}

func (s *scope) resolve(expr *annotationparser.TypeExpr) (*typegraph.Type, error) {
	if wildcard := expr.Wildcard; wildcard != nil {
		if wildcard.Type == nil {
			return typegraph.Wildcard(typegraph.Unbounded, nil), nil
		}
		bound, err := s.resolve(wildcard.Type)
		if err != nil {
			return nil, err
		}
		kind := typegraph.ExtendsBound
		if wildcard.Bound == "super" {
			kind = typegraph.SuperBound
		}
		return typegraph.Wildcard(kind, bound), nil
	}

	named := expr.Named
	name := strings.ReplaceAll(named.QualifiedName(), "$", ".")
	args := make([]*typegraph.Type, 0, len(named.Args))
	for _, arg := range named.Args {
		typ, err := s.resolve(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, typ)
	}

	var typ *typegraph.Type
	if len(named.Name) == 1 {
		switch {
		case slices.Contains(s.typeVars, name):
			typ = typegraph.TypeVar(name)
		case name == "void":
			if len(named.Dims) > 0 {
				return nil, errors.Errorf("%s: void cannot be an array", expr)
			}
			typ = typegraph.Void()
		case typegraph.IsPrimitive(name):
			typ = typegraph.Primitive(name)
		}
		if typ != nil && len(args) > 0 {
			return nil, errors.Errorf("%s: %s cannot have type arguments", expr, name)
		}
	}
	if typ == nil {
		typ = typegraph.Declared(s.lookup(name), args...)
	}
	for range named.Dims {
		typ = typegraph.ArrayOf(typ)
	}
	return typ, nil
}

// lookup a class by name, searching classes nested in the enclosing class chain, the current
// package, fully qualified names, then java.lang. Names that are not declared anywhere are
// registered as external classes.
func (s *scope) lookup(name string) *typegraph.Element {
	for c := s.class; c != nil && c.Kind == typegraph.ClassElement; c = c.Enclosing {
		if class, ok := s.graph.Lookup(c.String() + "." + name); ok {
			return class
		}
	}
	if pkg := s.class.Package(); pkg != nil && pkg.Name != "" {
		if class, ok := s.graph.Lookup(pkg.Name + "." + name); ok {
			return class
		}
	}
	if class, ok := s.graph.Lookup(name); ok {
		return class
	}
	if !strings.Contains(name, ".") {
		return s.graph.External("java.lang." + name)
	}
	return s.graph.External(name)
}
