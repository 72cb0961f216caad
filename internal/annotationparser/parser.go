// Package annotationparser implements a parser for Java type references and annotations as they
// appear in keepnames manifests.
package annotationparser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	typeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{"ClassLiteral", `\.class\b`},
		{"String", `"(\\.|[^"])*"`},
		{"Number", `[-+]?[0-9]+(\.[0-9]+)?[lLfFdD]?`},
		{"Ident", `[\p{L}_$][\p{L}\p{N}_$]*`},
		{"Punct", `[@(){}<>\[\],.=?]`},
		{"Whitespace", `\s+`},
	})
	typeParser = participle.MustBuild[TypeExpr](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	annotationParser = participle.MustBuild[Annotation](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
)

// TypeExpr is a type reference, eg. "java.util.Map<String, ? extends List<Foo>>[]".
type TypeExpr struct {
	Wildcard *WildcardExpr `parser:"  @@"`
	Named    *NamedExpr    `parser:"| @@"`
}

type WildcardExpr struct {
	Mark  string    `parser:"@'?'"`
	Bound string    `parser:"(@('extends' | 'super')"`
	Type  *TypeExpr `parser:" @@)?"`
}

type NamedExpr struct {
	Name []string    `parser:"@Ident ('.' @Ident)*"`
	Args []*TypeExpr `parser:"('<' @@ (',' @@)* '>')?"`
	// Dims has one entry per array dimension.
	Dims []string `parser:"('[' @']')*"`
}

// QualifiedName returns the dotted name of the type, without arguments or dimensions.
func (n *NamedExpr) QualifiedName() string { return strings.Join(n.Name, ".") }

func (t *TypeExpr) String() string {
	if t.Wildcard != nil {
		if t.Wildcard.Type == nil {
			return "?"
		}
		return "? " + t.Wildcard.Bound + " " + t.Wildcard.Type.String()
	}
	out := t.Named.QualifiedName()
	if len(t.Named.Args) > 0 {
		args := make([]string, 0, len(t.Named.Args))
		for _, arg := range t.Named.Args {
			args = append(args, arg.String())
		}
		out += "<" + strings.Join(args, ", ") + ">"
	}
	return out + strings.Repeat("[]", len(t.Named.Dims))
}

// Annotation is a Java annotation, eg. `@Module(injects = {Foo.class, Bar.class}, library = true)`.
type Annotation struct {
	Name     []string `parser:"'@' @Ident ('.' @Ident)*"`
	Elements []*Pair  `parser:"('(' (@@ (',' @@)*)? ')')?"`
}

// Pair is an annotation element. Name is empty for the single unnamed "value" element.
type Pair struct {
	Name  string `parser:"(@Ident '=')?"`
	Value *Value `parser:"@@"`
}

// Value of an annotation element.
//
// Class literals, enum constants and boolean literals are all parsed as type references since only
// type lists are interpreted.
type Value struct {
	List   *List      `parser:"  @@"`
	Str    *string    `parser:"| @String"`
	Number *string    `parser:"| @Number"`
	Type   *ClassExpr `parser:"| @@"`
}

type List struct {
	Values []*Value `parser:"'{' (@@ (',' @@)*)? '}'"`
}

type ClassExpr struct {
	Type    *TypeExpr `parser:"@@"`
	Literal bool      `parser:"@ClassLiteral?"`
}

// QualifiedName returns the dotted name of the annotation type.
func (a *Annotation) QualifiedName() string { return strings.Join(a.Name, ".") }

// SimpleName returns the last segment of the annotation name.
func (a *Annotation) SimpleName() string { return a.Name[len(a.Name)-1] }

// Is returns true if the annotation matches name, compared either as a qualified name or a simple
// name. eg. "@Inject" and "@javax.inject.Inject" both match "javax.inject.Inject".
func (a *Annotation) Is(name string) bool {
	if a.QualifiedName() == name {
		return true
	}
	if len(a.Name) > 1 {
		return false
	}
	simple := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		simple = name[i+1:]
	}
	return a.SimpleName() == simple
}

// Element returns the value of a named element. The unnamed element is called "value".
func (a *Annotation) Element(name string) (*Value, bool) {
	for _, pair := range a.Elements {
		pairName := pair.Name
		if pairName == "" {
			pairName = "value"
		}
		if pairName == name {
			return pair.Value, true
		}
	}
	return nil, false
}

// Types returns the type references of a type-list element.
//
// A single value is treated as a one element list. ok is false if the element is absent.
func (a *Annotation) Types(name string) (types []*TypeExpr, ok bool, err error) {
	value, ok := a.Element(name)
	if !ok {
		return nil, false, nil
	}
	values := []*Value{value}
	if value.List != nil {
		values = value.List.Values
	}
	for _, value := range values {
		if value.Type == nil {
			return nil, true, errors.Errorf("@%s: element %q must contain only types", a.QualifiedName(), name)
		}
		types = append(types, value.Type.Type)
	}
	return types, true, nil
}

func (a *Annotation) String() string {
	out := "@" + a.QualifiedName()
	if len(a.Elements) == 0 {
		return out
	}
	pairs := make([]string, 0, len(a.Elements))
	for _, pair := range a.Elements {
		if pair.Name == "" {
			pairs = append(pairs, pair.Value.String())
		} else {
			pairs = append(pairs, pair.Name+" = "+pair.Value.String())
		}
	}
	return out + "(" + strings.Join(pairs, ", ") + ")"
}

func (v *Value) String() string {
	switch {
	case v.List != nil:
		values := make([]string, 0, len(v.List.Values))
		for _, value := range v.List.Values {
			values = append(values, value.String())
		}
		return "{" + strings.Join(values, ", ") + "}"
	case v.Str != nil:
		return strconv.Quote(*v.Str)
	case v.Number != nil:
		return *v.Number
	default:
		if v.Type.Literal {
			return v.Type.Type.String() + ".class"
		}
		return v.Type.Type.String()
	}
}

// ParseType parses a type reference.
func ParseType(text string) (*TypeExpr, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Errorf("empty type")
	}
	typ, err := typeParser.ParseString("", text)
	if err != nil {
		return nil, errors.Errorf("failed to parse type %q: %w", text, err)
	}
	return typ, nil
}

// ParseAnnotation parses a single annotation.
func ParseAnnotation(text string) (*Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Errorf("empty annotation")
	}
	annotation, err := annotationParser.ParseString("", text)
	if err != nil {
		return nil, errors.Errorf("failed to parse annotation %q: %w", text, err)
	}
	return annotation, nil
}
