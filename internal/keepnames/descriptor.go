package keepnames

import (
	"strings"

	"github.com/alecthomas/keepnames/internal/typegraph"
)

// Descriptor wraps a single type reference.
type Descriptor struct {
	in  typegraph.Introspector
	typ *typegraph.Type
}

func Describe(in typegraph.Introspector, typ *typegraph.Type) Descriptor {
	return Descriptor{in: in, typ: typ}
}

func (d Descriptor) Type() *typegraph.Type { return d.typ }

// Element returns the declared class the type refers to, or nil.
func (d Descriptor) Element() *typegraph.Element {
	return d.in.CanonicalElement(d.typ)
}

// NeedsPreserving returns true if the type denotes a declared class or interface.
func (d Descriptor) NeedsPreserving() bool {
	if d.typ == nil || d.typ.Kind != typegraph.DeclaredType {
		return false
	}
	element := d.Element()
	return element != nil && element.Kind == typegraph.ClassElement
}

// KeepName of the type, or "" if it does not need preserving.
func (d Descriptor) KeepName() string {
	if !d.NeedsPreserving() {
		return ""
	}
	return KeepName(d.in, d.Element())
}

// Arguments returns the generic arguments of the type as descriptors.
func (d Descriptor) Arguments() []Descriptor {
	args := d.in.GenericArguments(d.typ)
	out := make([]Descriptor, 0, len(args))
	for _, arg := range args {
		out = append(out, Describe(d.in, arg))
	}
	return out
}

// key identifies the type by keep name and rendered arguments, so Store<User> and Store<Order> are
// distinct while two references to Store<User> are not.
func (d Descriptor) key() string {
	w := &strings.Builder{}
	d.writeKey(w)
	return w.String()
}

func (d Descriptor) writeKey(w *strings.Builder) {
	if d.NeedsPreserving() {
		w.WriteString(d.KeepName())
	} else if d.typ != nil {
		w.WriteString(d.typ.Kind.String())
		w.WriteString(":")
		w.WriteString(d.typ.Name)
	}
	args := d.Arguments()
	if len(args) == 0 {
		return
	}
	w.WriteString("<")
	for i, arg := range args {
		if i > 0 {
			w.WriteString(",")
		}
		arg.writeKey(w)
	}
	w.WriteString(">")
}
