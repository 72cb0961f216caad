package keepnames

import (
	"github.com/alecthomas/keepnames/internal/typegraph"
)

// KeepName returns the name a shrinking tool uses to identify a class.
//
// Top level classes use their package qualified name, eg. "p.Foo". Nested classes append "$" and
// their simple name to the keep name of the enclosing class, eg. "p.Outer$Inner".
func KeepName(in typegraph.Introspector, element *typegraph.Element) string {
	enclosing := in.EnclosingScope(element)
	if enclosing == nil || enclosing.Kind == typegraph.PackageElement {
		return element.String()
	}
	return KeepName(in, enclosing) + "$" + element.Name
}
