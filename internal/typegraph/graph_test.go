package typegraph

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDeclare(t *testing.T) {
	g := New()
	pkg := g.Package("app")
	outer, err := g.Declare(pkg, "Outer", "T")
	assert.NoError(t, err)
	inner, err := g.Declare(outer, "Inner")
	assert.NoError(t, err)
	assert.Equal(t, "app.Outer.Inner", inner.String())
	assert.Equal(t, pkg, inner.Package())

	found, ok := g.Lookup("app.Outer.Inner")
	assert.True(t, ok)
	assert.Equal(t, inner, found)

	_, err = g.Declare(pkg, "Outer")
	assert.EqualError(t, err, "duplicate declaration of class app.Outer")
	_, err = g.Declare(pkg, "List<T>")
	assert.EqualError(t, err, `invalid class name "List<T>"`)
	_, err = g.Declare(nil, "Orphan")
	assert.Error(t, err)
}

func TestDefaultPackage(t *testing.T) {
	g := New()
	class, err := g.Declare(g.Package(""), "Main")
	assert.NoError(t, err)
	assert.Equal(t, "Main", class.String())
}

func TestExternal(t *testing.T) {
	tests := []struct {
		name      string
		pkg       string
		enclosing string
	}{
		{"java.util.List", "java.util", "java.util"},
		{"java.util.Map.Entry", "java.util", "java.util.Map"},
		{"lowercase.name", "lowercase", "lowercase"},
		{"Toplevel", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			class := g.External(tt.name)
			assert.Equal(t, tt.name, class.String())
			assert.Equal(t, tt.pkg, class.Package().Name)
			assert.Equal(t, tt.enclosing, class.Enclosing.String())
			assert.Equal(t, class, g.External(tt.name))
		})
	}
}

func TestGenericArguments(t *testing.T) {
	g := New()
	list := g.External("java.util.List")
	item := Declared(g.External("app.Item"))
	assert.Equal(t, []*Type{item}, g.GenericArguments(Declared(list, item)))
	assert.Equal(t, []*Type{item}, g.GenericArguments(ArrayOf(item)))
	assert.Equal(t, []*Type{item}, g.GenericArguments(Wildcard(ExtendsBound, item)))
	assert.Zero(t, g.GenericArguments(Wildcard(Unbounded, nil)))
	assert.Zero(t, g.GenericArguments(Primitive("int")))
	assert.Zero(t, g.GenericArguments(nil))
}

func TestSuperclassSubstitution(t *testing.T) {
	g := New()
	pkg := g.Package("app")
	base, err := g.Declare(pkg, "Base", "T")
	assert.NoError(t, err)
	sub, err := g.Declare(pkg, "Sub", "U")
	assert.NoError(t, err)
	sub.Superclass = Declared(base, ArrayOf(TypeVar("U")))
	user := Declared(g.External("model.User"))

	assert.Equal(t, "app.Base<model.User[]>", g.SuperclassOf(Declared(sub, user)).String())
	assert.Equal(t, "app.Base<U[]>", g.SuperclassOf(Declared(sub)).String())
	assert.Equal(t, "app.Base<U[]>", g.SuperclassOf(g.DeclaredType(sub)).String())
	assert.Zero(t, g.SuperclassOf(Declared(base)))
	assert.Zero(t, g.SuperclassOf(Primitive("int")))
}

func TestModuleInjects(t *testing.T) {
	g := New()
	module := g.External("app.AppModule")
	_, ok := g.ModuleInjects(module)
	assert.False(t, ok)

	g.SetModuleInjects(module, []*Type{})
	_, ok = g.ModuleInjects(module)
	assert.False(t, ok)

	client := Declared(g.External("app.Client"))
	g.SetModuleInjects(module, []*Type{client})
	injects, ok := g.ModuleInjects(module)
	assert.True(t, ok)
	assert.Equal(t, []*Type{client}, injects)
}

func TestTypeString(t *testing.T) {
	g := New()
	entry := g.External("java.util.Map.Entry")
	typ := Declared(entry, Wildcard(SuperBound, TypeVar("K")), ArrayOf(Primitive("int")))
	assert.Equal(t, "java.util.Map.Entry<? super K, int[]>", typ.String())
	assert.Equal(t, "?", Wildcard(Unbounded, nil).String())
	assert.Equal(t, "void", Void().String())
}
