package annotationparser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "Simple", text: "Foo", want: "Foo"},
		{name: "Qualified", text: "model.User", want: "model.User"},
		{name: "Generic", text: "cache.Store<model.User>", want: "cache.Store<model.User>"},
		{name: "MultipleArguments", text: "java.util.Map< String ,int >", want: "java.util.Map<String, int>"},
		{name: "NestedGenerics", text: "Provider<List<Map<K, V>>>", want: "Provider<List<Map<K, V>>>"},
		{name: "UnboundedWildcard", text: "List<?>", want: "List<?>"},
		{name: "ExtendsWildcard", text: "List<? extends app.Base>", want: "List<? extends app.Base>"},
		{name: "SuperWildcard", text: "Comparator<? super T>", want: "Comparator<? super T>"},
		{name: "Array", text: "byte[]", want: "byte[]"},
		{name: "GenericArray", text: "List<String>[][]", want: "List<String>[][]"},
		{name: "DollarInName", text: "app.Outer$Inner", want: "app.Outer$Inner"},
		{name: "Empty", text: "  ", wantErr: true},
		{name: "UnclosedArguments", text: "List<String", wantErr: true},
		{name: "TrailingDot", text: "app.", wantErr: true},
		{name: "ClassLiteral", text: "app.Foo.class", wantErr: true},
		{name: "EmptyArguments", text: "List<>", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTypeStructure(t *testing.T) {
	got, err := ParseType("java.util.Map.Entry<K, ? extends V>[][]")
	assert.NoError(t, err)
	assert.Zero(t, got.Wildcard)
	assert.Equal(t, []string{"java", "util", "Map", "Entry"}, got.Named.Name)
	assert.Equal(t, "java.util.Map.Entry", got.Named.QualifiedName())
	assert.Equal(t, 2, len(got.Named.Dims))
	assert.Equal(t, 2, len(got.Named.Args))
	assert.Equal(t, "K", got.Named.Args[0].Named.QualifiedName())
	wildcard := got.Named.Args[1].Wildcard
	assert.NotZero(t, wildcard)
	assert.Equal(t, "extends", wildcard.Bound)
	assert.Equal(t, "V", wildcard.Type.String())
}

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "Marker", text: "@Inject", want: "@Inject"},
		{name: "Qualified", text: "@javax.inject.Inject", want: "@javax.inject.Inject"},
		{name: "EmptyParens", text: "@Provides()", want: "@Provides"},
		{name: "UnnamedValue", text: `@Named("db")`, want: `@Named("db")`},
		{name: "ClassList", text: "@Module(injects = {app.Client.class, app.Outer.Inner.class})",
			want: "@Module(injects = {app.Client.class, app.Outer.Inner.class})"},
		{name: "SingleClass", text: "@Module(injects=app.Client.class)", want: "@Module(injects = app.Client.class)"},
		{name: "MixedElements", text: "@Module(injects = {}, library = true, complete = false, version = 2)",
			want: "@Module(injects = {}, library = true, complete = false, version = 2)"},
		{name: "UnnamedClass", text: "@RunWith(Runner.class)", want: "@RunWith(Runner.class)"},
		{name: "Empty", text: "", wantErr: true},
		{name: "MissingAt", text: "Inject", wantErr: true},
		{name: "UnclosedParens", text: "@Module(injects = {}", wantErr: true},
		{name: "UnclosedList", text: "@Module(injects = {Foo.class)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnnotation(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAnnotationIs(t *testing.T) {
	tests := []struct {
		text     string
		name     string
		expected bool
	}{
		{"@Inject", "javax.inject.Inject", true},
		{"@javax.inject.Inject", "javax.inject.Inject", true},
		{"@com.google.inject.Inject", "javax.inject.Inject", false},
		{"@Inject", "Inject", true},
		{"@Provides", "dagger.Module", false},
	}
	for _, tt := range tests {
		t.Run(tt.text+"="+tt.name, func(t *testing.T) {
			annotation, err := ParseAnnotation(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, annotation.Is(tt.name))
		})
	}
}

func TestAnnotationTypes(t *testing.T) {
	annotation, err := ParseAnnotation("@Module(injects = {app.Client.class, java.util.List<app.User>.class}, library = true)")
	assert.NoError(t, err)

	types, ok, err := annotation.Types("injects")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, len(types))
	assert.Equal(t, "app.Client", types[0].String())
	assert.Equal(t, "java.util.List<app.User>", types[1].String())

	_, ok, err = annotation.Types("includes")
	assert.NoError(t, err)
	assert.False(t, ok)

	single, err := ParseAnnotation("@Module(injects = app.Client.class)")
	assert.NoError(t, err)
	types, ok, err = single.Types("injects")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, len(types))

	empty, err := ParseAnnotation("@Module(injects = {})")
	assert.NoError(t, err)
	types, ok, err = empty.Types("injects")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, len(types))

	invalid, err := ParseAnnotation(`@Module(injects = {"app.Client"})`)
	assert.NoError(t, err)
	_, _, err = invalid.Types("injects")
	assert.EqualError(t, err, `@Module: element "injects" must contain only types`)
}
