package manifest

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/keepnames/internal/annotationparser"
	"github.com/alecthomas/keepnames/internal/keepnames"
	"github.com/alecthomas/keepnames/internal/typegraph"
)

const (
	injectAnnotation   = "javax.inject.Inject"
	providesAnnotation = "dagger.Provides"
	moduleAnnotation   = "dagger.Module"
	// The element of @Module listing the classes the module injects.
	injectsElement = "injects"
)

// Result of loading one or more manifests.
type Result struct {
	Graph *typegraph.Graph
	Seeds keepnames.Seeds
}

type loadOptions struct {
	rootType string
}

type Option func(*loadOptions) error

// WithRootType sets the superclass of classes that do not declare one.
func WithRootType(name string) Option {
	return func(o *loadOptions) error {
		if name == "" {
			return errors.New("root type must not be empty")
		}
		o.rootType = name
		return nil
	}
}

// declaration is a class declared in a manifest, with the type variables visible inside it.
type declaration struct {
	path     string
	class    *Class
	element  *typegraph.Element
	typeVars []string
}

type loader struct {
	opts         *loadOptions
	graph        *typegraph.Graph
	declarations []*declaration
	seeds        keepnames.Seeds
}

// Load manifests from fsys and merge them into a single type graph.
//
// Classes may refer to classes declared in any of the manifests. Seeds are ordered by manifest, then
// by declaration order within each manifest.
func Load(fsys fs.FS, paths []string, options ...Option) (*Result, error) {
	opts := &loadOptions{rootType: keepnames.DefaultRootType}
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	l := &loader{opts: opts, graph: typegraph.New()}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, errors.Errorf("failed to read manifest: %w", err)
		}
		file, err := Parse(path, data)
		if err != nil {
			return nil, err
		}
		for _, pkg := range file.Packages {
			element := l.graph.Package(pkg.Name)
			for _, class := range pkg.Classes {
				if err := l.declare(path, element, class, nil); err != nil {
					return nil, err
				}
			}
		}
	}
	for _, decl := range l.declarations {
		if err := l.analyseClass(decl); err != nil {
			return nil, errors.Errorf("%s: %s: %w", decl.path, decl.element, err)
		}
	}
	return &Result{Graph: l.graph, Seeds: l.seeds}, nil
}

func (l *loader) declare(path string, enclosing *typegraph.Element, class *Class, typeVars []string) error {
	params := make([]string, 0, len(class.TypeParams))
	for _, param := range class.TypeParams {
		name, _, _ := strings.Cut(strings.TrimSpace(param), " ")
		params = append(params, name)
	}
	element, err := l.graph.Declare(enclosing, class.Name, params...)
	if err != nil {
		return errors.Errorf("%s: %w", path, err)
	}
	element.Interface = class.Interface
	// Inner classes see the type variables of their enclosing classes.
	visible := append(append([]string{}, typeVars...), params...)
	l.declarations = append(l.declarations, &declaration{path: path, class: class, element: element, typeVars: visible})
	for _, nested := range class.Classes {
		if err := l.declare(path, element, nested, visible); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) analyseClass(decl *declaration) error {
	class, element := decl.class, decl.element
	scope := &scope{graph: l.graph, class: element, typeVars: decl.typeVars}

	switch {
	case class.Extends != "":
		superclass, err := scope.resolveString(class.Extends)
		if err != nil {
			return errors.Errorf("superclass: %w", err)
		}
		if superclass.Kind != typegraph.DeclaredType {
			return errors.Errorf("superclass %s is not a class", superclass)
		}
		element.Superclass = superclass
	case !class.Interface && element.String() != l.opts.rootType:
		element.Superclass = typegraph.Declared(l.graph.External(l.opts.rootType))
	}

	position := func(member string) string {
		if member == "" {
			return fmt.Sprintf("%s: %s", decl.path, element)
		}
		return fmt.Sprintf("%s: %s.%s", decl.path, element, member)
	}

	annotations, err := parseAnnotations(class.Annotations)
	if err != nil {
		return err
	}
	for _, annotation := range annotations {
		if !annotation.Is(moduleAnnotation) {
			continue
		}
		l.seeds.Modules = append(l.seeds.Modules, keepnames.Seed{
			Kind:     keepnames.ModuleDeclaration,
			Element:  element,
			Position: position(""),
		})
		exprs, ok, err := annotation.Types(injectsElement)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		injects := make([]*typegraph.Type, 0, len(exprs))
		for _, expr := range exprs {
			typ, err := scope.resolve(expr)
			if err != nil {
				return errors.Errorf("%s: %w", annotation, err)
			}
			injects = append(injects, typ)
		}
		l.graph.SetModuleInjects(element, injects)
	}

	for _, field := range class.Fields {
		typ, err := scope.resolveString(field.Type)
		if err != nil {
			return errors.Errorf("field %s: %w", field.Name, err)
		}
		err = l.addSeeds(field.Annotations, keepnames.Seed{
			Kind:      keepnames.FieldInjection,
			Type:      typ,
			Enclosing: element,
			Position:  position(field.Name),
		})
		if err != nil {
			return errors.Errorf("field %s: %w", field.Name, err)
		}
	}

	for _, constructor := range class.Constructors {
		err := l.addMethodSeeds(scope, constructor, keepnames.Seed{
			Kind:      keepnames.ConstructorInjection,
			Enclosing: element,
			Position:  position("<init>"),
		})
		if err != nil {
			return errors.Errorf("constructor: %w", err)
		}
	}

	for _, method := range class.Methods {
		err := l.addMethodSeeds(scope, method, keepnames.Seed{
			Kind:      keepnames.MethodInjection,
			Enclosing: element,
			Position:  position(method.Name),
		})
		if err != nil {
			return errors.Errorf("method %s: %w", method.Name, err)
		}
	}
	return nil
}

func (l *loader) addMethodSeeds(classScope *scope, method *Method, seed keepnames.Seed) error {
	scope := classScope.withTypeVars(method.TypeParams)
	returns := method.Returns
	if returns == "" {
		returns = "void"
	}
	typ, err := scope.resolveString(returns)
	if err != nil {
		return errors.Errorf("return type: %w", err)
	}
	seed.Type = typ
	if err := l.addSeeds(method.Annotations, seed); err != nil {
		return err
	}
	for _, param := range method.Params {
		typ, err := scope.resolveString(param.Type)
		if err != nil {
			return errors.Errorf("parameter %s: %w", param.Name, err)
		}
		err = l.addSeeds(param.Annotations, keepnames.Seed{
			Kind:      keepnames.ParameterInjection,
			Type:      typ,
			Enclosing: seed.Enclosing,
			Position:  fmt.Sprintf("%s(%s)", seed.Position, param.Name),
		})
		if err != nil {
			return errors.Errorf("parameter %s: %w", param.Name, err)
		}
	}
	return nil
}

// addSeeds adds seed to the group of each recognised annotation.
//
// @Provides on a method becomes a provider method seed. Elements of any other kind keep their kind,
// and are skipped by the collector.
func (l *loader) addSeeds(texts []string, seed keepnames.Seed) error {
	annotations, err := parseAnnotations(texts)
	if err != nil {
		return err
	}
	for _, annotation := range annotations {
		switch {
		case annotation.Is(injectAnnotation):
			l.seeds.Injections = append(l.seeds.Injections, seed)
		case annotation.Is(providesAnnotation):
			provider := seed
			if seed.Kind == keepnames.MethodInjection {
				provider.Kind = keepnames.ProviderMethod
			}
			l.seeds.Providers = append(l.seeds.Providers, provider)
		}
	}
	return nil
}

func parseAnnotations(texts []string) ([]*annotationparser.Annotation, error) {
	out := make([]*annotationparser.Annotation, 0, len(texts))
	for _, text := range texts {
		annotation, err := annotationparser.ParseAnnotation(text)
		if err != nil {
			return nil, err
		}
		out = append(out, annotation)
	}
	return out, nil
}
