package keepnames

import (
	"fmt"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/keepnames/internal/typegraph"
)

type SeedKind int

const (
	FieldInjection SeedKind = iota
	ConstructorInjection
	MethodInjection
	ParameterInjection
	ProviderMethod
	ModuleDeclaration
)

func (k SeedKind) String() string {
	switch k {
	case FieldInjection:
		return "field injection"
	case ConstructorInjection:
		return "constructor injection"
	case MethodInjection:
		return "method injection"
	case ParameterInjection:
		return "parameter injection"
	case ProviderMethod:
		return "provider method"
	case ModuleDeclaration:
		return "module declaration"
	default:
		return fmt.Sprintf("SeedKind(%d)", int(k))
	}
}

// Seed is an annotated program element discovered by the host.
type Seed struct {
	Kind SeedKind
	// Type is the field type of a field injection or the return type of a provider method.
	Type *typegraph.Type
	// Enclosing is the class declaring the element.
	Enclosing *typegraph.Element
	// Element is the module class of a module declaration.
	Element *typegraph.Element
	// Position of the declaration, used in diagnostics.
	Position string
}

func (s Seed) String() string {
	if s.Position == "" {
		return s.Kind.String()
	}
	return s.Position + ": " + s.Kind.String()
}

// Seeds are partitioned by the annotation that discovered them.
type Seeds struct {
	// Injections are elements annotated with @Inject.
	Injections []Seed
	// Providers are elements annotated with @Provides.
	Providers []Seed
	// Modules are elements annotated with @Module.
	Modules []Seed
}

func (s Seeds) Len() int { return len(s.Injections) + len(s.Providers) + len(s.Modules) }

// Collect computes the keep set for all seeds.
//
// Seeds are processed in order: injections, then providers, then modules.
func Collect(in typegraph.Introspector, seeds Seeds, options ...Option) (*KeepSet, error) {
	keep := NewKeepSet()
	b, err := NewBuilder(in, keep, options...)
	if err != nil {
		return nil, err
	}

	for _, seed := range seeds.Injections {
		switch seed.Kind {
		case FieldInjection:
			if seed.Type == nil {
				return nil, errors.Errorf("%s has no type", seed)
			}
			b.Resolve(seed.Type)
			b.ResolveElement(seed.Enclosing)

		case ConstructorInjection, MethodInjection, ParameterInjection:
			// Parameter types are matched structurally by the injector and are not kept by name.
			b.ResolveElement(seed.Enclosing)

		default:
			b.logger.Debug("Ignoring injection seed", "seed", seed.String())
		}
	}

	for _, seed := range seeds.Providers {
		if seed.Kind != ProviderMethod {
			b.logger.Debug("Ignoring provider seed", "seed", seed.String())
			continue
		}
		if seed.Type == nil {
			return nil, errors.Errorf("%s has no return type", seed)
		}
		b.Resolve(seed.Type)
	}

	for _, seed := range seeds.Modules {
		if seed.Kind != ModuleDeclaration {
			b.logger.Debug("Ignoring module seed", "seed", seed.String())
			continue
		}
		if seed.Element == nil {
			return nil, errors.Errorf("%s has no module class", seed)
		}
		b.ResolveElement(seed.Element)
		injects, ok := in.ModuleInjects(seed.Element)
		if !ok {
			continue
		}
		for _, typ := range injects {
			b.Resolve(typ)
		}
	}
	return keep, nil
}
