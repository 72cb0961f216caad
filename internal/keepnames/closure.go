package keepnames

import (
	"log/slog"

	"github.com/alecthomas/errors"
	"github.com/alecthomas/keepnames/internal/typegraph"
)

// DefaultRootType is the universal root of every class hierarchy.
const DefaultRootType = "java.lang.Object"

type builderOptions struct {
	rootType string
	logger   *slog.Logger
}

type Option func(*builderOptions) error

// WithRootType sets the canonical name of the root type that ends the superclass walk.
func WithRootType(name string) Option {
	return func(o *builderOptions) error {
		if name == "" {
			return errors.New("root type must not be empty")
		}
		o.rootType = name
		return nil
	}
}

// WithLogger sets the logger new keep names are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *builderOptions) error {
		o.logger = logger
		return nil
	}
}

// Builder computes the closure of types that need preserving, accumulating their keep names into a
// [KeepSet].
type Builder struct {
	in       typegraph.Introspector
	keep     *KeepSet
	rootType string
	logger   *slog.Logger
	// Types already walked, keyed by keep name and rendered arguments.
	visited map[string]bool
	// Classes whose superclass has been walked.
	ascended map[*typegraph.Element]bool
}

func NewBuilder(in typegraph.Introspector, keep *KeepSet, options ...Option) (*Builder, error) {
	opts := &builderOptions{rootType: DefaultRootType}
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		in:       in,
		keep:     keep,
		rootType: opts.rootType,
		logger:   opts.logger,
		visited:  map[string]bool{},
		ascended: map[*typegraph.Element]bool{},
	}, nil
}

// Resolve adds the keep names of typ, its generic arguments and its superclasses to the keep set.
func (b *Builder) Resolve(typ *typegraph.Type) {
	if typ == nil {
		return
	}
	b.resolve(Describe(b.in, typ))
}

// ResolveElement resolves the generic declaration of a class.
func (b *Builder) ResolveElement(element *typegraph.Element) {
	if element == nil {
		return
	}
	b.Resolve(b.in.DeclaredType(element))
}

func (b *Builder) resolve(d Descriptor) {
	key := d.key()
	if b.visited[key] {
		return
	}
	b.visited[key] = true

	if d.NeedsPreserving() {
		name := d.KeepName()
		if b.keep.Add(name) {
			b.logger.Info("Found new dependent type", "name", name)
		}
	} else {
		b.logger.Debug("Type does not need preserving", "type", d.Type().String())
	}

	for _, arg := range d.Arguments() {
		b.resolve(arg)
	}

	// Each class's superclass is walked once, so expansive and cyclic hierarchies such as
	// A<T> extends B<A<Box<T>>> terminate.
	element := d.Element()
	if element == nil || b.ascended[element] {
		return
	}
	b.ascended[element] = true
	superclass := b.in.SuperclassOf(d.Type())
	if superclass == nil {
		return
	}
	ancestor := Describe(b.in, superclass)
	if parent := ancestor.Element(); parent == nil || parent.String() == b.rootType {
		return
	}
	b.resolve(ancestor)
}
