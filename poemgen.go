// Package poemgen re-exports the generator building blocks so callers can
// compose a poem without importing each sub-package.
package poemgen

import (
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/fragment"
	"github.com/goliatone/go-poemgen/pkg/generator"
	"github.com/goliatone/go-poemgen/pkg/order"
	"github.com/goliatone/go-poemgen/pkg/profile"
	"github.com/goliatone/go-poemgen/pkg/render/template/gotemplate"
)

// Fragment is one line of the rhyme.
type Fragment = fragment.Fragment

// Sequence is an ordered list of fragments.
type Sequence = fragment.Sequence

// Orderer arranges the full fragment sequence before selection.
type Orderer = order.Orderer

// Formatter renders the selected fragments as a phrase.
type Formatter = format.Formatter

// Generator composes a source, an orderer, a formatter and a carrier.
type Generator = generator.Generator

// Option configures a Generator.
type Option = generator.Option

// Profile is a named generator configuration.
type Profile = profile.Profile

// ErrInvalidCount is returned for counts outside [0, size].
var ErrInvalidCount = generator.ErrInvalidCount

// New exposes the generator constructor from the top-level module.
func New(options ...Option) *Generator {
	return generator.New(options...)
}

// Generate builds a generator from options and renders n lines. It is the
// simplest entry point for callers that just want a poem.
func Generate(n int, options ...Option) (string, error) {
	return generator.New(options...).Generate(n)
}

// GenerateProfile renders the named built-in profile with its own count.
func GenerateProfile(name string) (string, error) {
	store, err := profile.Embedded()
	if err != nil {
		return "", err
	}
	p, ok := store.Get(name)
	if !ok {
		return "", errors.WithHintf(
			errors.Newf("poemgen: unknown profile %q", name),
			"available profiles: %s", strings.Join(store.Names(), ", "),
		)
	}
	opts, err := profile.Resolver{}.Resolve(p)
	if err != nil {
		return "", err
	}
	return generator.New(opts...).Generate(p.LineCount())
}

// WithOrderer forwards to generator.WithOrderer.
func WithOrderer(o Orderer) Option {
	return generator.WithOrderer(o)
}

// WithFormatter forwards to generator.WithFormatter.
func WithFormatter(f Formatter) Option {
	return generator.WithFormatter(f)
}

// WithLines replaces the built-in rhyme with caller supplied lines.
func WithLines(lines ...string) Option {
	return generator.WithSource(fragment.NewStatic(lines...))
}

// Shuffled returns the random orderer, seeded when seed is non-nil.
func Shuffled(seed *uint64) Orderer {
	if seed == nil {
		return order.NewShuffle()
	}
	return order.NewShuffle(order.WithSeed(*seed))
}

// Echo returns the formatter that repeats each line.
func Echo() Formatter {
	return format.NewDuplicate()
}

// EmbeddedTemplates exposes the built-in carrier templates so callers can
// reuse or extend them without importing the template package directly.
func EmbeddedTemplates() fs.FS {
	return gotemplate.TemplatesFS()
}

// EmbeddedProfiles exposes the preset profile documents.
func EmbeddedProfiles() fs.FS {
	return profile.EmbeddedFS()
}
