package format

import (
	"strings"

	"github.com/goliatone/go-poemgen/internal/registry"
	"github.com/goliatone/go-poemgen/pkg/fragment"
)

// Built-in formatter names.
const (
	NameDefault = "default"
	NameEcho    = "echo"
	NameHTML    = "html"
)

// Formatter renders a fragment subsequence into one string. Implementations
// must keep the input order.
type Formatter interface {
	Format(lines fragment.Sequence) string
}

// Option configures the built-in formatters.
type Option func(*Layout)

// WithLayout replaces the whole layout.
func WithLayout(layout Layout) Option {
	return func(l *Layout) {
		*l = layout.normalized()
	}
}

// WithSeparator overrides the string placed between lines.
func WithSeparator(sep string) Option {
	return func(l *Layout) {
		l.Separator = sep
	}
}

func buildLayout(options []Option) Layout {
	layout := DefaultLayout()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&layout)
	}
	return layout
}

// Plain joins lines with the layout separator.
type Plain struct {
	layout Layout
}

// NewPlain constructs the default formatter.
func NewPlain(options ...Option) Plain {
	return Plain{layout: buildLayout(options)}
}

// Format implements Formatter.
func (p Plain) Format(lines fragment.Sequence) string {
	return strings.Join(lines.Strings(), p.layout.separator())
}

// Layout reports the formatter layout.
func (p Plain) Layout() Layout {
	return p.layout.normalized()
}

// Duplicate echoes every line once ("line line") before joining.
type Duplicate struct {
	layout Layout
}

// NewDuplicate constructs the echo formatter.
func NewDuplicate(options ...Option) Duplicate {
	return Duplicate{layout: buildLayout(options)}
}

// Format implements Formatter.
func (d Duplicate) Format(lines fragment.Sequence) string {
	echoed := make([]string, len(lines))
	for i, line := range lines {
		echoed[i] = string(line) + " " + string(line)
	}
	return strings.Join(echoed, d.layout.separator())
}

// Layout reports the formatter layout.
func (d Duplicate) Layout() Layout {
	return d.layout.normalized()
}

// Func adapts a plain function to the Formatter interface.
type Func func(lines fragment.Sequence) string

// Format implements Formatter.
func (f Func) Format(lines fragment.Sequence) string {
	return f(lines)
}

// Registry maps names to formatters.
type Registry = registry.Registry[Formatter]

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return registry.New[Formatter]("formatter")
}

// DefaultRegistry returns the built-in formatters laid out with layout.
func DefaultRegistry(options ...Option) *Registry {
	reg := NewRegistry()
	reg.MustRegister(NameDefault, NewPlain(options...))
	reg.MustRegister(NameEcho, NewDuplicate(options...))
	reg.MustRegister(NameHTML, NewHTML(NewPlain(WithSeparator(HTMLSeparator))))
	return reg
}
