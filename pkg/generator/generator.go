package generator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/fragment"
	"github.com/goliatone/go-poemgen/pkg/order"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithSource injects the fragment source.
func WithSource(source fragment.Source) Option {
	return func(g *Generator) {
		if source != nil {
			g.source = source
		}
	}
}

// WithOrderer injects the ordering strategy.
func WithOrderer(orderer order.Orderer) Option {
	return func(g *Generator) {
		if orderer != nil {
			g.orderer = orderer
		}
	}
}

// WithFormatter injects the formatting strategy.
func WithFormatter(formatter format.Formatter) Option {
	return func(g *Generator) {
		if formatter != nil {
			g.formatter = formatter
		}
	}
}

// WithCarrier replaces the "This is {phrase}." sentence.
func WithCarrier(carrier Carrier) Option {
	return func(g *Generator) {
		if carrier != nil {
			g.carrier = carrier
		}
	}
}

// WithLogger attaches a logger. Generate logs at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithContractChecks verifies on every call that the orderer returned a
// permutation and that the formatter kept the line count. Violations surface
// as ErrContractViolation.
func WithContractChecks(enabled bool) Option {
	return func(g *Generator) {
		g.checkContracts = enabled
	}
}

// Generator orchestrates source → orderer → trailing slice → formatter →
// carrier. Its collaborators are fixed at construction.
type Generator struct {
	source         fragment.Source
	orderer        order.Orderer
	formatter      format.Formatter
	carrier        Carrier
	logger         *zap.Logger
	checkContracts bool
}

// New constructs a Generator applying options. Missing collaborators default
// to the House source, the identity orderer, the plain formatter and the
// sentence carrier.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

func (g *Generator) applyDefaults() {
	if g.source == nil {
		g.source = fragment.House()
	}
	if g.orderer == nil {
		g.orderer = order.NewIdentity()
	}
	if g.formatter == nil {
		g.formatter = format.NewPlain()
	}
	if g.carrier == nil {
		g.carrier = Sentence()
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
}

// Size reports how many fragments the source supplies.
func (g *Generator) Size() int {
	return len(g.source.All())
}

// Generate renders the trailing n fragments of the ordered source.
func (g *Generator) Generate(n int) (string, error) {
	all := g.source.All()
	if n < 0 || n > len(all) {
		return "", invalidCount(n, len(all))
	}

	ordered := g.orderer.Order(all.Clone())
	if g.checkContracts && !fragment.SameElements(all, ordered) {
		return "", errors.Wrapf(ErrContractViolation,
			"orderer %s returned %d fragments that are not a permutation of %d", describe(g.orderer), len(ordered), len(all))
	}
	if len(ordered) != len(all) {
		return "", errors.Wrapf(ErrContractViolation,
			"orderer %s returned %d fragments, want %d", describe(g.orderer), len(ordered), len(all))
	}

	selected := ordered.Last(n)
	rendered := g.formatter.Format(selected.Clone())
	if g.checkContracts {
		if err := g.checkFormatted(selected, rendered); err != nil {
			return "", err
		}
	}

	out, err := g.carrier.Wrap(rendered)
	if err != nil {
		return "", err
	}

	g.logger.Debug("poem generated",
		zap.Int("count", n),
		zap.Int("size", len(all)),
		zap.String("orderer", describe(g.orderer)),
		zap.String("formatter", describe(g.formatter)),
	)
	return out, nil
}

// MustGenerate panics when Generate fails.
func (g *Generator) MustGenerate(n int) string {
	out, err := g.Generate(n)
	if err != nil {
		panic(err)
	}
	return out
}

// checkFormatted verifies every selected fragment appears in the rendered
// phrase in its original order.
func (g *Generator) checkFormatted(selected fragment.Sequence, rendered string) error {
	pos := 0
	for i, line := range selected {
		idx := strings.Index(rendered[pos:], string(line))
		if idx < 0 {
			return errors.Wrapf(ErrContractViolation,
				"formatter %s dropped or reordered line %d (%q)", describe(g.formatter), i, line)
		}
		pos += idx + len(line)
	}
	return nil
}

func describe(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
