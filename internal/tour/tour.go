// Package tour prints the story behind the generator: three generators built
// by subclassing, the fourth one that subclassing cannot express, and the
// composed generator that replaces all of them.
package tour

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/generator"
	"github.com/goliatone/go-poemgen/pkg/order"
)

// Lines is how many lines each stage generates.
const Lines = 4

// Stage is one step of the walkthrough.
type Stage struct {
	Title     string
	Narration string
	Generator *generator.Generator
}

// Options configures the walkthrough.
type Options struct {
	// Seed makes the shuffled stages repeatable.
	Seed *uint64
}

func (o Options) shuffle() order.Orderer {
	if o.Seed != nil {
		return order.NewShuffle(order.WithSeed(*o.Seed))
	}
	return order.NewShuffle()
}

// Stages returns the walkthrough in presentation order.
func Stages(opts Options) []Stage {
	return []Stage{
		{
			Title: "One generator",
			Narration: `Objects were meant to be small programs that keep their own state and
talk through messages. Classes and inheritance came later and are not the
core of the idea. We start with a single generator that recites the end of
the rhyme.`,
			Generator: generator.New(),
		},
		{
			Title:     "A shuffled generator",
			Narration: "A new request arrives: shuffle the lines before picking them.",
			Generator: generator.New(generator.WithOrderer(opts.shuffle())),
		},
		{
			Title:     "An echoing generator",
			Narration: "Another request: say every line twice.",
			Generator: generator.New(generator.WithFormatter(format.NewDuplicate())),
		},
		{
			Title: "Both at once",
			Narration: `Then someone wants a shuffled poem that also echoes. Extending either
subclass means copying the other one's override. Two concerns changed
independently: which lines come first, and how each line is written. Once
both are separate objects the subclasses are no longer needed; any orderer
can be combined with any formatter.`,
			Generator: generator.New(
				generator.WithOrderer(opts.shuffle()),
				generator.WithFormatter(format.NewDuplicate()),
			),
		},
	}
}

// Run writes every stage to w, styling headings for terminals that support
// it.
func Run(w io.Writer, opts Options) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	narration := r.NewStyle().Faint(true)

	for i, stage := range Stages(opts) {
		out, err := stage.Generator.Generate(Lines)
		if err != nil {
			return errors.Wrapf(err, "tour: stage %q", stage.Title)
		}

		var b strings.Builder
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n\n", heading.Render(fmt.Sprintf("%d. %s", i+1, stage.Title)))
		fmt.Fprintf(&b, "%s\n\n", narration.Render(stage.Narration))
		fmt.Fprintf(&b, "%s\n", out)

		if _, err := io.WriteString(w, b.String()); err != nil {
			return errors.Wrap(err, "tour: write")
		}
	}
	return nil
}
