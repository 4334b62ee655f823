// Package profile loads named generator presets from YAML or JSON. A profile
// selects an orderer, a formatter, a line count and optionally a theme,
// carrier template and custom lines; Resolve turns it into generator options.
package profile

import (
	"strings"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/fragment"
	"github.com/goliatone/go-poemgen/pkg/generator"
	"github.com/goliatone/go-poemgen/pkg/order"
	"github.com/goliatone/go-poemgen/pkg/render/template"
	"github.com/goliatone/go-poemgen/pkg/render/template/gotemplate"
)

// DefaultCount is used when a profile omits count.
const DefaultCount = 4

// Profile describes one generator configuration.
type Profile struct {
	Name        string   `json:"-" yaml:"-"`
	Source      string   `json:"-" yaml:"-"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Orderer     string   `json:"orderer,omitempty" yaml:"orderer,omitempty"`
	Formatter   string   `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Count       *int     `json:"count,omitempty" yaml:"count,omitempty"`
	Seed        *uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	Theme       string   `json:"theme,omitempty" yaml:"theme,omitempty"`
	Variant     string   `json:"variant,omitempty" yaml:"variant,omitempty"`
	Template    string   `json:"template,omitempty" yaml:"template,omitempty"`
	Lines       []string `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// LineCount returns the configured count or DefaultCount.
func (p Profile) LineCount() int {
	if p.Count == nil {
		return DefaultCount
	}
	return *p.Count
}

// Overlay returns p with every field set in override replacing its
// counterpart. Name and Source stay those of p unless p has none.
func (p Profile) Overlay(override Profile) Profile {
	out := p
	if out.Name == "" {
		out.Name = override.Name
		out.Source = override.Source
	}
	if override.Description != "" {
		out.Description = override.Description
	}
	if override.Orderer != "" {
		out.Orderer = override.Orderer
	}
	if override.Formatter != "" {
		out.Formatter = override.Formatter
	}
	if override.Count != nil {
		n := *override.Count
		out.Count = &n
	}
	if override.Seed != nil {
		s := *override.Seed
		out.Seed = &s
	}
	if override.Theme != "" {
		out.Theme = override.Theme
	}
	if override.Variant != "" {
		out.Variant = override.Variant
	}
	if override.Template != "" {
		out.Template = override.Template
	}
	if len(override.Lines) > 0 {
		out.Lines = append([]string(nil), override.Lines...)
	}
	return out
}

// Resolver maps profile names onto concrete strategies. Zero fields fall back
// to the built-in registries, themes and template engine.
type Resolver struct {
	Orders    *order.Registry
	Formats   func(options ...format.Option) *format.Registry
	Themes    theme.ThemeSelector
	Templates template.TemplateRenderer
}

func (r Resolver) withDefaults() Resolver {
	if r.Orders == nil {
		r.Orders = order.DefaultRegistry()
	}
	if r.Formats == nil {
		r.Formats = format.DefaultRegistry
	}
	if r.Themes == nil {
		r.Themes = format.Themes()
	}
	return r
}

func (r Resolver) engine() (template.TemplateRenderer, error) {
	if r.Templates != nil {
		return r.Templates, nil
	}
	engine, err := gotemplate.New()
	if err != nil {
		return nil, err
	}
	return engine, nil
}

// Resolve builds generator options for p.
func (r Resolver) Resolve(p Profile) ([]generator.Option, error) {
	r = r.withDefaults()

	var opts []generator.Option

	if len(p.Lines) > 0 {
		for i, line := range p.Lines {
			if strings.TrimSpace(line) == "" {
				return nil, p.errorf("line %d is empty", i)
			}
		}
		opts = append(opts, generator.WithSource(fragment.NewStatic(p.Lines...)))
	}

	ordererName := firstNonEmpty(p.Orderer, order.NameSequential)
	orderer, err := order.Named(r.Orders, ordererName, p.Seed)
	if err != nil {
		return nil, p.wrap(errors.WithHintf(err, "available orderers: %s", strings.Join(r.Orders.List(), ", ")))
	}
	opts = append(opts, generator.WithOrderer(orderer))

	layout, err := format.ResolveLayout(r.Themes, p.Theme, p.Variant)
	if err != nil {
		return nil, p.wrap(err)
	}
	formats := r.Formats(format.WithLayout(layout))
	formatterName := firstNonEmpty(p.Formatter, format.NameDefault)
	formatter, err := formats.Get(formatterName)
	if err != nil {
		return nil, p.wrap(errors.WithHintf(err, "available formatters: %s", strings.Join(formats.List(), ", ")))
	}
	opts = append(opts, generator.WithFormatter(formatter))

	if strings.TrimSpace(p.Template) != "" {
		engine, err := r.engine()
		if err != nil {
			return nil, p.wrap(err)
		}
		carrier, err := generator.NewTemplateCarrier(engine, p.Template, nil)
		if err != nil {
			return nil, p.wrap(err)
		}
		opts = append(opts, generator.WithCarrier(carrier))
	}

	return opts, nil
}

func (p Profile) label() string {
	name := p.Name
	if name == "" {
		name = "(inline)"
	}
	if p.Source != "" {
		return name + " (" + p.Source + ")"
	}
	return name
}

func (p Profile) wrap(err error) error {
	return errors.Wrapf(err, "profile: %s", p.label())
}

func (p Profile) errorf(msg string, args ...any) error {
	return errors.Wrapf(errors.Newf(msg, args...), "profile: %s", p.label())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
