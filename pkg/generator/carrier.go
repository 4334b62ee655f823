package generator

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-poemgen/pkg/render/template"
)

// Carrier embeds the formatted phrase in the final sentence.
type Carrier interface {
	Wrap(phrase string) (string, error)
}

// CarrierFunc adapts a function to Carrier.
type CarrierFunc func(phrase string) (string, error)

// Wrap implements Carrier.
func (f CarrierFunc) Wrap(phrase string) (string, error) {
	return f(phrase)
}

type sentence struct{}

// Sentence returns the fixed "This is {phrase}." carrier.
func Sentence() Carrier {
	return sentence{}
}

func (sentence) Wrap(phrase string) (string, error) {
	return "This is " + phrase + ".", nil
}

// TemplateCarrier renders the phrase through a template engine. The template
// sees the phrase as "phrase" plus any extra values.
type TemplateCarrier struct {
	engine   template.TemplateRenderer
	template string
	extra    map[string]any
}

// NewTemplateCarrier builds a carrier around engine. tpl is either inline
// template content or the name of a template the engine can load.
func NewTemplateCarrier(engine template.TemplateRenderer, tpl string, extra map[string]any) (*TemplateCarrier, error) {
	if engine == nil {
		return nil, errors.New("generator: template engine is required")
	}
	if strings.TrimSpace(tpl) == "" {
		return nil, errors.New("generator: carrier template is required")
	}
	return &TemplateCarrier{engine: engine, template: tpl, extra: extra}, nil
}

// Wrap implements Carrier.
func (c *TemplateCarrier) Wrap(phrase string) (string, error) {
	data := make(map[string]any, len(c.extra)+1)
	for k, v := range c.extra {
		data[k] = v
	}
	data["phrase"] = phrase

	out, err := c.engine.Render(c.template, data)
	if err != nil {
		return "", errors.Wrap(err, "generator: render carrier")
	}
	return out, nil
}
