package format

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	theme "github.com/goliatone/go-theme"
)

// DefaultSeparator is a newline followed by eight spaces, lining continuation
// lines up under "This is ".
const DefaultSeparator = "\n        "

// HTMLSeparator breaks lines in the html formatter.
const HTMLSeparator = "<br>\n"

// Theme token keys read by ResolveLayout.
const (
	TokenSeparator = "poem.separator"
	TokenIndent    = "poem.indent"
)

// Built-in theme names.
const (
	ThemeClassic = "classic"
	ThemeCompact = "compact"

	VariantProse = "prose"
)

// Layout controls how formatters join lines.
type Layout struct {
	Separator string
}

// DefaultLayout returns the layout used when nothing else is configured.
func DefaultLayout() Layout {
	return Layout{Separator: DefaultSeparator}
}

func (l Layout) separator() string {
	if l.Separator == "" {
		return DefaultSeparator
	}
	return l.Separator
}

func (l Layout) normalized() Layout {
	return Layout{Separator: l.separator()}
}

// ResolveLayout selects a theme through selector and derives a Layout from its
// tokens. Variant tokens override manifest tokens. TokenSeparator wins over
// TokenIndent; a theme without either yields the default layout.
func ResolveLayout(selector theme.ThemeSelector, name, variant string) (Layout, error) {
	if selector == nil {
		return DefaultLayout(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "format: select theme %q", name)
	}
	if selection == nil || selection.Manifest == nil {
		return DefaultLayout(), nil
	}

	tokens := mergeTokens(selection.Manifest, selection.Variant)
	if sep, ok := tokens[TokenSeparator]; ok && sep != "" {
		return Layout{Separator: sep}, nil
	}
	if indent, ok := tokens[TokenIndent]; ok {
		return Layout{Separator: "\n" + indent}, nil
	}
	return DefaultLayout(), nil
}

func mergeTokens(manifest *theme.Manifest, variant string) map[string]string {
	out := make(map[string]string, len(manifest.Tokens))
	for k, v := range manifest.Tokens {
		out[k] = v
	}
	if variant == "" {
		return out
	}
	if v, ok := manifest.Variants[variant]; ok {
		for k, val := range v.Tokens {
			out[k] = val
		}
	}
	return out
}

// ThemeSet is an in-memory theme.ThemeSelector.
type ThemeSet struct {
	fallback  string
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ThemeSet)(nil)

// NewThemeSet builds a selector over manifests. fallback names the theme used
// when Select receives an empty name.
func NewThemeSet(fallback string, manifests ...*theme.Manifest) (*ThemeSet, error) {
	set := &ThemeSet{
		fallback:  strings.TrimSpace(fallback),
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, errors.New("format: theme manifest name is required")
		}
		if _, exists := set.manifests[name]; exists {
			return nil, errors.Newf("format: theme %q already registered", name)
		}
		set.manifests[name] = m
	}
	if set.fallback != "" {
		if _, ok := set.manifests[set.fallback]; !ok {
			return nil, errors.Newf("format: fallback theme %q not registered", set.fallback)
		}
	}
	return set, nil
}

// Select implements theme.ThemeSelector.
func (s *ThemeSet) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil {
		return nil, errors.New("format: theme set is nil")
	}
	target := strings.TrimSpace(name)
	if target == "" {
		target = s.fallback
	}
	manifest, ok := s.manifests[target]
	if !ok {
		return nil, errors.WithHintf(
			errors.Newf("format: theme %q not found", target),
			"available themes: %s", strings.Join(s.Names(), ", "),
		)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, errors.Newf("format: theme %q has no variant %q", target, variant)
		}
	}
	return &theme.Selection{
		Theme:    target,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Names returns the sorted theme names.
func (s *ThemeSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Themes returns the built-in theme set: classic (the default indented
// layout, plus a prose variant joining with commas) and compact (slash
// separated on one line).
func Themes() *ThemeSet {
	set, err := NewThemeSet(ThemeClassic,
		&theme.Manifest{
			Name:    ThemeClassic,
			Version: "1.0.0",
			Tokens: map[string]string{
				TokenIndent: strings.Repeat(" ", 8),
			},
			Variants: map[string]theme.Variant{
				VariantProse: {
					Tokens: map[string]string{
						TokenSeparator: ", ",
					},
				},
			},
		},
		&theme.Manifest{
			Name:    ThemeCompact,
			Version: "1.0.0",
			Tokens: map[string]string{
				TokenSeparator: " / ",
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return set
}
