package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/fragment"
	"github.com/goliatone/go-poemgen/pkg/generator"
	"github.com/goliatone/go-poemgen/pkg/order"
	"github.com/goliatone/go-poemgen/pkg/profile"
	"github.com/goliatone/go-poemgen/pkg/prompt"
)

func (a *app) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a poem",
		Long: `Print a poem built from the selected orderer and formatter.

Values come from, in order of precedence: flags, POEMGEN_* environment
variables, the --config file, the selected --profile, built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: a.runGenerate,
	}

	flags := cmd.Flags()
	flags.IntP(keyCount, "n", profile.DefaultCount, "number of lines")
	flags.String(keyOrder, "", "orderer: "+strings.Join(order.DefaultRegistry().List(), ", "))
	flags.String(keyFormat, "", "formatter: "+strings.Join(format.DefaultRegistry().List(), ", "))
	flags.Uint64(keySeed, 0, "seed for the random orderer")
	flags.StringP(keyProfile, "p", "", "named profile to start from")
	flags.String(keyTheme, "", "layout theme: "+strings.Join(format.Themes().Names(), ", "))
	flags.String(keyVariant, "", "theme variant")
	flags.String(keyTemplate, "", "carrier template, inline or an embedded template name")
	flags.BoolP(keyInteractive, "i", false, "choose the strategies with prompts")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, _ []string) error {
	store, err := a.profiles()
	if err != nil {
		return err
	}

	p, err := a.baseProfile(store)
	if err != nil {
		return err
	}
	p = p.Overlay(a.overrides())

	if a.v.GetBool(keyInteractive) {
		p, err = a.ask(cmd, p)
		if err != nil {
			return err
		}
	}

	opts, err := profile.Resolver{}.Resolve(p)
	if err != nil {
		return err
	}
	opts = append(opts, generator.WithLogger(a.logger))

	a.logger.Debug("profile resolved",
		zap.String("profile", p.Name),
		zap.String("orderer", p.Orderer),
		zap.String("formatter", p.Formatter),
		zap.Int("count", p.LineCount()),
	)

	poem, err := generator.New(opts...).Generate(p.LineCount())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), poem)
	return err
}

// profiles returns the embedded presets merged with --profiles.
func (a *app) profiles() (*profile.Store, error) {
	store, err := profile.Embedded()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(a.v.GetString(keyProfiles))
	if path == "" {
		return store, nil
	}
	user, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	store.Merge(user)
	a.logger.Debug("profiles loaded", zap.String("path", path), zap.Strings("names", user.Names()))
	return store, nil
}

func (a *app) baseProfile(store *profile.Store) (profile.Profile, error) {
	name := strings.TrimSpace(a.v.GetString(keyProfile))
	if name == "" {
		return profile.Profile{}, nil
	}
	p, ok := store.Get(name)
	if !ok {
		return profile.Profile{}, errors.WithHintf(
			errors.Newf("cli: profile %q not found", name),
			"available profiles: %s", strings.Join(store.Names(), ", "),
		)
	}
	return p, nil
}

// overrides collects the values set through flags, env or config.
func (a *app) overrides() profile.Profile {
	out := profile.Profile{
		Orderer:   a.v.GetString(keyOrder),
		Formatter: a.v.GetString(keyFormat),
		Theme:     a.v.GetString(keyTheme),
		Variant:   a.v.GetString(keyVariant),
		Template:  a.v.GetString(keyTemplate),
	}
	if a.v.IsSet(keyCount) {
		n := a.v.GetInt(keyCount)
		out.Count = &n
	}
	if a.v.IsSet(keySeed) {
		seed := a.v.GetUint64(keySeed)
		out.Seed = &seed
	}
	return out
}

func (a *app) ask(cmd *cobra.Command, p profile.Profile) (profile.Profile, error) {
	size := fragment.HouseSize
	if len(p.Lines) > 0 {
		size = len(p.Lines)
	}

	driver := a.driver
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}

	wizard := prompt.NewWizard(
		prompt.WithDriver(driver),
		prompt.WithOrderers(order.DefaultRegistry().List()...),
		prompt.WithFormatters(format.DefaultRegistry().List()...),
		prompt.WithDescription(order.NameSequential, "keep the rhyme's order"),
		prompt.WithDescription(order.NameRandom, "shuffle before picking"),
		prompt.WithDescription(order.NameReverse, "start from the last line"),
		prompt.WithDescription(format.NameDefault, "each line once"),
		prompt.WithDescription(format.NameEcho, "each line twice"),
		prompt.WithDescription(format.NameHTML, "sanitized lines joined with <br>"),
		prompt.WithSize(size),
		prompt.WithDefaults(prompt.Choice{
			Orderer:   firstNonEmpty(p.Orderer, order.NameSequential),
			Formatter: firstNonEmpty(p.Formatter, format.NameDefault),
			Count:     p.LineCount(),
			Seed:      p.Seed,
		}),
	)

	choice, err := wizard.Run(cmd.Context())
	if err != nil {
		return profile.Profile{}, err
	}
	count := choice.Count
	return p.Overlay(profile.Profile{
		Orderer:   choice.Orderer,
		Formatter: choice.Formatter,
		Count:     &count,
		Seed:      choice.Seed,
	}), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
