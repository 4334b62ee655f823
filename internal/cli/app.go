// Package cli wires the poem generator into the poemgen command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-poemgen/internal/logging"
	"github.com/goliatone/go-poemgen/pkg/prompt"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// EnvPrefix namespaces environment overrides, e.g. POEMGEN_FORMAT=echo.
const EnvPrefix = "POEMGEN"

// Configuration keys. Flags share these names.
const (
	keyConfig      = "config"
	keyDebug       = "debug"
	keyLogJSON     = "log-json"
	keyProfiles    = "profiles"
	keyCount       = "count"
	keyOrder       = "order"
	keyFormat      = "format"
	keySeed        = "seed"
	keyProfile     = "profile"
	keyTheme       = "theme"
	keyVariant     = "variant"
	keyTemplate    = "template"
	keyInteractive = "interactive"
)

type app struct {
	v      *viper.Viper
	logger *zap.Logger
	driver prompt.Driver
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures the command tree.
type Option func(*app)

// WithIO replaces the process streams.
func WithIO(in io.Reader, out, errw io.Writer) Option {
	return func(a *app) {
		if in != nil {
			a.stdin = in
		}
		if out != nil {
			a.stdout = out
		}
		if errw != nil {
			a.stderr = errw
		}
	}
}

// WithPromptDriver overrides the driver used by --interactive.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) {
		if driver != nil {
			a.driver = driver
		}
	}
}

func newApp(options ...Option) *app {
	a := &app{
		v:      viper.New(),
		logger: logging.Nop(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()
	return a
}

// NewRootCommand builds the poemgen command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	return newApp(options...).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "poemgen",
		Short: "Generate cumulative poems from composable strategies",
		Long: `poemgen builds poems from "The House That Jack Built".

Every poem combines one orderer (which lines come first) with one formatter
(how each line is written). Profiles bundle a combination under a name.

Examples:
  poemgen generate -n 4                    # the classic ending
  poemgen generate --order random --format echo
  poemgen generate --profile whole-house
  poemgen generate --interactive
  poemgen list                             # show every strategy and profile
  poemgen tour                             # the story behind the design`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (yaml, json or toml)")
	flags.Bool(keyDebug, false, "log debug details to stderr")
	flags.Bool(keyLogJSON, false, "emit logs as JSON")
	flags.String(keyProfiles, "", "profile file or directory merged over the built-in presets")

	root.AddCommand(
		a.generateCommand(),
		a.listCommand(),
		a.tourCommand(),
		a.versionCommand(),
	)
	return root
}

// setup binds the executing command's flags, reads the optional config file
// and builds the logger. Viper resolves flag > env > config > default.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "cli: bind flags")
	}

	if path := strings.TrimSpace(a.v.GetString(keyConfig)); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "cli: read config %s", path)
		}
	}

	a.logger = logging.New(logging.Config{
		Debug:  a.v.GetBool(keyDebug),
		JSON:   a.v.GetBool(keyLogJSON),
		Writer: a.stderr,
	})
	a.logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", a.v.ConfigFileUsed()),
	)
	return nil
}

// Execute runs the command tree with args and returns the process exit code.
// Errors and their hints are printed to stderr.
func Execute(ctx context.Context, args []string, options ...Option) int {
	a := newApp(options...)
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	_ = a.logger.Sync()
	if err == nil {
		return 0
	}

	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(a.stderr, "hint: %s\n", hint)
	}
	if errors.Is(err, prompt.ErrAborted) {
		return 130
	}
	return 1
}
