package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-poemgen/internal/tour"
	"github.com/goliatone/go-poemgen/pkg/format"
	"github.com/goliatone/go-poemgen/pkg/order"
)

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orderers, formatters, themes and profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.profiles()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			heading := lipgloss.NewRenderer(w).NewStyle().Bold(true)

			var b strings.Builder
			section(&b, heading, "Orderers", order.DefaultRegistry().List())
			section(&b, heading, "Formatters", format.DefaultRegistry().List())
			section(&b, heading, "Themes", format.Themes().Names())

			var profiles []string
			for _, name := range store.Names() {
				p, _ := store.Get(name)
				if p.Description == "" {
					profiles = append(profiles, name)
					continue
				}
				profiles = append(profiles, fmt.Sprintf("%-12s %s", name, p.Description))
			}
			section(&b, heading, "Profiles", profiles)

			_, err = io.WriteString(w, strings.TrimSuffix(b.String(), "\n"))
			return err
		},
	}
}

func section(b *strings.Builder, heading lipgloss.Style, title string, items []string) {
	b.WriteString(heading.Render(title))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("  ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (a *app) tourCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Walk through why strategies are composed instead of inherited",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts tour.Options
			if a.v.IsSet(keySeed) {
				seed := a.v.GetUint64(keySeed)
				opts.Seed = &seed
			}
			return tour.Run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().Uint64(keySeed, 0, "seed for the shuffled stages")
	return cmd
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show poemgen version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "poemgen %s\n", Version)
			return err
		},
	}
}
