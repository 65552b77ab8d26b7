package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/edocico/a11y-audit/internal/color"
	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/model"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List semantic color tokens and their per-mode values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, _, err := config.Load(cwd)
			if err != nil {
				return err
			}
			res := color.New()
			if cfg.Theme != "" {
				if err := res.LoadTheme(cfg.Theme); err != nil {
					return err
				}
			}
			light := res.Tokens(model.ModeLight)
			dark := res.Tokens(model.ModeDark)
			names := make([]string, 0, len(light))
			for name := range light {
				names = append(names, name)
			}
			for name := range dark {
				if _, ok := light[name]; !ok {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s %s\n", "TOKEN", "LIGHT", "DARK")
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s %s\n", name, light[name], dark[name])
			}
			return nil
		},
	}
	return cmd
}
