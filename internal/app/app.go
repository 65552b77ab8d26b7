package app

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edocico/a11y-audit/internal/cli"
)

func BuildRoot() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "a11y-audit",
		Short: "Static color-contrast auditor for JSX and TSX sources",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cli.AddCommands(root)
	return root
}
