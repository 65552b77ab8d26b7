package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edocico/a11y-audit/internal/color"
	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/engine"
	"github.com/edocico/a11y-audit/internal/model"
	"github.com/edocico/a11y-audit/internal/report"
	"github.com/edocico/a11y-audit/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTokensCmd())
}

func newScanCmd() *cobra.Command {
	var (
		format        string
		modeFlag      string
		failOn        string
		outputFile    string
		sarifOut      string
		baselinePath  string
		writeBaseline string
		exhaustive    bool
		useTUI        bool
		watchMode     bool
		jobs          int
		noCache       bool
		showSkipped   bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan JSX/TSX sources for color-contrast failures",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			cfg, cfgPath, err := config.Load(path)
			if err != nil {
				return err
			}
			if cfgPath != "" {
				slog.Debug("config loaded", "path", cfgPath)
			}
			res := color.New()
			if cfg.Theme != "" {
				if err := res.LoadTheme(cfg.Theme); err != nil {
					return fmt.Errorf("theme: %w", err)
				}
			}
			eng := engine.New(cfg, res, slog.Default())
			req := model.ScanRequest{
				Root:          path,
				ConfigPath:    cfgPath,
				Modes:         parseModes(modeFlag),
				ExhaustiveCVA: exhaustive,
				Jobs:          jobs,
				BaselinePath:  baselinePath,
				NoCache:       noCache,
			}

			result, err := eng.Scan(cmd.Context(), req)
			if err != nil {
				return err
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, result.Findings); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Baseline written: %s (%d findings)\n", writeBaseline, len(result.Findings))
				return nil
			}
			if sarifOut != "" {
				data, err := report.ToSARIF(result.Findings)
				if err != nil {
					return err
				}
				if err := os.WriteFile(sarifOut, data, 0o644); err != nil {
					return err
				}
			}
			if useTUI {
				return tui.Run(result.Findings)
			}
			if err := render(cmd, result, format, outputFile, sarifOut, showSkipped); err != nil {
				return err
			}

			if watchMode {
				fmt.Fprintln(cmd.ErrOrStderr(), "watching for changes (ctrl-c to stop)")
				err := eng.Watch(cmd.Context(), path, func(paths []string) {
					r, err := eng.ScanFiles(cmd.Context(), paths, req)
					if err != nil {
						slog.Error("rescan failed", "err", err)
						return
					}
					_ = render(cmd, r, format, "", "", showSkipped)
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			if failOn != "" && engine.AnyAtOrAbove(result.Findings, model.ParseSeverity(failOn)) {
				return fmt.Errorf("findings at or above %s severity", model.ParseSeverity(failOn))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Theme modes to audit: light|dark|both (default from config)")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Exit non-zero when findings reach this severity (low|medium|high|critical)")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json)")
	cmd.Flags().StringVar(&sarifOut, "sarif-out", "", "Write a SARIF report to file regardless of --format")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Suppress findings whose fingerprints appear in this baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with finding fingerprints and exit")
	cmd.Flags().BoolVar(&exhaustive, "exhaustive-cva", false, "Audit every variant option, not just the defaults")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse findings interactively")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Rescan when source files change")
	cmd.Flags().IntVar(&jobs, "jobs", 0, "Parallel file workers (0 = number of CPUs)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the extraction cache")
	cmd.Flags().BoolVar(&showSkipped, "show-skipped", false, "List classes the pairing policy skipped (table format)")
	return cmd
}

func parseModes(s string) []model.ThemeMode {
	switch s {
	case "light":
		return []model.ThemeMode{model.ModeLight}
	case "dark":
		return []model.ThemeMode{model.ModeDark}
	case "both":
		return []model.ThemeMode{model.ModeLight, model.ModeDark}
	}
	return nil
}

func render(cmd *cobra.Command, result *model.ScanResult, format, outputFile, sarifOut string, showSkipped bool) error {
	switch format {
	case "json":
		data, _ := json.MarshalIndent(result, "", "  ")
		if outputFile != "" {
			return os.WriteFile(outputFile, data, 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "sarif":
		if sarifOut != "" {
			return nil // already written
		}
		data, err := report.ToSARIF(result.Findings)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Files: %d  Pairs: %d  Findings: %d  Skipped: %d  (%s)\n",
			result.Files, result.Pairs, len(result.Findings), len(result.Skipped), result.Elapsed)
		for _, f := range result.Findings {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s] %s:%d %s\n", f.CheckID, f.Severity, f.File, f.Line, f.Message)
		}
		if showSkipped {
			for _, s := range result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "  skip %s:%d %q: %s\n", s.File, s.Line, s.ClassName, s.Reason)
			}
		}
	}
	return nil
}
