package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"stillpoint/internal/bootstrap"
	analyticsinadapter "stillpoint/internal/modules/analytics/adapter/in"
	breathinginadapter "stillpoint/internal/modules/breathing/adapter/in"
	timerdto "stillpoint/internal/modules/timer/dto"
	"stillpoint/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir  string
	backend  string
	logLevel string
	profile  string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "stillpoint",
		Short:         "Meditation timer with streaks and achievements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding config.yaml and the store")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "store backend: sqlite|file|memory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&flags.profile, "profile", "", "profile name used to namespace stored keys")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newPresetsCmd(flags))
	root.AddCommand(newSessionsCmd(flags))
	root.AddCommand(newStreakCmd(flags))
	root.AddCommand(newAchievementsCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newDataCmd(flags))
	root.AddCommand(newBreathingCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.profile != "" {
		cfg.Profile = flags.profile
	}
	return bootstrap.New(cfg, bootstrap.Options{})
}

// withApp builds the app for one command and releases it afterwards.
func withApp(flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	runErr := fn(app)
	closeErr := app.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, bootstrap.RunTUI)
		},
	}
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	var minutes int
	var breathe string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one countdown in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if minutes == 0 {
					minutes = app.Config.DefaultMinutes
				}
				if !cmd.Flags().Changed("breathe") {
					breathe = app.Config.Breathing
				}
				if breathe != "" {
					if _, _, err := app.BreathingCLI.Show(cmd.Context(), breathe); err != nil {
						return err
					}
				}
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				out := cmd.OutOrStdout()
				result, err := app.TimerCLI.Run(ctx, minutes, func(s timerdto.TimerOutput) {
					if s.Phase != timerdto.PhaseRunning {
						return
					}
					cue, _ := app.BreathingCLI.Cue(ctx, breathe, s.TotalSeconds-s.RemainingSeconds)
					_, _ = fmt.Fprintf(out, "\r%s  %3.0f%%  %-10s", s.Clock, s.Progress, cue)
				})
				_, _ = fmt.Fprintln(out)
				if errors.Is(err, context.Canceled) {
					_, _ = fmt.Fprintln(out, "stopped, nothing recorded")
					return nil
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "session complete: %s\n", analyticsinadapter.FormatDuration(result.Duration))
				for _, a := range result.Unlocked {
					_, _ = fmt.Fprintf(out, "unlocked %s %s\n", a.Icon, a.Title)
				}
				streak := app.StreakCLI.Show(ctx)
				_, _ = fmt.Fprintf(out, "streak: %d day(s)\n", streak.CurrentStreak)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "countdown length in minutes (default from config)")
	cmd.Flags().StringVar(&breathe, "breathe", "", "breathing pattern id to cue while sitting (default from config)")
	return cmd
}

func newBreathingCmd(flags *globalFlags) *cobra.Command {
	breathing := &cobra.Command{Use: "breathing", Short: "Breathing guide patterns"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List breathing patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				for _, p := range app.BreathingCLI.List(cmd.Context()) {
					marker := " "
					if p.ID == app.Config.Breathing {
						marker = "*"
					}
					_, _ = fmt.Fprintf(out, "%s %-16s %-8s x%-3d %4ds  %s\n", marker, p.ID, breathinginadapter.Rhythm(p), p.Cycles, p.TotalSeconds, p.Name)
				}
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Walk through one run of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				p, steps, err := app.BreathingCLI.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s (%s)\n%s\n\n", p.Name, breathinginadapter.Rhythm(p), p.Description)
				for _, st := range steps {
					_, _ = fmt.Fprintf(out, "  cycle %d/%d  %-7s %ds\n", st.Cycle, p.Cycles, st.Phase, st.Seconds)
				}
				return nil
			})
		},
	}

	breathing.AddCommand(list, show)
	return breathing
}

func newPresetsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List countdown presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				for _, p := range app.TimerCLI.Presets(cmd.Context()) {
					marker := " "
					if p == app.Config.DefaultMinutes {
						marker = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d min\n", marker, p)
				}
				return nil
			})
		},
	}
}

func newSessionsCmd(flags *globalFlags) *cobra.Command {
	sessions := &cobra.Command{Use: "sessions", Short: "Recorded session commands"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				items, err := app.SessionCLI.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range items {
					when := s.Timestamp
					if !s.CompletedAt.IsZero() {
						when = s.CompletedAt.Local().Format("2006-01-02 15:04")
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", when, analyticsinadapter.FormatDuration(s.Duration))
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.SessionCLI.Clear(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sessions cleared")
				return nil
			})
		},
	}

	sessions.AddCommand(list, clearCmd)
	return sessions
}

func newStreakCmd(flags *globalFlags) *cobra.Command {
	streak := &cobra.Command{Use: "streak", Short: "Daily streak commands"}

	streak.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s := app.StreakCLI.Show(cmd.Context())
				status := "lapsed"
				switch {
				case s.ActiveToday:
					status = "done today"
				case s.AtRisk:
					status = "sit today to keep it"
				case !s.Lapsed:
					status = "not started"
				}
				last := s.LastSessionDate
				if last == "" {
					last = "never"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d day(s)\nlast session: %s\nstatus: %s\n", s.CurrentStreak, last, status)
				return nil
			})
		},
	})
	streak.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the streak to zero",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.StreakCLI.Reset(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "streak reset")
				return nil
			})
		},
	})
	return streak
}

func newAchievementsCmd(flags *globalFlags) *cobra.Command {
	achievements := &cobra.Command{Use: "achievements", Short: "Achievement commands"}

	achievements.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List achievements with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				for _, a := range app.AchievementCLI.List(cmd.Context()) {
					mark := "[ ]"
					if a.Unlocked {
						mark = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-22s %d/%d (%d%%)\n", mark, a.Icon, a.Title, a.Current, a.Target, a.Percent)
				}
				return nil
			})
		},
	})
	achievements.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show unlock totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				s := app.AchievementCLI.Stats(cmd.Context())
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d unlocked (%d%%)\n", s.Unlocked, s.Total, s.Percentage)
				return nil
			})
		},
	})
	achievements.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Evaluate achievements against the stored history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				unlocked, err := app.AchievementCLI.Check(cmd.Context())
				if err != nil {
					return err
				}
				if len(unlocked) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing new")
					return nil
				}
				for _, a := range unlocked {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unlocked %s %s\n", a.Icon, a.Title)
				}
				return nil
			})
		},
	})
	achievements.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one achievement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				a, err := app.AchievementCLI.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s %s (%s)\n%s\nprogress: %d/%d (%d%%)\n", a.Icon, a.Title, a.ID, a.Description, a.Current, a.Target, a.Percent)
				if a.Unlocked {
					_, _ = fmt.Fprintf(out, "unlocked at: %s\n", a.UnlockedAt)
				}
				return nil
			})
		},
	})
	return achievements
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var days, weeks int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				return app.AnalyticsCLI.Report(cmd.Context(), cmd.OutOrStdout(), app.Config.Language, days, weeks)
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "days in the daily series (max 366)")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "weeks in the weekly series (max 104)")
	return cmd
}

func newDataCmd(flags *globalFlags) *cobra.Command {
	data := &cobra.Command{Use: "data", Short: "Backup and restore commands"}

	var format, outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export sessions, streak and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				switch strings.ToLower(format) {
				case "json":
					return exportJSON(cmd, app, outPath)
				case "markdown", "md":
					if strings.TrimSpace(outPath) == "" {
						return errors.New("--out is required for markdown export")
					}
					out, err := app.BackupCLI.ExportJournal(cmd.Context(), outPath)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sessions to %s\n", out.Sessions, out.Path)
					return nil
				default:
					return fmt.Errorf("unknown format %q (json|markdown)", format)
				}
			})
		},
	}
	export.Flags().StringVar(&format, "format", "json", "json|markdown")
	export.Flags().StringVar(&outPath, "out", "", "output file (json defaults to stdout)")

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Replace local data with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(app *bootstrap.App) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				out, err := app.BackupCLI.Import(cmd.Context(), f)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions, streak %d, %d achievements unlocked\n", out.Sessions, out.CurrentStreak, out.Unlocked)
				return nil
			})
		},
	}

	var yes bool
	wipe := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all sessions, the streak and achievement progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to wipe without --yes")
			}
			return withApp(flags, func(app *bootstrap.App) error {
				if err := app.BackupCLI.Wipe(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all data wiped")
				return nil
			})
		},
	}
	wipe.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")

	data.AddCommand(export, importCmd, wipe)
	return data
}

func exportJSON(cmd *cobra.Command, app *bootstrap.App, path string) error {
	var w io.Writer = cmd.OutOrStdout()
	if strings.TrimSpace(path) != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	out, err := app.BackupCLI.ExportJSON(cmd.Context(), w)
	if err != nil {
		return err
	}
	if path != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", out.Sessions, path)
	}
	return nil
}
