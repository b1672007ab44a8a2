package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/railway/internal/termfix"

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/wahlandcase/railway/internal/app"
	"github.com/wahlandcase/railway/internal/config"
	"github.com/wahlandcase/railway/internal/git"
	"github.com/wahlandcase/railway/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	repoPath     string
	dryRun       bool
	debug        bool
	noColor      bool
	maxCommits   int
	mainBranches []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "railway",
		Short:        "Terminal dashboard for a git repository's commit graph",
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&repoPath, "path", "p", ".", "Repository to open (any directory inside it)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log git commands instead of running them")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Write debug output to the log file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
	rootCmd.Flags().IntVarP(&maxCommits, "max-commits", "n", 0, "Number of commits to load (default from config)")
	rootCmd.Flags().StringSliceVar(&mainBranches, "main", nil, "Mainline branch candidates, in order")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	closer, err := logging.Setup(logging.Options{
		Path:       cfg.LogPath(),
		Debug:      debug || cfg.Log.Debug,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	repo, err := git.Open(repoPath)
	if err != nil {
		return err
	}
	slog.Info("opened repository", "path", repo.Path(), "dry_run", dryRun)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := git.NewRunner(repo.Path(), dryRun)

	var watcher *git.Watcher
	if cfg.Watch.Enabled {
		watcher, err = git.Watch(ctx, repo.GitDir(), cfg.Debounce())
		if err != nil {
			// Manual refresh still works
			slog.Warn("could not watch repository", "error", err)
			watcher = nil
		}
	}

	model := app.New(ctx, app.Options{
		Config:       cfg,
		Repo:         repo,
		Runner:       runner,
		Validator:    git.NewValidator(runner),
		Watcher:      watcher,
		MainBranches: mainBranches,
		MaxCommits:   maxCommits,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	stop()
	if watcher != nil {
		watcher.Wait()
	}
	return nil
}
