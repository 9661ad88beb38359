package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/gh-reinvite/internal/config"
	"github.com/battlewithbytes/gh-reinvite/internal/gh"
	"github.com/battlewithbytes/gh-reinvite/internal/history"
	"github.com/battlewithbytes/gh-reinvite/internal/reinvite"
	"github.com/battlewithbytes/gh-reinvite/internal/ui"
	"github.com/battlewithbytes/gh-reinvite/internal/version"
)

var (
	flagDelay      int
	flagPermission string
	flagYes        bool
)

var rootCmd = &cobra.Command{
	Use:           "gh-reinvite <owner/repository> <username>",
	Short:         "Remove and reinvite a collaborator on a GitHub repository",
	Version:       version.Version,
	Args:          cobra.ExactArgs(2),
	RunE:          runReinvite,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Long = ui.Green.Render("gh-reinvite") + " " + ui.Cyan.Render(version.Version) + "\n" +
		ui.Dim.Render("Removes a collaborator (or their pending invitation) from a GitHub repository, waits, and reinvites them at the chosen permission level.")

	rootCmd.Flags().IntVarP(&flagDelay, "delay", "d", 5, "delay in seconds between remove and reinvite")
	rootCmd.Flags().StringVarP(&flagPermission, "permission", "p", string(reinvite.DefaultPermission), "permission level for the reinvite (pull, triage, push, maintain, admin)")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompt")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, reinvite.ErrInterrupted) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, ui.Yellow.Render("Operation cancelled by user."))
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, ui.Red.Render("Error: ")+err.Error())
	os.Exit(exitCode(err))
}

// usageError marks input validation failures caught before any gh call.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode maps error kinds to distinct process exit codes.
func exitCode(err error) int {
	var (
		usage   *usageError
		repoErr *reinvite.RepoNotFoundError
		svcErr  *reinvite.ServiceError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return 2
	case errors.Is(err, reinvite.ErrGHNotInstalled):
		return 3
	case errors.Is(err, reinvite.ErrNotAuthenticated):
		return 4
	case errors.As(err, &repoErr):
		return 5
	case errors.As(err, &svcErr):
		return 6
	default:
		return 1
	}
}

func runReinvite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	repo, err := reinvite.ParseRepo(args[0])
	if err != nil {
		return &usageError{err}
	}
	username := strings.TrimSpace(args[1])
	if username == "" {
		return &usageError{errors.New("username must not be empty")}
	}

	delay := cfg.Defaults.DelaySeconds
	if cmd.Flags().Changed("delay") {
		delay = flagDelay
	}
	if delay < 0 {
		return &usageError{fmt.Errorf("delay must be >= 0, got %d", delay)}
	}

	permValue := cfg.Defaults.Permission
	if permValue == "" || cmd.Flags().Changed("permission") {
		permValue = flagPermission
	}
	perm, err := reinvite.ParsePermission(permValue)
	if err != nil {
		return &usageError{err}
	}

	runner := reinvite.NewRunner(gh.NewClient())
	report, runErr := runner.Run(cmd.Context(), reinvite.Options{
		Repo:         repo,
		Username:     username,
		DelaySeconds: delay,
		Permission:   perm,
		SkipConfirm:  flagYes,
	})
	recordHistory(cfg, report, runErr)
	return runErr
}

// recordHistory persists the run outcome. Best-effort: a history failure
// never changes the workflow's result.
func recordHistory(cfg *config.Config, report *reinvite.Report, runErr error) {
	if report == nil || !cfg.History.Enabled {
		return
	}
	path := cfg.History.Path
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return
		}
		path = p
	}
	store, err := history.Open(path)
	if err != nil {
		return
	}
	defer store.Close()

	outcome := history.OutcomeCompleted
	switch {
	case report.Cancelled:
		outcome = history.OutcomeCancelled
	case errors.Is(runErr, reinvite.ErrInterrupted):
		outcome = history.OutcomeInterrupted
	case runErr != nil:
		outcome = history.OutcomeFailed
	}

	store.Record(&history.Run{
		Repository:   report.Repo.String(),
		Username:     report.Username,
		StatusBefore: report.StatusBefore.String(),
		Removed:      report.Removed,
		Invited:      report.Invited,
		Permission:   string(report.Permission),
		Outcome:      outcome,
	})
}
