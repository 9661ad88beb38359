package reinvite

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/battlewithbytes/gh-reinvite/internal/ui"
)

// GitHub is the capability set the workflow needs from the gh proxy.
type GitHub interface {
	Installed() error
	Authenticated(ctx context.Context) (bool, error)
	RepoExists(ctx context.Context, owner, name string) (bool, error)
	IsCollaborator(ctx context.Context, owner, name, username string) (bool, error)
	PendingInvitationID(ctx context.Context, owner, name, username string) (int64, bool, error)
	RemoveCollaborator(ctx context.Context, owner, name, username string) error
	CancelInvitation(ctx context.Context, owner, name string, invitationID int64) error
	Invite(ctx context.Context, owner, name, username, permission string) error
}

// Options configures a single run. Constructed once from CLI input and
// immutable for the run's lifetime.
type Options struct {
	Repo         RepoRef
	Username     string
	DelaySeconds int
	Permission   Permission
	SkipConfirm  bool
}

// Report summarizes what a run actually did.
type Report struct {
	Repo         RepoRef
	Username     string
	StatusBefore Status
	Removed      bool
	Invited      bool
	Permission   Permission
	Cancelled    bool
}

// Runner executes the remove-wait-reinvite workflow. It owns no state
// beyond the current invocation.
type Runner struct {
	Client GitHub
	Out    io.Writer

	// Confirm asks the operator a yes/no question. Replaced in tests.
	Confirm func(prompt string) (bool, error)
}

// NewRunner returns a Runner writing to stdout with an interactive
// confirmation prompt.
func NewRunner(client GitHub) *Runner {
	return &Runner{
		Client:  client,
		Out:     os.Stdout,
		Confirm: askConfirm,
	}
}

// Run executes the workflow end to end: preflight, repository
// validation, status classification, confirmation, removal, delay,
// reinvite. The first failure aborts the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	rep := &Report{
		Repo:       opts.Repo,
		Username:   opts.Username,
		Permission: opts.Permission,
	}

	r.printHeader(opts)

	if err := r.Client.Installed(); err != nil {
		return rep, fmt.Errorf("%w\ninstall it from: https://cli.github.com/", ErrGHNotInstalled)
	}

	authed, err := r.Client.Authenticated(ctx)
	if err != nil {
		return rep, &ServiceError{Op: "checking authentication", Err: err}
	}
	if !authed {
		return rep, fmt.Errorf("%w\nplease run: gh auth login", ErrNotAuthenticated)
	}
	fmt.Fprintf(r.Out, "%s GitHub CLI authenticated\n", ui.OK)

	exists, err := r.Client.RepoExists(ctx, opts.Repo.Owner, opts.Repo.Name)
	if err != nil {
		return rep, &ServiceError{Op: "checking repository", Err: err}
	}
	if !exists {
		return rep, &RepoNotFoundError{Repo: opts.Repo}
	}
	fmt.Fprintf(r.Out, "%s Repository %s is accessible\n", ui.OK, ui.Bold.Render(opts.Repo.String()))

	status, err := r.classify(ctx, opts)
	if err != nil {
		return rep, err
	}
	rep.StatusBefore = status

	if !opts.SkipConfirm {
		ok, err := r.Confirm(confirmPrompt(opts, status))
		if err != nil {
			return rep, err
		}
		if !ok {
			rep.Cancelled = true
			fmt.Fprintln(r.Out, "Operation cancelled.")
			return rep, nil
		}
	}

	switch status.Kind {
	case StatusCollaborator:
		fmt.Fprintf(r.Out, "\n%s Removing collaborator...\n", ui.Bold.Render("Step 1:"))
		if err := r.Client.RemoveCollaborator(ctx, opts.Repo.Owner, opts.Repo.Name, opts.Username); err != nil {
			fmt.Fprintf(r.Out, "%s Failed to remove collaborator\n", ui.Fail)
			return rep, &ServiceError{Op: "removing collaborator", Err: err}
		}
		rep.Removed = true
		fmt.Fprintf(r.Out, "%s Removed %s from %s\n", ui.OK, ui.Bold.Render(opts.Username), ui.Bold.Render(opts.Repo.String()))

	case StatusPending:
		fmt.Fprintf(r.Out, "\n%s Removing pending invitation...\n", ui.Bold.Render("Step 1:"))
		if err := r.Client.CancelInvitation(ctx, opts.Repo.Owner, opts.Repo.Name, status.InvitationID); err != nil {
			fmt.Fprintf(r.Out, "%s Failed to remove pending invitation\n", ui.Fail)
			return rep, &ServiceError{Op: "cancelling invitation", Err: err}
		}
		rep.Removed = true
		fmt.Fprintf(r.Out, "%s Removed pending invitation\n", ui.OK)

	case StatusNotPresent:
		// Nothing to remove.
	}

	if opts.DelaySeconds > 0 {
		fmt.Fprintf(r.Out, "\n%s Waiting %d seconds...\n", ui.Bold.Render("Step 2:"), opts.DelaySeconds)
		if err := r.countdown(ctx, opts.DelaySeconds); err != nil {
			return rep, r.interrupted(rep)
		}
	}

	// A signal may have landed with no delay configured; the invite must
	// not fire on a cancelled context either way.
	if ctx.Err() != nil {
		return rep, r.interrupted(rep)
	}

	fmt.Fprintf(r.Out, "\n%s Reinviting collaborator...\n", ui.Bold.Render("Step 3:"))
	if err := r.Client.Invite(ctx, opts.Repo.Owner, opts.Repo.Name, opts.Username, string(opts.Permission)); err != nil {
		fmt.Fprintf(r.Out, "%s Failed to reinvite collaborator\n", ui.Fail)
		if rep.Removed {
			r.warnRemovedNotReinvited(rep)
		}
		return rep, &ServiceError{Op: "inviting collaborator", Err: err}
	}
	rep.Invited = true
	fmt.Fprintf(r.Out, "%s Invited %s to %s with %s permissions\n",
		ui.OK, ui.Bold.Render(opts.Username), ui.Bold.Render(opts.Repo.String()), ui.Bold.Render(string(opts.Permission)))

	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, ui.Green.Render("✓ Operation completed successfully!"))
	fmt.Fprintf(r.Out, "%s has been reinvited to %s with %s permissions.\n",
		ui.Bold.Render(opts.Username), ui.Bold.Render(opts.Repo.String()), ui.Bold.Render(string(opts.Permission)))

	return rep, nil
}

// classify determines exactly one of the three collaborator states.
func (r *Runner) classify(ctx context.Context, opts Options) (Status, error) {
	isCollab, err := r.Client.IsCollaborator(ctx, opts.Repo.Owner, opts.Repo.Name, opts.Username)
	if err != nil {
		return Status{}, &ServiceError{Op: "checking collaborator status", Err: err}
	}
	if isCollab {
		fmt.Fprintf(r.Out, "%s %s is currently a collaborator\n", ui.OK, ui.Bold.Render(opts.Username))
		return Status{Kind: StatusCollaborator}, nil
	}

	fmt.Fprintf(r.Out, "%s %s is not currently a collaborator on %s\n",
		ui.Warn, ui.Bold.Render(opts.Username), ui.Bold.Render(opts.Repo.String()))

	id, found, err := r.Client.PendingInvitationID(ctx, opts.Repo.Owner, opts.Repo.Name, opts.Username)
	if err != nil {
		return Status{}, &ServiceError{Op: "checking pending invitations", Err: err}
	}
	if found {
		fmt.Fprintf(r.Out, "%s Found pending invitation for %s\n", ui.Warn, ui.Bold.Render(opts.Username))
		return Status{Kind: StatusPending, InvitationID: id}, nil
	}

	fmt.Fprintf(r.Out, "%s No pending invitation found\n", ui.Warn)
	return Status{Kind: StatusNotPresent}, nil
}

func confirmPrompt(opts Options, status Status) string {
	switch status.Kind {
	case StatusCollaborator:
		return fmt.Sprintf("Remove %s from %s and reinvite them?", opts.Username, opts.Repo)
	case StatusPending:
		return fmt.Sprintf("Remove pending invitation and reinvite %s?", opts.Username)
	default:
		return fmt.Sprintf("Invite %s to %s?", opts.Username, opts.Repo)
	}
}

func (r *Runner) interrupted(rep *Report) error {
	if rep.Removed {
		r.warnRemovedNotReinvited(rep)
	}
	return ErrInterrupted
}

func (r *Runner) warnRemovedNotReinvited(rep *Report) {
	fmt.Fprintf(r.Out, "%s %s was removed from %s but NOT reinvited — reinvite manually to restore access\n",
		ui.Warn, ui.Bold.Render(rep.Username), ui.Bold.Render(rep.Repo.String()))
}

func (r *Runner) printHeader(opts Options) {
	body := ui.Bold.Render("GitHub Reinvite Tool") + "\n" +
		"Repository: " + ui.White.Render(opts.Repo.String()) + "\n" +
		"User:       " + ui.White.Render(opts.Username) + "\n" +
		"Delay:      " + ui.White.Render(fmt.Sprintf("%d seconds", opts.DelaySeconds)) + "\n" +
		"Permission: " + ui.White.Render(string(opts.Permission))
	fmt.Fprintln(r.Out, ui.Panel.Render(body))
}
