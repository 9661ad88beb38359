// Package gh wraps the GitHub CLI, the pre-authenticated proxy through
// which all repository collaborator operations are performed.
// All commands use exec.CommandContext with explicit argv — no shell strings.
package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const ghBin = "gh"

// Result holds the outcome of a single gh invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Client executes collaborator operations through the gh CLI.
// The run and lookPath hooks are overridden in tests to mock the binary.
type Client struct {
	run      func(ctx context.Context, args ...string) (*Result, error)
	lookPath func(file string) (string, error)
}

// NewClient returns a Client backed by the real gh binary.
func NewClient() *Client {
	return &Client{run: runGH, lookPath: exec.LookPath}
}

// runGH executes a gh subcommand and captures its output. A non-zero exit
// is reported through Result.ExitCode, not as an error; an error means gh
// itself could not be started.
func runGH(ctx context.Context, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, ghBin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("gh %s: %w", strings.Join(args, " "), err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

// Installed reports whether the gh binary is on PATH.
func (c *Client) Installed() error {
	_, err := c.lookPath(ghBin)
	return err
}

// Authenticated reports whether gh has a logged-in session.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	res, err := c.run(ctx, "auth", "status")
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// RepoExists reports whether the repository exists and is accessible to
// the authenticated user.
func (c *Client) RepoExists(ctx context.Context, owner, name string) (bool, error) {
	res, err := c.run(ctx, "repo", "view", owner+"/"+name, "--json", "name")
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// IsCollaborator reports whether the user currently has collaborator
// access. The collaborators endpoint returns 204 for collaborators and
// 404 otherwise, so the gh exit code is the answer.
func (c *Client) IsCollaborator(ctx context.Context, owner, name, username string) (bool, error) {
	res, err := c.run(ctx, "api", fmt.Sprintf("repos/%s/%s/collaborators/%s", owner, name, username))
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

type invitation struct {
	ID      int64 `json:"id"`
	Invitee struct {
		Login string `json:"login"`
	} `json:"invitee"`
}

// PendingInvitationID scans the repository's open invitations for the
// given user. Login comparison is case-insensitive, matching GitHub's
// username semantics.
func (c *Client) PendingInvitationID(ctx context.Context, owner, name, username string) (int64, bool, error) {
	res, err := c.run(ctx, "api", fmt.Sprintf("repos/%s/%s/invitations", owner, name))
	if err != nil {
		return 0, false, err
	}
	if res.ExitCode != 0 || res.Stdout == "" {
		return 0, false, nil
	}

	var invitations []invitation
	if err := json.Unmarshal([]byte(res.Stdout), &invitations); err != nil {
		return 0, false, nil
	}
	for _, inv := range invitations {
		if strings.EqualFold(inv.Invitee.Login, username) {
			return inv.ID, true, nil
		}
	}
	return 0, false, nil
}

// RemoveCollaborator revokes the user's collaborator access.
func (c *Client) RemoveCollaborator(ctx context.Context, owner, name, username string) error {
	return c.mutate(ctx, "api", "-X", "DELETE", fmt.Sprintf("repos/%s/%s/collaborators/%s", owner, name, username))
}

// CancelInvitation deletes a pending invitation by ID.
func (c *Client) CancelInvitation(ctx context.Context, owner, name string, invitationID int64) error {
	return c.mutate(ctx, "api", "-X", "DELETE", fmt.Sprintf("repos/%s/%s/invitations/%s", owner, name, strconv.FormatInt(invitationID, 10)))
}

// Invite grants (or re-grants) collaborator access at the given
// permission level. GitHub sends a fresh invitation on PUT when the user
// is not already a collaborator.
func (c *Client) Invite(ctx context.Context, owner, name, username, permission string) error {
	return c.mutate(ctx, "api", "-X", "PUT",
		fmt.Sprintf("repos/%s/%s/collaborators/%s", owner, name, username),
		"-f", "permission="+permission)
}

// mutate runs a gh command whose non-zero exit is an error, surfacing
// whatever gh wrote to stderr.
func (c *Client) mutate(ctx context.Context, args ...string) error {
	res, err := c.run(ctx, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		msg := res.Stderr
		if msg == "" {
			msg = res.Stdout
		}
		return fmt.Errorf("gh %s exited %d: %s", strings.Join(args, " "), res.ExitCode, msg)
	}
	return nil
}
