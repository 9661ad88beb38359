package gh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// mockRunner replaces the run hook, recording args and returning canned output.
type mockRunner struct {
	lastArgs []string
	result   Result
	err      error
}

func (m *mockRunner) run(ctx context.Context, args ...string) (*Result, error) {
	m.lastArgs = args
	if m.err != nil {
		return nil, m.err
	}
	res := m.result
	return &res, nil
}

func newMockClient(res Result, err error) (*Client, *mockRunner) {
	m := &mockRunner{result: res, err: err}
	c := &Client{
		run:      m.run,
		lookPath: func(string) (string, error) { return "/usr/bin/gh", nil },
	}
	return c, m
}

// --- Installed ---

func TestInstalledFound(t *testing.T) {
	c, _ := newMockClient(Result{}, nil)
	if err := c.Installed(); err != nil {
		t.Fatalf("Installed: %v", err)
	}
}

func TestInstalledMissing(t *testing.T) {
	c, _ := newMockClient(Result{}, nil)
	c.lookPath = func(string) (string, error) { return "", errors.New("executable file not found") }
	if err := c.Installed(); err == nil {
		t.Fatal("expected error when gh is not on PATH")
	}
}

// --- Authenticated ---

func TestAuthenticatedLoggedIn(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0}, nil)
	ok, err := c.Authenticated(context.Background())
	if err != nil {
		t.Fatalf("Authenticated: %v", err)
	}
	if !ok {
		t.Error("expected authenticated")
	}
	wantArgs(t, m.lastArgs, "auth", "status")
}

func TestAuthenticatedLoggedOut(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "You are not logged into any GitHub hosts"}, nil)
	ok, err := c.Authenticated(context.Background())
	if err != nil {
		t.Fatalf("Authenticated: %v", err)
	}
	if ok {
		t.Error("expected not authenticated")
	}
}

func TestAuthenticatedExecFailure(t *testing.T) {
	c, _ := newMockClient(Result{}, fmt.Errorf("fork/exec: permission denied"))
	if _, err := c.Authenticated(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// --- RepoExists ---

func TestRepoExists(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0, Stdout: `{"name":"hello-world"}`}, nil)
	ok, err := c.RepoExists(context.Background(), "octocat", "hello-world")
	if err != nil {
		t.Fatalf("RepoExists: %v", err)
	}
	if !ok {
		t.Error("expected repository to exist")
	}
	wantArgs(t, m.lastArgs, "repo", "view", "octocat/hello-world", "--json", "name")
}

func TestRepoExistsNotFound(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "GraphQL: Could not resolve to a Repository"}, nil)
	ok, err := c.RepoExists(context.Background(), "octocat", "no-such-repo")
	if err != nil {
		t.Fatalf("RepoExists: %v", err)
	}
	if ok {
		t.Error("expected repository to be missing")
	}
}

// --- IsCollaborator ---

func TestIsCollaborator(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0}, nil)
	ok, err := c.IsCollaborator(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("IsCollaborator: %v", err)
	}
	if !ok {
		t.Error("expected collaborator")
	}
	wantArgs(t, m.lastArgs, "api", "repos/octocat/hello-world/collaborators/johndoe")
}

func TestIsCollaboratorNot(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "HTTP 404"}, nil)
	ok, err := c.IsCollaborator(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("IsCollaborator: %v", err)
	}
	if ok {
		t.Error("expected not a collaborator")
	}
}

// --- PendingInvitationID ---

func TestPendingInvitationFound(t *testing.T) {
	stdout := `[{"id":123,"invitee":{"login":"JohnDoe"}},{"id":456,"invitee":{"login":"other"}}]`
	c, m := newMockClient(Result{ExitCode: 0, Stdout: stdout}, nil)

	id, found, err := c.PendingInvitationID(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("PendingInvitationID: %v", err)
	}
	if !found {
		t.Fatal("expected invitation to be found")
	}
	if id != 123 {
		t.Errorf("id = %d, want 123", id)
	}
	wantArgs(t, m.lastArgs, "api", "repos/octocat/hello-world/invitations")
}

func TestPendingInvitationCaseInsensitive(t *testing.T) {
	stdout := `[{"id":77,"invitee":{"login":"johndoe"}}]`
	c, _ := newMockClient(Result{ExitCode: 0, Stdout: stdout}, nil)

	_, found, err := c.PendingInvitationID(context.Background(), "octocat", "hello-world", "JOHNDOE")
	if err != nil {
		t.Fatalf("PendingInvitationID: %v", err)
	}
	if !found {
		t.Error("login match should be case-insensitive")
	}
}

func TestPendingInvitationNotFound(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 0, Stdout: `[]`}, nil)
	_, found, err := c.PendingInvitationID(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("PendingInvitationID: %v", err)
	}
	if found {
		t.Error("expected no invitation")
	}
}

func TestPendingInvitationBadJSON(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 0, Stdout: `not json`}, nil)
	_, found, err := c.PendingInvitationID(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("PendingInvitationID: %v", err)
	}
	if found {
		t.Error("unparseable output should mean no invitation")
	}
}

func TestPendingInvitationAPIError(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "HTTP 403"}, nil)
	_, found, err := c.PendingInvitationID(context.Background(), "octocat", "hello-world", "johndoe")
	if err != nil {
		t.Fatalf("PendingInvitationID: %v", err)
	}
	if found {
		t.Error("expected no invitation on API error")
	}
}

// --- mutations ---

func TestRemoveCollaborator(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0}, nil)
	if err := c.RemoveCollaborator(context.Background(), "octocat", "hello-world", "johndoe"); err != nil {
		t.Fatalf("RemoveCollaborator: %v", err)
	}
	wantArgs(t, m.lastArgs, "api", "-X", "DELETE", "repos/octocat/hello-world/collaborators/johndoe")
}

func TestRemoveCollaboratorFailure(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "HTTP 403: Must have admin rights"}, nil)
	err := c.RemoveCollaborator(context.Background(), "octocat", "hello-world", "johndoe")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Must have admin rights") {
		t.Errorf("error = %v, want stderr included", err)
	}
}

func TestCancelInvitation(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0}, nil)
	if err := c.CancelInvitation(context.Background(), "octocat", "hello-world", 123); err != nil {
		t.Fatalf("CancelInvitation: %v", err)
	}
	wantArgs(t, m.lastArgs, "api", "-X", "DELETE", "repos/octocat/hello-world/invitations/123")
}

func TestInvite(t *testing.T) {
	c, m := newMockClient(Result{ExitCode: 0}, nil)
	if err := c.Invite(context.Background(), "octocat", "hello-world", "johndoe", "push"); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	wantArgs(t, m.lastArgs, "api", "-X", "PUT", "repos/octocat/hello-world/collaborators/johndoe", "-f", "permission=push")
}

func TestInviteFailure(t *testing.T) {
	c, _ := newMockClient(Result{ExitCode: 1, Stderr: "HTTP 422"}, nil)
	if err := c.Invite(context.Background(), "octocat", "hello-world", "johndoe", "admin"); err == nil {
		t.Fatal("expected error")
	}
}

// --- helpers ---

func wantArgs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
