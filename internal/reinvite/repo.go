// Package reinvite implements the remove-wait-reinvite workflow for
// refreshing a collaborator's access to a GitHub repository.
package reinvite

import (
	"fmt"
	"strings"
)

// RepoRef identifies a GitHub repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/name" string. Malformed input is rejected
// here, before any gh call is made.
func ParseRepo(s string) (RepoRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoRef{}, fmt.Errorf("invalid repository %q: use owner/name format", s)
	}
	return RepoRef{Owner: owner, Name: name}, nil
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}
