package reinvite

// StatusKind classifies a user's relationship to a repository at the time
// of the status query.
type StatusKind int

const (
	// StatusNotPresent means the user is neither a collaborator nor invited.
	StatusNotPresent StatusKind = iota
	// StatusCollaborator means the user currently has collaborator access.
	StatusCollaborator
	// StatusPending means the user has an open invitation awaiting acceptance.
	StatusPending
)

// Status is the observed collaborator state. InvitationID is set only
// when Kind is StatusPending.
type Status struct {
	Kind         StatusKind
	InvitationID int64
}

func (s Status) String() string {
	switch s.Kind {
	case StatusCollaborator:
		return "collaborator"
	case StatusPending:
		return "pending invitation"
	default:
		return "not present"
	}
}
