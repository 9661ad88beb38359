package reinvite

import (
	"fmt"
	"strings"
)

// Permission is a GitHub repository permission level.
type Permission string

const (
	PermissionPull     Permission = "pull"
	PermissionTriage   Permission = "triage"
	PermissionPush     Permission = "push"
	PermissionMaintain Permission = "maintain"
	PermissionAdmin    Permission = "admin"
)

// DefaultPermission is granted when no level is specified.
const DefaultPermission = PermissionPush

// Permissions lists the valid levels in ascending order of access.
var Permissions = []Permission{
	PermissionPull,
	PermissionTriage,
	PermissionPush,
	PermissionMaintain,
	PermissionAdmin,
}

// ParsePermission validates a permission level, case-insensitively.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Permissions {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q: must be one of %s", s, permissionList())
}

func permissionList() string {
	names := make([]string, len(Permissions))
	for i, p := range Permissions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
