package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) CanReadReports() bool {
	switch p.Role {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	default:
		return false
	}
}

// CanReadRowLevel reports whether the principal may see booking-level listings
// and integrity diagnostics, not only aggregates.
func (p Principal) CanReadRowLevel() bool {
	return p.Role == RoleAdmin || p.Role == RoleAnalyst
}
