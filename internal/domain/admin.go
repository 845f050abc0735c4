package domain

import "time"

// AdminRole tags the privilege level carried in tokens. The system currently
// has a single privileged role.
type AdminRole string

const RoleAdmin AdminRole = "admin"

// Admin is the credential record for a console administrator.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	CreatedAt    time.Time
}
