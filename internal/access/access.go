// Package access derives a user's effective permissions from profile state.
// Everything here is a pure function of the User value; nothing touches the
// database.
package access

import "github.com/hawbir/minbar/backend/internal/models"

// Evaluator answers permission questions. The bootstrap admin email is a
// deployment-time configuration value: the matching account holds admin
// capability regardless of its stored role and can never be demoted.
type Evaluator struct {
	adminEmail string
}

func NewEvaluator(adminEmail string) *Evaluator {
	return &Evaluator{adminEmail: adminEmail}
}

// IsAdmin reports whether the user holds admin capability, either through
// their stored role or by being the bootstrap identity.
func (e *Evaluator) IsAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleAdmin || (e.adminEmail != "" && u.Email == e.adminEmail)
}

// IsVerified reports whether the user should be shown as verified. Admins are
// always shown as verified even if the flag was never set.
func (e *Evaluator) IsVerified(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.IsVerified || e.IsAdmin(u)
}

// CanModerate reports whether the user may approve/reject articles and manage
// other users.
func (e *Evaluator) CanModerate(u *models.User) bool {
	return e.IsAdmin(u)
}

// IsBootstrap reports whether the user is the undemotable bootstrap identity.
func (e *Evaluator) IsBootstrap(u *models.User) bool {
	return u != nil && e.adminEmail != "" && u.Email == e.adminEmail
}
