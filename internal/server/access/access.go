// Package access holds the authorization predicates. They are pure: every
// input, including the actor, is passed explicitly.
package access

import (
	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/models"
)

// CanMutate reports whether actor may modify or delete a record owned by
// ownerUserID.
func CanMutate(actor models.SessionIdentity, ownerUserID string) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.UserID != "" && actor.UserID == ownerUserID
}

// CheckMutate is CanMutate returning common.ErrorUnauthorized on refusal.
func CheckMutate(actor models.SessionIdentity, ownerUserID string) error {
	if !CanMutate(actor, ownerUserID) {
		return common.ErrorUnauthorized
	}
	return nil
}

// CheckRoleChange allows role assignments only to admins. A non-admin can
// never change a role, including their own.
func CheckRoleChange(actor models.SessionIdentity, newRole models.Role) error {
	if !newRole.Valid() {
		return common.NewValidationError("role", "must be one of user, vip, admin")
	}
	if actor.Role != models.RoleAdmin {
		return common.ErrorUnauthorized
	}
	return nil
}
