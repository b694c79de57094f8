package usecases

import (
	"github.com/google/uuid"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
)

// Actor identifies the authenticated caller of a usecase: the token subject
// plus the role set carried in the token claims.
type Actor struct {
	ID    uuid.UUID
	Roles entities.RoleList
}

// IsAdmin reports whether the actor holds any admin role.
func (a Actor) IsAdmin() bool {
	return a.Roles.HasAny(entities.RoleAdmin, entities.RoleSuperAdmin)
}

// MayManage returns nil when the actor owns the resource or holds an admin
// role, ErrForbidden otherwise.
func (a Actor) MayManage(ownerID uuid.UUID) error {
	if a.ID == ownerID || a.IsAdmin() {
		return nil
	}
	return domainerrors.ErrForbidden
}
