package services

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   uint
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanModify reports whether the actor owns ownerID's content or is an admin.
func (a Actor) CanModify(ownerID uint) bool {
	return a.ID == ownerID || a.IsAdmin()
}

func isForbidden(err error) bool {
	return errors.Is(err, errors.ErrCodeForbidden)
}
