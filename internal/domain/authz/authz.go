// Package authz holds the authorization predicates gating per-resource
// access. They are plain functions over (caller, resource) pairs; there is no
// role hierarchy.
package authz

import (
	"github.com/google/uuid"
	"paymint.backend/internal/domain/entities"
)

// IsOwnerOrAdmin reports whether the caller may read or mutate a resource
// owned by ownerID: true iff the caller is that owner or an admin.
func IsOwnerOrAdmin(caller *entities.User, ownerID uuid.UUID) bool {
	if caller == nil {
		return false
	}
	return caller.ID == ownerID || caller.IsAdmin
}

// IsAdmin reports whether the caller holds the admin flag.
func IsAdmin(caller *entities.User) bool {
	return caller != nil && caller.IsAdmin
}

// IsActive reports whether the caller's account may be used at all.
func IsActive(caller *entities.User) bool {
	return caller != nil && caller.Status == entities.UserStatusActive
}
