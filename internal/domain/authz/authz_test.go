package authz_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"paymint.backend/internal/domain/authz"
	"paymint.backend/internal/domain/entities"
)

func TestIsOwnerOrAdmin(t *testing.T) {
	ownerID := uuid.New()
	owner := &entities.User{ID: ownerID}
	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	adminOwner := &entities.User{ID: ownerID, IsAdmin: true}
	stranger := &entities.User{ID: uuid.New()}

	assert.True(t, authz.IsOwnerOrAdmin(owner, ownerID))
	assert.True(t, authz.IsOwnerOrAdmin(adminOwner, ownerID))
	assert.True(t, authz.IsOwnerOrAdmin(admin, ownerID))
	assert.False(t, authz.IsOwnerOrAdmin(stranger, ownerID))
	assert.False(t, authz.IsOwnerOrAdmin(nil, ownerID))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, authz.IsAdmin(&entities.User{IsAdmin: true}))
	assert.False(t, authz.IsAdmin(&entities.User{}))
	assert.False(t, authz.IsAdmin(nil))
}

func TestIsActive(t *testing.T) {
	assert.True(t, authz.IsActive(&entities.User{Status: entities.UserStatusActive}))
	assert.False(t, authz.IsActive(&entities.User{Status: entities.UserStatusInactive}))
	assert.False(t, authz.IsActive(&entities.User{Status: entities.UserStatusBanned}))
	assert.False(t, authz.IsActive(nil))
}
