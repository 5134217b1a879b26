package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"paymint.backend/internal/domain/authz"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/domain/repositories"
	"paymint.backend/internal/domain/validation"
)

// UserUsecase handles user profile management
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// Get returns a user profile, visible to the user themselves and admins
func (u *UserUsecase) Get(ctx context.Context, caller *entities.User, id uuid.UUID) (*entities.User, error) {
	if !authz.IsOwnerOrAdmin(caller, id) {
		return nil, domainerrors.ErrForbidden
	}
	return u.userRepo.GetByID(ctx, id)
}

// List lists users, visible to any authenticated caller. Credential fields
// never serialize, so the directory is not privileged.
func (u *UserUsecase) List(ctx context.Context, caller *entities.User, filter entities.UserFilter, limit, offset int) ([]*entities.User, int64, error) {
	if caller == nil {
		return nil, 0, domainerrors.ErrForbidden
	}
	return u.userRepo.List(ctx, filter, limit, offset)
}

// Update applies a partial profile update for the user themselves or an admin
func (u *UserUsecase) Update(ctx context.Context, caller *entities.User, id uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	if !authz.IsOwnerOrAdmin(caller, id) {
		return nil, domainerrors.ErrForbidden
	}

	updates := make(map[string]interface{})
	if input.Username != nil {
		username, err := validation.ValidateUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		updates["username"] = username
	}
	if input.Email != nil {
		updates["email"] = strings.ToLower(*input.Email)
	}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.Twitter != nil {
		updates["twitter"] = *input.Twitter
	}
	if input.Website != nil {
		updates["website"] = *input.Website
	}

	if len(updates) > 0 {
		if err := u.userRepo.Update(ctx, id, updates); err != nil {
			if err == domainerrors.ErrAlreadyExists {
				return nil, domainerrors.Conflict("username or email already taken", err)
			}
			return nil, err
		}
	}

	return u.userRepo.GetByID(ctx, id)
}

// Delete removes a user account; admin only
func (u *UserUsecase) Delete(ctx context.Context, caller *entities.User, id uuid.UUID) error {
	if !authz.IsAdmin(caller) {
		return domainerrors.ErrForbidden
	}
	return u.userRepo.Delete(ctx, id)
}
