package repositories

import (
	"context"

	"github.com/google/uuid"
	"paymint.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByWalletAddress(ctx context.Context, address string) (*entities.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	List(ctx context.Context, filter entities.UserFilter, limit, offset int) ([]*entities.User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
