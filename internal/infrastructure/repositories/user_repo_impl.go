package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/infrastructure/models"
	"paymint.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	if m.ID == uuid.Nil {
		m.ID = utils.GenerateUUIDv7()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByUsernameOrEmail gets a user matching either username or email
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByWalletAddress gets a user by wallet address. Callers pass the
// lower-cased canonical form.
func (r *UserRepository) GetByWalletAddress(ctx context.Context, address string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update applies a partial set of column updates
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with filters, sorted by creation time descending
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter, limit, offset int) ([]*entities.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.WalletAddress != "" {
		query = query.Where("wallet_address = ?", filter.WalletAddress)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, total, nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToModel(u *entities.User) *models.User {
	var passwordHash *string
	if u.PasswordHash != "" {
		passwordHash = &u.PasswordHash
	}
	return &models.User{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		WalletAddress:        u.WalletAddress,
		Name:                 u.Name.Ptr(),
		Image:                u.Image.Ptr(),
		Twitter:              u.Twitter.Ptr(),
		Website:              u.Website.Ptr(),
		IsAdmin:              u.IsAdmin,
		Status:               string(u.Status),
		PasswordHash:         passwordHash,
		EmailVerified:        u.EmailVerified,
		VerificationToken:    u.VerificationToken.Ptr(),
		ResetPasswordToken:   u.ResetPasswordToken.Ptr(),
		ResetPasswordExpires: u.ResetPasswordExpires,
		Nonce:                u.Nonce.Ptr(),
		LastLogin:            u.LastLogin,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func userToEntity(m *models.User) *entities.User {
	passwordHash := ""
	if m.PasswordHash != nil {
		passwordHash = *m.PasswordHash
	}
	return &entities.User{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		WalletAddress:        m.WalletAddress,
		Name:                 null.StringFromPtr(m.Name),
		Image:                null.StringFromPtr(m.Image),
		Twitter:              null.StringFromPtr(m.Twitter),
		Website:              null.StringFromPtr(m.Website),
		IsAdmin:              m.IsAdmin,
		Status:               entities.UserStatus(m.Status),
		PasswordHash:         passwordHash,
		EmailVerified:        m.EmailVerified,
		VerificationToken:    null.StringFromPtr(m.VerificationToken),
		ResetPasswordToken:   null.StringFromPtr(m.ResetPasswordToken),
		ResetPasswordExpires: m.ResetPasswordExpires,
		Nonce:                null.StringFromPtr(m.Nonce),
		LastLogin:            m.LastLogin,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
