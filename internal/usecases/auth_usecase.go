package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/domain/repositories"
	"paymint.backend/internal/domain/validation"
	"paymint.backend/pkg/crypto"
	"paymint.backend/pkg/ethsig"
	"paymint.backend/pkg/jwt"
	"paymint.backend/pkg/logger"
	"paymint.backend/pkg/utils"
)

// provisionAttempts bounds the username retries when a wallet login creates
// an account.
const provisionAttempts = 10

// NonceStore issues and consumes single-use wallet login nonces
type NonceStore interface {
	Issue(ctx context.Context, walletAddress string) (string, error)
	Consume(ctx context.Context, walletAddress string) (string, error)
}

// AuthUsecase handles signup, login, and wallet authentication
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	nonces     NonceStore
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService, nonces NonceStore) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		nonces:     nonces,
	}
}

// Register creates a password-authenticated account and logs it in
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, *entities.TokenResponse, error) {
	username, err := validation.ValidateUsername(input.Username)
	if err != nil {
		return nil, nil, err
	}
	if err := validation.ValidatePasswordStrength(input.Password); err != nil {
		return nil, nil, err
	}
	walletAddress, err := validation.NormalizeEVMAddress("wallet_address", input.WalletAddress)
	if err != nil {
		return nil, nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &entities.User{
		Username:      username,
		Email:         strings.ToLower(input.Email),
		WalletAddress: walletAddress,
		IsAdmin:       false,
		Status:        entities.UserStatusActive,
		PasswordHash:  passwordHash,
	}
	if input.Name != "" {
		user.Name.SetValid(input.Name)
	}
	if token, err := crypto.GenerateVerificationToken(); err == nil {
		user.VerificationToken.SetValid(token)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if err == domainerrors.ErrAlreadyExists {
			return nil, nil, domainerrors.Conflict("username, email, or wallet address already registered", err)
		}
		return nil, nil, err
	}

	logger.Info(ctx, "user registered", zap.String("username", user.Username))

	token, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login authenticates a username-or-email plus password pair. Unknown
// accounts and wrong passwords are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.TokenResponse, error) {
	user, err := u.userRepo.GetByUsernameOrEmail(ctx, input.Username)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if user.Status != entities.UserStatusActive {
		return nil, domainerrors.ErrInactiveUser
	}

	return u.issueToken(ctx, user)
}

// WalletNonce issues a fresh signing challenge for a wallet address
func (u *AuthUsecase) WalletNonce(ctx context.Context, input *entities.WalletNonceInput) (*entities.WalletNonceResponse, error) {
	walletAddress, err := validation.NormalizeEVMAddress("wallet_address", input.WalletAddress)
	if err != nil {
		return nil, err
	}

	nonce, err := u.nonces.Issue(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	return &entities.WalletNonceResponse{
		Nonce:   nonce,
		Message: nonceMessage(nonce),
	}, nil
}

// WalletLogin verifies a signed nonce challenge and authenticates the wallet
// holder, creating an account on first login.
func (u *AuthUsecase) WalletLogin(ctx context.Context, input *entities.WalletLoginInput) (*entities.TokenResponse, error) {
	walletAddress, err := validation.NormalizeEVMAddress("wallet_address", input.WalletAddress)
	if err != nil {
		return nil, err
	}

	nonce, err := u.nonces.Consume(ctx, walletAddress)
	if err != nil {
		return nil, domainerrors.Unauthorized("no pending login challenge for this wallet")
	}
	if input.Message != nonceMessage(nonce) {
		return nil, domainerrors.ErrInvalidSignature
	}
	if !ethsig.Verify(walletAddress, input.Message, input.Signature) {
		return nil, domainerrors.ErrInvalidSignature
	}

	user, err := u.userRepo.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		if err != domainerrors.ErrNotFound {
			return nil, err
		}
		user, err = u.provisionWalletUser(ctx, walletAddress)
		if err != nil {
			return nil, err
		}
	}

	if user.Status != entities.UserStatusActive {
		return nil, domainerrors.ErrInactiveUser
	}

	return u.issueToken(ctx, user)
}

// GetMe returns the authenticated user's profile
func (u *AuthUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password and swaps in a new one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == "" || !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	if err := validation.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.Update(ctx, userID, map[string]interface{}{
		"password_hash": passwordHash,
	})
}

func (u *AuthUsecase) issueToken(ctx context.Context, user *entities.User) (*entities.TokenResponse, error) {
	token, err := u.jwtService.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := u.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		logger.Warn(ctx, "failed to record last login", zap.String("username", user.Username), zap.Error(err))
	}

	return &entities.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(u.jwtService.Expiry().Seconds()),
	}, nil
}

func (u *AuthUsecase) provisionWalletUser(ctx context.Context, walletAddress string) (*entities.User, error) {
	for i := 0; i < provisionAttempts; i++ {
		username := utils.GenerateUsername()
		user := &entities.User{
			Username:      username,
			Email:         fmt.Sprintf("%s@placeholder.com", username),
			WalletAddress: walletAddress,
			Status:        entities.UserStatusActive,
		}
		err := u.userRepo.Create(ctx, user)
		if err == nil {
			logger.Info(ctx, "wallet user provisioned",
				zap.String("username", username),
				zap.String("wallet_address", walletAddress))
			return user, nil
		}
		if err != domainerrors.ErrAlreadyExists {
			return nil, err
		}
		// Username collision, or a concurrent login created the account first.
		if existing, getErr := u.userRepo.GetByWalletAddress(ctx, walletAddress); getErr == nil {
			return existing, nil
		}
	}
	return nil, domainerrors.ErrProvisioning
}

func nonceMessage(nonce string) string {
	return "Sign this message to log in to Paymint.\n\nNonce: " + nonce
}
