package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/internal/interfaces/http/middleware"
	"paymint.backend/pkg/jwt"
)

// stubUserRepo serves a fixed set of users by ID; the write methods are never
// reached from the middleware.
type stubUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*entities.User, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) GetByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (s *stubUserRepo) List(ctx context.Context, filter entities.UserFilter, limit, offset int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func authTestRouter(t *testing.T, jwtService *jwt.JWTService, repo *stubUserRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(jwtService, repo), func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/admin", middleware.AuthMiddleware(jwtService, repo), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	user := &entities.User{
		ID:       uuid.New(),
		Username: "grubbly",
		Status:   entities.UserStatusActive,
	}
	repo := &stubUserRepo{users: map[uuid.UUID]*entities.User{user.ID: user}}
	router := authTestRouter(t, jwtService, repo)

	token, err := jwtService.GenerateToken(user.ID, user.Username, false)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "grubbly")
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for deleted account", func(t *testing.T) {
		orphan, err := jwtService.GenerateToken(uuid.New(), "ghost", false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+orphan)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredService := jwt.NewJWTService("test-secret", -time.Hour)
		expired, err := expiredService.GenerateToken(user.ID, user.Username, false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "expired")
	})
}

func TestAuthMiddleware_InactiveAccount(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	user := &entities.User{
		ID:       uuid.New(),
		Username: "grubbly",
		Status:   entities.UserStatusBanned,
	}
	repo := &stubUserRepo{users: map[uuid.UUID]*entities.User{user.ID: user}}
	router := authTestRouter(t, jwtService, repo)

	token, err := jwtService.GenerateToken(user.ID, user.Username, false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	admin := &entities.User{ID: uuid.New(), Username: "root", IsAdmin: true, Status: entities.UserStatusActive}
	user := &entities.User{ID: uuid.New(), Username: "grubbly", Status: entities.UserStatusActive}
	repo := &stubUserRepo{users: map[uuid.UUID]*entities.User{admin.ID: admin, user.ID: user}}
	router := authTestRouter(t, jwtService, repo)

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwtService.GenerateToken(admin.ID, admin.Username, true)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		token, err := jwtService.GenerateToken(user.ID, user.Username, false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
