package auth_test

import (
	"context"
	"testing"

	"github.com/ymnkynp/monkey-timeoff/internal/auth"
	autherrors "github.com/ymnkynp/monkey-timeoff/internal/auth/errors"
	"github.com/ymnkynp/monkey-timeoff/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	createFn      func(ctx context.Context, u *auth.User) error
	findByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	findByIDFn    func(ctx context.Context, id string) (*auth.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, autherrors.ErrInvalidCredentials
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, autherrors.ErrUserNotFound
}

func userWithPassword(t *testing.T, password string, active bool) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:           uuid.New(),
		EmployeeID:   uuid.New(),
		Email:        "sari@example.com",
		PasswordHash: string(hash),
		Role:         "employee",
		Active:       active,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues a signed token", func(t *testing.T) {
		u := userWithPassword(t, "hunter2-hunter2", true)
		repo := &fakeUserRepository{
			findByEmailFn: func(_ context.Context, email string) (*auth.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		resp, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "hunter2-hunter2"})

		assert.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(24*60*60), resp.ExpiresIn)

		claims := &domain.AccessClaims{}
		_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(_ *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
		assert.Equal(t, u.EmployeeID.String(), claims.EmployeeID)
		assert.Equal(t, "employee", claims.Role)
		assert.NotNil(t, claims.ExpiresAt)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		u := userWithPassword(t, "hunter2-hunter2", true)
		repo := &fakeUserRepository{
			findByEmailFn: func(_ context.Context, _ string) (*auth.User, error) { return u, nil },
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "wrong-password"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive account", func(t *testing.T) {
		u := userWithPassword(t, "hunter2-hunter2", false)
		repo := &fakeUserRepository{
			findByEmailFn: func(_ context.Context, _ string) (*auth.User, error) { return u, nil },
		}
		svc := auth.NewService(repo)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "hunter2-hunter2"})

		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "whatever-8"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success stores a bcrypt hash, never the password", func(t *testing.T) {
		var stored *auth.User
		repo := &fakeUserRepository{
			createFn: func(_ context.Context, u *auth.User) error {
				stored = u
				return nil
			},
		}
		svc := auth.NewService(repo)
		employeeID := uuid.NewString()

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID,
			Email:      "budi@example.com",
			Password:   "correct-horse-battery",
			Role:       "manager",
		})

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.True(t, resp.Active)
		assert.NotEqual(t, "correct-horse-battery", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse-battery")))
	})

	t.Run("negative malformed employee id", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: "42",
			Email:      "budi@example.com",
			Password:   "correct-horse-battery",
			Role:       "employee",
		})

		assert.Error(t, err)
	})

	t.Run("negative duplicate user", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(_ context.Context, _ *auth.User) error {
				return autherrors.ErrDuplicateUser
			},
		}
		svc := auth.NewService(repo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.NewString(),
			Email:      "budi@example.com",
			Password:   "correct-horse-battery",
			Role:       "employee",
		})

		assert.ErrorIs(t, err, autherrors.ErrDuplicateUser)
	})
}
