package tests

import (
	"context"
	"strings"
	"testing"

	"lilass/internal/config"
	"lilass/internal/dto"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func authConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 24}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ava Clarke",
		Email:    "  Ava@Example.COM ",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "ava@example.com", resp.User.Email, "email must be normalized")
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	stored, err := repo.FindByEmail(context.Background(), "ava@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))

	// Token carries the expected claims and verifies with the shared secret
	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "ava@example.com", claims["email"])
	assert.Equal(t, model.RoleCustomer, claims["role"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ava", Email: "ava@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Other Ava", Email: "AVA@example.com", Password: "battery-staple",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ava", Email: "ava@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ava@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ava@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())
	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ava", Email: "ava@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	u, err := repo.FindByEmail(context.Background(), "ava@example.com")
	require.NoError(t, err)
	u.Active = false

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ava@example.com", Password: "correct-horse",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAdminCreateUserDefaultsToStaff(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())

	resp, err := svc.CreateUser(context.Background(), dto.AdminCreateUserRequest{
		Name: "Noor Haddad", Email: "noor@lilass.coffee", Password: "barista-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, resp.Role)

	admin, err := svc.CreateUser(context.Background(), dto.AdminCreateUserRequest{
		Name: "Liam Porter", Email: "liam@lilass.coffee", Password: "admin-pass", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
}

func TestMe(t *testing.T) {
	repo := newStubUserRepo()
	svc := service.NewAuthService(repo, authConfig())
	reg, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ava", Email: "ava@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(reg.User.ID)
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower("ava@example.com"), me.Email)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
