package service_test

import (
	"context"
	"testing"

	"fsstock/internal/config"
	"fsstock/internal/dto"
	"fsstock/internal/model"
	"fsstock/internal/repository"
	"fsstock/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

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

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if !includeInactive && !u.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthFixture(t *testing.T) (service.AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "anna", "s3cret", "planner", true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "anna", Password: "s3cret"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "planner", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "anna", "s3cret", "planner", true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "anna", Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "anna", "s3cret", "planner", false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "anna", Password: "s3cret"})
	require.Error(t, err)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, repo := newAuthFixture(t)
	seedUser(t, repo, "anna", "s3cret", "planner", true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "anna", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "anna", refreshed.User.Username)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, repo := newAuthFixture(t)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "viewer1",
		Name:     "Viewer One",
		Password: "hunter2",
		Role:     "viewer",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")))
}
