package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/internal/application/auth"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	"github.com/workermill-examples/shipapi/pkg/jwt"
)

type memUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUserRepo) FindByAPIKeyPrefix(string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	tokens := jwt.NewManager("secreto-de-test", "shipapi-test", 60, 60*24)
	return auth.NewAuthUseCase(repo, tokens), repo
}

func registrar(t *testing.T, uc *auth.AuthUseCase) *dto.RegisterResponse {
	t.Helper()
	out, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "secreta123",
	})
	require.NoError(t, err)
	return out
}

func TestLogin_EmiteParConExpiracion(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registrar(t, uc)

	pair, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn,
		"expires_in son los segundos de vida del access token")
	assert.Equal(t, "ana@example.com", pair.User.Email)
}

func TestLogin_CuentaInactivaNoAutentica(t *testing.T) {
	uc, repo := newAuthFixture(t)
	reg := registrar(t, uc)
	repo.byID[reg.User.ID].IsActive = false

	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"una cuenta inactiva responde igual que credenciales inválidas")
}

func TestRefresh_EmiteParNuevo(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registrar(t, uc)
	pair, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	renewed, err := uc.Refresh(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, int64(3600), renewed.ExpiresIn)
}

func TestRefresh_CuentaInactivaNoRenueva(t *testing.T) {
	uc, repo := newAuthFixture(t)
	reg := registrar(t, uc)
	pair, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	repo.byID[reg.User.ID].IsActive = false

	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	registrar(t, uc)

	_, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@example.com",
		Name:     "Otra Ana",
		Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
