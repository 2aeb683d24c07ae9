package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/internal/domain"
	"github.com/workermill-examples/shipapi/internal/domain/entity"
	apphttp "github.com/workermill-examples/shipapi/internal/interfaces/http"
	"github.com/workermill-examples/shipapi/pkg/apikey"
	pkgjwt "github.com/workermill-examples/shipapi/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "shipapi-test"
)

var testUserID = uuid.NewString()

// fakeUserRepo resuelve usuarios por prefijo de API key sin base de datos.
type fakeUserRepo struct {
	users map[string]*entity.User // por prefijo
	byID  map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}
func (f *fakeUserRepo) FindByAPIKeyPrefix(prefix string) (*entity.User, error) {
	if u, ok := f.users[prefix]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func testTokens() *pkgjwt.Manager {
	return pkgjwt.NewManager(testJWTSecret, testIssuer, 60, 60*24)
}

// repoWithUser siembra la fila que el middleware resuelve por ID en cada petición.
func repoWithUser(role string, active bool) *fakeUserRepo {
	u := &entity.User{ID: testUserID, Email: "ana@example.com", Role: role, IsActive: active}
	return &fakeUserRepo{byID: map[string]*entity.User{u.ID: u}}
}

// buildTestApp monta una ruta protegida y una solo-admin con los middlewares reales.
func buildTestApp(userRepo *fakeUserRepo) *fiber.App {
	app := fiber.New()
	tokens := testTokens()
	protected := app.Group("/", apphttp.AuthMiddleware(tokens, userRepo))
	protected.Get("/protected", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	protected.Get("/admin-only", apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Bearer JWT
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_AccessTokenValido(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleUser, true))
	token, err := testTokens().GenerateAccess(testUserID, "ana@example.com", entity.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleUser, body["role"])
}

func TestAuthMiddleware_RefreshTokenNoAutoriza(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	refresh, err := testTokens().GenerateRefresh(testUserID)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + refresh})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un refresh token no debe servir como credencial de acceso")
}

func TestAuthMiddleware_SinCredenciales(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	resp := doRequest(t, app, "/protected", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestAuthMiddleware_TokenMalFormado(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer no-es-un-jwt"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	otherTokens := pkgjwt.NewManager("otro-secreto", testIssuer, 60, 60)
	token, err := otherTokens.GenerateAccess(testUserID, "", entity.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioDesactivadoPierdeAcceso(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleUser, false))
	token, err := testTokens().GenerateAccess(testUserID, "ana@example.com", entity.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token vigente de un usuario desactivado no debe autorizar")
}

func TestAuthMiddleware_UsuarioBorradoPierdeAcceso(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	token, err := testTokens().GenerateAccess(testUserID, "ana@example.com", entity.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RolEfectivoVieneDeLaDB(t *testing.T) {
	// El claim dice admin pero la fila ya fue degradada a user.
	app := buildTestApp(repoWithUser(entity.RoleUser, true))
	token, err := testTokens().GenerateAccess(testUserID, "ana@example.com", entity.RoleAdmin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RoleUser, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests X-API-Key
// ──────────────────────────────────────────────────────────────────────────────

func apiKeyUser(t *testing.T, role string, active bool) (*fakeUserRepo, string) {
	t.Helper()
	key, hash, prefix, err := apikey.Generate()
	require.NoError(t, err)
	user := &entity.User{
		ID:           testUserID,
		Role:         role,
		APIKeyHash:   &hash,
		APIKeyPrefix: &prefix,
		IsActive:     active,
	}
	return &fakeUserRepo{
		users: map[string]*entity.User{prefix: user},
		byID:  map[string]*entity.User{user.ID: user},
	}, key
}

func TestAuthMiddleware_APIKeyValida(t *testing.T) {
	repo, key := apiKeyUser(t, entity.RoleUser, true)
	app := buildTestApp(repo)

	resp := doRequest(t, app, "/protected", map[string]string{"X-API-Key": key})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
}

func TestAuthMiddleware_APIKeyConHashDistinto(t *testing.T) {
	repo, key := apiKeyUser(t, entity.RoleUser, true)
	app := buildTestApp(repo)

	// Misma longitud y mismo prefijo, pero cuerpo distinto.
	forged := key[:len(key)-4] + "0000"
	if forged == key {
		forged = key[:len(key)-4] + "ffff"
	}
	resp := doRequest(t, app, "/protected", map[string]string{"X-API-Key": forged})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"coincidir solo en el prefijo no debe autenticar")
}

func TestAuthMiddleware_APIKeyFormatoInvalido(t *testing.T) {
	repo, _ := apiKeyUser(t, entity.RoleUser, true)
	app := buildTestApp(repo)

	resp := doRequest(t, app, "/protected", map[string]string{"X-API-Key": "sk_corta"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_APIKeyUsuarioInactivo(t *testing.T) {
	repo, key := apiKeyUser(t, entity.RoleUser, false)
	app := buildTestApp(repo)

	resp := doRequest(t, app, "/protected", map[string]string{"X-API-Key": key})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"ambos caminos de credenciales responden 401 ante una cuenta inactiva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleAdmin, true))
	token, err := testTokens().GenerateAccess(testUserID, "admin@example.com", entity.RoleAdmin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin-only", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_UsuarioComunBloqueado(t *testing.T) {
	app := buildTestApp(repoWithUser(entity.RoleUser, true))
	token, err := testTokens().GenerateAccess(testUserID, "ana@example.com", entity.RoleUser)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin-only", map[string]string{"Authorization": "Bearer " + token})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}
