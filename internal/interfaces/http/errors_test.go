package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workermill-examples/shipapi/internal/application/auth"
	"github.com/workermill-examples/shipapi/internal/application/dto"
	apphttp "github.com/workermill-examples/shipapi/internal/interfaces/http"
)

// errorApp monta el handler de login real contra un repo vacío para
// ejercitar el mapeo de errores de dominio al envoltorio de la API.
func errorApp() *fiber.App {
	app := fiber.New()
	uc := auth.NewAuthUseCase(&fakeUserRepo{}, testTokens())
	h := apphttp.NewAuthHandler(uc)
	app.Post("/login", h.Login)
	app.Post("/register", h.Register)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := errorApp()
	resp := postJSON(t, app, "/login", `{"email":"nadie@example.com","password":"secreta123"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apphttp.CodeUnauthorized, body.Error.Code)
	assert.NotNil(t, body.Error.Details)
}

func TestRegister_ValidacionPorCampo(t *testing.T) {
	app := errorApp()
	resp := postJSON(t, app, "/register", `{"email":"no-es-email","name":"","password":"corta"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apphttp.CodeValidation, body.Error.Code)

	fields := map[string]bool{}
	for _, d := range body.Error.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["email"], "debe reportar el campo email")
	assert.True(t, fields["name"], "debe reportar el campo name")
	assert.True(t, fields["password"], "debe reportar el campo password")
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	app := errorApp()
	resp := postJSON(t, app, "/login", `{esto no es json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apphttp.CodeValidation, body.Error.Code)
}
