package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastillo/asistente-api/internal/application/auth"
	"github.com/jcastillo/asistente-api/internal/infrastructure/memory"
	apphttp "github.com/jcastillo/asistente-api/internal/interfaces/http"
	pkgjwt "github.com/jcastillo/asistente-api/pkg/jwt"
	"github.com/jcastillo/asistente-api/pkg/logger"
	"github.com/jcastillo/asistente-api/pkg/password"
)

const testSecret = "clave-de-firma-para-tests-00000000000000"

// buildTestApp levanta la aplicación completa contra el store en memoria:
// router real, normalizador de errores real, use case real.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := memory.NewUserRepository()
	issuer, err := pkgjwt.NewIssuer(testSecret, time.Hour, "asistente-api-test")
	require.NoError(t, err)
	uc := auth.NewUseCase(repo, password.NewHasher(4), issuer, logger.Nop())

	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.NewErrorHandler(logger.Nop()),
	})
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:  uc,
		Issuer:  issuer,
		AppName: "asistente-api-test",
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Escenario 1: registro correcto → 201 con perfil público y rol USER.
func TestRegister_201ConPerfil(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "USER", body["role"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["createdAt"])
}

// Escenario 2: mismo email otra vez → 409 con el envelope uniforme.
func TestRegister_409EmailDuplicado(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email already exists", body["message"])
	assert.Equal(t, float64(http.StatusConflict), body["statusCode"])
	assert.Equal(t, "/api/auth/register", body["path"])
	assert.NotEmpty(t, body["timestamp"])
}

// Escenario 6: email malformado → 400 con detalle por campo sobre email.
func TestRegister_400EmailInvalido(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"bad-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Validation failed", body["message"])
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok, "errors debe ser una lista de violaciones")
	require.NotEmpty(t, errs)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "email", first["field"])
}

// Campo extra en el payload → 400, rechazo explícito, no aceptación silenciosa.
func TestRegister_400CampoDesconocido(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register",
		`{"email":"a@b.com","password":"secret1","extraField":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs := body["errors"].([]interface{})
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "extraField", first["field"])
}

// Password corto → 400 nombrando password y la restricción violada.
func TestRegister_400PasswordCorto(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs := body["errors"].([]interface{})
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "password", first["field"])
	assert.Contains(t, first["constraint"], "mínimo")
}

// Escenario 3: login correcto → 200 con user + accessToken.
func TestLogin_200ConToken(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login", `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["accessToken"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@b.com", user["email"])
}

// Escenarios 4 y 5: password incorrecto y email inexistente devuelven
// respuestas indistinguibles (mismo status, mismo cuerpo salvo timestamp).
func TestLogin_401Indistinguibles(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	respWrong := postJSON(t, app, "/api/auth/login", `{"email":"a@b.com","password":"wrong"}`)
	respUnknown := postJSON(t, app, "/api/auth/login", `{"email":"nobody@x.com","password":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)

	bodyWrong := decodeBody(t, respWrong)
	bodyUnknown := decodeBody(t, respUnknown)
	assert.Equal(t, "Invalid credentials", bodyWrong["message"])

	// Cuerpos idénticos campo a campo una vez removido el timestamp.
	delete(bodyWrong, "timestamp")
	delete(bodyUnknown, "timestamp")
	assert.Equal(t, bodyWrong, bodyUnknown,
		"un atacante no debe poder distinguir email inexistente de password incorrecto")
}

// El cuerpo serializado de registro y login jamás contiene el hash.
func TestRespuestas_SinHashDePassword(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `{"email":"a@b.com","password":"secret1"}`)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	lower := strings.ToLower(string(raw))
	assert.NotContains(t, lower, "passwordhash")
	assert.NotContains(t, lower, "password_hash")
	assert.NotContains(t, lower, "$2a$") // prefijo de digest bcrypt

	resp = postJSON(t, app, "/api/auth/login", `{"email":"a@b.com","password":"secret1"}`)
	raw, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	lower = strings.ToLower(string(raw))
	assert.NotContains(t, lower, "passwordhash")
	assert.NotContains(t, lower, "$2a$")
}

// Cuerpo no-JSON → 400 con el envelope, nunca un 500.
func TestRegister_400CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)

	resp := postJSON(t, app, "/api/auth/register", `no es json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Validation failed", body["message"])
}

// /health responde sin autenticación.
func TestHealth(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
}
