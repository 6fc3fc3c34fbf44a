package identity

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunebox/tunebox/internal/auth"
	"github.com/tunebox/tunebox/internal/logging"
	"github.com/tunebox/tunebox/internal/middleware"
)

func newTestApp(t *testing.T) (*fiber.App, fixture) {
	t.Helper()
	f := newFixture(t)
	logger := logging.Discard()

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	h := NewHandler(f.svc)
	group := app.Group("/auth")
	group.Post("/signup", h.Signup)
	group.Post("/login", h.Login)
	group.Get("/", middleware.AuthGate(f.codec, logger, nil), h.Current)
	return app, f
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestSignupLoginCurrentScenario(t *testing.T) {
	app, f := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/auth/signup", `{"name":"Ann","email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "Ann", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")

	stored, err := f.repo.FindByEmail(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", string(stored.PasswordHash))

	status, body = doJSON(t, app, fiber.MethodPost, "/auth/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	require.Equal(t, fiber.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	assert.Equal(t, stored.ID, user["id"])

	status, body = doJSON(t, app, fiber.MethodGet, "/auth/", "", map[string]string{auth.TokenHeader: token})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, []any{}, body["favorites"])

	status, body = doJSON(t, app, fiber.MethodPost, "/auth/login", `{"email":"a@x.com","password":"wrong"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Incorrect password!", body["detail"])
}

func TestSignupDuplicateReturns400(t *testing.T) {
	app, _ := newTestApp(t)

	payload := `{"name":"Ann","email":"a@x.com","password":"secret1"}`
	status, _ := doJSON(t, app, fiber.MethodPost, "/auth/signup", payload, nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, fiber.MethodPost, "/auth/signup", payload, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User with the same email already exists!", body["detail"])
}

func TestLoginUnknownEmailReturns400(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/auth/login", `{"email":"nobody@x.com","password":"x"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User with this email does not exist!", body["detail"])
}

func TestCurrentRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodGet, "/auth/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, fiber.MethodGet, "/auth/", "", map[string]string{auth.TokenHeader: "bogus"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCurrentUnknownUserReturns404(t *testing.T) {
	app, f := newTestApp(t)

	token, err := f.codec.Issue("ghost")
	require.NoError(t, err)

	status, body := doJSON(t, app, fiber.MethodGet, "/auth/", "", map[string]string{auth.TokenHeader: token})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User not found!", body["detail"])
}

func TestMalformedBodyReturns400(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/auth/signup", `{"name":`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
