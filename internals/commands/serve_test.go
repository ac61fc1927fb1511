package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_backend/internals/configs"
	"internship_backend/internals/constants"
	"internship_backend/internals/testsupport"
)

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestNewApp(t *testing.T) {
	configs.JWTSecret = "serve-test-secret"
	db := testsupport.OpenDB(t)
	app := NewApp(db, nil)

	resp := get(t, app, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "OK", health["status"])
	assert.Equal(t, "Connected", health["database"])

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/api/u/dashboard", "").StatusCode)

	mentor := testsupport.NewParticipant("grace")
	token := testsupport.Token(t, configs.JWTSecret, mentor, constants.RoleMentor)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/u/dashboard", token).StatusCode)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/api/a/intern-selections", token).StatusCode)

	organizer := testsupport.Token(t, configs.JWTSecret, testsupport.NewParticipant("root"), constants.RoleOrganizer)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/a/intern-selections", organizer).StatusCode)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/api/a/rounds", organizer).StatusCode)
}
