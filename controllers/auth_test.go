package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, router http.Handler, email, password string) {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "esp32@example.com", "hunter2")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "esp32@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "esp32@example.com", user["email"])
	assert.NotEmpty(t, user["id"])
	// The stored hash must never appear in a response.
	assert.NotContains(t, user, "password")
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "esp32@example.com", "hunter2")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "esp32@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeBody(t, rec)["error"])
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "esp32@example.com", "hunter2")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "esp32@example.com",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "esp32@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeWithToken(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "esp32@example.com", "hunter2")

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "esp32@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["token"].(string)

	rec = doRequest(t, router, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "esp32@example.com", decodeBody(t, rec)["email"])
}

func TestMeWithoutToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeWithGarbageToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
