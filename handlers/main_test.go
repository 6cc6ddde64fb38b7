package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/RockInMyHead/tendersyte-sub000/routes"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// newTestApp wires the full route surface against a fresh in-memory store.
func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStorage) {
	t.Helper()

	mem := storage.NewMemoryStorage()
	storage.Use(mem)

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.TenderRoutes(app)
	routes.MarketplaceRoutes(app)
	routes.MessageRoutes(app)
	routes.ReviewRoutes(app)
	routes.GuaranteeRoutes(app)
	routes.AdminRoutes(app)

	return app, mem
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func registerUser(t *testing.T, app *fiber.App, username string) authResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "secret123",
		"full_name": "User " + username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth authResponse
	decodeBody(t, resp, &auth)
	require.NotEmpty(t, auth.Token)
	return auth
}
