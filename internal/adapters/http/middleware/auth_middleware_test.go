package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/adapters/persistence/repositories/repositorytest"
	"customerhub/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type whoami struct {
	Anonymous bool   `json:"anonymous"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

func newAuthTestApp(t *testing.T) (*fiber.App, *repositorytest.CustomerRepository, *token.Service) {
	t.Helper()

	customers := repositorytest.NewCustomerRepository()
	tokens := token.NewService("middleware-test-secret", 3600000)

	app := fiber.New()
	app.Use(Authenticate(tokens, customers))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return c.JSON(whoami{Anonymous: true})
		}
		return c.JSON(whoami{Username: principal.Username, Role: principal.Role})
	})
	app.Get("/admin", AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, customers, tokens
}

func seedCustomer(t *testing.T, customers *repositorytest.CustomerRepository, username, role string) {
	t.Helper()
	err := customers.Create(context.Background(), &models.Customer{
		Username: username,
		Password: "irrelevant-hash",
		FullName: "Test Customer",
		Email:    username + "@example.com",
		Age:      30,
		Role:     models.Role{Name: role},
	})
	require.NoError(t, err)
}

func get(t *testing.T, app *fiber.App, path, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeWhoami(t *testing.T, resp *http.Response) whoami {
	t.Helper()
	defer resp.Body.Close()
	var body whoami
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthenticateNoHeader(t *testing.T) {
	app, _, _ := newAuthTestApp(t)

	resp := get(t, app, "/whoami", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, decodeWhoami(t, resp).Anonymous)
}

func TestAuthenticateValidToken(t *testing.T) {
	app, customers, tokens := newAuthTestApp(t)
	seedCustomer(t, customers, "alice", models.RoleUser)

	tok, err := tokens.Issue("alice", "ROLE_USER")
	require.NoError(t, err)

	resp := get(t, app, "/whoami", tok)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeWhoami(t, resp)
	require.False(t, body.Anonymous)
	require.Equal(t, "alice", body.Username)
	require.Equal(t, models.RoleUser, body.Role)
}

func TestAuthenticateExpiredTokenIsAnonymous(t *testing.T) {
	app, customers, _ := newAuthTestApp(t)
	seedCustomer(t, customers, "alice", models.RoleUser)

	expired := token.NewService("middleware-test-secret", -1000)
	tok, err := expired.Issue("alice", "ROLE_USER")
	require.NoError(t, err)

	resp := get(t, app, "/whoami", tok)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, decodeWhoami(t, resp).Anonymous)
}

func TestAuthenticateMalformedTokenIsAnonymous(t *testing.T) {
	app, customers, _ := newAuthTestApp(t)
	seedCustomer(t, customers, "alice", models.RoleUser)

	resp := get(t, app, "/whoami", "not.a.jwt")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, decodeWhoami(t, resp).Anonymous)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	app, _, tokens := newAuthTestApp(t)

	tok, err := tokens.Issue("ghost", "ROLE_USER")
	require.NoError(t, err)

	resp := get(t, app, "/whoami", tok)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"username":"not found"}`, string(raw))
}

func TestAdminOnly(t *testing.T) {
	app, customers, tokens := newAuthTestApp(t)
	seedCustomer(t, customers, "admin", models.RoleAdmin)
	seedCustomer(t, customers, "alice", models.RoleUser)

	resp := get(t, app, "/admin", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	userToken, err := tokens.Issue("alice", "ROLE_USER")
	require.NoError(t, err)
	resp = get(t, app, "/admin", userToken)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminToken, err := tokens.Issue("admin", "ROLE_ADMIN")
	require.NoError(t, err)
	resp = get(t, app, "/admin", adminToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
