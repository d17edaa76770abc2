package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"customerhub/internal/adapters/http/handlers"
	"customerhub/internal/adapters/http/middleware"
	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/adapters/persistence/repositories/repositorytest"
	"customerhub/internal/core/services"
	"customerhub/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the handler chain exactly like the server does,
// minus the database and the outer rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *repositorytest.CustomerRepository) {
	t.Helper()

	customers := repositorytest.NewCustomerRepository()
	roles := repositorytest.NewRoleRepository(models.RoleAdmin, models.RoleUser)
	tokens := token.NewService("handler-test-secret", 3600000)
	service := services.NewCustomerService(customers, roles, tokens)

	authHandler := handlers.NewAuthHandler(service)
	customerHandler := handlers.NewCustomerHandler(service)

	app := fiber.New()
	app.Use(middleware.Authenticate(tokens, customers))

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	customerRoutes := app.Group("/customer")
	customerRoutes.Get("/averageAge", customerHandler.AverageAge)
	customerRoutes.Get("/between18And40", customerHandler.Between18And40)

	adminRoutes := customerRoutes.Group("", middleware.AdminOnly())
	adminRoutes.Get("/", customerHandler.List)
	adminRoutes.Put("/", customerHandler.Edit)
	adminRoutes.Get("/:id", customerHandler.GetByID)
	adminRoutes.Delete("/:id", customerHandler.Delete)

	return app, customers
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func register(t *testing.T, app *fiber.App, username, email, role string, age uint8) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"username":     username,
		"password":     "secret-password",
		"fullName":     "Test Customer",
		"email":        email,
		"confirmEmail": email,
		"age":          age,
		"role":         role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "login response has no data object: %v", body)
	tok, _ := data["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "alice", "alice@example.com", models.RoleUser, 30)
	login(t, app, "alice", "secret-password")

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "bad password", body["password"])
}

func TestRegisterValidation(t *testing.T) {
	app, customers := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{
		"username":     "alice",
		"password":     "secret-password",
		"fullName":     "Test Customer",
		"email":        "alice@example.com",
		"confirmEmail": "other@example.com",
		"age":          30,
		"role":         models.RoleUser,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Emails do not match", body["confirmEmail"])
	require.Zero(t, customers.Count())
}

func TestRegisterMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	for _, field := range []string{"username", "password", "fullName", "email", "confirmEmail", "role"} {
		require.Contains(t, body, field)
	}
}

func TestAverageAgeIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "alice", "alice@example.com", models.RoleUser, 20)
	register(t, app, "bob", "bob@example.com", models.RoleUser, 40)

	resp := doJSON(t, app, http.MethodGet, "/customer/averageAge", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	require.InDelta(t, 30.0, data["averageAge"], 0.001)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "alice", "alice@example.com", models.RoleUser, 30)
	userToken := login(t, app, "alice", "secret-password")

	resp := doJSON(t, app, http.MethodGet, "/customer/1", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/customer/1", userToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetCustomerByID(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	register(t, app, "alice", "alice@example.com", models.RoleUser, 30)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodGet, "/customer/2", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Test Customer", data["fullName"])
	require.Equal(t, "alice@example.com", data["email"])
	require.NotContains(t, data, "password")

	resp = doJSON(t, app, http.MethodGet, "/customer/99", adminToken, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body = decodeBody(t, resp)
	require.Equal(t, "not found", body["id"])
}

func TestEditSelfReturnsNewToken(t *testing.T) {
	app, customers := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodPut, "/customer/", adminToken, fiber.Map{
		"id":       1,
		"fullName": "Renamed Admin",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "self-edit must return a data object: %v", body)
	newToken, _ := data["newToken"].(string)
	require.NotEmpty(t, newToken)
	require.NotEqual(t, adminToken, newToken)

	stored, err := customers.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Renamed Admin", stored.FullName)
}

func TestEditOtherReturnsNoToken(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	register(t, app, "alice", "alice@example.com", models.RoleUser, 30)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodPut, "/customer/", adminToken, fiber.Map{
		"id":       2,
		"fullName": "Renamed Alice",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Nil(t, body["data"])
}

func TestEditAgeOutOfRange(t *testing.T) {
	app, customers := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodPut, "/customer/", adminToken, fiber.Map{
		"id":  1,
		"age": 200,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "age")

	stored, err := customers.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, uint8(40), stored.Age, "out-of-range age must not be persisted")
}

func TestEditUnknownCustomer(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodPut, "/customer/", adminToken, fiber.Map{
		"id":       99,
		"fullName": "Nobody",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "not exist", body["user"])
}

func TestDeleteCustomer(t *testing.T) {
	app, customers := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	register(t, app, "alice", "alice@example.com", models.RoleUser, 30)
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodDelete, "/customer/2", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, customers.Count())

	resp = doJSON(t, app, http.MethodDelete, "/customer/2", adminToken, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "not exist", body["user"])
}

func TestListCustomersPaginated(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "admin", "admin@example.com", models.RoleAdmin, 40)
	for i := 0; i < 15; i++ {
		register(t, app,
			fmt.Sprintf("customer-%02d", i),
			fmt.Sprintf("customer-%02d@example.com", i),
			models.RoleUser, 30)
	}
	adminToken := login(t, app, "admin", "secret-password")

	resp := doJSON(t, app, http.MethodGet, "/customer/?page=2&limit=10", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 6)
}
