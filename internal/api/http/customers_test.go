package http

import (
	"net/http"
	"testing"

	"github.com/custdesk/custdesk/internal/api/domain"
	"github.com/stretchr/testify/require"
)

func TestCustomersCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", "hunter22", domain.RoleAdmin)
	admin := env.login(t, "admin@example.com", "hunter22")

	var createdID string

	t.Run("create", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/customers", admin, map[string]string{
			"name":  "Acme Pty Ltd",
			"email": "billing@acme.example",
			"phone": "+61 2 5550 1234",
		})
		body := decodeBody(t, resp)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "Acme Pty Ltd", body["name"])
		require.Equal(t, "billing@acme.example", body["email"])
		require.NotEmpty(t, body["id"])
		createdID = body["id"].(string)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/customers", admin, map[string]string{
			"name":  "Acme Clone",
			"email": "billing@acme.example",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/customers/"+createdID, admin, nil)
		body := decodeBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, createdID, body["id"])
	})

	t.Run("update", func(t *testing.T) {
		resp := env.request(t, http.MethodPut, "/api/customers/"+createdID, admin, map[string]string{
			"name":  "Acme Holdings",
			"email": "accounts@acme.example",
		})
		body := decodeBody(t, resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "Acme Holdings", body["name"])
	})

	t.Run("list", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/customers", admin, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp := env.request(t, http.MethodDelete, "/api/customers/"+createdID, admin, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = env.request(t, http.MethodGet, "/api/customers/"+createdID, admin, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/customers", admin, map[string]string{
			"email": "noname@acme.example",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/customers/01J0000000000000000000XXXX", admin, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCustomersAuthorization(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "admin@example.com", "hunter22", domain.RoleAdmin)
	env.createUser(t, "staff@example.com", "hunter22", domain.RoleStaff)

	admin := env.login(t, "admin@example.com", "hunter22")
	staff := env.login(t, "staff@example.com", "hunter22")

	t.Run("anonymous reads are rejected", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/customers", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("staff can read", func(t *testing.T) {
		resp := env.request(t, http.MethodGet, "/api/customers", staff, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("staff cannot write", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/customers", staff, map[string]string{
			"name":  "Blocked",
			"email": "blocked@acme.example",
		})
		body := decodeBody(t, resp)

		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		require.Equal(t, "insufficient_role", body["error"])
	})

	t.Run("admin can write", func(t *testing.T) {
		resp := env.request(t, http.MethodPost, "/api/customers", admin, map[string]string{
			"name":  "Allowed",
			"email": "allowed@acme.example",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}
