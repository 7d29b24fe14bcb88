package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	e := srv.Echo()

	rec, env := doRequest(t, e, http.MethodPost, "/api/auth/registro", "", map[string]string{
		"nombre":   "María Ruiz",
		"email":    "Maria@Example.com",
		"password": "s3creta",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var account struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.NotZero(t, account.ID)
	assert.Equal(t, "maria@example.com", account.Email, "email is normalized")
	assert.Empty(t, account.Password, "the credential hash never leaves the server")

	rec, env = doRequest(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "maria@example.com",
		"password": "s3creta",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, env := doRequest(t, srv.Echo(), http.MethodPost, "/api/auth/registro", "", map[string]string{
		"nombre":   "Otro Juan",
		"email":    "test@example.com", // seeded demo account
		"password": "whatever",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestRegisterValidatesPayload(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, _ := doRequest(t, srv.Echo(), http.MethodPost, "/api/auth/registro", "", map[string]string{
		"nombre": "Sin Correo", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, srv.Echo(), http.MethodPost, "/api/auth/registro", "", map[string]string{
		"nombre": "Correo Malo", "email": "not-an-email", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, env := doRequest(t, srv.Echo(), http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "test@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)

	rec, _ = doRequest(t, srv.Echo(), http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "123456",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	e := srv.Echo()

	rec, _ := doRequest(t, e, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, e, http.MethodGet, "/api/health/db", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestListProducts(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, env := doRequest(t, srv.Echo(), http.MethodGet, "/api/productos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var products []struct {
		ID     int64   `json:"id"`
		Name   string  `json:"nombre"`
		Price  float64 `json:"precio"`
		Active bool    `json:"activo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 7, "the seeded demo catalog")
	for i, p := range products {
		assert.True(t, p.Active)
		if i > 0 {
			assert.LessOrEqual(t, products[i-1].Name, p.Name, "sorted by name ascending")
		}
	}
}
