package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/tiendalabs/tiendago/config"
	"github.com/tiendalabs/tiendago/internal/api"
	"github.com/tiendalabs/tiendago/internal/app"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// newTestServer boots a full application against a private in-memory
// database, including the seeded demo catalog and demo accounts.
func newTestServer(t *testing.T) (*webserver.WebServer, *app.Application) {
	t.Helper()

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Location = "UTC"
	cfg.Logger.FileEnable = false
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(application.Release)

	srv := webserver.Init(application)
	api.Register(srv, application)
	return srv, application
}

func doRequest(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
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
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// newRawRequest builds a request with a verbatim Authorization header value
// (possibly empty) for exercising the middleware's rejection taxonomy.
func newRawRequest(t *testing.T, method, path, authorization string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(`{}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return req
}

func serveRaw(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// loginAs logs in one of the seeded demo accounts and returns its token.
func loginAs(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec, env := doRequest(t, e, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}
