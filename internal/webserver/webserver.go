package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/tiendalabs/tiendago/internal/app"
)

// ContextKeyDB is the echo context key holding the request's *gorm.DB handle.
const ContextKeyDB = "tiendago_db"

var server *WebServer

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
}

// Init builds the web server and installs it as the package instance used by
// the route registration helpers.
func Init(appCtx app.AppContext) *WebServer {
	s := &WebServer{appCtx: appCtx, root: echo.New()}
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.JSONSerializer = jsonSerializer{}

	s.root.Use(middleware.Recover())
	s.root.Use(middleware.CORS())
	s.root.Use(s.injectDB)
	s.root.Use(requestLogger)

	server = s
	return s
}

// Echo exposes the underlying echo instance (tests serve requests through it).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.appCtx.Config().Web.Host, s.appCtx.Config().Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func (s *WebServer) injectDB(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ContextKeyDB, s.appCtx.DB())
		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		status := c.Response().Status
		fields := []zap.Field{
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			zap.L().Warn("http request", fields...)
		default:
			zap.L().Debug("http request", fields...)
		}
		return err
	}
}

// PubGET registers a public route.
func PubGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

// PubPOST registers a public route.
func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// ApiGET registers a route protected by bearer authentication.
func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, server.jwtAuth)
}

// ApiPOST registers a route protected by bearer authentication.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, server.jwtAuth)
}

// jsonSerializer swaps echo's encoding/json for jsoniter.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsoniter.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
