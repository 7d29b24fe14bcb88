package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tiendalabs/tiendago/internal/app"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

// Package wiring installed by Register.
var (
	server *webserver.WebServer
	appCtx app.AppContext
)

// Register wires the API handlers to the web server and the application
// context, then registers every route group.
func Register(srv *webserver.WebServer, ctx app.AppContext) {
	server = srv
	appCtx = ctx

	registerHealthRoutes()
	registerAuthRoutes()
	registerProductRoutes()
	registerOrderRoutes()
}

// Response is the uniform JSON envelope of every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message, detail string) error {
	return c.JSON(status, Response{Success: false, Message: message, Error: detail})
}

// GetDB returns the request-scoped database handle injected by the web server.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextKeyDB).(*gorm.DB)
}

// parsePagination reads page/perPage query params with settings-backed bounds.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}

	pageSize = int(appCtx.GetSettingsInt64Value("catalog", "page_size"))
	if pageSize <= 0 {
		pageSize = 20
	}
	max := int(appCtx.GetSettingsInt64Value("catalog", "page_size_max"))
	if max <= 0 {
		max = 500
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= max {
		pageSize = ps
	}
	return page, pageSize
}
