package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tiendalabs/tiendago/internal/webserver"
)

func registerHealthRoutes() {
	webserver.PubGET("/", banner)
	webserver.PubGET("/api/health/db", checkDatabase)
}

func banner(c echo.Context) error {
	return c.String(http.StatusOK, "tiendago API")
}

// checkDatabase verifies the store connection with a round trip.
func checkDatabase(c echo.Context) error {
	sqlDB, err := GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "database connection failed", err.Error())
	}
	return ok(c, "database connection ok", map[string]interface{}{"fecha": time.Now()})
}
