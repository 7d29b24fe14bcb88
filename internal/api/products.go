package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tiendalabs/tiendago/internal/domain"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/api/productos", listProducts)
}

// listProducts returns the active catalog, name ascending by default.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("categoria"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"created_at": "created_at",
	}
	sortCol, found := allowed[sortField]
	if !found || sortCol == "" {
		sortCol = "name"
	}

	db := GetDB(c).Model(&domain.Product{}).Where("active = ?", true)
	if q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to query products", err.Error())
	}

	return ok(c, fmt.Sprintf("found %d products", len(rows)), rows)
}
