package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tiendalabs/tiendago/internal/order"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiPOST("/api/pedidos", createOrder)
	webserver.ApiGET("/api/pedidos/misPedidos", listMyOrders)
}

func orderService(c echo.Context) *order.Service {
	return order.NewService(order.NewGormRepository(GetDB(c)), appCtx.Bus().Publish)
}

type createOrderPayload struct {
	Products []order.CartLine `json:"productos"`
}

// createOrder persists a checkout for the authenticated customer. The
// customer identity comes from the verified token only; a client-supplied
// customer id or total is never trusted.
func createOrder(c echo.Context) error {
	claims := webserver.CurrentClaims(c)

	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse order", err.Error())
	}

	result, err := orderService(c).CreateOrder(c.Request().Context(), claims.CustomerID, payload.Products)
	if err != nil {
		if order.IsValidation(err) {
			return fail(c, http.StatusBadRequest, "order rejected", err.Error())
		}
		return fail(c, http.StatusInternalServerError, "internal server error", err.Error())
	}

	return created(c, "order created", result)
}

// listMyOrders returns the authenticated customer's order history with
// nested product detail, newest first.
func listMyOrders(c echo.Context) error {
	claims := webserver.CurrentClaims(c)

	orders, err := orderService(c).ListCustomerOrders(c.Request().Context(), claims.CustomerID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error", "")
	}

	return ok(c, fmt.Sprintf("found %d orders", len(orders)), orders)
}
