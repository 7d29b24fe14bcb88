package webserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/tiendalabs/tiendago/internal/domain"
)

const contextKeyClaims = "tiendago_claims"

// Claims carries the authenticated customer identity inside the bearer token.
type Claims struct {
	CustomerID int64  `json:"cliente_id"`
	Email      string `json:"email"`
	Name       string `json:"nombre"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token for the customer with the given lifetime.
func (s *WebServer) IssueToken(customer *domain.Customer, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Name:       customer.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.appCtx.Config().System.Appid,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appCtx.Config().Web.Secret))
}

func (s *WebServer) parseToken(raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.appCtx.Config().Web.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// jwtAuth enforces bearer authentication. Each failure mode gets its own
// rejection reason so a client can tell a missing header from a stale token.
func (s *WebServer) jwtAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing Authorization header",
				"include 'Authorization: Bearer <token>' in the request")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return unauthorized(c, "invalid token format",
				"the format must be: 'Bearer <token>'")
		}

		claims, err := s.parseToken(parts[1])
		if err != nil {
			var reason string
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				reason = "token expired"
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				reason = "token not valid yet"
			case errors.Is(err, jwt.ErrTokenMalformed):
				reason = "token malformed"
			default:
				reason = "token not valid"
			}
			return unauthorized(c, reason, "please log in again")
		}

		c.Set(contextKeyClaims, claims)
		return next(c)
	}
}

func unauthorized(c echo.Context, message, detail string) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"message": message,
		"error":   detail,
	})
}

// CurrentClaims returns the verified claims of the request, or nil on a
// public route.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(contextKeyClaims).(*Claims)
	return claims
}
