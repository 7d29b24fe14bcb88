package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tiendalabs/tiendago/internal/app"
	"github.com/tiendalabs/tiendago/internal/domain"
	"github.com/tiendalabs/tiendago/internal/webserver"
)

func registerAuthRoutes() {
	webserver.PubPOST("/api/auth/registro", register)
	webserver.PubPOST("/api/auth/login", login)
}

type registerPayload struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse registration", err.Error())
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "name, email and password are required", "")
	}
	if !strings.Contains(payload.Email, "@") {
		return fail(c, http.StatusBadRequest, "email is not valid", "")
	}

	var dup domain.Customer
	err := GetDB(c).Where("email = ?", payload.Email).First(&dup).Error
	if err == nil {
		return fail(c, http.StatusConflict, "email already registered", "")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusInternalServerError, "internal server error", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error", err.Error())
	}

	customer := domain.Customer{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: string(hash),
	}
	if err := GetDB(c).Create(&customer).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "failed to create account", err.Error())
	}

	return created(c, "account registered", customer)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "unable to parse credentials", err.Error())
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required", "")
	}

	var customer domain.Customer
	err := GetDB(c).Where("email = ?", payload.Email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		publishLogin(payload.Email, c.RealIP(), "rejected", "unknown email")
		return fail(c, http.StatusUnauthorized, "invalid credentials", "")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal server error", err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(payload.Password)) != nil {
		publishLogin(payload.Email, c.RealIP(), "rejected", "wrong password")
		return fail(c, http.StatusUnauthorized, "invalid credentials", "")
	}

	ttlHours := appCtx.GetSettingsInt64Value("auth", "token_expire_hours")
	if ttlHours <= 0 {
		ttlHours = 24
	}
	token, err := server.IssueToken(&customer, time.Duration(ttlHours)*time.Hour)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to issue token", err.Error())
	}

	publishLogin(payload.Email, c.RealIP(), "accepted", "login ok")
	return ok(c, "login ok", map[string]interface{}{
		"token":   token,
		"cliente": customer,
	})
}

func publishLogin(email, clientIP, outcome, message string) {
	appCtx.Bus().Publish(app.TopicAuthLogin, email, clientIP, outcome, message)
}
