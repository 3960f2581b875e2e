package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/hash"
	"github.com/sharmaketan/shopkart/internal/logging"
	"github.com/sharmaketan/shopkart/internal/models"
)

const tokenTTL = 24 * time.Hour

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	Audit     *audit.Recorder
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if req.Name == "" || req.Email == "" || req.Username == "" || req.Password == "" || req.Role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "provide all credentials")
	}
	if len(req.Password) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "password length must be greater than or equal to 6")
	}
	if !emailRegex.MatchString(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleUser {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	var existing models.User
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: pwHash,
		Role:         req.Role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		h.Audit.Record(c, audit.ActionSignupFailed, map[string]any{
			"username": req.Username, "email": req.Email, "error": err.Error(),
		})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionSignup, map[string]any{
		"username": user.Username, "email": user.Email, "role": user.Role,
	})
	l.Info("signup_success", "user_id", user.ID)

	return c.JSON(http.StatusCreated, echo.Map{"msg": "signup successful"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username required")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password required")
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "username does not exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		h.Audit.Record(c, audit.ActionLoginFailed, map[string]any{"username": req.Username})
		return echo.NewHTTPError(http.StatusUnauthorized, "password is incorrect")
	}

	token, err := SignToken(&user, h.JWTSecret)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionLogin, map[string]any{"username": user.Username})
	l.Info("login_success", "user_id", user.ID)

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// SignToken issues the 24h bearer identity consumed by the auth middleware.
func SignToken(user *models.User, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"name":     user.Name,
		"role":     user.Role,
		"email":    user.Email,
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}
