package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/hash"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/models"
	"github.com/sharmaketan/shopkart/internal/policy"
)

type UserHandler struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := policy.Authorize(ident.Actor(), policy.ManageUser, policy.Resource{OwnerID: uint(id)}); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error fetching user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "all fields required")
	}
	if len(req.NewPassword) < 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "password length must be greater than or equal to 6")
	}
	if req.OldPassword == req.NewPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "new password must be different from current password")
	}

	var user models.User
	if err := h.DB.First(&user, ident.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !hash.CheckPassword(user.PasswordHash, req.OldPassword) {
		return echo.NewHTTPError(http.StatusUnauthorized, "current password is incorrect")
	}

	pwHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&user).Update("password_hash", pwHash).Error; err != nil {
		h.Audit.Record(c, audit.ActionUpdatePasswordFailed, map[string]any{
			"user_id": ident.ID, "error": err.Error(),
		})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionUpdatePassword, map[string]any{"user_id": ident.ID})
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated successfully"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := policy.Authorize(ident.Actor(), policy.ManageUser, policy.Resource{OwnerID: uint(id)}); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "error deleting user")
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "error deleting user")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
