package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/models"
)

type LogsHandler struct {
	DB *gorm.DB
}

func (h *LogsHandler) List(c echo.Context) error {
	var logs []models.AuditLog
	if err := h.DB.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve logs")
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *LogsHandler) Clear(c echo.Context) error {
	if err := h.DB.Where("1 = 1").Delete(&models.AuditLog{}).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete logs")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "all logs deleted successfully"})
}
