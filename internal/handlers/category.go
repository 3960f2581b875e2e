package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) List(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

// Create returns the existing category with 200 when the name is already
// taken, creating with 201 otherwise.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
	}

	var existing models.Category
	err := h.DB.Where("name = ?", req.Name).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusOK, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	category := models.Category{Name: req.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, category)
}
