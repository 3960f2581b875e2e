package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/audit"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/models"
)

type CartHandler struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", ident.ID).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart rejects a product that is already in the cart: duplicate adds
// are an error, not a quantity merge.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var existing models.CartItem
	tx := h.DB.Where("user_id = ? AND product_id = ?", ident.ID, req.ProductID).First(&existing)
	if tx.Error == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product already in cart")
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, tx.Error.Error())
	}

	item := models.CartItem{
		UserID:    ident.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		h.Audit.Record(c, audit.ActionAddToCartFailed, map[string]any{
			"product_id": req.ProductID, "error": err.Error(),
		})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionAddToCart, map[string]any{
		"product_id": req.ProductID, "quantity": item.Quantity, "cart_item_id": item.ID,
	})
	return c.JSON(http.StatusCreated, item)
}

// UpdateCart sets an existing line's quantity directly.
func (h *CartHandler) UpdateCart(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 || req.Quantity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id and quantity >= 1 required")
	}

	var item models.CartItem
	if err := h.DB.Where("user_id = ? AND product_id = ?", ident.ID, req.ProductID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not in cart")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	item.Quantity = req.Quantity
	if err := h.DB.Save(&item).Error; err != nil {
		h.Audit.Record(c, audit.ActionCartUpdatedFailed, map[string]any{
			"product_id": req.ProductID, "error": err.Error(),
		})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionCartUpdated, map[string]any{
		"product_id": req.ProductID, "quantity": item.Quantity,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "cart updated successfully", "item": item})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	res := h.DB.Where("user_id = ? AND product_id = ?", ident.ID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		h.Audit.Record(c, audit.ActionProductRemovedInCartFailed, map[string]any{
			"product_id": productID, "error": res.Error.Error(),
		})
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "product not in cart")
	}

	h.Audit.Record(c, audit.ActionProductRemovedInCart, map[string]any{"product_id": productID})
	return c.JSON(http.StatusOK, echo.Map{"message": "product removed"})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	if err := h.DB.Where("user_id = ?", ident.ID).Delete(&models.CartItem{}).Error; err != nil {
		h.Audit.Record(c, audit.ActionCartClearedFailed, map[string]any{"error": err.Error()})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionCartCleared, nil)
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
