package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/logging"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/models"
	"github.com/sharmaketan/shopkart/internal/search"
	"github.com/sharmaketan/shopkart/internal/service/review"
	"github.com/sharmaketan/shopkart/internal/util"
)

type ProductHandler struct {
	DB      *gorm.DB
	Audit   *audit.Recorder
	Indexer *search.Indexer
	Reviews *review.Service
}

type productRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
}

func (r *productRequest) validate() error {
	if r.Name == "" || r.Brand == "" || r.Category == "" || r.Description == "" || r.Image == "" {
		return errors.New("missing required fields")
	}
	if r.Price <= 0 {
		return errors.New("price must be > 0")
	}
	if r.Stock < 0 {
		return errors.New("stock must be >= 0")
	}
	return nil
}

// syncIndex mirrors the mutation into elasticsearch; the DB row is the
// source of truth, so index failures are only logged.
func (h *ProductHandler) syncIndex(c echo.Context, p *models.Product, deleted bool) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("component", "product_index")

	var err error
	if deleted {
		err = h.Indexer.DeleteProduct(ctx, p.ID)
	} else {
		err = h.Indexer.IndexProduct(ctx, p)
	}
	if err != nil {
		l.Error("index_sync_failed", "product_id", p.ID, "error", err)
	}
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := h.DB.Preload("Reviews").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.Preload("Reviews").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionViewProduct, map[string]any{
		"product_id": product.ID, "product_name": product.Name,
	})
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var existing models.Product
	if err := h.DB.Where("name = ? AND brand = ?", req.Name, req.Brand).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	product := models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		h.Audit.Record(c, audit.ActionNewProductAddedFailed, map[string]any{"error": err.Error()})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionNewProductAdded, map[string]any{
		"product_id": product.ID, "product_name": product.Name,
	})
	h.syncIndex(c, &product, false)

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	product.Name = req.Name
	product.Brand = req.Brand
	product.Category = req.Category
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.Image = req.Image

	if err := h.DB.Save(&product).Error; err != nil {
		h.Audit.Record(c, audit.ActionProductUpdatedFailed, map[string]any{"error": err.Error()})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionProductUpdated, map[string]any{
		"product_id": product.ID, "product_name": product.Name,
	})
	h.syncIndex(c, &product, false)

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		h.Audit.Record(c, audit.ActionProductDeletedFailed, map[string]any{"error": err.Error()})
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.Audit.Record(c, audit.ActionProductDeleted, map[string]any{
		"product_id": product.ID, "product_name": product.Name,
	})
	h.syncIndex(c, &product, true)

	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

func (h *ProductHandler) AddReview(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ctx := c.Request().Context()
	product, err := h.Reviews.Upsert(ctx, ident.Actor(), ident.Name, uint(id), req.Rating, req.Comment)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "review added/updated successfully",
		"product": product,
	})
}

func (h *ProductHandler) DeleteReview(c echo.Context) error {
	ident, _ := authmw.FromContext(c)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product or review id")
	}
	reviewID, err := strconv.Atoi(c.Param("reviewId"))
	if err != nil || reviewID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product or review id")
	}

	ctx := c.Request().Context()
	product, err := h.Reviews.Delete(ctx, ident.Actor(), uint(productID), uint(reviewID))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "review deleted successfully",
		"product": product,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
