package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/audit"
	authmw "github.com/sharmaketan/shopkart/internal/middleware/auth"
	"github.com/sharmaketan/shopkart/internal/models"
)

func asUser(c echo.Context, id uint) {
	c.Set("identity", authmw.Identity{ID: id, Name: "Tester", Role: models.RoleUser})
	c.Set("userID", id)
	c.Set("role", models.RoleUser)
}

func seedCartProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	p := models.Product{
		Name:        "keyboard",
		Brand:       "acme",
		Category:    "peripherals",
		Description: "mechanical",
		Price:       4999,
		Stock:       20,
		Image:       "http://img.local/keyboard",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAddToCart(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	p := seedCartProduct(t, db)

	c, rec := jsonContext(http.MethodPost, "/api/v1/cart", `{"product_id":1,"quantity":2}`)
	asUser(c, 1)
	require.NoError(t, h.AddToCart(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", 1, p.ID).First(&item).Error)
	assert.Equal(t, uint(2), item.Quantity)
}

func TestAddToCart_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	seedCartProduct(t, db)

	c, _ := jsonContext(http.MethodPost, "/api/v1/cart", `{"product_id":1,"quantity":1}`)
	asUser(c, 1)
	require.NoError(t, h.AddToCart(c))

	c, _ = jsonContext(http.MethodPost, "/api/v1/cart", `{"product_id":1,"quantity":3}`)
	asUser(c, 1)
	err := h.AddToCart(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	// The original line is untouched.
	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).First(&item).Error)
	assert.Equal(t, uint(1), item.Quantity)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}

	c, _ := jsonContext(http.MethodPost, "/api/v1/cart", `{"product_id":77,"quantity":1}`)
	asUser(c, 1)
	err := h.AddToCart(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestAddToCart_ZeroQuantityDefaultsToOne(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	p := seedCartProduct(t, db)

	c, _ := jsonContext(http.MethodPost, "/api/v1/cart", `{"product_id":1}`)
	asUser(c, 1)
	require.NoError(t, h.AddToCart(c))

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", 1, p.ID).First(&item).Error)
	assert.Equal(t, uint(1), item.Quantity)
}

func TestUpdateCart(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	p := seedCartProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1}).Error)

	c, rec := jsonContext(http.MethodPut, "/api/v1/cart", `{"product_id":1,"quantity":5}`)
	asUser(c, 1)
	require.NoError(t, h.UpdateCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ?", 1).First(&item).Error)
	assert.Equal(t, uint(5), item.Quantity)
}

func TestUpdateCart_MissingLine(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	seedCartProduct(t, db)

	c, _ := jsonContext(http.MethodPut, "/api/v1/cart", `{"product_id":1,"quantity":5}`)
	asUser(c, 1)
	err := h.UpdateCart(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	p := seedCartProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 2}).Error)

	c, rec := jsonContext(http.MethodDelete, "/api/v1/cart/1", "")
	asUser(c, 1)
	c.SetParamNames("productId")
	c.SetParamValues("1")
	require.NoError(t, h.RemoveFromCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.Zero(t, count)

	// Removing it again is a 404.
	c, _ = jsonContext(http.MethodDelete, "/api/v1/cart/1", "")
	asUser(c, 1)
	c.SetParamNames("productId")
	c.SetParamValues("1")
	err := h.RemoveFromCart(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	h := &CartHandler{DB: db, Audit: &audit.Recorder{DB: db}}
	p := seedCartProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 2}).Error)

	c, rec := jsonContext(http.MethodDelete, "/api/v1/cart", "")
	asUser(c, 1)
	require.NoError(t, h.ClearCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}
