package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/models"
	"github.com/sharmaketan/shopkart/internal/service/review"
)

func newProductHandler(t *testing.T) *ProductHandler {
	t.Helper()
	db := newTestDB(t)
	return &ProductHandler{
		DB:      db,
		Audit:   &audit.Recorder{DB: db},
		Reviews: &review.Service{DB: db},
	}
}

const laptopBody = `{"name":"laptop","brand":"acme","category":"computers","description":"thin and light","price":59999,"stock":5,"image":"http://img.local/laptop"}`

func TestCreateProduct(t *testing.T) {
	h := newProductHandler(t)

	c, rec := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var p models.Product
	require.NoError(t, h.DB.Where("name = ?", "laptop").First(&p).Error)
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, 59999.0, p.Price)
}

func TestCreateProduct_DuplicateNameBrand(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	c, _ = jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	err := h.CreateProduct(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCreateProduct_Validation(t *testing.T) {
	h := newProductHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"name":"x"}`},
		{"zero price", `{"name":"x","brand":"b","category":"c","description":"d","price":0,"stock":1,"image":"i"}`},
		{"negative stock", `{"name":"x","brand":"b","category":"c","description":"d","price":10,"stock":-1,"image":"i"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", tt.body)
			err := h.CreateProduct(c)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	updated := `{"name":"laptop","brand":"acme","category":"computers","description":"refreshed","price":54999,"stock":8,"image":"http://img.local/laptop"}`
	c, rec := jsonContext(http.MethodPut, "/api/v1/admin/products/1", updated)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, h.DB.First(&p, 1).Error)
	assert.Equal(t, 54999.0, p.Price)
	assert.Equal(t, 8, p.Stock)
	assert.Equal(t, "refreshed", p.Description)
}

func TestDeleteProduct(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	c, rec := jsonContext(http.MethodDelete, "/api/v1/admin/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	c, _ = jsonContext(http.MethodDelete, "/api/v1/admin/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.DeleteProduct(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestGetProducts_Pagination(t *testing.T) {
	h := newProductHandler(t)

	for i := 0; i < 12; i++ {
		p := models.Product{
			Name:        "p" + string(rune('a'+i)),
			Brand:       "acme",
			Category:    "misc",
			Description: "d",
			Price:       10,
			Stock:       1,
			Image:       "i",
		}
		require.NoError(t, h.DB.Create(&p).Error)
	}

	c, rec := jsonContext(http.MethodGet, "/api/v1/products?page=2&size=10", "")
	require.NoError(t, h.GetProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
			HasNext    bool  `json:"has_next"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, int64(2), resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasPrev)
	assert.False(t, resp.Meta.HasNext)
}

func TestAddReview_ThroughHandler(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	c, rec := jsonContext(http.MethodPost, "/api/v1/products/1/reviews", `{"rating":4,"comment":"works well"}`)
	asUser(c, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.AddReview(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, h.DB.First(&p, 1).Error)
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 4.0, p.AvgRating)
}

func TestAddReview_BadRating(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	c, _ = jsonContext(http.MethodPost, "/api/v1/products/1/reviews", `{"rating":9,"comment":"x"}`)
	asUser(c, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.AddReview(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestDeleteReview_ThroughHandler(t *testing.T) {
	h := newProductHandler(t)

	c, _ := jsonContext(http.MethodPost, "/api/v1/admin/products", laptopBody)
	require.NoError(t, h.CreateProduct(c))

	c, _ = jsonContext(http.MethodPost, "/api/v1/products/1/reviews", `{"rating":4,"comment":"works well"}`)
	asUser(c, 7)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.AddReview(c))

	var rev models.Review
	require.NoError(t, h.DB.Where("product_id = ?", 1).First(&rev).Error)

	c, rec := jsonContext(http.MethodDelete, "/api/v1/products/1/reviews/1", "")
	asUser(c, 7)
	c.SetParamNames("productId", "reviewId")
	c.SetParamValues("1", "1")
	require.NoError(t, h.DeleteReview(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, h.DB.First(&p, 1).Error)
	assert.Equal(t, 0, p.NumReviews)
	assert.Equal(t, 0.0, p.AvgRating)
}
