package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerHandler(t *testing.T) {
	api := newTestAPI(t)

	status, resp := api.do(t, http.MethodPost, "/api/customers/add", map[string]any{"companyName": "Acme", "phone": "010-1234"})
	require.Equal(t, http.StatusOK, status, resp)
	id := int64(resp["customerId"].(float64))
	assert.Positive(t, id)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		status, resp := api.do(t, http.MethodPost, "/api/customers/add", map[string]any{"companyName": "  Acme "})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, false, resp["success"])
	})

	t.Run("check duplicate", func(t *testing.T) {
		_, resp := api.do(t, http.MethodGet, "/api/customers/check-duplicate?companyName=Acme", nil)
		assert.Equal(t, true, resp["isDuplicate"])
		_, resp = api.do(t, http.MethodGet, "/api/customers/check-duplicate?companyName=", nil)
		assert.Equal(t, false, resp["isDuplicate"])
	})

	t.Run("get, update and delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/customers/%d", id)
		status, resp := api.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Acme", resp["customer"].(map[string]any)["companyName"])

		status, resp = api.do(t, http.MethodPut, path, map[string]any{"companyName": "Acme Trading"})
		require.Equal(t, http.StatusOK, status, resp)
		assert.Equal(t, "Acme Trading", resp["customer"].(map[string]any)["companyName"])

		status, _ = api.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusOK, status)

		status, resp = api.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, resp["message"], "not found")
	})

	t.Run("validation", func(t *testing.T) {
		status, resp := api.do(t, http.MethodPost, "/api/customers/add", map[string]any{"phone": "1"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "companyName: is required", resp["message"])

		status, _ = api.do(t, http.MethodGet, "/api/customers/abc", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestProductHandler(t *testing.T) {
	api := newTestAPI(t)

	status, resp := api.do(t, http.MethodPost, "/api/products/add", map[string]any{"productName": "Widget", "salePrice": 100})
	require.Equal(t, http.StatusOK, status, resp)
	id := int64(resp["productId"].(float64))

	status, resp = api.do(t, http.MethodPost, "/api/products/add", map[string]any{"productName": "Widget"})
	assert.Equal(t, http.StatusConflict, status)

	status, resp = api.do(t, http.MethodGet, "/api/products/list", nil)
	require.Equal(t, http.StatusOK, status)
	products := resp["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, map[string]any{"productId": float64(id), "productName": "Widget", "salePrice": float64(100)}, products[0])

	status, resp = api.do(t, http.MethodGet, "/api/products/check-duplicate?productName=", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "productName is required", resp["message"])

	status, resp = api.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), map[string]any{"productName": "Widget", "salePrice": 120})
	require.Equal(t, http.StatusOK, status, resp)
	assert.Equal(t, float64(120), resp["product"].(map[string]any)["salePrice"])

	status, resp = api.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), map[string]any{"productName": "Widget", "salePrice": -1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["message"], "salePrice")

	status, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = api.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, resp["products"])
}

func TestLookupHandler(t *testing.T) {
	api := newTestAPI(t)

	_, resp := api.do(t, http.MethodGet, "/api/lookup/bootstrap", nil)
	assert.Empty(t, resp["customers"])

	// the write invalidates the cached empty list
	status, _ := api.do(t, http.MethodPost, "/api/customers/add", map[string]any{"companyName": "Acme"})
	require.Equal(t, http.StatusOK, status)

	_, resp = api.do(t, http.MethodGet, "/api/lookup/bootstrap", nil)
	assert.Equal(t, []any{"Acme"}, resp["customers"])

	status, resp = api.do(t, http.MethodPost, "/api/lookup/refresh", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])
}
