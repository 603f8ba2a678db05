package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/moon8997/my-erp/internal/application/catalog"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    request body catalogapp.ProductRequest true "Product"
// @Failure  409 {object} dto.ErrorResponse
// @Router   /products/add [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	id, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"productId": id})
}

// List returns every active product with full details
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"products": products})
}

// ListSummaries returns id, name and sale price of every active product
func (h *ProductHandler) ListSummaries(c *gin.Context) {
	products, err := h.products.ListSummaries(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"products": products})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// CheckDuplicate reports whether a product name is taken
func (h *ProductHandler) CheckDuplicate(c *gin.Context) {
	result, err := h.products.CheckDuplicate(c.Request.Context(), c.Query("productName"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"isDuplicate": result.IsDuplicate, "message": result.Message})
}
