package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/application/lookup"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// LookupHandler serves the autocomplete lists
type LookupHandler struct {
	BaseHandler
	lookups *lookup.Service
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(lookups *lookup.Service) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

// Bootstrap returns customer names and product summaries in one call
func (h *LookupHandler) Bootstrap(c *gin.Context) {
	lists, err := h.lookups.Bootstrap(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"customers": lists.Customers, "products": lists.Products})
}

// Refresh drops both cached lists here and on every other instance
func (h *LookupHandler) Refresh(c *gin.Context) {
	h.lookups.InvalidateAll(c.Request.Context())
	h.Success(c, nil)
}
