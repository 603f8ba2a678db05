// Package handler adapts HTTP requests to the application services.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
	"github.com/moon8997/my-erp/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 success envelope carrying fields
func (h *BaseHandler) Success(c *gin.Context, fields dto.Fields) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(fields))
}

// BadRequest sends a 400 failure envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// HandleError converts err into a failure envelope. Domain errors keep their
// message; anything else is logged and answered with a generic message so
// driver details never reach the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Message))
		return
	}

	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("request_id", c.GetString(logger.RequestIDContextKey)),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.GenericErrorMessage))
}

// bindJSON binds the body into req and answers 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return false
	}
	return true
}

// int64Param parses a positive integer path parameter and answers 400 when
// it is malformed
func (h *BaseHandler) int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
