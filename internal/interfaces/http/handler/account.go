package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	identityapp "github.com/moon8997/my-erp/internal/application/identity"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// AccountHandler serves registration, login and the navigation menu
type AccountHandler struct {
	BaseHandler
	accounts *identityapp.AccountService
	menus    *identityapp.MenuService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *identityapp.AccountService, menus *identityapp.MenuService) *AccountHandler {
	return &AccountHandler{accounts: accounts, menus: menus}
}

// Register godoc
// @Summary  Register an account
// @Tags     account
// @Failure  409 {object} dto.ErrorResponse
// @Router   /account/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.accounts.Register(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Login godoc
// @Summary  Verify credentials
// @Tags     account
// @Router   /account/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"userId": result.UserID, "name": result.Name})
}

// Menus returns the navigation menu in display order
func (h *AccountHandler) Menus(c *gin.Context) {
	menus, err := h.menus.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"menus": menus})
}

func (h *AccountHandler) Menu(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("menuCode"))
	if err != nil {
		h.BadRequest(c, "invalid menuCode")
		return
	}

	menu, err := h.menus.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"menu": menu})
}
