package identity

import "github.com/moon8997/my-erp/internal/domain/identity"

// RegisterRequest is the body of an account registration
type RegisterRequest struct {
	ID       string `json:"id" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=4"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest is the body of a login
type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult identifies the authenticated account
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// MenuResponse represents a navigation menu in API responses
type MenuResponse struct {
	MenuCode     int    `json:"menuCode"`
	MenuName     string `json:"menuName"`
	DisplayOrder int    `json:"displayOrder"`
	Endpoint     string `json:"endpoint"`
	ParentCode   *int   `json:"parentCode"`
}

// ToMenuResponse converts a domain menu to its response
func ToMenuResponse(m *identity.Menu) MenuResponse {
	return MenuResponse{
		MenuCode:     m.MenuCode,
		MenuName:     m.MenuName,
		DisplayOrder: m.DisplayOrder,
		Endpoint:     m.Endpoint,
		ParentCode:   m.ParentCode,
	}
}

// ToMenuResponses converts a slice of menus
func ToMenuResponses(menus []identity.Menu) []MenuResponse {
	responses := make([]MenuResponse, len(menus))
	for i := range menus {
		responses[i] = ToMenuResponse(&menus[i])
	}
	return responses
}
