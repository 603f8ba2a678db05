package partner

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	CompanyName string `json:"companyName" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=255"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	CompanyName string `json:"companyName" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=255"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	CustomerID  int64     `json:"customerId"`
	CompanyName string    `json:"companyName"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DuplicateCheckResponse is the answer of a company name availability check
type DuplicateCheckResponse struct {
	IsDuplicate bool   `json:"isDuplicate"`
	Message     string `json:"message"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.ID,
		CompanyName: c.CompanyName,
		Phone:       c.Phone,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
