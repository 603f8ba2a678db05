package lookup

import "github.com/moon8997/my-erp/internal/domain/catalog"

// BootstrapResponse carries both autocomplete lists
type BootstrapResponse struct {
	Customers []string                 `json:"customers"`
	Products  []catalog.ProductSummary `json:"products"`
}
