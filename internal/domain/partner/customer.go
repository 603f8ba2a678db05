package partner

import (
	"unicode/utf8"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

const maxCompanyNameLength = 100

// Customer is a trading partner the company sells to
type Customer struct {
	ID          int64
	CompanyName string
	Phone       string
	Address     string
	Deleted     bool
	shared.Timestamps
}

// NewCustomer creates a new customer with a cleaned company name
func NewCustomer(companyName, phone, address string) (*Customer, error) {
	name, err := validateCompanyName(companyName)
	if err != nil {
		return nil, err
	}

	return &Customer{
		CompanyName: name,
		Phone:       phone,
		Address:     address,
		Timestamps:  shared.NewTimestamps(),
	}, nil
}

// Update replaces the editable fields of the customer
func (c *Customer) Update(companyName, phone, address string) error {
	name, err := validateCompanyName(companyName)
	if err != nil {
		return err
	}

	c.CompanyName = name
	c.Phone = phone
	c.Address = address
	c.Touch()
	return nil
}

// Renamed reports whether companyName differs from the stored name once cleaned
func (c *Customer) Renamed(companyName string) bool {
	return c.CompanyName != shared.CleanName(companyName)
}

func validateCompanyName(companyName string) (string, error) {
	name := shared.CleanName(companyName)
	if name == "" {
		return "", shared.NewInvalidArgument("companyName is required")
	}
	if utf8.RuneCountInString(name) > maxCompanyNameLength {
		return "", shared.NewInvalidArgument("companyName cannot exceed %d characters", maxCompanyNameLength)
	}
	return name, nil
}
