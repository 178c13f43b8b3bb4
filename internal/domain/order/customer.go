package order

import (
	"regexp"
	"strings"
)

// uaeMobile matches a local UAE mobile number: trunk prefix 05
// followed by eight digits, e.g. 0501234567.
var uaeMobile = regexp.MustCompile(`^05\d{8}$`)

// Customer is the validated customer snapshot attached to an order.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// CheckoutForm carries raw customer-supplied fields before validation.
type CheckoutForm struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// FieldError is a per-field validation failure surfaced to the user.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks every required field and returns either a Customer
// or the full list of field errors. It never falls back to placeholder
// data for required fields and never returns a partially valid result.
func (f CheckoutForm) Validate() (Customer, []FieldError) {
	var errs []FieldError

	name := strings.TrimSpace(f.Name)
	if len(name) < 3 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at least 3 characters"})
	}

	phone := strings.TrimSpace(f.Phone)
	if !uaeMobile.MatchString(phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "phone must be a UAE mobile number (05xxxxxxxx)"})
	}

	address := strings.TrimSpace(f.Address)
	if address == "" {
		errs = append(errs, FieldError{Field: "address", Message: "address is required"})
	}

	if len(errs) > 0 {
		return Customer{}, errs
	}

	return Customer{
		Name:    name,
		Phone:   phone,
		Address: address,
		Notes:   strings.TrimSpace(f.Notes),
	}, nil
}
