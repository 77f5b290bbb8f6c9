package helpers

import (
	"math"
	"net/mail"
	"strings"

	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
)

// Customer is the contact and delivery data captured at checkout.
type Customer struct {
	Name     string
	Phone    string
	Email    *string
	Address  string
	Location *geo.Point
}

// NormalizeCustomer trims the customer fields and rejects incomplete or
// malformed contact data.
func NormalizeCustomer(in Customer) (Customer, error) {
	out := Customer{
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Location: in.Location,
	}
	if out.Name == "" {
		return Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if out.Phone == "" {
		return Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if out.Address == "" {
		return Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if in.Email != nil {
		if email := strings.TrimSpace(*in.Email); email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "customer email is invalid")
			}
			out.Email = &email
		}
	}
	if loc := in.Location; loc != nil {
		if !loc.IsFinite() || math.Abs(loc.Lat) > 90 || math.Abs(loc.Lng) > 180 {
			return Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery location is out of range")
		}
	}
	return out, nil
}
