// Package validation holds the input checks shared by the menu and order packages.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports input that fails a domain constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MenuItem checks a menu item name and price. The name is expected to be trimmed.
func MenuItem(name string, price decimal.Decimal) error {
	if name == "" {
		return ValidationError{
			Field:   "name",
			Message: "name is required",
		}
	}
	if !price.IsPositive() {
		return ValidationError{
			Field:   "price",
			Message: "price must be greater than 0",
		}
	}
	return nil
}

// Quantity checks a line item quantity.
func Quantity(qty int) error {
	if qty <= 0 {
		return ValidationError{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		}
	}
	return nil
}

// ParsePrice converts raw user input into a price and validates it.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ValidationError{
			Field:   "price",
			Message: "price must be a number",
		}
	}
	if !price.IsPositive() {
		return decimal.Zero, ValidationError{
			Field:   "price",
			Message: "price must be greater than 0",
		}
	}
	return price, nil
}

// ParseQuantity converts raw user input into a quantity. Fractional and
// non-numeric input is rejected.
func ParseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ValidationError{
			Field:   "quantity",
			Message: "quantity must be a positive integer",
		}
	}
	if err := Quantity(qty); err != nil {
		return 0, err
	}
	return qty, nil
}
