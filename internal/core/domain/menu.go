package domain

import (
	"fmt"
	"strings"
)

// DefaultCurrency is the home currency used when an upstream omits one.
const DefaultCurrency = "EUR"

// Money is an amount in major currency units.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// MenuItemOption is a purchasable variant of a dish (size, add-on).
type MenuItemOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
}

// MenuItem is the unified menu entry shape produced by every source.
// Price is nil exactly when Options is non-empty: the price lives on the
// options instead of the base item.
type MenuItem struct {
	Restaurant  RestaurantID     `json:"restaurant"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *Money           `json:"price"`
	Options     []MenuItemOption `json:"options"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects validation failures for one record.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

func validateMoney(field string, m Money, errs FieldErrors) FieldErrors {
	if m.Amount < 0 {
		errs = append(errs, FieldError{field + ".amount", "must not be negative"})
	}
	if len(m.Currency) != 3 || m.Currency != strings.ToUpper(m.Currency) {
		errs = append(errs, FieldError{field + ".currency", "must be a 3-letter upper-case code"})
	}
	return errs
}

// Validate checks the unified menu-item invariants, including referential
// integrity against the known restaurant set and the price/options
// exclusivity rule.
func (m MenuItem) Validate() error {
	var errs FieldErrors

	if !IsKnownRestaurant(m.Restaurant) {
		errs = append(errs, FieldError{"restaurant", fmt.Sprintf("unknown restaurant %q", m.Restaurant)})
	}
	if m.Name == "" {
		errs = append(errs, FieldError{"name", "must not be empty"})
	}

	if m.Price != nil && len(m.Options) > 0 {
		errs = append(errs, FieldError{"price", "must be null when options are present"})
	}
	if m.Price == nil && len(m.Options) == 0 {
		errs = append(errs, FieldError{"price", "must be set when there are no options"})
	}
	if m.Price != nil {
		errs = validateMoney("price", *m.Price, errs)
	}

	for i, opt := range m.Options {
		field := fmt.Sprintf("options[%d]", i)
		if opt.Name == "" {
			errs = append(errs, FieldError{field + ".name", "must not be empty"})
		}
		errs = validateMoney(field+".price", opt.Price, errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
