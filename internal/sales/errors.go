package sales

import (
	"errors"
	"fmt"
)

// Validation sentinels. Callers match them with errors.Is through the
// ValidationError wrapper.
var (
	ErrCustomerRequired = errors.New("customer is required")
	ErrDateRequired     = errors.New("date is required")
	ErrNoItems          = errors.New("at least one item is required")
	ErrItemProduct      = errors.New("product is required")
	ErrItemUnit         = errors.New("unit is required")
	ErrItemPrice        = errors.New("price must be greater than zero")
	ErrItemQuantity     = errors.New("quantity must be greater than zero")
	ErrPaymentAmount    = errors.New("payment amount must be greater than zero")
)

// ErrNoSaleViewed is returned by payment operations when no payment view is
// open.
var ErrNoSaleViewed = errors.New("no sale is being viewed")

// ValidationError marks input the editor rejects before any gateway call is
// made. Row is the 1-based position of the offending line item, 0 when the
// failure is not tied to a row.
type ValidationError struct {
	Err error
	Row int
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("item %d: %v", e.Row, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err originated from draft or payment
// validation rather than from the gateway.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
