package order

import (
	"errors"
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"resto-dashboard/internal/cart"
	"resto-dashboard/internal/domain"
)

// ErrEmptyCart is returned when a checkout is attempted with nothing in the
// cart. Callers surface it as a validation message; it never reaches the
// backend.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutRequest is the user-chosen half of an order. The table and time
// ranges mirror what the dashboard UI offers and are enforced here rather
// than trusted to the client.
type CheckoutRequest struct {
	TableNumber   int    `json:"table_number" validate:"required,min=1,max=20"`
	EstimatedTime int    `json:"estimated_time" validate:"required,min=5,max=200"`
	Notes         string `json:"notes" validate:"max=500"`
}

// Composer builds a submittable order snapshot from the current cart
// entries plus the checkout request.
type Composer struct {
	validate *validatorv10.Validate
	now      func() time.Time
}

func NewComposer() *Composer {
	return &Composer{
		validate: validatorv10.New(),
		now:      time.Now,
	}
}

func (c *Composer) Compose(entries []domain.CartEntry, req CheckoutRequest) (domain.Order, error) {
	if len(entries) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	if err := c.validate.Struct(req); err != nil {
		return domain.Order{}, fmt.Errorf("invalid order: %s", validationDetail(err))
	}

	dishes := make([]domain.CartEntry, len(entries))
	copy(dishes, entries)

	return domain.Order{
		TableID:       req.TableNumber,
		EstimatedTime: req.EstimatedTime,
		CreatedAt:     c.now(),
		TotalPrice:    cart.Total(entries),
		Notes:         req.Notes,
		Dishes:        dishes,
	}, nil
}

func validationDetail(err error) string {
	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	fe := fieldErrs[0]
	switch fe.Field() {
	case "TableNumber":
		return "table number must be between 1 and 20"
	case "EstimatedTime":
		return "estimated time must be between 5 and 200 minutes"
	case "Notes":
		return "notes must be at most 500 characters"
	}
	return fe.Error()
}
