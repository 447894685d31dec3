package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const AggregateType = "Order"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrInvalidStatus   = errors.New("invalid order status transition")
	ErrInvalidCustomer = errors.New("invalid customer details")
	ErrOrderNotSaved   = errors.New("order could not be saved")
)

// validTransitions defines allowed state transitions
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {}, // terminal state
}

// ParseStatus rejects anything outside the four lifecycle values
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

var validate = validator.New()

type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type Customer struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     string  `json:"phone" validate:"required"`
	Address   Address `json:"address"`
}

// Validate checks the fields a checkout form requires
func (c Customer) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCustomer, err)
	}
	return nil
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Order is the durable record created at checkout. Items are a snapshot of the
// cart and Total is stored exactly as supplied.
type Order struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Items     []cart.Entry    `json:"items"`
	Total     decimal.Decimal `json:"total"`
	OrderDate time.Time       `json:"orderDate"`
	Status    Status          `json:"status"`
}

// CanTransitionTo checks if the order can transition to the target status
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[o.Status]
	if !exists {
		return false
	}
	return slices.Contains(allowed, target)
}

// ItemCount sums the quantities of all items
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

func (o *Order) clone() *Order {
	c := *o
	c.Items = cart.CloneEntries(o.Items)
	return &c
}
