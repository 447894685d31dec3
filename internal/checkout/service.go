package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/example/ec-storefront/internal/domain/order"
	"github.com/example/ec-storefront/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

var ErrPaymentDeclined = errors.New("payment declined")

// CartStore is the part of cart.Store that checkout needs. Checkout must hold
// the cart still while fn runs and clear it only when fn succeeds.
type CartStore interface {
	Checkout(ctx context.Context, fn func(cart.Cart) error) error
}

// Ledger is the part of order.Ledger that checkout needs
type Ledger interface {
	ProcessPayment(ctx context.Context, details order.PaymentDetails) order.PaymentResult
	RecordOrder(ctx context.Context, customer order.Customer, items []cart.Entry, total decimal.Decimal) (*order.Order, error)
}

// Request is the data collected by the checkout form
type Request struct {
	Customer order.Customer       `json:"customer"`
	Payment  order.PaymentDetails `json:"payment"`
}

type Result struct {
	Order         *order.Order      `json:"order"`
	Pricing       pricing.Breakdown `json:"pricing"`
	TransactionID string            `json:"transactionId"`
}

type Service struct {
	ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// PlaceOrder turns the current contents of c into an order charged at the
// grand total, then clears c. The cart is left untouched on any error,
// including an order that could not be saved.
func (s *Service) PlaceOrder(ctx context.Context, c CartStore, req Request) (*Result, error) {
	// 1. Validate customer details
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}

	var result *Result
	err := c.Checkout(ctx, func(snapshot cart.Cart) error {
		// 2. Price the cart as it is now
		if snapshot.IsEmpty() {
			return order.ErrEmptyOrder
		}
		breakdown := pricing.Compute(snapshot.Subtotal)

		// 3. Charge (emulated)
		payment := s.ledger.ProcessPayment(ctx, req.Payment)
		if !payment.Success {
			return ErrPaymentDeclined
		}

		// 4. Record the order at the grand total; the cart is emptied on return
		o, err := s.ledger.RecordOrder(ctx, req.Customer, snapshot.Entries, breakdown.GrandTotal)
		if err != nil {
			return err
		}

		result = &Result{
			Order:         o,
			Pricing:       breakdown,
			TransactionID: payment.TransactionID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Checkout] Placed order %s for %s: %s (txn %s)",
		result.Order.ID, req.Customer.Email, pricing.Display(result.Pricing.GrandTotal), result.TransactionID)
	return result, nil
}
