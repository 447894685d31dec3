package order

import "context"

// PaymentDetails is what the checkout form collects. Nothing here is validated.
type PaymentDetails struct {
	CardholderName string `json:"cardholderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
}

type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
}

// ProcessPayment emulates a gateway and always succeeds
func (l *Ledger) ProcessPayment(ctx context.Context, details PaymentDetails) PaymentResult {
	return PaymentResult{
		Success:       true,
		TransactionID: newID("TXN", 8, l.now()),
	}
}
