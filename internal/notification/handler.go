package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/ec-storefront/internal/domain/order"
	"github.com/example/ec-storefront/internal/email"
	"github.com/example/ec-storefront/internal/event"
)

// Mailer sends customer-facing order emails
type Mailer interface {
	SendOrderConfirmation(to string, summary email.OrderSummary) error
	SendStatusUpdate(to, orderID, status string) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer Mailer
}

// NewHandler creates a new notification handler
func NewHandler(mailer Mailer) *Handler {
	return &Handler{mailer: mailer}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var e event.Event
	if err := json.Unmarshal(value, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch e.EventType {
	case order.EventOrderPlaced:
		return h.handleOrderPlaced(e)
	case order.EventOrderStatusChanged:
		return h.handleStatusChanged(e)
	}

	return nil
}

func (h *Handler) handleOrderPlaced(e event.Event) error {
	var data order.OrderPlaced
	if err := json.Unmarshal(e.Data, &data); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}
	o := data.Order

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, customer %s", o.ID, o.Customer.Email)

	// Items carry the product snapshot taken at checkout
	emailItems := make([]email.OrderItem, len(o.Items))
	for i, item := range o.Items {
		emailItems[i] = email.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		}
	}

	summary := email.OrderSummary{
		OrderID:      o.ID,
		CustomerName: o.Customer.FullName(),
		Items:        emailItems,
		Total:        o.Total,
	}
	if err := h.mailer.SendOrderConfirmation(o.Customer.Email, summary); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", o.Customer.Email, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", o.Customer.Email, o.ID)
	return nil
}

func (h *Handler) handleStatusChanged(e event.Event) error {
	var data order.OrderStatusChanged
	if err := json.Unmarshal(e.Data, &data); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderStatusChanged event: %v", err)
		return err
	}
	if data.Email == "" {
		log.Printf("[Notifier] No email on status change for order %s", data.OrderID)
		return nil
	}

	if err := h.mailer.SendStatusUpdate(data.Email, data.OrderID, string(data.To)); err != nil {
		log.Printf("[Notifier] Failed to send status email to %s: %v", data.Email, err)
		return err
	}

	log.Printf("[Notifier] Status email sent to %s for order %s (%s -> %s)", data.Email, data.OrderID, data.From, data.To)
	return nil
}
