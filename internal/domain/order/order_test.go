package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() Customer {
	return Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-0100",
		Address: Address{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "US",
		},
	}
}

// ============================================
// Status Tests
// ============================================

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		expected bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusConfirmed, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusDelivered, false},
		{Status("cancelled"), StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			assert.Equal(t, tt.expected, o.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "shipped", "delivered"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), status)
	}

	_, err := ParseStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// ============================================
// Customer Tests
// ============================================

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Customer)
		wantErr bool
	}{
		{"valid", func(*Customer) {}, false},
		{"missing first name", func(c *Customer) { c.FirstName = "" }, true},
		{"missing phone", func(c *Customer) { c.Phone = "" }, true},
		{"malformed email", func(c *Customer) { c.Email = "not-an-email" }, true},
		{"missing zip code", func(c *Customer) { c.Address.ZipCode = "" }, true},
		{"missing country", func(c *Customer) { c.Address.Country = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)

			err := c.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCustomer)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomer_FullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", validCustomer().FullName())
}
