package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// lowCostHash keeps the operator tests fast
func lowCostHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"8 characters", "password", nil},
		{"with special chars", "p@ssw0rd!", nil},
		{"7 characters", "1234567", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)
				return
			}
			require.NoError(t, err)
			assert.True(t, CheckPassword(tt.password, hash))
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash := lowCostHash(t, "Password123")

	assert.True(t, CheckPassword("Password123", hash))
	assert.False(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("Password123", "invalid-hash"))
	assert.False(t, CheckPassword("Password123", ""))
}

// ============================================
// Operator Tests
// ============================================

func TestOperator_Authenticate(t *testing.T) {
	op := Operator{Email: "admin@shop.test", PasswordHash: lowCostHash(t, "s3cret-pass")}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "admin@shop.test", "s3cret-pass", false},
		{"email case-insensitive", "Admin@Shop.test", "s3cret-pass", false},
		{"wrong password", "admin@shop.test", "nope-nope", true},
		{"wrong email", "other@shop.test", "s3cret-pass", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := op.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOperator_Authenticate_NoHashConfigured(t *testing.T) {
	op := Operator{Email: "admin@shop.test"}

	assert.ErrorIs(t, op.Authenticate("admin@shop.test", ""), ErrInvalidCredentials)
}
