package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/example/ec-storefront/internal/api/middleware"
	"github.com/example/ec-storefront/internal/auth"
)

// AuthHandlers handles operator login for the back-office endpoints
type AuthHandlers struct {
	operator   auth.Operator
	jwtService *auth.JWTService
}

func NewAuthHandlers(operator auth.Operator, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		operator:   operator,
		jwtService: jwtService,
	}
}

// Enabled reports whether an operator can log in at all. Without a password
// hash the operator routes are not registered.
func (h *AuthHandlers) Enabled() bool {
	return h != nil && h.operator.PasswordHash != ""
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login checks operator credentials and issues an access token, both as a
// cookie and in the body for API clients
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.operator.Authenticate(req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("[Auth] Failed login for %s from %s", req.Email, r.RemoteAddr)
			respondJSONError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(req.Email, auth.RoleAdmin)
	if err != nil {
		respondJSONError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, LoginResponse{
		Email:     req.Email,
		Role:      auth.RoleAdmin,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout clears the token cookie
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the operator behind the current token
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetOperatorFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"email": claims.Email, "role": claims.Role})
}
