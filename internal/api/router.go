package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/ec-storefront/internal/api/middleware"
	"github.com/example/ec-storefront/internal/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Handlers     *Handlers
	AuthHandlers *AuthHandlers
	JWTService   *auth.JWTService
	WebDir       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	h := cfg.Handlers

	handle := func(route string, fn http.HandlerFunc) {
		mux.Handle(route, middleware.Metrics(route, fn))
	}
	operatorOnly := func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware(cfg.JWTService)(middleware.RequireRole(auth.RoleAdmin)(next))
	}

	// Static files (web UI)
	if cfg.WebDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.WebDir)))
	}

	mux.Handle("/metrics", promhttp.Handler())

	// Products
	handle("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetProducts(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	handle("/products/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.SearchProducts(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	handle("/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetProduct(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	handle("/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCategories(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Cart
	handle("/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCart(w, r)
		case http.MethodDelete:
			h.ClearCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	handle("/cart/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.AddToCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	handle("/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.UpdateCartItem(w, r)
		case http.MethodDelete:
			h.RemoveFromCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Checkout & orders
	handle("/checkout", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.Checkout(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Listing orders and changing status are operator-only. Without an
	// operator neither route exists.
	operatorEnabled := cfg.AuthHandlers.Enabled()

	var updateStatus http.Handler
	if operatorEnabled {
		listOrders := operatorOnly(http.HandlerFunc(h.GetOrders))
		handle("/orders", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				listOrders.ServeHTTP(w, r)
			default:
				methodNotAllowed(w)
			}
		})
		updateStatus = operatorOnly(http.HandlerFunc(h.UpdateOrderStatus))
	} else {
		// Registered so the mux does not redirect /orders into /orders/
		handle("/orders", notFound)
	}

	handle("/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status"):
			if updateStatus == nil {
				notFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w)
				return
			}
			updateStatus.ServeHTTP(w, r)
		case r.Method == http.MethodGet:
			h.GetOrder(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	// Operator auth
	if operatorEnabled {
		handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				cfg.AuthHandlers.Login(w, r)
			default:
				methodNotAllowed(w)
			}
		})

		handle("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				cfg.AuthHandlers.Logout(w, r)
			default:
				methodNotAllowed(w)
			}
		})

		me := operatorOnly(http.HandlerFunc(cfg.AuthHandlers.Me))
		handle("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				me.ServeHTTP(w, r)
			default:
				methodNotAllowed(w)
			}
		})
	}

	return withLogging(mux)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondJSONError(w, "Not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter) {
	respondJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[API] %s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
