package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/ruralpay/corebank/internal/middleware"
	"github.com/ruralpay/corebank/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RequestTimeout bounds handler execution. The server's write timeout must be
// longer so the timeout response can still be written.
const RequestTimeout = 10 * time.Second

// NewRouter wires every endpoint onto a chi router. The /auth routes are only
// mounted when tokens is non-nil.
func NewRouter(users *UserHandler, accounts *AccountHandler, transactions *TransactionHandler, tokens *services.TokenService) http.Handler {
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		services.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/register", users.Register)
	r.Post("/login", users.Login)
	r.Get("/users/{id}", users.GetUser)
	r.Delete("/users/{id}", users.DeleteUser)

	r.Post("/accounts", accounts.CreateAccount)
	r.Get("/accounts/{id}", accounts.ListAccounts)
	r.Get("/accounts/{id}/transactions", accounts.History)
	r.Post("/addmoney", accounts.AddMoney)

	r.Post("/transactions", transactions.Transfer)

	if tokens != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/logout", users.Logout)
			r.Group(func(r chi.Router) {
				r.Use(mW.Authenticate(tokens))
				r.Get("/account", users.Account)
			})
		})
	}

	return r
}
