package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"expense-tracker/src/auth"
	"expense-tracker/src/handlers"
	"expense-tracker/src/ingest"
	"expense-tracker/src/middleware"
	"expense-tracker/src/store"
)

type Deps struct {
	Auth           auth.Provider
	Transactions   store.TransactionStore
	Ingest         *ingest.Service
	Now            handlers.Clock
	AllowedOrigins []string
	Demo           bool
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(d.AllowedOrigins))
	r.Use(middleware.DemoModeMiddleware(d.Demo))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(d.Auth))
		r.Post("/auth/login", handlers.Login(d.Auth))
		r.Get("/categories", handlers.GetCategories())

		// Protected routes
		r.With(middleware.AuthMiddleware(d.Auth)).Group(func(r chi.Router) {
			// Auth
			r.Get("/auth/user", handlers.GetUser(d.Auth))
			r.Post("/auth/logout", handlers.Logout(d.Auth))

			// Expenses
			r.Get("/expenses", handlers.GetExpenses(d.Transactions))
			r.Post("/expenses", handlers.CreateExpense(d.Ingest))
			r.Delete("/expenses/{id}", handlers.DeleteExpense(d.Transactions))

			// Derived views
			r.Get("/expenses/summary", handlers.GetSummary(d.Transactions, d.Now))
			r.Get("/expenses/view", handlers.GetView(d.Transactions, d.Now))
			r.Get("/expenses/breakdown", handlers.GetBreakdown(d.Transactions, d.Now))
			r.Get("/expenses/breakdown/chart.png", handlers.GetBreakdownChart(d.Transactions, d.Now))
			r.Get("/expenses/statement", handlers.GetStatement(d.Transactions, d.Now))
		})
	})

	return r
}
