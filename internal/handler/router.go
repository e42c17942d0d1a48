package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splittab/splittab/internal/auth"
	"github.com/splittab/splittab/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Expense  *ExpenseHandler
	Group    *GroupHandler
	Friend   *FriendHandler
	Balance  *BalanceHandler
	Category *CategoryHandler
}

// NewRouter wires all routes. Everything under /api except the auth
// endpoints requires a bearer token.
func NewRouter(h Handlers, jwtManager *auth.JWTManager) *mux.Router {
	router := mux.NewRouter()

	// Mounted as mux middleware so the matched route template is
	// available for the metric's path label.
	router.Use(func(next http.Handler) http.Handler {
		return middleware.Metrics(PathTemplate, next)
	})

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return middleware.RequireAuth(jwtManager, next)
	})

	protected.HandleFunc("/expenses", h.Expense.List).Methods(http.MethodGet)
	protected.HandleFunc("/expenses", h.Expense.Create).Methods(http.MethodPost)
	protected.HandleFunc("/expenses/{id}", h.Expense.Get).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id}", h.Expense.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/expenses/{id}", h.Expense.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/groups", h.Group.List).Methods(http.MethodGet)
	protected.HandleFunc("/groups", h.Group.Create).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}", h.Group.Get).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}", h.Group.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/groups/{id}", h.Group.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/groups/{id}/members", h.Group.Members).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}/members", h.Group.AddMember).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/members/{friendId}", h.Group.RemoveMember).Methods(http.MethodDelete)
	protected.HandleFunc("/groups/{id}/balances", h.Group.Balances).Methods(http.MethodGet)
	protected.HandleFunc("/groups/{id}/settle", h.Group.Settle).Methods(http.MethodPost)
	protected.HandleFunc("/groups/{id}/settlements", h.Group.SettleDebt).Methods(http.MethodPost)

	protected.HandleFunc("/balances", h.Balance.Get).Methods(http.MethodGet)
	protected.HandleFunc("/categories", h.Category.Totals).Methods(http.MethodGet)

	protected.HandleFunc("/friends", h.Friend.List).Methods(http.MethodGet)
	protected.HandleFunc("/friends", h.Friend.Create).Methods(http.MethodPost)
	protected.HandleFunc("/friends/{id}", h.Friend.Delete).Methods(http.MethodDelete)

	return router
}

// PathTemplate reports the matched route pattern, for metric labels with
// bounded cardinality.
func PathTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}
