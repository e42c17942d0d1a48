package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/service"
)

// CategoryHandler serves spending summaries by category.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryTotalsResponse struct {
	Scope  string                     `json:"scope"`
	Totals map[string]decimal.Decimal `json:"totals"`
}

func (h *CategoryHandler) Totals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, err)
		return
	}

	totals, err := h.categoryService.Totals(r.Context(), userID, scope)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := categoryTotalsResponse{
		Scope:  string(scope),
		Totals: make(map[string]decimal.Decimal, len(totals)),
	}
	for category, amount := range totals {
		resp.Totals[string(category)] = amount
	}
	writeJSON(w, http.StatusOK, resp)
}
