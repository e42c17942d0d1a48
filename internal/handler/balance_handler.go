package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/service"
)

// BalanceHandler serves the global balance view.
type BalanceHandler struct {
	balanceService *service.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

type balancesResponse struct {
	Balances []balanceDTO      `json:"balances"`
	Total    decimal.Decimal   `json:"total"`
	Groups   []groupBalanceDTO `json:"groups"`
}

// Get returns every participant's net position across all unsettled
// expenses, plus one balance block per group.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	balances, total, err := h.balanceService.Global(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	groupBalances, err := h.balanceService.AllGroups(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := balancesResponse{
		Balances: make([]balanceDTO, 0, len(balances)),
		Total:    total,
		Groups:   make([]groupBalanceDTO, 0, len(groupBalances)),
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, balanceDTO{
			ParticipantID: b.ParticipantID,
			Name:          b.Name,
			Amount:        b.Amount,
		})
	}
	for i := range groupBalances {
		resp.Groups = append(resp.Groups, groupBalanceToDTO(&groupBalances[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
