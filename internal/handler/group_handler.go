package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/service"
)

// GroupHandler serves the group endpoints, including membership, balances,
// and settlement.
type GroupHandler struct {
	groupService      *service.GroupService
	balanceService    *service.BalanceService
	settlementService *service.SettlementService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(
	groupService *service.GroupService,
	balanceService *service.BalanceService,
	settlementService *service.SettlementService,
) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		balanceService:    balanceService,
		settlementService: settlementService,
	}
}

type groupDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	MemberIDs   []string `json:"memberIds"`
	CreatedAt   int64    `json:"createdAt"`
}

type groupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Currency    string   `json:"currency"`
	MemberIDs   []string `json:"memberIds"`
}

type groupPatchRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Color       *string   `json:"color"`
	Currency    *string   `json:"currency"`
	MemberIDs   *[]string `json:"memberIds"`
}

type memberDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsOwner bool   `json:"isOwner"`
}

type balanceDTO struct {
	ParticipantID string          `json:"participantId"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

type groupBalanceDTO struct {
	GroupID     string          `json:"groupId"`
	GroupName   string          `json:"groupName"`
	Balances    []balanceDTO    `json:"balances"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req groupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, service.GroupInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Currency:    req.Currency,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, groupToDTO(group))
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	group, err := h.groupService.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDTO(group))
}

func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	groups, err := h.groupService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]groupDTO, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, groupToDTO(group))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req groupPatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupService.Update(r.Context(), userID, mux.Vars(r)["id"], models.GroupPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Currency:    req.Currency,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDTO(group))
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.groupService.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	members, err := h.groupService.Members(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]memberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, memberDTO{ID: m.ID, Name: m.Name, IsOwner: m.IsOwner})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		FriendID string `json:"friendId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupService.AddMember(r.Context(), userID, mux.Vars(r)["id"], req.FriendID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDTO(group))
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	vars := mux.Vars(r)

	group, err := h.groupService.RemoveMember(r.Context(), userID, vars["id"], vars["friendId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToDTO(group))
}

func (h *GroupHandler) Balances(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	gb, err := h.balanceService.Group(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupBalanceToDTO(gb))
}

func (h *GroupHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	n, err := h.settlementService.SettleGroup(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"expensesSettled": n})
}

func (h *GroupHandler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		From   string          `json:"from"`
		To     string          `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := h.settlementService.SettleDebt(r.Context(), userID, mux.Vars(r)["id"], req.From, req.To, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToDTO(expense))
}

func groupToDTO(group *models.Group) groupDTO {
	memberIDs := group.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	return groupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Color:       group.Color,
		Currency:    group.Currency,
		MemberIDs:   memberIDs,
		CreatedAt:   group.CreatedAt,
	}
}

func groupBalanceToDTO(gb *models.GroupBalance) groupBalanceDTO {
	balances := make([]balanceDTO, 0, len(gb.Balances))
	for _, b := range gb.Balances {
		balances = append(balances, balanceDTO{
			ParticipantID: b.ParticipantID,
			Name:          b.Name,
			Amount:        b.Amount,
		})
	}
	return groupBalanceDTO{
		GroupID:     gb.GroupID,
		GroupName:   gb.GroupName,
		Balances:    balances,
		TotalAmount: gb.TotalAmount,
	}
}
