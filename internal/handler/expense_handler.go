package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/service"
)

// ExpenseHandler serves the expense CRUD endpoints.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type participantDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name,omitempty"`
	Share      decimal.Decimal `json:"share"`
	Percentage decimal.Decimal `json:"percentage"`
	Settled    bool            `json:"settled"`
	SettledAt  *int64          `json:"settledAt,omitempty"`
}

type expenseDTO struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Category     string           `json:"category"`
	PayerID      string           `json:"payerId"`
	GroupID      string           `json:"groupId,omitempty"`
	SplitType    string           `json:"splitType"`
	Participants []participantDTO `json:"participants"`
	Settled      bool             `json:"settled"`
	CreatedAt    int64            `json:"createdAt"`
	UpdatedAt    int64            `json:"updatedAt"`
}

type expenseRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Category     string           `json:"category"`
	PayerID      string           `json:"payerId"`
	GroupID      string           `json:"groupId"`
	SplitType    string           `json:"splitType"`
	Participants []participantDTO `json:"participants"`
}

type expensePatchRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Amount       *decimal.Decimal  `json:"amount"`
	Currency     *string           `json:"currency"`
	Category     *string           `json:"category"`
	PayerID      *string           `json:"payerId"`
	GroupID      *string           `json:"groupId"`
	SplitType    *string           `json:"splitType"`
	Participants *[]participantDTO `json:"participants"`
	Settled      *bool             `json:"settled"`
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := toExpenseInput(req)
	if err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.expenseService.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToDTO(expense))
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	expense, err := h.expenseService.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToDTO(expense))
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groupID := r.URL.Query().Get("group")
	personalOnly := r.URL.Query().Has("personal")

	expenses, err := h.expenseService.List(r.Context(), userID, groupID, personalOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]expenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, expenseToDTO(expense))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req expensePatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, err := toExpensePatch(req)
	if err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.expenseService.Update(r.Context(), userID, mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToDTO(expense))
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.expenseService.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toExpenseInput(req expenseRequest) (service.ExpenseInput, error) {
	category := models.CategoryOther
	if req.Category != "" {
		var err error
		category, err = models.ParseCategory(req.Category)
		if err != nil {
			return service.ExpenseInput{}, validationError(err)
		}
	}
	splitType, err := models.ParseSplitType(req.SplitType)
	if err != nil {
		return service.ExpenseInput{}, validationError(err)
	}

	participants := make([]service.ParticipantInput, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = service.ParticipantInput{
			ID:         p.ID,
			Name:       p.Name,
			Share:      p.Share,
			Percentage: p.Percentage,
		}
	}

	return service.ExpenseInput{
		Title:        req.Title,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Category:     category,
		PayerID:      req.PayerID,
		GroupID:      req.GroupID,
		SplitType:    splitType,
		Participants: participants,
	}, nil
}

func toExpensePatch(req expensePatchRequest) (models.ExpensePatch, error) {
	patch := models.ExpensePatch{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		PayerID:     req.PayerID,
		GroupID:     req.GroupID,
		Settled:     req.Settled,
	}

	if req.Category != nil {
		category, err := models.ParseCategory(*req.Category)
		if err != nil {
			return models.ExpensePatch{}, validationError(err)
		}
		patch.Category = &category
	}
	if req.SplitType != nil {
		splitType, err := models.ParseSplitType(*req.SplitType)
		if err != nil {
			return models.ExpensePatch{}, validationError(err)
		}
		patch.SplitType = &splitType
	}
	if req.Participants != nil {
		participants := make([]models.Participant, len(*req.Participants))
		for i, p := range *req.Participants {
			participants[i] = models.Participant{
				ID:        p.ID,
				Name:      p.Name,
				Share:     p.Share,
				Settled:   p.Settled,
				SettledAt: p.SettledAt,
			}
		}
		patch.Participants = &participants
	}
	return patch, nil
}

func expenseToDTO(expense *models.Expense) expenseDTO {
	participants := make([]participantDTO, len(expense.Participants))
	for i, p := range expense.Participants {
		participants[i] = participantDTO{
			ID:        p.ID,
			Name:      p.Name,
			Share:     p.Share,
			Settled:   p.Settled,
			SettledAt: p.SettledAt,
		}
	}
	return expenseDTO{
		ID:           expense.ID,
		Title:        expense.Title,
		Description:  expense.Description,
		Amount:       expense.Amount,
		Currency:     expense.Currency,
		Category:     string(expense.Category),
		PayerID:      expense.PayerID,
		GroupID:      expense.GroupID,
		SplitType:    string(expense.SplitType),
		Participants: participants,
		Settled:      expense.Settled,
		CreatedAt:    expense.CreatedAt,
		UpdatedAt:    expense.UpdatedAt,
	}
}
