package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/models"
	"github.com/splittab/splittab/internal/service"
)

// FriendHandler serves the friend directory endpoints.
type FriendHandler struct {
	friendService *service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type friendDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	friend, err := h.friendService.Create(r.Context(), userID, &models.Friend{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, friendToDTO(friend))
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	friends, err := h.friendService.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]friendDTO, 0, len(friends))
	for _, friend := range friends {
		dtos = append(dtos, friendToDTO(friend))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.friendService.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func friendToDTO(friend *models.Friend) friendDTO {
	return friendDTO{
		ID:        friend.ID,
		Name:      friend.Name,
		Email:     friend.Email,
		Phone:     friend.Phone,
		CreatedAt: friend.CreatedAt,
	}
}
