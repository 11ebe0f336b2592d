package friendship_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/friendship"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type Handler struct {
	FriendshipService *friendship.FriendshipService
	Logger            *logger.Logger
}

func NewHandler(friendshipService *friendship.FriendshipService, log *logger.Logger) *Handler {
	return &Handler{FriendshipService: friendshipService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/friendship", func(r chi.Router) {
		r.Post("/", h.UpsertFriendship)
		r.Get("/user/{userId}", h.ListForUser)
		r.Get("/{friendshipId}", h.GetFriendship)
		r.Delete("/{friendshipId}", h.DeleteFriendship)
	})
}

type upsertRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Status     string `json:"status"`
}

func (h *Handler) UpsertFriendship(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.FriendshipService.Upsert(req.FromUserID, req.ToUserID, models.FriendshipStatus(req.Status))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpsertFriendship: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.Logger.LogFriendship("UPSERT", result.ID, result.Action)
	status := http.StatusOK
	if result.Action == "created" {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, utils.SuccessResponse("friendship "+result.Action, result))
}

func (h *Handler) GetFriendship(w http.ResponseWriter, r *http.Request) {
	friendshipID := chi.URLParam(r, "friendshipId")

	found, err := h.FriendshipService.Get(friendshipID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetFriendship: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("friendship found", found))
}

func (h *Handler) DeleteFriendship(w http.ResponseWriter, r *http.Request) {
	friendshipID := chi.URLParam(r, "friendshipId")

	if err := h.FriendshipService.Delete(friendshipID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteFriendship: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.Logger.LogFriendship("DELETE", friendshipID, "soft deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	friendships, err := h.FriendshipService.ListForUser(userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListForUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("friendships", friendships))
}
