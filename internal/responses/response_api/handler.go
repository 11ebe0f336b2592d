package response_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
	"fomo-app/internal/responses"
	"fomo-app/internal/utils"
)

type Handler struct {
	ResponseService *responses.ResponseService
	Logger          *logger.Logger
}

func NewHandler(responseService *responses.ResponseService, log *logger.Logger) *Handler {
	return &Handler{ResponseService: responseService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/response", func(r chi.Router) {
		r.Post("/", h.RecordResponse)
		r.Get("/current", h.CurrentResponse)
		r.Get("/user/{userId}", h.LatestByUser)
		r.Get("/event/{eventId}", h.LatestByEvent)
	})
}

type recordRequest struct {
	UserID    string `json:"user_id"`
	EventID   string `json:"event_id"`
	Response  string `json:"response"`
	InvitedBy string `json:"invited_by,omitempty"`
}

func (h *Handler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	value := models.NormalizeResponse(req.Response)
	entry, err := h.ResponseService.Record(req.UserID, req.EventID, value, req.InvitedBy)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("RecordResponse: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.Logger.LogResponse("RECORD", req.UserID, req.EventID)
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("response recorded", entry))
}

func (h *Handler) CurrentResponse(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	eventID := r.URL.Query().Get("event_id")
	if userID == "" || eventID == "" {
		http.Error(w, "user_id and event_id are required", http.StatusBadRequest)
		return
	}

	value, err := h.ResponseService.ResolveCurrentResponse(userID, eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CurrentResponse: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("current response", map[string]string{
		"user_id":  userID,
		"event_id": eventID,
		"response": string(value),
	}))
}

func (h *Handler) LatestByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	latest, err := h.ResponseService.ResolveLatestByUser(userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("LatestByUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("latest responses by user", latest))
}

func (h *Handler) LatestByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	latest, err := h.ResponseService.ResolveLatestByEvent(eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("LatestByEvent: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("latest responses by event", latest))
}
