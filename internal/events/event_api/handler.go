package event_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/events"
	"fomo-app/internal/events/qr"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type Handler struct {
	EventService *events.EventService
	ShareQR      *qr.ShareQRGenerator
	Logger       *logger.Logger
}

func NewHandler(eventService *events.EventService, shareQR *qr.ShareQRGenerator, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		ShareQR:      shareQR,
		Logger:       log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/event", func(r chi.Router) {
		r.Post("/", h.CreateEvent)
		r.Get("/tags", h.TagCounts)
		r.Get("/{eventId}", h.GetEvent)
		r.Put("/{eventId}", h.UpdateEvent)
		r.Delete("/{eventId}", h.DeleteEvent)
		r.Get("/{eventId}/share-qr", h.ShareQRCode)
	})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.EventService.Create(event)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateEvent: created %s", created.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("event created", created))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	event, err := h.EventService.Get(eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetEvent: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event found", event))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var update models.Event
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.EventService.Overwrite(eventID, update)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateEvent: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event updated", updated))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if err := h.EventService.Delete(eventID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteEvent: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TagCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.EventService.CountTags()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("TagCounts: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tag counts", counts))
}

func (h *Handler) ShareQRCode(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if _, err := h.EventService.Get(eventID); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	png, err := h.ShareQR.GenerateShareQR(eventID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ShareQRCode: %v", err))
		http.Error(w, "Failed to generate QR: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
