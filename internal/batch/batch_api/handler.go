package batch_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/batch"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type Handler struct {
	Processor *batch.Processor
	Logger    *logger.Logger
}

func NewHandler(processor *batch.Processor, log *logger.Logger) *Handler {
	return &Handler{Processor: processor, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/batch", h.ProcessBatch)
}

type batchRequest struct {
	UserID  string               `json:"user_id"`
	Actions []models.BatchAction `json:"actions"`
}

func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Processor.Process(req.Actions, req.UserID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ProcessBatch: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.Logger.LogBatch("DONE", fmt.Sprintf("user=%s processed=%d/%d", req.UserID, result.Processed, result.Total))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("batch processed", result))
}
