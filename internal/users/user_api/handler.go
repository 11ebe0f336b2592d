package user_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/logger"
	"fomo-app/internal/models"
	"fomo-app/internal/users"
	"fomo-app/internal/utils"
)

type Handler struct {
	UserService *users.UserService
	Logger      *logger.Logger
}

func NewHandler(userService *users.UserService, log *logger.Logger) *Handler {
	return &Handler{UserService: userService, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Post("/", h.RegisterUser)
		r.Get("/by-email", h.GetByEmail)
		r.Get("/{userId}", h.GetUser)
		r.Put("/{userId}", h.UpdateUser)
		r.Delete("/{userId}", h.DeleteUser)
	})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.UserService.Register(user)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("RegisterUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("user registered", created))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.UserService.Get(userID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("user found", user))
}

func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user, err := h.UserService.GetByEmail(email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetByEmail: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("user found", user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var update models.User
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.UserService.Overwrite(userID, update)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("user updated", updated))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.UserService.Delete(userID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteUser: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
