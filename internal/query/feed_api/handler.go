package feed_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fomo-app/internal/apperr"
	"fomo-app/internal/events"
	"fomo-app/internal/facet"
	"fomo-app/internal/logger"
	"fomo-app/internal/query"
	"fomo-app/internal/utils"
)

type Handler struct {
	EventService *events.EventService
	Engine       *query.Engine
	FacetService *facet.FacetService
	Logger       *logger.Logger
}

func NewHandler(eventService *events.EventService, engine *query.Engine, facetService *facet.FacetService, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		Engine:       engine,
		FacetService: facetService,
		Logger:       log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/feed", func(r chi.Router) {
		r.Post("/", h.Feed)
		r.Post("/map-ids", h.MapIDs)
		r.Post("/facets/{dimension}", h.Facets)
	})
}

// feedRequest is the wire form of a FilterState; tz carries the viewer's
// IANA zone name.
type feedRequest struct {
	query.FilterState
	TZ string `json:"tz,omitempty"`
}

func (h *Handler) decodeState(r *http.Request) (query.FilterState, error) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return query.FilterState{}, err
	}
	if req.Period != "" && !req.Period.Valid() {
		return query.FilterState{}, fmt.Errorf("unknown period %q", req.Period)
	}
	if req.TZ != "" {
		loc, err := time.LoadLocation(req.TZ)
		if err != nil {
			return query.FilterState{}, fmt.Errorf("unknown time zone %q", req.TZ)
		}
		req.FilterState.Location = loc
	}
	return req.FilterState, nil
}

func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	state, err := h.decodeState(r)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.EventService.ListActive()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Feed: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	filtered, err := h.Engine.ApplyFilters(snapshot, state)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Feed: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("feed", filtered))
}

func (h *Handler) MapIDs(w http.ResponseWriter, r *http.Request) {
	state, err := h.decodeState(r)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.EventService.ListActive()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MapIDs: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	ids, err := h.Engine.MapFilterIDs(snapshot, state)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MapIDs: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("map ids", ids))
}

func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")

	state, err := h.decodeState(r)
	if err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.EventService.ListActive()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Facets: %v", err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	var facets []facet.Facet
	switch dimension {
	case "period":
		facets, err = h.FacetService.GroupByPeriod(snapshot, state)
	case "response":
		facets, err = h.FacetService.GroupByResponse(snapshot, state)
	case "tag":
		facets, err = h.FacetService.GroupByTag(snapshot, state)
	case "organizer":
		facets, err = h.FacetService.GroupByOrganizer(snapshot, state)
	default:
		http.Error(w, "Unknown facet dimension: "+dimension, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Facets(%s): %v", dimension, err))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(dimension+" facets", facets))
}
