package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ticket-storefront/internal/models"
	"ticket-storefront/internal/services"
)

// EventHandler serves the browse and detail pages of the storefront.
type EventHandler struct {
	catalog services.EventCatalog
	search  *services.SearchService
}

// NewEventHandler creates a new event handler
func NewEventHandler(catalog services.EventCatalog, search *services.SearchService) *EventHandler {
	return &EventHandler{catalog: catalog, search: search}
}

// ListEvents returns the event list, filtered and ranked by the q query
// parameter when one is present.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.catalog.ListEvents(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			// Caller navigated away; nothing to render into.
			return
		}
		writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}

	events = h.search.Search(events, r.URL.Query().Get("q"))
	if events == nil {
		events = []models.EventSummary{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent returns a single event with its ticket types.
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	event, err := h.catalog.GetEvent(r.Context(), id)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, models.ErrMalformedEvent):
			writeError(w, http.StatusBadGateway, "malformed event record")
		default:
			writeError(w, http.StatusBadGateway, "catalog unavailable")
		}
		return
	}

	writeJSON(w, http.StatusOK, event)
}
