package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ticket-storefront/internal/models"
	"ticket-storefront/internal/services"
	"ticket-storefront/internal/session"
)

// CartHandler handles ticket selection, the cart summary and checkout.
type CartHandler struct {
	catalog    services.EventCatalog
	metadata   services.MetadataResolver
	checkout   services.CheckoutSubmitter
	selections *session.SelectionStore
	bounds     models.QuantityBounds
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	catalog services.EventCatalog,
	metadata services.MetadataResolver,
	checkout services.CheckoutSubmitter,
	selections *session.SelectionStore,
	bounds models.QuantityBounds,
) *CartHandler {
	return &CartHandler{
		catalog:    catalog,
		metadata:   metadata,
		checkout:   checkout,
		selections: selections,
		bounds:     bounds,
	}
}

// selectionResponse is returned after a selection update.
type selectionResponse struct {
	Selection   models.TicketSelection `json:"selection"`
	TicketCount int                    `json:"ticket_count"`
}

// UpdateSelection sets the requested quantity for one ticket type of the
// event in the URL. The quantity is clamped into bounds; input that does not
// parse as a number leaves the stored quantity unchanged. Other ticket types
// are never touched.
func (h *CartHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	ticketTypeID, err := strconv.Atoi(r.FormValue("ticket_type_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ticket type ID")
		return
	}

	// The ticket type must belong to the event being viewed.
	event, err := h.catalog.GetEvent(r.Context(), eventID)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		if errors.Is(err, models.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
		} else {
			writeError(w, http.StatusBadGateway, "catalog unavailable")
		}
		return
	}
	if event.TicketTypeByID(ticketTypeID) == nil {
		writeError(w, http.StatusNotFound, "ticket type not found")
		return
	}

	selection := h.selections.Load(r)
	selection = selection.SetQuantityFromInput(ticketTypeID, r.FormValue("quantity"), h.bounds)

	if err := h.selections.Save(r, w, selection); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, selectionResponse{
		Selection:   selection,
		TicketCount: selection.TicketCount(),
	})
}

// cartResponse is the cart summary. Pending lists ticket-type ids whose
// metadata has not resolved yet; those lines are excluded from Lines and
// Total rather than shown with a made-up price. MetadataError distinguishes
// a failed metadata fetch from lines that are merely still loading.
type cartResponse struct {
	Lines         []models.CartLine `json:"lines"`
	Total         float64           `json:"total"`
	Pending       []int             `json:"pending,omitempty"`
	TicketCount   int               `json:"ticket_count"`
	MetadataError bool              `json:"metadata_error,omitempty"`
}

// ViewCart loads the persisted selection, resolves ticket metadata in one
// batch, and returns the cart lines and total over the resolved lines only.
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	selection := h.selections.Load(r)

	resp := cartResponse{
		Lines:       []models.CartLine{},
		TicketCount: selection.TicketCount(),
	}

	ids := selection.TicketTypeIDs()
	if len(ids) > 0 {
		resolved, err := h.metadata.Resolve(r.Context(), ids)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			resp.MetadataError = true
		}
		view := models.BuildCartView(selection, resolved)
		if view.Lines != nil {
			resp.Lines = view.Lines
		}
		resp.Total = view.Total
		resp.Pending = view.Pending
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClearCart drops the persisted selection.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.selections.Clear(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Checkout validates the persisted selection and contact email, creates a
// checkout session on the backend and answers with a redirect to the payment
// provider. On any failure the selection is preserved so the shopper can
// retry without re-entering quantities.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	selection := h.selections.Load(r)
	email := r.FormValue("email")

	result, err := h.checkout.Submit(r.Context(), selection, email)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		var checkoutErr *services.CheckoutError
		if errors.As(err, &checkoutErr) {
			if errors.Is(err, models.ErrCartEmpty) || errors.Is(err, models.ErrMissingEmail) {
				writeError(w, http.StatusUnprocessableEntity, checkoutErr.Message)
			} else {
				writeError(w, http.StatusBadGateway, checkoutErr.Message)
			}
			return
		}
		writeError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	// Terminal handoff to the payment provider.
	w.Header().Set("Location", result.RedirectURL)
	writeJSON(w, http.StatusSeeOther, map[string]string{"url": result.RedirectURL})
}
