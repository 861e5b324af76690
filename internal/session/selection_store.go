package session

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"ticket-storefront/internal/models"
)

// SessionName is the cookie the storefront session lives under.
const SessionName = "session"

// SelectionKey is the fixed key the ticket selection is stored under for the
// duration of the browsing session.
const SelectionKey = "ticketSelection"

// SelectionStore carries a ticket selection across the page transition from
// event detail to cart. A save fully replaces any prior value; a load on a
// missing or corrupt record degrades to an empty selection rather than an
// error, so a bad cookie can never take the cart page down.
type SelectionStore struct {
	store sessions.Store
}

// NewSelectionStore creates a selection store on top of a session backend.
func NewSelectionStore(store sessions.Store) *SelectionStore {
	return &SelectionStore{store: store}
}

// Save serializes the selection into the session, replacing whatever was
// there before.
func (s *SelectionStore) Save(r *http.Request, w http.ResponseWriter, selection models.TicketSelection) error {
	sess, _ := s.store.Get(r, SessionName)
	data, err := json.Marshal(selection)
	if err != nil {
		return err
	}
	sess.Values[SelectionKey] = string(data)
	return sess.Save(r, w)
}

// Load reads the persisted selection. Absent, mistyped or unparseable values
// all come back as an empty selection.
func (s *SelectionStore) Load(r *http.Request) models.TicketSelection {
	sess, err := s.store.Get(r, SessionName)
	if err != nil {
		return models.NewTicketSelection()
	}

	value, ok := sess.Values[SelectionKey]
	if !ok {
		return models.NewTicketSelection()
	}

	data, ok := value.(string)
	if !ok {
		return models.NewTicketSelection()
	}

	var selection models.TicketSelection
	if err := json.Unmarshal([]byte(data), &selection); err != nil {
		return models.NewTicketSelection()
	}
	if selection == nil {
		return models.NewTicketSelection()
	}
	return selection
}

// Clear drops the persisted selection.
func (s *SelectionStore) Clear(r *http.Request, w http.ResponseWriter) error {
	sess, _ := s.store.Get(r, SessionName)
	delete(sess.Values, SelectionKey)
	return sess.Save(r, w)
}
