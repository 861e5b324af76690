package models

import (
	"sort"
	"strconv"
	"strings"
)

// QuantityBounds is the allowed quantity range for a ticket type row.
type QuantityBounds struct {
	Min int
	Max int
}

// DefaultQuantityBounds returns the standard per-row quantity limits.
func DefaultQuantityBounds() QuantityBounds {
	return QuantityBounds{Min: 0, Max: 10}
}

// Clamp forces a requested quantity into the bounds.
func (b QuantityBounds) Clamp(requested int) int {
	if requested < b.Min {
		return b.Min
	}
	if requested > b.Max {
		return b.Max
	}
	return requested
}

// TicketSelection maps a ticket-type id to the quantity the shopper has
// requested. Zero is a legal value; it simply contributes nothing to totals
// or checkout. All transitions are pure: they return a new mapping and leave
// the receiver untouched, so a selection can be shared with rendering code
// without aliasing surprises.
type TicketSelection map[int]int

// NewTicketSelection returns an empty selection.
func NewTicketSelection() TicketSelection {
	return TicketSelection{}
}

// SetQuantity returns a copy of the selection with the quantity for the
// given ticket type clamped into bounds. Other entries are unaffected.
func (s TicketSelection) SetQuantity(ticketTypeID, requested int, bounds QuantityBounds) TicketSelection {
	next := s.clone()
	next[ticketTypeID] = bounds.Clamp(requested)
	return next
}

// SetQuantityFromInput applies raw user input. Input that does not parse as
// an integer leaves the current quantity unchanged; the stored value is
// always a clamped number, never a coercion artifact.
func (s TicketSelection) SetQuantityFromInput(ticketTypeID int, raw string, bounds QuantityBounds) TicketSelection {
	requested, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return s.clone()
	}
	return s.SetQuantity(ticketTypeID, requested, bounds)
}

// Increment raises the quantity for the ticket type by one, subject to bounds.
func (s TicketSelection) Increment(ticketTypeID int, bounds QuantityBounds) TicketSelection {
	return s.SetQuantity(ticketTypeID, s[ticketTypeID]+1, bounds)
}

// Decrement lowers the quantity for the ticket type by one, subject to bounds.
func (s TicketSelection) Decrement(ticketTypeID int, bounds QuantityBounds) TicketSelection {
	return s.SetQuantity(ticketTypeID, s[ticketTypeID]-1, bounds)
}

// SelectionLine is one checkout line item in wire form.
type SelectionLine struct {
	TicketTypeID int `json:"ticket_id"`
	Quantity     int `json:"quantity"`
}

// Lines projects the entries with quantity > 0, ordered by ticket-type id
// ascending so request bodies are deterministic.
func (s TicketSelection) Lines() []SelectionLine {
	lines := make([]SelectionLine, 0, len(s))
	for id, qty := range s {
		if qty > 0 {
			lines = append(lines, SelectionLine{TicketTypeID: id, Quantity: qty})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].TicketTypeID < lines[j].TicketTypeID
	})
	return lines
}

// TicketTypeIDs returns every id present in the selection, including ids
// with quantity zero, ordered ascending. This is the id set the metadata
// cache resolves.
func (s TicketSelection) TicketTypeIDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// TicketCount returns the total number of tickets selected.
func (s TicketSelection) TicketCount() int {
	count := 0
	for _, qty := range s {
		count += qty
	}
	return count
}

// IsEmpty reports whether the selection has no line with quantity > 0.
func (s TicketSelection) IsEmpty() bool {
	for _, qty := range s {
		if qty > 0 {
			return false
		}
	}
	return true
}

func (s TicketSelection) clone() TicketSelection {
	next := make(TicketSelection, len(s))
	for id, qty := range s {
		next[id] = qty
	}
	return next
}
