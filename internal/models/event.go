package models

import "time"

// EventSummary is the trimmed event shape returned by the catalog list
// endpoint, used for browsing and search.
type EventSummary struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	OrganisationName string `json:"organisation_name"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
}

// Event represents a single event with its ticket types, as returned by the
// catalog detail endpoint.
type Event struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	OrganisationName string       `json:"organisation_name"`
	Description      string       `json:"description"`
	Location         string       `json:"location"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
	TotalCapacity    int          `json:"total_capacity"`
	ImageURLs        []string     `json:"image_urls"`
	TicketTypes      []TicketType `json:"ticket_types"`
}

// TicketType represents a purchasable category within an event.
type TicketType struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	TotalQuantity int     `json:"total_quantity"`
}

// TicketTypeByID returns the ticket type with the given id, or nil if the
// event has no such type.
func (e *Event) TicketTypeByID(id int) *TicketType {
	for i := range e.TicketTypes {
		if e.TicketTypes[i].ID == id {
			return &e.TicketTypes[i]
		}
	}
	return nil
}

// TicketMetadata is the display data for a ticket type resolved through the
// batch metadata endpoint, independent of the event detail fetch.
type TicketMetadata struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
