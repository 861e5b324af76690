package models

// CartLine represents one displayable line in the cart summary.
type CartLine struct {
	TicketTypeID int     `json:"ticket_type_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Subtotal     float64 `json:"subtotal"`
}

// CartView is the cart summary computed from a selection and whatever ticket
// metadata has resolved so far. Lines whose metadata is still unresolved are
// excluded from Lines and Total and listed in Pending instead, so a partial
// cart is never presented as a final total.
type CartView struct {
	Lines   []CartLine `json:"lines"`
	Total   float64    `json:"total"`
	Pending []int      `json:"pending,omitempty"`
}

// BuildCartView computes the cart lines and running total for the selection.
// Only entries with quantity > 0 become lines; entries whose id is missing
// from resolved are reported as pending.
func BuildCartView(selection TicketSelection, resolved map[int]TicketMetadata) CartView {
	var view CartView
	for _, line := range selection.Lines() {
		meta, ok := resolved[line.TicketTypeID]
		if !ok {
			view.Pending = append(view.Pending, line.TicketTypeID)
			continue
		}
		subtotal := meta.Price * float64(line.Quantity)
		view.Lines = append(view.Lines, CartLine{
			TicketTypeID: line.TicketTypeID,
			Name:         meta.Name,
			Price:        meta.Price,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
		view.Total += subtotal
	}
	return view
}
