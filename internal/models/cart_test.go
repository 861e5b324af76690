package models

import "testing"

func TestBuildCartView_PartialMetadata(t *testing.T) {
	bounds := DefaultQuantityBounds()
	selection := NewTicketSelection().
		SetQuantity(101, 2, bounds).
		SetQuantity(102, 0, bounds)

	resolved := map[int]TicketMetadata{
		101: {ID: 101, Name: "GA", Price: 25.0},
	}

	view := BuildCartView(selection, resolved)

	if len(view.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(view.Lines))
	}
	line := view.Lines[0]
	if line.Name != "GA" || line.Quantity != 2 || line.Subtotal != 50.0 {
		t.Errorf("unexpected line: %+v", line)
	}
	if view.Total != 50.0 {
		t.Errorf("expected total 50.0, got %v", view.Total)
	}
	// Ticket 102 has quantity zero: not a line, and not pending either.
	if len(view.Pending) != 0 {
		t.Errorf("expected no pending ids, got %v", view.Pending)
	}
}

func TestBuildCartView_PendingExcludedFromTotal(t *testing.T) {
	bounds := DefaultQuantityBounds()
	selection := NewTicketSelection().
		SetQuantity(101, 2, bounds).
		SetQuantity(102, 1, bounds)

	resolved := map[int]TicketMetadata{
		101: {ID: 101, Name: "GA", Price: 25.0},
	}

	view := BuildCartView(selection, resolved)

	if view.Total != 50.0 {
		t.Errorf("pending line leaked into the total: %v", view.Total)
	}
	if len(view.Pending) != 1 || view.Pending[0] != 102 {
		t.Errorf("expected ticket 102 pending, got %v", view.Pending)
	}
}

func TestBuildCartView_Empty(t *testing.T) {
	view := BuildCartView(NewTicketSelection(), nil)
	if view.Total != 0 || len(view.Lines) != 0 || len(view.Pending) != 0 {
		t.Errorf("empty selection should yield an empty view: %+v", view)
	}
}

func TestBuildCartView_TotalNeverNegative(t *testing.T) {
	bounds := QuantityBounds{Min: 0, Max: 100}
	selection := NewTicketSelection().
		SetQuantity(1, 3, bounds).
		SetQuantity(2, 5, bounds)

	resolved := map[int]TicketMetadata{
		1: {ID: 1, Name: "Free", Price: 0},
		2: {ID: 2, Name: "VIP", Price: 120.50},
	}

	view := BuildCartView(selection, resolved)
	if view.Total < 0 {
		t.Errorf("total went negative: %v", view.Total)
	}
	if view.Total != 602.5 {
		t.Errorf("expected total 602.5, got %v", view.Total)
	}
}
