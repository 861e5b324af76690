package services

import (
	"context"

	"ticket-storefront/internal/models"
)

// EventCatalog is the read surface of the catalog backend.
type EventCatalog interface {
	ListEvents(ctx context.Context) ([]models.EventSummary, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
}

// MetadataResolver resolves ticket-type ids to display metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, ids []int) (map[int]models.TicketMetadata, error)
}

// CheckoutSubmitter starts a checkout session for a selection.
type CheckoutSubmitter interface {
	Submit(ctx context.Context, selection models.TicketSelection, email string) (*CheckoutResult, error)
}
