package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticket-storefront/internal/models"
)

// CatalogService reads the event catalog from the backend API. Calls are
// independent; nothing is cached across them, so every page load re-fetches.
type CatalogService struct {
	baseURL string
	client  *http.Client
}

// NewCatalogService creates a catalog client for the given backend base URL.
// A nil client gets a default with a 30 second timeout.
func NewCatalogService(baseURL string, client *http.Client) *CatalogService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CatalogService{baseURL: baseURL, client: client}
}

// ListEvents fetches the event summaries for the browse page.
func (s *CatalogService) ListEvents(ctx context.Context) ([]models.EventSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create event list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: event list returned status %d", models.ErrCatalogUnavailable, resp.StatusCode)
	}

	var events []models.EventSummary
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: failed to decode event list: %v", models.ErrCatalogUnavailable, err)
	}

	// The owning request may have been torn down while the response was in
	// flight; discard the result instead of handing it to retired state.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// eventDetailResponse mirrors the detail endpoint. ImageURLs is a pointer so
// an absent field (a malformed record) is distinguishable from an event that
// simply has no images.
type eventDetailResponse struct {
	ID               int                 `json:"id"`
	Title            string              `json:"title"`
	OrganisationName string              `json:"organisation_name"`
	Description      string              `json:"description"`
	Location         string              `json:"location"`
	StartTime        time.Time           `json:"start_time"`
	EndTime          time.Time           `json:"end_time"`
	TotalCapacity    int                 `json:"total_capacity"`
	ImageURLs        *[]string           `json:"image_urls"`
	TicketTypes      []models.TicketType `json:"ticket_types"`
}

// GetEvent fetches a single event with its ticket types.
func (s *CatalogService) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	url := fmt.Sprintf("%s/api/events/%d", s.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create event detail request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, models.ErrEventNotFound
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: event detail returned status %d", models.ErrCatalogUnavailable, resp.StatusCode)
	}

	var detail eventDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: failed to decode event detail: %v", models.ErrCatalogUnavailable, err)
	}

	if detail.ImageURLs == nil {
		return nil, fmt.Errorf("%w: event %d has no image list", models.ErrMalformedEvent, id)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &models.Event{
		ID:               detail.ID,
		Title:            detail.Title,
		OrganisationName: detail.OrganisationName,
		Description:      detail.Description,
		Location:         detail.Location,
		StartTime:        detail.StartTime,
		EndTime:          detail.EndTime,
		TotalCapacity:    detail.TotalCapacity,
		ImageURLs:        *detail.ImageURLs,
		TicketTypes:      detail.TicketTypes,
	}, nil
}
