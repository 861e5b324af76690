package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ticket-storefront/internal/models"
)

// MetadataService resolves ticket-type ids to display metadata through the
// backend's batch endpoint and caches the results. Entries are only ever
// added, never mutated or evicted, so resolution commutes with selection
// edits: a resolve racing a quantity change can only delay when a cart line
// first becomes visible, never corrupt it.
type MetadataService struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[int]models.TicketMetadata
}

// NewMetadataService creates a metadata resolver for the given backend base
// URL. A nil client gets a default with a 30 second timeout.
func NewMetadataService(baseURL string, client *http.Client) *MetadataService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &MetadataService{
		baseURL: baseURL,
		client:  client,
		cache:   make(map[int]models.TicketMetadata),
	}
}

type ticketTypesRequest struct {
	TicketIDs []int `json:"ticketIds"`
}

// Resolve returns metadata for the requested ids. Cached ids are served
// locally; the missing ones go to the backend in a single batched request.
// On a batch failure the cached subset is still returned together with an
// error wrapping models.ErrMetadataUnavailable, so callers can tell a failed
// fetch apart from entries that are simply still pending.
func (s *MetadataService) Resolve(ctx context.Context, ids []int) (map[int]models.TicketMetadata, error) {
	resolved := make(map[int]models.TicketMetadata, len(ids))

	s.mu.Lock()
	var missing []int
	for _, id := range ids {
		if meta, ok := s.cache[id]; ok {
			resolved[id] = meta
		} else {
			missing = append(missing, id)
		}
	}
	s.mu.Unlock()

	if len(missing) == 0 {
		return resolved, nil
	}

	fetched, err := s.fetchBatch(ctx, missing)
	if err != nil {
		return resolved, err
	}

	s.mu.Lock()
	for id, meta := range fetched {
		// First resolution wins; entries are never overwritten.
		if _, ok := s.cache[id]; !ok {
			s.cache[id] = meta
		}
		resolved[id] = s.cache[id]
	}
	s.mu.Unlock()

	return resolved, nil
}

func (s *MetadataService) fetchBatch(ctx context.Context, ids []int) (map[int]models.TicketMetadata, error) {
	body, err := json.Marshal(ticketTypesRequest{TicketIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket metadata request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/ticketTypes", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket metadata request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: ticket metadata returned status %d", models.ErrMetadataUnavailable, resp.StatusCode)
	}

	// The endpoint keys its response by ticket id, which JSON forces into
	// strings.
	var wire map[string]models.TicketMetadata
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: failed to decode ticket metadata: %v", models.ErrMetadataUnavailable, err)
	}

	// A torn-down owner must not have the response written into its cache.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fetched := make(map[int]models.TicketMetadata, len(wire))
	for key, meta := range wire {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric ticket id %q", models.ErrMetadataUnavailable, key)
		}
		fetched[id] = meta
	}
	return fetched, nil
}

// Cached reports whether the id has already been resolved.
func (s *MetadataService) Cached(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[id]
	return ok
}
