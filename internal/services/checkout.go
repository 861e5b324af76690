package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticket-storefront/internal/models"
)

// CheckoutState is the orchestrator's observable state.
type CheckoutState string

const (
	StateIdle        CheckoutState = "idle"
	StateValidating  CheckoutState = "validating"
	StateSubmitting  CheckoutState = "submitting"
	StateRedirecting CheckoutState = "redirecting"
	StateFailed      CheckoutState = "failed"
)

// CheckoutError carries the user-visible message for a validation or
// submission failure. The shopper stays on the page with the selection
// intact and may retry.
type CheckoutError struct {
	Message string
	err     error
}

func (e *CheckoutError) Error() string {
	return e.Message
}

func (e *CheckoutError) Unwrap() error {
	return e.err
}

// CheckoutResult is the provider handoff for a successful submission.
type CheckoutResult struct {
	RedirectURL string
	Reference   string
}

// CheckoutService validates a selection and creates a checkout session on
// the backend, handing the shopper to the payment provider via a redirect
// URL. It moves through Idle, Validating, Submitting and ends in Redirecting
// or Failed; a failed attempt leaves the selection untouched and the next
// Submit starts over from Idle.
type CheckoutService struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	state CheckoutState
}

// NewCheckoutService creates a checkout orchestrator for the given backend
// base URL. A nil client gets a default with a 30 second timeout.
func NewCheckoutService(baseURL string, client *http.Client) *CheckoutService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CheckoutService{baseURL: baseURL, client: client, state: StateIdle}
}

// State returns the orchestrator's current state.
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) setState(state CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

type checkoutSessionRequest struct {
	Items []models.SelectionLine `json:"items"`
	Email string                 `json:"email"`
}

type checkoutSessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Submit validates the selection and contact email, then creates a checkout
// session. Validation failures return the orchestrator to Idle without any
// network call. Line items are ordered by ticket id ascending so the request
// body is deterministic. Each attempt carries a fresh idempotency key.
func (s *CheckoutService) Submit(ctx context.Context, selection models.TicketSelection, email string) (*CheckoutResult, error) {
	s.setState(StateValidating)

	lines := selection.Lines()
	if len(lines) == 0 {
		s.setState(StateIdle)
		return nil, &CheckoutError{Message: "cart empty", err: models.ErrCartEmpty}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		s.setState(StateIdle)
		return nil, &CheckoutError{Message: "missing email", err: models.ErrMissingEmail}
	}

	s.setState(StateSubmitting)

	body, err := json.Marshal(checkoutSessionRequest{Items: lines, Email: email})
	if err != nil {
		s.setState(StateFailed)
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	reference := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/create-checkout-session", bytes.NewReader(body))
	if err != nil {
		s.setState(StateFailed)
		return nil, fmt.Errorf("failed to create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", reference)

	resp, err := s.client.Do(req)
	if err != nil {
		s.setState(StateFailed)
		return nil, &CheckoutError{Message: "checkout failed", err: fmt.Errorf("%w: %v", models.ErrCheckoutFailed, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		s.setState(StateFailed)
		return nil, &CheckoutError{Message: "checkout failed", err: fmt.Errorf("%w: %v", models.ErrCheckoutFailed, err)}
	}

	var session checkoutSessionResponse
	// A body that does not parse falls through to the generic message.
	_ = json.Unmarshal(raw, &session)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.setState(StateFailed)
		message := session.Error
		if message == "" {
			message = "checkout failed"
		}
		return nil, &CheckoutError{Message: message, err: models.ErrCheckoutFailed}
	}

	if session.URL == "" {
		s.setState(StateFailed)
		return nil, &CheckoutError{Message: "no checkout URL", err: models.ErrNoCheckoutURL}
	}

	s.setState(StateRedirecting)
	return &CheckoutResult{RedirectURL: session.URL, Reference: reference}, nil
}
