// Package remote is the HTTP client for the persistence API, the store of
// record for events and table snapshots. It only translates calls and
// status codes; retry and coalescing policy live in the syncer.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/seating"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// EventDraft is the payload for creating or updating an event.
type EventDraft struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location,omitempty"`
	StartsAt    time.Time          `json:"starts_at"`
	Status      domain.EventStatus `json:"status"`
}

func (c *Client) EventsForUser(ctx context.Context, token string) ([]domain.Event, error) {
	const op = "remote.EventsForUser"

	var events []domain.Event
	if err := c.do(ctx, token, http.MethodGet, "/events-for-user", nil, &events); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (c *Client) CreateEvent(ctx context.Context, token string, draft EventDraft) (domain.Event, error) {
	const op = "remote.CreateEvent"

	var ev domain.Event
	if err := c.do(ctx, token, http.MethodPost, "/events", draft, &ev); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func (c *Client) UpdateEvent(ctx context.Context, token string, id uuid.UUID, draft EventDraft) (domain.Event, error) {
	const op = "remote.UpdateEvent"

	var ev domain.Event
	if err := c.do(ctx, token, http.MethodPut, "/events/"+id.String(), draft, &ev); err != nil {
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

// DeleteEvent removes the event; the remote store cascades to its tables
// and seats. Guests are event-scoped and go with it.
func (c *Client) DeleteEvent(ctx context.Context, token string, id uuid.UUID) error {
	const op = "remote.DeleteEvent"

	if err := c.do(ctx, token, http.MethodDelete, "/events/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// FetchTables loads the authoritative snapshot for an event.
func (c *Client) FetchTables(ctx context.Context, token string, eventID uuid.UUID) (seating.Snapshot, error) {
	const op = "remote.FetchTables"

	var snap seating.Snapshot
	if err := c.do(ctx, token, http.MethodGet, "/events/"+eventID.String()+"/tables", nil, &snap); err != nil {
		return seating.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

// SaveTables replaces the event's full table/seat snapshot in one payload.
// The remote store is last-writer-wins; a later save supersedes an earlier
// one.
func (c *Client) SaveTables(ctx context.Context, token string, eventID uuid.UUID, snap seating.Snapshot) error {
	const op = "remote.SaveTables"

	if err := c.do(ctx, token, http.MethodPut, "/events/"+eventID.String()+"/tables", snap, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrRemoteUnavailable, err)
		}
	}

	return nil
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrSessionExpired
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, code)
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, code)
	}
}
