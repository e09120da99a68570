package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/seating"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"unauthorized is session expired", http.StatusUnauthorized, ErrSessionExpired},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"server error is unavailable", http.StatusInternalServerError, ErrRemoteUnavailable},
		{"bad gateway is unavailable", http.StatusBadGateway, ErrRemoteUnavailable},
		{"client error is rejected", http.StatusUnprocessableEntity, ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL})
			_, err := c.EventsForUser(context.Background(), "tok")
			require.ErrorIs(t, err, tt.wantErr)

			err = c.SaveTables(context.Background(), "tok", uuid.New(), seating.Snapshot{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.EventsForUser(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

func TestBearerCredentialOnEveryRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Event{})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.EventsForUser(context.Background(), "secret-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestEventRoundTrip(t *testing.T) {
	eventID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/events":
			var draft EventDraft
			require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "Launch Party", draft.Name)
			_ = json.NewEncoder(w).Encode(domain.Event{ID: eventID, Name: draft.Name, Status: draft.Status})
		case r.Method == http.MethodDelete && r.URL.Path == "/events/"+eventID.String():
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	ev, err := c.CreateEvent(context.Background(), "tok", EventDraft{
		Name:     "Launch Party",
		StartsAt: time.Now(),
		Status:   domain.EventActive,
	})
	require.NoError(t, err)
	assert.Equal(t, eventID, ev.ID)
	assert.Equal(t, domain.EventActive, ev.Status)

	require.NoError(t, c.DeleteEvent(context.Background(), "tok", eventID))
}

func TestSaveAndFetchTables(t *testing.T) {
	eventID := uuid.New()

	model := seating.NewModel()
	require.NoError(t, model.CreateTables(2, 4, domain.ShapeRound))
	want := model.Snapshot()

	var stored seating.Snapshot
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := "/events/" + eventID.String() + "/tables"
		switch {
		case r.Method == http.MethodPut && r.URL.Path == path:
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Path == path:
			_ = json.NewEncoder(w).Encode(stored)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, c.SaveTables(context.Background(), "tok", eventID, want))

	got, err := c.FetchTables(context.Background(), "tok", eventID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
