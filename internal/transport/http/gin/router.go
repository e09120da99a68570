// Package httpgin is the HTTP adapter over the editing sessions: it
// translates UI gestures into engine calls and renders the resulting
// model state back as JSON.
package httpgin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/irynavol/seatmap-go/internal/domain"
	"github.com/irynavol/seatmap-go/internal/remote"
	redisrepo "github.com/irynavol/seatmap-go/internal/repository/redis"
	"github.com/irynavol/seatmap-go/internal/seating"
	"github.com/irynavol/seatmap-go/internal/service"
	"github.com/irynavol/seatmap-go/internal/service/assignment"
	"github.com/irynavol/seatmap-go/internal/service/lifecycle"
	"github.com/irynavol/seatmap-go/internal/session"
)

// viewerCacheTTL bounds how stale a read-only view may get between
// invalidations.
const viewerCacheTTL = 30 * time.Second

func NewRouter(
	svcs *service.Services,
	cache *redisrepo.Cache,
	limiter *redisrepo.SlidingWindowLimiter,
	idem Idempotency,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS(), RateLimitMiddleware(limiter))
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Events (store of record, gated by the lifecycle policy)
	r.GET("/events", handleListEvents(svcs))
	r.POST("/events", handleCreateEvent(svcs))
	r.PUT("/events/:id", handleUpdateEvent(svcs))
	r.POST("/events/:id/archive", handleArchiveEvent(svcs))
	r.DELETE("/events/:id", handleDeleteEvent(svcs))

	// Editing session
	r.POST("/events/:id/session", handleOpenSession(svcs))
	r.DELETE("/events/:id/session", handleCloseSession(svcs))
	r.POST("/events/:id/session/reload", handleReloadSession(svcs))
	r.GET("/events/:id/session/sync", handleSyncStatus(svcs))

	// Tables
	r.GET("/events/:id/tables", handleGetSnapshot(svcs, cache))
	r.PUT("/events/:id/tables", handleCreateTables(svcs))
	r.PATCH("/events/:id/tables/:tableID", handleUpdateTable(svcs))
	r.GET("/events/:id/tables/:tableID/layout", handleTableLayout(svcs, cache))

	// Guests
	r.GET("/events/:id/guests", handleListGuests(svcs))
	r.POST("/events/:id/guests", handleAddGuest(svcs))
	r.PUT("/events/:id/guests/:guestID", handleUpdateGuest(svcs))
	r.DELETE("/events/:id/guests/:guestID", handleRemoveGuest(svcs))

	// Seat operations, retry-safe via the Idempotency-Key header
	r.POST("/events/:id/assign", IdempotencyMiddleware(idem, "assign"), handleAssign(svcs))
	r.POST("/events/:id/move", IdempotencyMiddleware(idem, "move"), handleMove(svcs))
	r.POST("/events/:id/swap", IdempotencyMiddleware(idem, "swap"), handleSwap(svcs))
	r.POST("/events/:id/unassign", IdempotencyMiddleware(idem, "unassign"), handleUnassign(svcs))

	// Stats
	r.GET("/events/:id/stats", handleStats(svcs, cache))

	return r
}

// --- Event handlers ---

// @Summary  List the caller's events
// @Success  200 {array} domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Lifecycle.ListEvents(c.Request.Context(), bearerToken(c))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// @Summary  Create event (subject to the active-event limit)
// @Param    req body EventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  409 {object} ErrorResponse "limit exceeded"
// @Router   /events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}

		ev, err := svcs.Lifecycle.CreateEvent(
			c.Request.Context(),
			bearerToken(c),
			profileFrom(c),
			remote.EventDraft{
				Name:        req.Name,
				Description: req.Description,
				Location:    req.Location,
				StartsAt:    starts,
				Status:      eventDraftStatus(req.Status),
			},
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, ev)
	}
}

// @Summary  Update event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body EventRequest true "payload"
// @Success  200 {object} domain.Event
// @Router   /events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}

		ev, err := svcs.Lifecycle.UpdateEvent(
			c.Request.Context(),
			bearerToken(c),
			profileFrom(c),
			eventID,
			remote.EventDraft{
				Name:        req.Name,
				Description: req.Description,
				Location:    req.Location,
				StartsAt:    starts,
				Status:      eventDraftStatus(req.Status),
			},
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

// @Summary  Archive event (active → draft)
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} domain.Event
// @Router   /events/{id}/archive [post]
func handleArchiveEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		ev, err := svcs.Lifecycle.ArchiveEvent(c.Request.Context(), bearerToken(c), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

// @Summary  Delete event (cascades to tables and guests)
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  204
// @Router   /events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		_ = svcs.Sessions.Close(c.Request.Context(), eventID)
		if err := svcs.Lifecycle.DeleteEvent(c.Request.Context(), bearerToken(c), eventID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Session handlers ---

// @Summary  Open (or re-authenticate) the editing session
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} seating.Snapshot
// @Router   /events/{id}/session [post]
func handleOpenSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		token := bearerToken(c)

		if s, open := svcs.Sessions.Get(eventID); open {
			s.Reauthenticate(token)
			c.JSON(http.StatusOK, s.Snapshot())
			return
		}

		s, err := svcs.Sessions.Open(c.Request.Context(), token, eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// @Summary  Close the session, flushing the last snapshot
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  204
// @Router   /events/{id}/session [delete]
func handleCloseSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Sessions.Close(c.Request.Context(), eventID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Reload the session from the remote store, discarding local edits
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} seating.Snapshot
// @Router   /events/{id}/session/reload [post]
func handleReloadSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		if err := s.Reload(c.Request.Context(), svcs.Remote, bearerToken(c)); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// @Summary  Sync status of the session
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} SyncStatusResponse
// @Router   /events/{id}/session/sync [get]
func handleSyncStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		resp := SyncStatusResponse{Suspended: s.SyncSuspended()}
		if err := s.SyncError(); err != nil {
			resp.LastError = err.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

// --- Table handlers ---

// @Summary  Current table/seat snapshot
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} seating.Snapshot
// @Router   /events/{id}/tables [get]
func handleGetSnapshot(svcs *service.Services, cache *redisrepo.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if s, open := svcs.Sessions.Get(eventID); open {
			writeView(c, s.Snapshot())
			return
		}

		// Read-only viewer without a session: serve the remote store's
		// snapshot, through the cache when one is configured.
		snap, err := viewerSnapshot(c.Request.Context(), svcs, cache, bearerToken(c), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeView(c, snap)
	}
}

// @Summary  Replace the whole table set
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body CreateTablesRequest true "payload"
// @Success  200 {object} seating.Snapshot
// @Failure  400 {object} ErrorResponse "invalid configuration"
// @Router   /events/{id}/tables [put]
func handleCreateTables(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req CreateTablesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.CreateTables(req.Count, req.SeatsPerTable, domain.Shape(req.Shape)); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// @Summary  Rename a table or change its zone color
// @Param    id       path  string  true  "Event ID (uuid)"
// @Param    tableID  path  int     true  "Table ID"
// @Param    req body UpdateTableRequest true "payload"
// @Success  204
// @Router   /events/{id}/tables/{tableID} [patch]
func handleUpdateTable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		tableID, ok := parseIntParam(c, "tableID")
		if !ok {
			return
		}
		var req UpdateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if req.Name == nil && req.Color == nil {
			badRequest(c, "nothing to update")
			return
		}
		if req.Name != nil {
			if err := s.RenameTable(tableID, *req.Name); err != nil {
				respondErr(c, err)
				return
			}
		}
		if req.Color != nil {
			if err := s.SetTableColor(tableID, *req.Color); err != nil {
				respondErr(c, err)
				return
			}
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Seat layout for one table (renderer input)
// @Param    id       path  string  true  "Event ID (uuid)"
// @Param    tableID  path  int     true  "Table ID"
// @Success  200 {array} assignment.SeatLayout
// @Router   /events/{id}/tables/{tableID}/layout [get]
func handleTableLayout(svcs *service.Services, cache *redisrepo.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		tableID, ok := parseIntParam(c, "tableID")
		if !ok {
			return
		}

		if s, open := svcs.Sessions.Get(eventID); open {
			layout, err := s.Layout(tableID)
			if err != nil {
				respondErr(c, err)
				return
			}
			writeView(c, layout)
			return
		}

		token := bearerToken(c)
		load := func(ctx context.Context) ([]assignment.SeatLayout, error) {
			snap, err := svcs.Remote.FetchTables(ctx, token, eventID)
			if err != nil {
				return nil, err
			}
			for _, t := range snap.Tables {
				if t.ID == tableID {
					return assignment.LayoutFor(t), nil
				}
			}
			return nil, fmt.Errorf("table %d: %w", tableID, seating.ErrTableNotFound)
		}

		var layout []assignment.SeatLayout
		var err error
		if cache != nil {
			layout, err = redisrepo.GetOrSetJSON(
				c.Request.Context(), cache,
				redisrepo.KeyTableLayout(eventID, tableID), viewerCacheTTL, load,
			)
		} else {
			layout, err = load(c.Request.Context())
		}
		if err != nil {
			respondErr(c, err)
			return
		}
		writeView(c, layout)
	}
}

// --- Guest handlers ---

// @Summary  Guest roster
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {array} domain.Guest
// @Router   /events/{id}/guests [get]
func handleListGuests(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.Guests())
	}
}

// @Summary  Add guest
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body GuestRequest true "payload"
// @Success  201 {object} domain.Guest
// @Router   /events/{id}/guests [post]
func handleAddGuest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req GuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		g, err := s.AddGuest(req.Name, req.Email, req.Phone)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, g)
	}
}

// @Summary  Update guest contact details
// @Param    id       path  string  true  "Event ID (uuid)"
// @Param    guestID  path  string  true  "Guest ID (uuid)"
// @Param    req body GuestRequest true "payload"
// @Success  204
// @Router   /events/{id}/guests/{guestID} [put]
func handleUpdateGuest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		guestID, ok := parseUUIDParam(c, "guestID")
		if !ok {
			return
		}
		var req GuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.UpdateGuest(guestID, req.Name, req.Email, req.Phone); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Remove guest (their seat is freed first)
// @Param    id       path  string  true  "Event ID (uuid)"
// @Param    guestID  path  string  true  "Guest ID (uuid)"
// @Success  204
// @Router   /events/{id}/guests/{guestID} [delete]
func handleRemoveGuest(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		guestID, ok := parseUUIDParam(c, "guestID")
		if !ok {
			return
		}
		if err := s.RemoveGuest(guestID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Seat operation handlers ---

// @Summary  Assign a guest to a seat at a chosen state
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body AssignRequest true "payload"
// @Success  204
// @Router   /events/{id}/assign [post]
func handleAssign(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		var guestID *uuid.UUID
		if req.GuestID != nil {
			id, err := uuid.Parse(*req.GuestID)
			if err != nil {
				badRequest(c, "invalid guest_id")
				return
			}
			guestID = &id
		}
		if err := s.AssignGuestToSeat(guestID, req.TableID, req.SeatID, domain.SeatState(req.State)); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Move a guest to an empty seat
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body MoveRequest true "payload"
// @Success  204
// @Failure  409 {object} ErrorResponse "seat occupied"
// @Router   /events/{id}/move [post]
func handleMove(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.MoveGuest(req.FromTable, req.FromSeat, req.ToTable, req.ToSeat); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Swap two seats' occupancy
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body SwapRequest true "payload"
// @Success  204
// @Router   /events/{id}/swap [post]
func handleSwap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req SwapRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.SwapSeats(req.TableA, req.SeatA, req.TableB, req.SeatB); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Clear a seat
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body UnassignRequest true "payload"
// @Success  204
// @Router   /events/{id}/unassign [post]
func handleUnassign(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFor(c, svcs)
		if !ok {
			return
		}
		var req UnassignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.UnassignSeat(req.TableID, req.SeatID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Occupancy statistics
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} domain.OccupancyStats
// @Router   /events/{id}/stats [get]
func handleStats(svcs *service.Services, cache *redisrepo.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if s, open := svcs.Sessions.Get(eventID); open {
			writeView(c, s.Stats())
			return
		}

		token := bearerToken(c)
		load := func(ctx context.Context) (domain.OccupancyStats, error) {
			snap, err := svcs.Remote.FetchTables(ctx, token, eventID)
			if err != nil {
				return domain.OccupancyStats{}, err
			}
			m := seating.NewModel()
			if err := m.RestoreSnapshot(snap); err != nil {
				return domain.OccupancyStats{}, err
			}
			return m.OccupancyStats(), nil
		}

		var stats domain.OccupancyStats
		var err error
		if cache != nil {
			stats, err = redisrepo.GetOrSetJSON(
				c.Request.Context(), cache,
				redisrepo.KeyEventStats(eventID), viewerCacheTTL, load,
			)
		} else {
			stats, err = load(c.Request.Context())
		}
		if err != nil {
			respondErr(c, err)
			return
		}
		writeView(c, stats)
	}
}

// --- Helpers ---

// viewerSnapshot serves reads when no editing session is open: straight
// from the remote store, or through the cache when one is configured.
// Cache keys are event-scoped, so a hit within viewerCacheTTL answers
// without the remote store seeing the caller's token. Token checking
// belongs to the remote store; the short TTL bounds what a revoked
// token can still read.
func viewerSnapshot(
	ctx context.Context,
	svcs *service.Services,
	cache *redisrepo.Cache,
	token string,
	eventID uuid.UUID,
) (seating.Snapshot, error) {
	if cache == nil {
		return svcs.Remote.FetchTables(ctx, token, eventID)
	}
	return redisrepo.GetOrSetJSON(
		ctx, cache,
		redisrepo.KeyEventSnapshot(eventID), viewerCacheTTL,
		func(ctx context.Context) (seating.Snapshot, error) {
			return svcs.Remote.FetchTables(ctx, token, eventID)
		},
	)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// profileFrom reads the role limits the auth collaborator attaches to the
// request. No limit header means unlimited.
func profileFrom(c *gin.Context) domain.Profile {
	p := domain.Profile{Role: c.GetHeader("X-Role")}
	if s := c.GetHeader("X-Event-Limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			p.EventLimit = &v
		}
	}
	return p
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func sessionFor(c *gin.Context, svcs *service.Services) (*session.Session, bool) {
	eventID, ok := parseUUIDParam(c, "id")
	if !ok {
		return nil, false
	}
	s, open := svcs.Sessions.Get(eventID)
	if !open {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not open"})
		return nil, false
	}
	return s, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// seating model
	case errors.Is(err, seating.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table configuration"})
	case errors.Is(err, seating.ErrGuestNameRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "guest name is required"})
	case errors.Is(err, seating.ErrTableNotFound),
		errors.Is(err, seating.ErrSeatNotFound),
		errors.Is(err, seating.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	// assignment engine
	case errors.Is(err, assignment.ErrSeatOccupied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat occupied"})
	case errors.Is(err, assignment.ErrSeatEmpty),
		errors.Is(err, assignment.ErrInvalidState):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	// lifecycle policy
	case errors.Is(err, lifecycle.ErrLimitExceeded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "active event limit exceeded"})
	// remote store
	case errors.Is(err, remote.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session expired"})
	case errors.Is(err, remote.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, remote.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "remote store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
