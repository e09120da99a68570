package seating

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irynavol/seatmap-go/internal/domain"
)

func seatedModel(t *testing.T) (*Model, domain.Guest) {
	t.Helper()

	m := NewModel()
	require.NoError(t, m.CreateTables(2, 4, domain.ShapeRectangular))
	require.NoError(t, m.RenameTable(1, "Family"))

	g, err := m.AddGuest("Iris Kane", "iris@example.com", "555-0177")
	require.NoError(t, err)
	seat, err := m.SeatAt(2, 3)
	require.NoError(t, err)
	seat.State = domain.SeatReserved
	seat.GuestID = &g.ID
	seat.DisplayName = g.Name
	guest, _ := m.Guest(g.ID)
	guest.Seating = &domain.SeatRef{TableID: 2, SeatID: 3}
	guest.Status = domain.GuestReserved

	require.NoError(t, m.CheckInvariants())
	return m, g
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, g := seatedModel(t)

	// Through JSON, the way the wire sees it.
	b, err := json.Marshal(m.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(b, &snap))

	restored := NewModel()
	require.NoError(t, restored.RestoreSnapshot(snap))
	require.NoError(t, restored.CheckInvariants())

	tables := restored.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, "Family", tables[0].Name)
	assert.Equal(t, domain.ShapeRectangular, tables[0].Shape)

	seat, err := restored.SeatAt(2, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatReserved, seat.State)
	require.NotNil(t, seat.GuestID)
	assert.Equal(t, g.ID, *seat.GuestID)
	assert.Equal(t, "Iris Kane", seat.DisplayName)

	guest, err := restored.Guest(g.ID)
	require.NoError(t, err)
	require.NotNil(t, guest.Seating)
	assert.Equal(t, domain.SeatRef{TableID: 2, SeatID: 3}, *guest.Seating)
	assert.Equal(t, "iris@example.com", guest.Email)
}

func TestSnapshotIsDetached(t *testing.T) {
	m, g := seatedModel(t)
	snap := m.Snapshot()

	// Mutating the model after the copy must not leak into the snapshot.
	require.NoError(t, m.RenameTable(1, "Renamed"))
	seat, _ := m.SeatAt(2, 3)
	seat.State = domain.SeatConfirmed

	assert.Equal(t, "Family", snap.Tables[0].Name)
	assert.Equal(t, domain.SeatReserved, snap.Tables[1].Seats[2].State)
	require.NotNil(t, snap.Tables[1].Seats[2].GuestID)
	assert.Equal(t, g.ID, *snap.Tables[1].Seats[2].GuestID)
}

func TestRestoreSnapshotRejectsCorruptPayloads(t *testing.T) {
	gid := uuid.New()
	guest := SnapshotGuest{ID: gid, Name: "Dup", Status: domain.GuestPending}

	occupied := func(tableID int) domain.Table {
		id := gid
		return domain.Table{
			ID:    tableID,
			Name:  "T",
			Shape: domain.ShapeRound,
			Seats: []domain.Seat{{ID: 1, State: domain.SeatReserved, GuestID: &id}},
		}
	}

	tests := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "guest seated twice",
			snap: Snapshot{Tables: []domain.Table{occupied(1), occupied(2)}, Guests: []SnapshotGuest{guest}},
		},
		{
			name: "unknown guest reference",
			snap: Snapshot{Tables: []domain.Table{occupied(1)}},
		},
		{
			name: "state disagrees with guest ref",
			snap: Snapshot{Tables: []domain.Table{{
				ID: 1, Shape: domain.ShapeRound,
				Seats: []domain.Seat{{ID: 1, State: domain.SeatReserved}},
			}}},
		},
		{
			name: "duplicate guest ids",
			snap: Snapshot{Guests: []SnapshotGuest{guest, guest}},
		},
		{
			name: "duplicate table ids",
			snap: Snapshot{Tables: []domain.Table{
				{ID: 1, Shape: domain.ShapeRound},
				{ID: 1, Shape: domain.ShapeRound},
			}},
		},
		{
			name: "duplicate seat ids within a table",
			snap: Snapshot{Tables: []domain.Table{{
				ID: 1, Shape: domain.ShapeRound,
				Seats: []domain.Seat{
					{ID: 1, State: domain.SeatEmpty},
					{ID: 1, State: domain.SeatEmpty},
				},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := seatedModel(t)
			before := m.Snapshot()

			err := m.RestoreSnapshot(tt.snap)
			require.ErrorIs(t, err, ErrCorruptSnapshot)
			// A rejected restore leaves the model as it was.
			assert.Equal(t, before, m.Snapshot())
		})
	}
}
