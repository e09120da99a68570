package redis

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "seatmap:v1"

func KeyEventSnapshot(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:snapshot", ns, eventID)
}

func KeyEventStats(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:stats", ns, eventID)
}

func KeyTableLayout(eventID uuid.UUID, tableID int) string {
	return fmt.Sprintf("%s:event:%s:layout:%d", ns, eventID, tableID)
}

func KeyIdemSeatOp(eventID uuid.UUID, op, idemKey string) string {
	return fmt.Sprintf("%s:idem:%s:%s:%s", ns, eventID, op, idemKey)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelPlansChanged() string {
	return ns + ":plans:changed"
}
