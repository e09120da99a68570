package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PlansPubSub broadcasts "seating plan changed" notifications after a
// snapshot reaches the remote store, so read-only viewers can refresh.
type PlansPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewPlansPubSub(rdb *redis.Client) *PlansPubSub {
	return &PlansPubSub{
		rdb:     rdb,
		channel: ChannelPlansChanged(),
	}
}

type planChangedMsg struct {
	Type    string    `json:"type"`
	EventID uuid.UUID `json:"event_id"`
	TsUnix  int64     `json:"ts_unix"`
}

func (p *PlansPubSub) PublishPlanChanged(ctx context.Context, eventID uuid.UUID) error {
	msg := planChangedMsg{
		Type:    "plan_changed",
		EventID: eventID,
		TsUnix:  time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *PlansPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, eventID uuid.UUID)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev planChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.EventID != uuid.Nil {
				handler(ctx, ev.EventID)
			}
		}
	}
}
