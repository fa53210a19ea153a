package realtime

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// SOSChannel is the redis pub/sub channel alerts are published on, so every
// API instance feeds its own connected admins.
const SOSChannel = "sos:alerts"

// BridgeRedis pumps messages from the redis SOS channel into the hub's
// broadcast loop. Runs until ctx is cancelled.
func (h *Hub) BridgeRedis(ctx context.Context, rdb *redis.Client) {
	pubsub := rdb.Subscribe(ctx, SOSChannel)
	defer pubsub.Close()

	log.Printf("[SOSFeed] Subscribed to %s", SOSChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast <- []byte(msg.Payload)
		}
	}
}
