package socket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (c *fakeConn) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.messages...)
}

func TestBroadcasterKeepsPublishOrder(t *testing.T) {
	h := NewHub(nil)
	conn := &fakeConn{}
	h.Register("u", conn)
	b := NewBroadcaster(h, 16, nil)

	for revision := 1; revision <= 10; revision++ {
		require.True(t, b.Publish(Event{Event: EventPurchaseRequestsUpdated, Payload: map[string]int{"revision": revision}}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	require.Eventually(t, func() bool { return len(conn.received()) == 10 }, time.Second, 5*time.Millisecond)
	for i, raw := range conn.received() {
		var got struct {
			Payload struct {
				Revision int `json:"revision"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, i+1, got.Payload.Revision)
	}
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster(NewHub(nil), 1, nil)
	assert.True(t, b.Publish(Event{Event: EventNotification}))
	assert.False(t, b.Publish(Event{Event: EventNotification}))
}
