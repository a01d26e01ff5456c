package socket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	h := NewHub(nil)
	a, b, broken := &fakeConn{}, &fakeConn{}, &fakeConn{fail: true}
	h.Register("a", a)
	h.Register("b", b)
	h.Register("c", broken)

	sent, err := h.Broadcast(Event{Event: EventPurchaseRequestsUpdated, Payload: map[string]int{"revision": 3}})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.Len(t, a.messages, 1)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(a.messages[0], &got))
	assert.Equal(t, EventPurchaseRequestsUpdated, got["event"])
	assert.Equal(t, float64(3), got["payload"].(map[string]interface{})["revision"])
	assert.Len(t, b.messages, 1)
}

func TestRegisterReplacesAndClosesOldConnection(t *testing.T) {
	h := NewHub(nil)
	first, second := &fakeConn{}, &fakeConn{}
	h.Register("u", first)
	h.Register("u", second)
	assert.True(t, first.closed)
	assert.Equal(t, 1, h.Count())

	// unregistering the replaced connection must not drop the new one
	h.Unregister("u", first)
	assert.Equal(t, 1, h.Count())

	require.NoError(t, h.Send("u", []byte("hi")))
	assert.Len(t, second.messages, 1)

	h.Unregister("u", second)
	assert.Equal(t, 0, h.Count())
}

func TestSendToOfflineClient(t *testing.T) {
	h := NewHub(nil)
	assert.NoError(t, h.Send("ghost", []byte("hi")))
}
