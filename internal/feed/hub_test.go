package feed

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingamazing/zing-orders/internal/order"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	failNext bool
	closed   bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return errors.New("broken pipe")
	}
	cp := append([]byte(nil), data...)
	f.messages = append(f.messages, cp)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages
}

func TestBroadcast_AllViewersGetIdenticalPayload(t *testing.T) {
	h := NewHub()
	a, b := &fakeConn{}, &fakeConn{}
	ca := h.Register(a)
	h.Register(b)
	require.Equal(t, 2, h.Count())

	h.Broadcast(Event{Type: EventNewOrder, Order: &order.Order{ID: 1, Name: "Asha"}})

	require.Len(t, a.received(), 1)
	require.Len(t, b.received(), 1)
	assert.Equal(t, a.received()[0], b.received()[0])

	var ev Event
	require.NoError(t, json.Unmarshal(a.received()[0], &ev))
	assert.Equal(t, EventNewOrder, ev.Type)
	assert.Equal(t, int64(1), ev.Order.ID)

	// one viewer leaves; the second broadcast reaches exactly one
	h.Remove(ca)
	assert.Equal(t, 1, h.Count())
	h.Broadcast(Event{Type: EventNewOrder, Order: &order.Order{ID: 2}})
	assert.Len(t, a.received(), 1)
	assert.Len(t, b.received(), 2)
}

func TestBroadcast_FailedWriteDropsConnectionSynchronously(t *testing.T) {
	h := NewHub()
	bad := &fakeConn{failNext: true}
	good := &fakeConn{}
	h.Register(bad)
	h.Register(good)

	h.Broadcast(Event{Type: EventNewOrder, Order: &order.Order{ID: 3}})

	assert.Equal(t, 1, h.Count(), "failed connection must be deregistered by the broadcast call")
	assert.True(t, bad.closed)
	assert.Len(t, good.received(), 1)
}

func TestRemove_Idempotent(t *testing.T) {
	h := NewHub()
	c := h.Register(&fakeConn{})
	h.Remove(c)
	h.Remove(c)
	assert.Equal(t, 0, h.Count())
}

func TestHub_ConcurrentAccess(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := h.Register(&fakeConn{})
			h.Broadcast(Event{Type: EventNewOrder, Order: &order.Order{ID: 9}})
			h.Remove(c)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, h.Count())
}
