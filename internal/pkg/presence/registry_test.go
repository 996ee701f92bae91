package presence

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	id     string
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (c *stubConn) ID() string { return c.id }

func (c *stubConn) Write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.frames = append(c.frames, msg)
	return nil
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := New()
	connA := &stubConn{id: "a"}
	connB := &stubConn{id: "b"}

	_, replaced := r.Register("userA", connA)
	assert.False(t, replaced)

	prev, replaced := r.Register("userA", connB)
	require.True(t, replaced)
	assert.Equal(t, "a", prev.ID())

	got, ok := r.Lookup("userA")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID())

	// The superseded connection disconnecting must not evict the new one.
	assert.False(t, r.Remove("userA", connA))
	got, ok = r.Lookup("userA")
	require.True(t, ok)
	assert.Equal(t, "b", got.ID())

	assert.True(t, r.Remove("userA", connB))
	_, ok = r.Lookup("userA")
	assert.False(t, ok)
}

func TestRegistry_ReRegisterSameConn(t *testing.T) {
	r := New()
	conn := &stubConn{id: "c1"}

	r.Register("u1", conn)
	_, replaced := r.Register("u1", conn)
	assert.False(t, replaced)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_ConnSwitchesIdentity(t *testing.T) {
	r := New()
	conn := &stubConn{id: "c1"}

	r.Register("u1", conn)
	r.Register("u2", conn)

	_, ok := r.Lookup("u1")
	assert.False(t, ok)
	user, ok := r.UserOf(conn)
	require.True(t, ok)
	assert.Equal(t, "u2", user)
	assert.Equal(t, []string{"u2"}, r.Online())
}

func TestRegistry_UserOfSurvivesTakeover(t *testing.T) {
	r := New()
	oldConn := &stubConn{id: "old"}
	newConn := &stubConn{id: "new"}

	r.Register("u1", oldConn)
	r.Register("u1", newConn)

	user, ok := r.UserOf(oldConn)
	require.True(t, ok)
	assert.Equal(t, "u1", user)

	r.Remove("u1", oldConn)
	_, ok = r.UserOf(oldConn)
	assert.False(t, ok)
}

func TestRegistry_Send(t *testing.T) {
	r := New()
	healthy := &stubConn{id: "ok"}
	broken := &stubConn{id: "broken", err: errors.New("closed")}
	r.Register("u1", healthy)
	r.Register("u2", broken)

	assert.True(t, r.Send("u1", []byte("hi")))
	assert.False(t, r.Send("u2", []byte("hi")))
	assert.False(t, r.Send("ghost", []byte("hi")))
	assert.Len(t, healthy.frames, 1)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := &stubConn{id: fmt.Sprintf("c%d", i)}
			user := fmt.Sprintf("u%d", i%5)
			r.Register(user, conn)
			r.Lookup(user)
			r.Remove(user, conn)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, r.Count(), 5)
}
