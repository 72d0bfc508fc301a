package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_ExpiresAfterTTL(t *testing.T) {
	c := NewCenter(30 * time.Millisecond)
	t.Cleanup(func() { c.Close() })

	n := c.Push("s1", "Organic Coffee Beans added to cart!")
	assert.Equal(t, "Organic Coffee Beans added to cart!", n.Message)
	assert.Equal(t, 30*time.Millisecond, n.ExpiresAt.Sub(n.CreatedAt))
	require.Len(t, c.Active("s1"), 1)

	assert.Eventually(t, func() bool {
		return len(c.Active("s1")) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDefaultTTL(t *testing.T) {
	c := NewCenter(0)
	t.Cleanup(func() { c.Close() })

	n := c.Push("s1", "hello")
	assert.Equal(t, 3*time.Second, n.ExpiresAt.Sub(n.CreatedAt))
}

func TestDismiss_RemovesEarly(t *testing.T) {
	c := NewCenter(time.Minute)
	t.Cleanup(func() { c.Close() })

	n := c.Push("s1", "hello")
	c.Dismiss("s1", n.ID)
	assert.Empty(t, c.Active("s1"))
}

func TestDismiss_UnknownIsNoop(t *testing.T) {
	c := NewCenter(time.Minute)
	t.Cleanup(func() { c.Close() })

	assert.NotPanics(t, func() {
		c.Dismiss("s1", "missing")
		c.Dismiss("nobody", "missing")
	})
}

func TestDismiss_AfterExpiryIsNoop(t *testing.T) {
	c := NewCenter(10 * time.Millisecond)
	t.Cleanup(func() { c.Close() })

	n := c.Push("s1", "hello")
	require.Eventually(t, func() bool {
		return len(c.Active("s1")) == 0
	}, time.Second, 5*time.Millisecond)

	assert.NotPanics(t, func() { c.Dismiss("s1", n.ID) })
}

func TestTimerAfterDismissIsNoop(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)
	t.Cleanup(func() { c.Close() })

	first := c.Push("s1", "first")
	c.Dismiss("s1", first.ID)
	second := c.Push("s1", "second")

	time.Sleep(5 * time.Millisecond)
	active := c.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestActive_IsolatedPerKeyAndOrdered(t *testing.T) {
	c := NewCenter(time.Minute)
	t.Cleanup(func() { c.Close() })

	c.Push("s1", "a")
	time.Sleep(time.Millisecond)
	c.Push("s1", "b")
	c.Push("s2", "c")

	active := c.Active("s1")
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].Message)
	assert.Equal(t, "b", active[1].Message)
	assert.Len(t, c.Active("s2"), 1)
}

func TestDismissAll(t *testing.T) {
	c := NewCenter(time.Minute)
	t.Cleanup(func() { c.Close() })

	c.Push("s1", "a")
	c.Push("s1", "b")
	c.Push("s2", "c")
	c.DismissAll("s1")

	assert.Empty(t, c.Active("s1"))
	assert.Len(t, c.Active("s2"), 1)
}

func TestClose_StopsEverything(t *testing.T) {
	c := NewCenter(time.Minute)
	c.Push("s1", "a")
	require.NoError(t, c.Close())

	assert.Empty(t, c.Active("s1"))
	c.Push("s1", "b")
	assert.Empty(t, c.Active("s1"))
}

func TestSessionNotify(t *testing.T) {
	c := NewCenter(time.Minute)
	t.Cleanup(func() { c.Close() })

	c.For("s1").Notify("hello")
	active := c.Active("s1")
	require.Len(t, active, 1)
	assert.Equal(t, "hello", active[0].Message)
}
