package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndActive(t *testing.T) {
	t.Run("insertion order is preserved and duplicates are kept", func(t *testing.T) {
		q := NewQueue(5 * time.Second)

		q.Push("c1", Error, "failed")
		q.Push("c1", Error, "failed")
		q.Push("c1", Success, "done")

		active := q.Active("c1")
		require.Len(t, active, 3)
		assert.Equal(t, "failed", active[0].Message)
		assert.Equal(t, "failed", active[1].Message)
		assert.Equal(t, "done", active[2].Message)
		assert.NotEqual(t, active[0].ID, active[1].ID)
	})

	t.Run("clients are isolated", func(t *testing.T) {
		q := NewQueue(5 * time.Second)
		q.Push("c1", Success, "hello")

		assert.Len(t, q.Active("c1"), 1)
		assert.Empty(t, q.Active("c2"))
	})

	t.Run("expired toasts are dropped", func(t *testing.T) {
		q := NewQueue(5 * time.Second)
		now := time.Now()
		q.now = func() time.Time { return now }

		q.Push("c1", Success, "early")
		now = now.Add(3 * time.Second)
		q.Push("c1", Success, "late")
		now = now.Add(3 * time.Second)

		// 6s after the first push only the second toast is still alive.
		active := q.Active("c1")
		require.Len(t, active, 1)
		assert.Equal(t, "late", active[0].Message)

		now = now.Add(3 * time.Second)
		assert.Empty(t, q.Active("c1"))
	})
}

func TestDismiss(t *testing.T) {
	q := NewQueue(5 * time.Second)
	first := q.Push("c1", Success, "one")
	q.Push("c1", Success, "two")

	assert.True(t, q.Dismiss("c1", first.ID))
	assert.False(t, q.Dismiss("c1", first.ID))

	active := q.Active("c1")
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)
}
