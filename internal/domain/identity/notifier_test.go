package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_DeliversInOrder(t *testing.T) {
	n := NewNotifier()
	var got []string
	unsub := n.Subscribe(func(u *Identity) {
		if u == nil {
			got = append(got, "<nil>")
			return
		}
		got = append(got, u.UID)
	})
	defer unsub()

	n.Publish(&Identity{UID: "a"})
	n.Publish(nil)
	n.Publish(&Identity{UID: "b"})

	assert.Equal(t, []string{"a", "<nil>", "b"}, got)
}

func TestNotifier_ReplaysLastValue(t *testing.T) {
	n := NewNotifier()

	calls := 0
	unsub := n.Subscribe(func(*Identity) { calls++ })
	assert.Equal(t, 0, calls, "nothing published yet")
	unsub()

	n.Publish(&Identity{UID: "u1"})

	var replayed *Identity
	unsub = n.Subscribe(func(u *Identity) { replayed = u })
	defer unsub()
	require.NotNil(t, replayed)
	assert.Equal(t, "u1", replayed.UID)
	assert.Equal(t, "u1", n.Current().UID)
}

func TestNotifier_UnsubscribeStopsDelivery(t *testing.T) {
	n := NewNotifier()
	calls := 0
	unsub := n.Subscribe(func(*Identity) { calls++ })
	n.Publish(&Identity{UID: "a"})
	unsub()
	unsub()
	n.Publish(&Identity{UID: "b"})
	assert.Equal(t, 1, calls)
}

func TestNotifier_ListenerGetsCopy(t *testing.T) {
	n := NewNotifier()
	src := &Identity{UID: "a", Favorites: []string{"p1"}}
	unsub := n.Subscribe(func(u *Identity) {
		if u != nil {
			u.Favorites[0] = "changed"
		}
	})
	defer unsub()
	n.Publish(src)
	assert.Equal(t, "p1", src.Favorites[0])
	assert.Equal(t, "p1", n.Current().Favorites[0])
}
