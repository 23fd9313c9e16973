// internal/domain/identity/notifier.go
package identity

import (
	"sort"
	"sync"
)

// Notifier is the in-process Source.
//
// - Publish delivers synchronously to every listener, in publish order
// - a new subscriber immediately receives the last published value (if any)
// - listeners must not call Publish (delivery is serialized)
type Notifier struct {
	deliver sync.Mutex

	mu        sync.Mutex
	listeners map[uint64]Listener
	next      uint64
	last      *Identity
	published bool
}

func NewNotifier() *Notifier {
	return &Notifier{listeners: map[uint64]Listener{}}
}

func (n *Notifier) Publish(u *Identity) {
	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	n.last = u.Clone()
	n.published = true
	ls := n.snapshotLocked()
	n.mu.Unlock()

	for _, l := range ls {
		l(u.Clone())
	}
}

func (n *Notifier) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}

	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	if n.listeners == nil {
		n.listeners = map[uint64]Listener{}
	}
	id := n.next
	n.next++
	n.listeners[id] = l
	replay, last := n.published, n.last.Clone()
	n.mu.Unlock()

	if replay {
		l(last)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

// Current returns the last published identity.
func (n *Notifier) Current() *Identity {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last.Clone()
}

func (n *Notifier) snapshotLocked() []Listener {
	ids := make([]uint64, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, n.listeners[id])
	}
	return out
}
