package i18n

import (
	"sync"

	"github.com/google/uuid"
)

// Change describes a completed locale switch. Direction is the effective
// direction after the switch, including any tree-level override.
type Change struct {
	Locale    string
	Direction Direction
}

// notifier is the locale-changed broadcast owned by an I18n instance.
// Subscribers register and unregister explicitly; there is no global bus.
type notifier struct {
	mu   sync.RWMutex
	subs map[string]func(Change)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]func(Change))}
}

func (n *notifier) subscribe(fn func(Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.NewString()

	n.mu.Lock()
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// broadcast calls every subscriber synchronously, in unspecified order.
// The subscriber list is snapshotted first so a handler may unsubscribe
// itself (or subscribe others) without deadlocking.
func (n *notifier) broadcast(change Change) {
	n.mu.RLock()
	handlers := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		handlers = append(handlers, fn)
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		fn(change)
	}
}
