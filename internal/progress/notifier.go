package progress

import (
	"context"
	"sync"
)

const channelBuffer = 16

// EventTypeUpdate is the wire type tag for processing updates.
const EventTypeUpdate = "processing_update"

// Event is one ephemeral progress notification for a document. Events are
// broadcast-only: no storage, no replay for late subscribers.
type Event struct {
	Type                   string `json:"type"`
	DocumentID             string `json:"documentId"`
	Step                   string `json:"step"`
	Progress               int    `json:"progress"`
	EstimatedTimeRemaining int    `json:"estimatedTimeRemaining"`
	Message                string `json:"message"`
}

// Notifier fans out progress events to subscribers of a document id.
// Delivery is best-effort: a publish with no subscriber is a no-op, and a
// subscriber whose buffer is full skips the event. Within one document's
// channel, delivered events preserve publish order.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{} // documentID -> subscriber channels
	done chan struct{}
}

// NewNotifier constructs a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[string]map[chan Event]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe registers a subscriber for a document's events. The returned
// channel is unregistered and closed when ctx is done or the notifier shuts
// down. Multiple subscribers per document are allowed.
func (n *Notifier) Subscribe(ctx context.Context, documentID string) <-chan Event {
	n.mu.Lock()
	defer n.mu.Unlock()

	select {
	case <-n.done:
		ch := make(chan Event)
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event, channelBuffer)
	if n.subs[documentID] == nil {
		n.subs[documentID] = make(map[chan Event]struct{})
	}
	n.subs[documentID][sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-n.done:
			return
		}

		n.mu.Lock()
		defer n.mu.Unlock()

		select {
		case <-n.done:
			return
		default:
		}

		if set, ok := n.subs[documentID]; ok {
			if _, ok := set[sub]; ok {
				delete(set, sub)
				close(sub)
				if len(set) == 0 {
					delete(n.subs, documentID)
				}
			}
		}
	}()

	return sub
}

// Publish delivers an event to the document's subscribers without blocking.
func (n *Notifier) Publish(documentID string, ev Event) {
	n.mu.RLock()
	select {
	case <-n.done:
		n.mu.RUnlock()
		return
	default:
	}

	set := n.subs[documentID]
	subscribers := make([]chan Event, 0, len(set))
	for sub := range set {
		subscribers = append(subscribers, sub)
	}
	n.mu.RUnlock()

	for _, sub := range subscribers {
		select {
		case sub <- ev:
		default:
			// Buffer full; this subscriber misses the event.
		}
	}
}

// SubscriberCount returns the number of active subscribers for a document.
func (n *Notifier) SubscriberCount(documentID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[documentID])
}

// Shutdown closes all subscriber channels and stops delivery.
func (n *Notifier) Shutdown() {
	select {
	case <-n.done:
		return
	default:
		close(n.done)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for id, set := range n.subs {
		for sub := range set {
			close(sub)
		}
		delete(n.subs, id)
	}
}
