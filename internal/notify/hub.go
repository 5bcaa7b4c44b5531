package notify

import "sync"

// Kind distinguishes user-facing notifications from property-change
// signals consumed by dependent views.
type Kind string

const (
	// KindNotification is a user-facing message (errors, rejections).
	KindNotification Kind = "notification"
	// KindChange signals that a named property changed (e.g. the
	// recently-played list) and views should refresh.
	KindChange Kind = "change"
)

// Severity grades user-facing notifications
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// PropertyRecentlyPlayed is the change-notification key for the
// recently-played read model.
const PropertyRecentlyPlayed = "recently_played"

// Message is a single notification delivered to subscribers.
type Message struct {
	Kind     Kind     `json:"kind"`
	Property string   `json:"property,omitempty"`
	GameID   string   `json:"game_id,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Text     string   `json:"text,omitempty"`
}

const subscriberBuffer = 64

// Hub fans notifications out to any number of subscribers. Publishing
// never blocks: a subscriber that falls behind loses messages rather than
// stalling the lifecycle core.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Message
	nextID int
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Message)}
}

// Subscribe registers a new subscriber. The returned cancel function
// removes the subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers a message to every subscriber without blocking.
func (h *Hub) Publish(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			// Subscriber buffer full; drop rather than block.
		}
	}
}

// Error publishes a user-facing error message.
func (h *Hub) Error(gameID, text string) {
	h.Publish(Message{Kind: KindNotification, GameID: gameID, Severity: SeverityError, Text: text})
}

// Changed publishes a property-change signal.
func (h *Hub) Changed(property string) {
	h.Publish(Message{Kind: KindChange, Property: property})
}

// Close shuts the hub down and closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
