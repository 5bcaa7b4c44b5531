package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Error("game-1", "boom")

	for _, ch := range []<-chan Message{ch1, ch2} {
		msg := <-ch
		assert.Equal(t, KindNotification, msg.Kind)
		assert.Equal(t, "game-1", msg.GameID)
		assert.Equal(t, SeverityError, msg.Severity)
		assert.Equal(t, "boom", msg.Text)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	h := NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	cancel()

	// Channel is closed after cancel
	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after cancel must not panic
	h.Changed(PropertyRecentlyPlayed)
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	h := NewHub()
	defer h.Close()

	_, cancel := h.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; Publish must never block.
	for i := 0; i < subscriberBuffer*2; i++ {
		h.Changed(PropertyRecentlyPlayed)
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	h := NewHub()
	ch, _ := h.Subscribe()

	h.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// Subscribing after close yields a closed channel
	ch2, _ := h.Subscribe()
	_, ok = <-ch2
	assert.False(t, ok)
}
