package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcasterFanOut(t *testing.T) {
	b := NewBroadcaster[int](2)
	a, cancelA := b.Subscribe()
	c, cancelC := b.Subscribe()
	defer cancelA()
	defer cancelC()

	assert.Equal(t, 2, b.Publish(1))
	assert.Equal(t, 1, <-a)
	assert.Equal(t, 1, <-c)
}

func TestBroadcasterDropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster[string](1)
	ch, cancel := b.Subscribe()
	defer cancel()

	assert.Equal(t, 1, b.Publish("a"))
	assert.Equal(t, 0, b.Publish("b"))
	assert.Equal(t, "a", <-ch)
}

func TestBroadcasterCancelClosesChannel(t *testing.T) {
	b := NewBroadcaster[int](1)
	ch, cancel := b.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Publish(1))
}
