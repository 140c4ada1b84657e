package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	m := NewManager(time.Minute)

	m.Set(TagCart, "sess-1", "zawartość koszyka")

	value, ok := m.Get(TagCart, "sess-1")
	assert.True(t, ok)
	assert.Equal(t, "zawartość koszyka", value)

	// Inna sesja nie widzi cudzego wpisu.
	_, ok = m.Get(TagCart, "sess-2")
	assert.False(t, ok)

	// Inny tag tej samej sesji też nie.
	_, ok = m.Get(TagMyLoans, "sess-1")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	m := NewManager(-time.Second) // wpisy wygasają od razu

	m.Set(TagCheckout, "sess-1", "payload")

	_, ok := m.Get(TagCheckout, "sess-1")
	assert.False(t, ok)
}

func TestInvalidateTags(t *testing.T) {
	m := NewManager(time.Minute)

	m.Set(TagCart, "sess-1", "a")
	m.Set(TagMyLoans, "sess-1", "b")
	m.Set(TagProfile, "sess-1", "c")

	m.Invalidate(TagCart, TagMyLoans)

	_, ok := m.Get(TagCart, "sess-1")
	assert.False(t, ok)
	_, ok = m.Get(TagMyLoans, "sess-1")
	assert.False(t, ok)

	// Nieunieważniony tag zostaje.
	value, ok := m.Get(TagProfile, "sess-1")
	assert.True(t, ok)
	assert.Equal(t, "c", value)
}

func TestInvalidateSession(t *testing.T) {
	m := NewManager(time.Minute)

	m.Set(TagCart, "sess-1", "a")
	m.Set(TagCart, "sess-2", "b")

	m.InvalidateSession("sess-1")

	_, ok := m.Get(TagCart, "sess-1")
	assert.False(t, ok)

	value, ok := m.Get(TagCart, "sess-2")
	assert.True(t, ok)
	assert.Equal(t, "b", value)
}
