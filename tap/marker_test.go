package tap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarker(t *testing.T) {
	m := NewMarker(DefaultMarkerTimeout)

	assert.Len(t, m.TxID(), MarkerTxIDLen)
	assert.Equal(t, DefaultMarkerTimeout, m.Timeout())
	assert.Contains(t, m.Debug(), m.TxID())

	// Unique per marker.
	assert.NotEqual(t, m.TxID(), NewMarker(DefaultMarkerTimeout).TxID())
}

func TestMarkerExpiry(t *testing.T) {
	m := NewMarker(time.Second)

	assert.False(t, m.Expired(m.CreatedAt()))
	assert.False(t, m.Expired(m.CreatedAt().Add(time.Second)))
	assert.True(t, m.Expired(m.CreatedAt().Add(2*time.Second)))

	// Zero timeout never expires.
	forever := NewMarker(0)
	assert.False(t, forever.Expired(forever.CreatedAt().Add(time.Hour)))
}
