package tap

import (
	"fmt"
	"time"

	"github.com/interpose/common/types"
	"github.com/interpose/common/types/event"
)

// Marker is the stock continuation marker handed to the deferred path.
//
// The event core treats markers as opaque; everything in here is bookkeeping
// for whatever drains the Deferred sink.
type Marker struct {
	txID      string
	createdAt time.Time
	timeout   time.Duration
}

// NewMarker creates a marker with the given processing timeout.
// A timeout of zero means the deferred event never expires.
func NewMarker(timeout time.Duration) *Marker {
	return &Marker{
		txID:      types.RandStringBytesMaskImprSrc(MarkerTxIDLen),
		createdAt: time.Now(),
		timeout:   timeout,
	}
}

// TxID returns the marker's random transaction ID.
func (m *Marker) TxID() string {
	return m.txID
}

func (m *Marker) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Marker) Timeout() time.Duration {
	return m.timeout
}

// Expired reports whether the deferred packet has been pending longer than
// its processing timeout.
func (m *Marker) Expired(now time.Time) bool {
	return m.timeout > 0 && now.Sub(m.createdAt) > m.timeout
}

func (m *Marker) Debug() string {
	return fmt.Sprintf("marker %s (age %s)", m.txID, time.Since(m.createdAt).Round(time.Millisecond))
}

var _ event.ContinuationMarker = &Marker{}
