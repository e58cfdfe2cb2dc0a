package tap

import "time"

const (
	// Deferred
	DeferredChanBuffer = 64

	// Marker
	MarkerTxIDLen        = 12
	DefaultMarkerTimeout = 10 * time.Second
)
