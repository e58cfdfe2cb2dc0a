package event

import "errors"

var (
	ErrMarkerFrozen        = errors.New("continuation marker is immutable on asynchronous events")
	ErrAlreadyAsynchronous = errors.New("cannot derive a continuation from an asynchronous event")
	ErrNoPacket            = errors.New("event has no packet payload")
)
