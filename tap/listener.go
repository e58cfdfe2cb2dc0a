package tap

import (
	"github.com/interpose/common/types/event"
)

// Listener inspects packet events as they pass through a Dispatcher.
//
// A listener may replace the event's payload, cancel it, or attach a
// continuation marker to move it onto the deferred path. Listeners run on the
// dispatching goroutine and must not block.
type Listener interface {
	HandlePacket(ev *event.Event)
}

// Priority orders listener execution within a Dispatcher. Lower priorities
// run first; Monitor runs last and should only observe.
type Priority byte

const (
	Lowest Priority = iota
	Low
	Normal
	High
	Highest
	Monitor
)

func (p Priority) String() string {
	switch p {
	case Lowest:
		return "lowest"
	case Low:
		return "low"
	case Normal:
		return "normal"
	case High:
		return "high"
	case Highest:
		return "highest"
	case Monitor:
		return "monitor"
	default:
		return "unknown"
	}
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(ev *event.Event)

func (f ListenerFunc) HandlePacket(ev *event.Event) {
	f(ev)
}
