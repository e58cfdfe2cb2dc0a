package event

import (
	"fmt"

	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/packet"
	"go.mongodb.org/mongo-driver/bson"
)

// eventDoc is the durable representation of an Event.
//
// The source handle is a transient structural link and is omitted. The
// continuation marker is process-local and is omitted; moving markers across
// processes is the deferred pipeline's problem, not the event's.
type eventDoc struct {
	Packet           *packet.Container `bson:"packet,omitempty"`
	ActorSnapshot    *actor.Snapshot   `bson:"actorSnapshot,omitempty"`
	ServerOriginated bool              `bson:"serverOriginated"`
	Cancelled        bool              `bson:"cancelled"`
	Asynchronous     bool              `bson:"asynchronous"`
}

// Encode serializes the event for durable or cross-process delivery.
//
// The live actor reference is replaced by a resolvable actor.Snapshot, or
// omitted entirely when no actor is set.
func (e *Event) Encode() ([]byte, error) {
	doc := eventDoc{
		Packet:           e.pkt,
		ServerOriginated: e.serverOriginated,
		Cancelled:        e.cancelled,
		Asynchronous:     e.asynchronous,
	}

	if e.actor != nil {
		snap := actor.SnapshotOf(e.actor)
		doc.ActorSnapshot = &snap
	}

	b, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshalling event: %w", err)
	}

	return b, nil
}

// Decode reconstructs an event previously serialized with Encode.
//
// The stored actor snapshot, if any, is resolved back to a live reference
// through reg. Resolution failure is not an error: the actor comes back
// absent, and the rest of the event is reconstructed regardless, since the
// packet payload is usually still useful without a live session handle.
//
// The source handle does not cross the serialization boundary; the decoded
// event has no source.
func Decode(b []byte, reg actor.Registry) (*Event, error) {
	var doc eventDoc

	if err := bson.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling event: %w", err)
	}

	e := &Event{
		pkt:              doc.Packet,
		serverOriginated: doc.ServerOriginated,
		cancelled:        doc.Cancelled,
		asynchronous:     doc.Asynchronous,
	}

	if doc.ActorSnapshot != nil {
		if live, ok := doc.ActorSnapshot.Resolve(reg); ok {
			e.actor = live
		}
	}

	return e, nil
}
