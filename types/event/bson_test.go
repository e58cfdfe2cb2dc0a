package event

import (
	"testing"

	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRoundTrip(t *testing.T) {
	reg := actor.NewMemRegistry()
	a := testActor("actorA")
	reg.Add(a)

	ev := FromServer("source", packet.NewContainer(0x21, bson.M{
		"entity": int32(7),
		"reason": "idle",
	}), a)
	ev.SetCancelled(true)

	b, err := ev.Encode()
	require.NoError(t, err)

	got, err := Decode(b, reg)
	require.NoError(t, err)

	// The actor came back as the live registry reference.
	require.NotNil(t, got.Actor())
	assert.Equal(t, a.Identity(), got.Actor().Identity())

	assert.Equal(t, ev.Packet(), got.Packet())
	assert.True(t, got.ServerOriginated())
	assert.True(t, got.Cancelled())
	assert.False(t, got.Asynchronous())

	// The source is a transient structural link, it does not round-trip.
	assert.Nil(t, got.Source())

	// Neither does the process-local marker.
	assert.Nil(t, got.ContinuationMarker())
}

func TestDegradedRoundTrip(t *testing.T) {
	reg := actor.NewMemRegistry()
	a := testActor("actorA")
	reg.Add(a)

	ev := FromClient("source", packet.NewContainer(0x10, bson.M{"slot": int32(2)}), a)

	b, err := ev.Encode()
	require.NoError(t, err)

	// The actor disconnects before the event is reconstructed.
	reg.Remove(a.Identity())

	got, err := Decode(b, reg)
	require.NoError(t, err)

	// Partial reconstruction: the actor is absent, everything else survives.
	assert.Nil(t, got.Actor())
	assert.Equal(t, ev.Packet(), got.Packet())
	assert.False(t, got.ServerOriginated())
	assert.False(t, got.Cancelled())
}

func TestRoundTripWithoutActor(t *testing.T) {
	ev := FromClient("source", packet.NewContainer(0x01, nil), nil)

	b, err := ev.Encode()
	require.NoError(t, err)

	got, err := Decode(b, actor.NewMemRegistry())
	require.NoError(t, err)

	assert.Nil(t, got.Actor())
	assert.Equal(t, ev.Packet(), got.Packet())
}

func TestRoundTripAsynchronous(t *testing.T) {
	e1 := FromClient("source", packet.NewContainer(0x05, nil), nil)
	require.NoError(t, e1.SetContinuationMarker(&mockMarker{name: "m"}))

	e2, err := DeriveAsynchronous(e1, e1.ContinuationMarker())
	require.NoError(t, err)

	b, err := e2.Encode()
	require.NoError(t, err)

	got, err := Decode(b, nil)
	require.NoError(t, err)

	// The asynchronous flag survives, and the marker freeze survives with it.
	assert.True(t, got.Asynchronous())
	assert.ErrorIs(t, got.SetContinuationMarker(&mockMarker{name: "m2"}), ErrMarkerFrozen)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02, 0x03}, nil)
	assert.Error(t, err)
}
