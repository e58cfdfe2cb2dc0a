package tap

import (
	"testing"

	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/event"
	"github.com/interpose/common/types/identity"
	"github.com/interpose/common/types/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"net/netip"
)

func testActor(name string) *actor.Session {
	return actor.NewSession(
		identity.NewActorPrivate().Public(),
		name,
		netip.MustParseAddrPort("203.0.113.7:25565"),
	)
}

func TestListenerOrdering(t *testing.T) {
	d := NewDispatcher(nil)

	var order []string
	tag := func(name string) Listener {
		return ListenerFunc(func(ev *event.Event) {
			order = append(order, name)
		})
	}

	d.Register(tag("monitor"), Monitor)
	d.Register(tag("lowest"), Lowest)
	d.Register(tag("normal-1"), Normal)
	d.Register(tag("normal-2"), Normal)

	ev := d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)

	assert.False(t, ev.ServerOriginated())
	assert.Equal(t, []string{"lowest", "normal-1", "normal-2", "monitor"}, order)
}

func TestListenerMutation(t *testing.T) {
	d := NewDispatcher(nil)

	d.Register(ListenerFunc(func(ev *event.Event) {
		ev.Packet().SetField("reason", "rewritten")
	}), Normal)
	d.Register(ListenerFunc(func(ev *event.Event) {
		ev.SetPacket(packet.NewContainer(99, ev.Packet().Fields()))
	}), High)

	ev := d.SendServerPacket(packet.NewContainer(10, bson.M{"reason": "idle"}), nil)

	assert.True(t, ev.ServerOriginated())

	id, err := ev.PacketID()
	require.NoError(t, err)
	assert.Equal(t, packet.ID(99), id)
	assert.Equal(t, "rewritten", ev.Packet().Field("reason"))
}

func TestListenerCancellation(t *testing.T) {
	d := NewDispatcher(nil)

	d.Register(ListenerFunc(func(ev *event.Event) {
		ev.SetCancelled(true)
	}), Normal)

	// A later listener still observes the event, monitor-style.
	var sawCancelled bool
	d.Register(ListenerFunc(func(ev *event.Event) {
		sawCancelled = ev.Cancelled()
	}), Monitor)

	ev := d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)

	assert.True(t, ev.Cancelled())
	assert.True(t, sawCancelled)
}

func TestUnregister(t *testing.T) {
	d := NewDispatcher(nil)

	var calls int
	reg := d.Register(ListenerFunc(func(ev *event.Event) {
		calls++
	}), Normal)

	d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)
	assert.Equal(t, 1, calls)

	d.Unregister(reg)
	d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)
	assert.Equal(t, 1, calls)
}

func TestDeferredHandoff(t *testing.T) {
	sink := NewChanDeferred()
	d := NewDispatcher(sink)

	a := testActor("actorA")
	m := NewMarker(DefaultMarkerTimeout)

	d.Register(ListenerFunc(func(ev *event.Event) {
		require.NoError(t, ev.SetContinuationMarker(m))
	}), Normal)

	ev := d.ReceiveClientPacket(packet.NewContainer(10, bson.M{"entity": int32(7)}), a)

	// The synchronous event stays synchronous.
	assert.False(t, ev.Asynchronous())

	var async *event.Event
	select {
	case async = <-sink.Queue():
	default:
		t.Fatal("no event on the deferred sink")
	}

	assert.True(t, async.Asynchronous())
	assert.Equal(t, event.ContinuationMarker(m), async.ContinuationMarker())
	assert.Equal(t, a, async.Actor())

	// The fork is frozen and isolated.
	assert.ErrorIs(t,
		async.SetContinuationMarker(NewMarker(0)),
		event.ErrMarkerFrozen,
	)

	ev.Packet().SetField("entity", int32(8))
	assert.Equal(t, int32(7), async.Packet().Field("entity"))
}

func TestNoMarkerNoHandoff(t *testing.T) {
	sink := NewChanDeferred()
	d := NewDispatcher(sink)

	d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)

	select {
	case <-sink.Queue():
		t.Fatal("unexpected event on the deferred sink")
	default:
	}
}

func TestNilSink(t *testing.T) {
	d := NewDispatcher(nil)

	d.Register(ListenerFunc(func(ev *event.Event) {
		_ = ev.SetContinuationMarker(NewMarker(0))
	}), Normal)

	// Dropping the continuation is logged, not fatal.
	ev := d.ReceiveClientPacket(packet.NewContainer(1, nil), nil)
	assert.NotNil(t, ev.ContinuationMarker())
}

func TestChanDeferredFull(t *testing.T) {
	sink := NewChanDeferred()

	ev := event.FromClient("src", packet.NewContainer(1, nil), nil)

	for i := 0; i < DeferredChanBuffer; i++ {
		require.NoError(t, sink.Enqueue(ev))
	}

	assert.ErrorIs(t, sink.Enqueue(ev), ErrDeferredFull)
}
