package main

import (
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/interpose/common/tap"
	"github.com/interpose/common/types/actor"
	"github.com/interpose/common/types/event"
	"github.com/interpose/common/types/identity"
	"github.com/interpose/common/types/packet"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	programLevel = new(slog.LevelVar) // Info by default

	registry *actor.MemRegistry
	sessions map[string]*actor.Session

	deferred   *tap.ChanDeferred
	dispatcher *tap.Dispatcher
)

func init() {
	registry = actor.NewMemRegistry()
	sessions = make(map[string]*actor.Session)

	deferred = tap.NewChanDeferred()
	dispatcher = tap.NewDispatcher(deferred)
}

func main() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel})
	slog.SetDefault(slog.New(h))
	programLevel.Set(slog.LevelDebug)

	shell := ishell.New()

	shell.SetHomeHistoryPath(".tapshell_history")

	shell.Println("Tap Interactive Shell")

	shell.AddCmd(&ishell.Cmd{
		Name: "debug",
		Help: "set log level to debug",
		Func: func(c *ishell.Context) {
			programLevel.Set(slog.LevelDebug)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "info",
		Help: "set log level to info",
		Func: func(c *ishell.Context) {
			programLevel.Set(slog.LevelInfo)
		},
	})

	shell.AddCmd(actorCmd())
	shell.AddCmd(pktCmd())
	shell.AddCmd(lsnrCmd())
	shell.AddCmd(defqCmd())

	shell.Run()
}

// Actor commands
func actorCmd() *ishell.Cmd {
	c := &ishell.Cmd{
		Name: "actor",
		Help: "fake session actor management",
		Func: func(c *ishell.Context) {
			for name, s := range sessions {
				c.Println(name, s.Identity().Marshal(), "connected:", s.Connected())
			}
		},
	}

	c.AddCmd(&ishell.Cmd{
		Name: "gen",
		Help: "gen <name> [addr:port]: generate a session actor",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("expected at least a name"))
				return
			}
			name := c.Args[0]

			addr := netip.MustParseAddrPort("127.0.0.1:25565")
			if len(c.Args) > 1 {
				var err error
				if addr, err = netip.ParseAddrPort(c.Args[1]); err != nil {
					c.Err(fmt.Errorf("could not parse addrport: %w", err))
					return
				}
			}

			s := actor.NewSession(identity.NewActorPrivate().Public(), name, addr)
			sessions[name] = s
			registry.Add(s)

			c.Println("actor", name, "=", s.Identity().Marshal())
		},
	})

	c.AddCmd(&ishell.Cmd{
		Name: "drop",
		Help: "drop <name>: disconnect and deregister a session actor",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("expected name"))
				return
			}
			s, ok := sessions[c.Args[0]]
			if !ok {
				c.Err(fmt.Errorf("unknown actor %q", c.Args[0]))
				return
			}
			s.Disconnect()
			registry.Remove(s.Identity())
			delete(sessions, c.Args[0])
		},
	})

	return c
}

// Packet injection commands
func pktCmd() *ishell.Cmd {
	inject := func(c *ishell.Context, server bool) {
		if len(c.Args) < 2 {
			c.Err(fmt.Errorf("expected <actor> <packet id> [field=value...]"))
			return
		}

		s, ok := sessions[c.Args[0]]
		if !ok {
			c.Err(fmt.Errorf("unknown actor %q", c.Args[0]))
			return
		}

		id, err := strconv.ParseUint(c.Args[1], 0, 16)
		if err != nil {
			c.Err(fmt.Errorf("could not parse packet id: %w", err))
			return
		}

		fields := bson.M{}
		for _, kv := range c.Args[2:] {
			k, v, found := strings.Cut(kv, "=")
			if !found {
				c.Err(fmt.Errorf("expected field=value, got %q", kv))
				return
			}
			fields[k] = v
		}

		pkt := packet.NewContainer(packet.ID(id), fields)

		var ev *event.Event
		if server {
			ev = dispatcher.SendServerPacket(pkt, s)
		} else {
			ev = dispatcher.ReceiveClientPacket(pkt, s)
		}

		c.Println("published:", ev.Packet().Debug(),
			"cancelled:", ev.Cancelled(),
			"deferred:", ev.ContinuationMarker() != nil)
	}

	c := &ishell.Cmd{
		Name: "pkt",
		Help: "inject packets into the pipeline",
	}

	c.AddCmd(&ishell.Cmd{
		Name: "client",
		Help: "client <actor> <packet id> [field=value...]: inject a client packet",
		Func: func(c *ishell.Context) {
			inject(c, false)
		},
	})

	c.AddCmd(&ishell.Cmd{
		Name: "server",
		Help: "server <actor> <packet id> [field=value...]: inject a server packet",
		Func: func(c *ishell.Context) {
			inject(c, true)
		},
	})

	return c
}

// Listener commands
func lsnrCmd() *ishell.Cmd {
	parseID := func(c *ishell.Context) (packet.ID, bool) {
		if len(c.Args) != 1 {
			c.Err(fmt.Errorf("expected <packet id>"))
			return 0, false
		}
		id, err := strconv.ParseUint(c.Args[0], 0, 16)
		if err != nil {
			c.Err(fmt.Errorf("could not parse packet id: %w", err))
			return 0, false
		}
		return packet.ID(id), true
	}

	c := &ishell.Cmd{
		Name: "lsnr",
		Help: "canned listener registration",
	}

	c.AddCmd(&ishell.Cmd{
		Name: "cancel",
		Help: "cancel <packet id>: cancel every packet of this type",
		Func: func(c *ishell.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			dispatcher.Register(tap.ListenerFunc(func(ev *event.Event) {
				if got, err := ev.PacketID(); err == nil && got == id {
					ev.SetCancelled(true)
				}
			}), tap.Normal)
		},
	})

	c.AddCmd(&ishell.Cmd{
		Name: "defer",
		Help: "defer <packet id>: move every packet of this type to the deferred path",
		Func: func(c *ishell.Context) {
			id, ok := parseID(c)
			if !ok {
				return
			}
			dispatcher.Register(tap.ListenerFunc(func(ev *event.Event) {
				if got, err := ev.PacketID(); err == nil && got == id {
					if err := ev.SetContinuationMarker(tap.NewMarker(tap.DefaultMarkerTimeout)); err != nil {
						slog.Warn("tapshell: could not attach marker", "error", err)
					}
				}
			}), tap.Normal)
		},
	})

	return c
}

// Deferred queue commands
func defqCmd() *ishell.Cmd {
	c := &ishell.Cmd{
		Name: "defq",
		Help: "deferred queue inspection",
	}

	c.AddCmd(&ishell.Cmd{
		Name: "drain",
		Help: "drain and print all pending deferred events",
		Func: func(c *ishell.Context) {
			for {
				select {
				case ev := <-deferred.Queue():
					c.Println("deferred:", ev.Packet().Debug(),
						"marker:", ev.ContinuationMarker().Debug(),
						"cancelled:", ev.Cancelled())
				default:
					return
				}
			}
		},
	})

	return c
}
