package core

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func benchmarkChatBroadcast(b *testing.B, recipients int) {
	registry := NewRegistry(testLogger())
	hub := NewHub(registry, NewCallRelay(testLogger()), time.Minute, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sender := NewSession("sender", "sender")
	hub.RegisterSession(sender)
	sender.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench", Nick: "sender"}

	clients := make([]*Session, 0, recipients)
	for i := 0; i < recipients; i++ {
		s := NewSession(fmt.Sprintf("c%d", i), "client")
		hub.RegisterSession(s)
		s.Commands <- &Command{Kind: CommandJoinRoom, Room: "bench", Nick: "client"}
		clients = append(clients, s)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, s := range clients[1:] {
		go func(cl *Session) {
			for range cl.Events {
			}
		}(s)
	}
	go func() {
		for range sender.Events {
		}
	}()

	// Let the join storm settle, then drain the target's backlog so chat
	// broadcasts are never dropped for lack of buffer space.
	time.Sleep(100 * time.Millisecond)
	for {
		select {
		case <-target.Events:
			continue
		default:
		}
		break
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandPostChat, Text: "payload"}
		for ev := range target.Events {
			if ev.Kind == EventChatMessage && ev.Message.Nick == "sender" {
				break
			}
		}
	}
}

func BenchmarkChatBroadcast_10(b *testing.B)  { benchmarkChatBroadcast(b, 10) }
func BenchmarkChatBroadcast_100(b *testing.B) { benchmarkChatBroadcast(b, 100) }
func BenchmarkChatBroadcast_500(b *testing.B) { benchmarkChatBroadcast(b, 500) }
