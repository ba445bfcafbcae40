package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/auth"
	"github.com/syncwatch/server/internal/config"
	"github.com/syncwatch/server/internal/core"
	"github.com/syncwatch/server/internal/proto"
	"github.com/syncwatch/server/internal/proxy"
	"github.com/syncwatch/server/internal/search"
)

type testServer struct {
	ts       *httptest.Server
	registry *core.Registry
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// startTestServer spins up the full HTTP surface over an in-process hub.
// mutate lets a test tweak the config (e.g. enable the passphrase gate).
func startTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	logger := testLogger()

	cfg := config.Default()
	cfg.RoomGrace = time.Minute
	if mutate != nil {
		mutate(&cfg)
	}

	registry := core.NewRegistry(logger)
	relay := core.NewCallRelay(logger)
	hub := core.NewHub(registry, relay, cfg.RoomGrace, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	authService := auth.NewService(cfg.Passphrase, cfg.AccessSecret, auth.JWTConfig{
		Issuer: "syncwatch-test",
		TTL:    time.Hour,
	})
	searchService := search.NewService(logger)
	proxyService := proxy.NewService(logger)

	server := NewServer(hub, registry, authService, searchService, proxyService, cfg, logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, registry: registry}
}

func (s *testServer) wsURL() string {
	return strings.Replace(s.ts.URL, "http", "ws", 1) + "/ws"
}

func dialWS(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s data: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

type rawOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

// mustReadEvent reads outbound envelopes until one matches the wanted event
// name, decoding its data into out.
func mustReadEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, out any) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var outbound rawOutbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			t.Fatalf("read outbound waiting for %s: %v", event, err)
		}
		if outbound.Type != proto.OutboundTypeEvent || outbound.Event != event {
			continue
		}
		if out != nil {
			if err := json.Unmarshal(outbound.Data, out); err != nil {
				t.Fatalf("unmarshal %s data: %v", event, err)
			}
		}
		return
	}
	t.Fatalf("event %s not received", event)
}
