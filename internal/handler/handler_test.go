package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
	"github.com/sabihanjum/Socket-Chat-Server/internal/configs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/limiter"
)

const wsWait = 5 * time.Second

// opsServer builds the ops router over a fresh chat engine and serves it from
// an httptest server.
func opsServer(t *testing.T) (*httptest.Server, *AppDeps) {
	t.Helper()

	cfg := &configs.AppConfig{
		Environment: "development",
		OutboxSize:  64,
	}

	registry := chat.NewRegistry()
	stats := chat.NewStats()

	deps := &AppDeps{
		Config:  cfg,
		Chat:    chat.NewRouter(registry, stats),
		Stats:   stats,
		Limiter: limiter.NewIPRateLimiter(rate.Limit(1000), 1000),
	}

	ts := httptest.NewServer(Router(deps))
	t.Cleanup(ts.Close)
	return ts, deps
}

// TestHealthEndpoint verifies the liveness probe answers with the standard
// JSON envelope.
func TestHealthEndpoint(t *testing.T) {
	ts, _ := opsServer(t)

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", res.StatusCode)
	}

	var body struct {
		Code int `json:"code"`
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding /health body failed: %v", err)
	}
	if body.Code != 0 || body.Data.Status != "ok" {
		t.Fatalf("GET /health body = %+v, want code 0 status ok", body)
	}
}

// wsClient is a line-oriented chat client over the WebSocket transport.
type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func dialWS(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("websocket dial %s failed: %v", url, err)
	}
	if res != nil {
		res.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	c := &wsClient{t: t, conn: conn}
	c.expect(chat.WelcomeBanner)
	return c
}

func (c *wsClient) send(line string) {
	c.t.Helper()
	c.conn.SetWriteDeadline(time.Now().Add(wsWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		c.t.Fatalf("send %q failed: %v", line, err)
	}
}

func (c *wsClient) expect(want string) {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(wsWait))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		c.t.Fatalf("read failed waiting for %q: %v", want, err)
	}
	if got := string(data); got != want {
		c.t.Fatalf("next frame = %q, want %q", got, want)
	}
}

// TestWebSocketTranscript runs the same protocol transcript over the
// WebSocket transport: both clients share the one registry and router.
func TestWebSocketTranscript(t *testing.T) {
	ts, _ := opsServer(t)

	alice := dialWS(t, ts)
	alice.send("LOGIN alice")
	alice.expect("OK")

	bob := dialWS(t, ts)
	bob.send("LOGIN bob")
	bob.expect("OK")
	alice.expect("INFO bob joined the chat")

	alice.send("MSG hi from ws")
	alice.expect("MSG alice hi from ws")
	bob.expect("MSG alice hi from ws")

	bob.send("DM alice quiet word")
	alice.expect("MSG bob quiet word")

	bob.send("WHO")
	bob.expect("USER alice")
	bob.expect("USER bob")

	alice.conn.Close()
	bob.expect("INFO alice disconnected")
}

// TestStatsEndpoint verifies the counters and roster surface after some
// traffic.
func TestStatsEndpoint(t *testing.T) {
	ts, _ := opsServer(t)

	alice := dialWS(t, ts)
	alice.send("LOGIN alice")
	alice.expect("OK")

	alice.send("MSG counted")
	alice.expect("MSG alice counted")

	res, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatalf("GET /stats failed: %v", err)
	}
	defer res.Body.Close()

	var body struct {
		Code int                `json:"code"`
		Data chat.StatsSnapshot `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decoding /stats body failed: %v", err)
	}

	if body.Data.Connections != 1 || body.Data.Logins != 1 || body.Data.Broadcasts != 1 {
		t.Fatalf("stats = %+v, want 1 connection, 1 login, 1 broadcast", body.Data)
	}
	if len(body.Data.OnlineUsers) != 1 || body.Data.OnlineUsers[0] != "alice" {
		t.Fatalf("online users = %v, want [alice]", body.Data.OnlineUsers)
	}
}
