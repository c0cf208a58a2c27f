package gameclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type fakeGame struct {
	mu       sync.Mutex
	received []message
	silent   bool
}

func (g *fakeGame) commands() []message {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]message(nil), g.received...)
}

func (g *fakeGame) handler(t *testing.T) http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Errorf("decode command: %v", err)
				return
			}
			g.mu.Lock()
			g.received = append(g.received, msg)
			g.mu.Unlock()
			if g.silent {
				continue
			}
			resp := response{ID: msg.ID, Type: "response", Success: true}
			if msg.Params["city"] == "nowhere" {
				resp.Success = false
				resp.Message = "no such city"
			}
			out, _ := json.Marshal(resp)
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}
}

func dialFake(t *testing.T, g *fakeGame, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(g.handler(t))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(context.Background(), url, Options{CommandTimeout: timeout})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SendsMovementCommandsInOrder(t *testing.T) {
	g := &fakeGame{}
	c := dialFake(t, g, time.Second)

	if err := c.TravelToCity(context.Background(), "agent-1", "coronet"); err != nil {
		t.Fatalf("travel: %v", err)
	}
	if err := c.WalkToCoords(context.Background(), "agent-1", -66, -4696); err != nil {
		t.Fatalf("walk: %v", err)
	}

	got := g.commands()
	if len(got) != 2 {
		t.Fatalf("expected 2 commands, got=%d", len(got))
	}
	if got[0].Action != actionTravelToCity || got[0].Params["city"] != "coronet" || got[0].Params["agent_id"] != "agent-1" {
		t.Fatalf("unexpected travel command: %+v", got[0])
	}
	// json numbers decode as float64
	if got[1].Action != actionWalkToCoords || got[1].Params["x"] != float64(-66) || got[1].Params["y"] != float64(-4696) {
		t.Fatalf("unexpected walk command: %+v", got[1])
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("expected distinct command ids: %q %q", got[0].ID, got[1].ID)
	}
}

func TestClient_RejectedCommandIsCommandError(t *testing.T) {
	c := dialFake(t, &fakeGame{}, time.Second)

	err := c.TravelToCity(context.Background(), "agent-1", "nowhere")
	if !errors.Is(err, ErrCommandRejected) {
		t.Fatalf("expected ErrCommandRejected, got=%v", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Message != "no such city" || cmdErr.Action != actionTravelToCity {
		t.Fatalf("unexpected command error: %+v", cmdErr)
	}
}

func TestClient_TimesOutWithoutResponse(t *testing.T) {
	c := dialFake(t, &fakeGame{silent: true}, 50*time.Millisecond)

	err := c.WalkToCoords(context.Background(), "agent-1", 1, 2)
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected timeout, got=%v", err)
	}
	c.responsesMu.Lock()
	pending := len(c.responses)
	c.responsesMu.Unlock()
	if pending != 0 {
		t.Fatalf("expected pending command to be forgotten, got=%d", pending)
	}
}

func TestClient_ContextCancelStopsWaiting(t *testing.T) {
	c := dialFake(t, &fakeGame{silent: true}, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := c.TravelToCity(ctx, "agent-1", "theed")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline, got=%v", err)
	}
}

func TestClient_ClosedClientRejectsCommands(t *testing.T) {
	c := dialFake(t, &fakeGame{}, time.Second)
	_ = c.Close()

	if err := c.TravelToCity(context.Background(), "agent-1", "theed"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got=%v", err)
	}
}
