// Package gameclient drives an in-game agent over the game bridge websocket.
// Every movement is a command frame; the bridge answers with a response frame
// carrying the same id once the move has finished or failed.
package gameclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultCommandTimeout = 30 * time.Second

const (
	actionTravelToCity = "travel_to_city"
	actionWalkToCoords = "walk_to_coords"
)

var (
	ErrNotConnected    = errors.New("not connected to game")
	ErrCommandTimeout  = errors.New("timeout waiting for game response")
	ErrCommandRejected = errors.New("game rejected command")
)

type CommandError struct {
	Action  string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCommandRejected.Error(), e.Action, e.Message)
}

func (e *CommandError) Unwrap() error {
	return ErrCommandRejected
}

type message struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Action string         `json:"action,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

type response struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Options struct {
	CommandTimeout time.Duration
	Logger         *slog.Logger
}

type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	timeout time.Duration
	logger  *slog.Logger

	responsesMu sync.Mutex
	responses   map[string]chan response
	closed      bool
	done        chan struct{}
}

func Dial(ctx context.Context, url string, opts Options) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to game %s: %w", url, err)
	}
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		conn:      conn,
		timeout:   timeout,
		logger:    logger.With("component", "gameclient"),
		responses: make(map[string]chan response),
		done:      make(chan struct{}),
	}
	go c.listen()
	return c, nil
}

func (c *Client) TravelToCity(ctx context.Context, agentID, city string) error {
	return c.send(ctx, actionTravelToCity, map[string]any{
		"agent_id": agentID,
		"city":     city,
	})
}

func (c *Client) WalkToCoords(ctx context.Context, agentID string, x, y int) error {
	return c.send(ctx, actionWalkToCoords, map[string]any{
		"agent_id": agentID,
		"x":        x,
		"y":        y,
	})
}

func (c *Client) Close() error {
	c.shutdown()
	return c.conn.Close()
}

func (c *Client) send(ctx context.Context, action string, params map[string]any) error {
	id := uuid.NewString()
	ch := make(chan response, 1)

	c.responsesMu.Lock()
	if c.closed {
		c.responsesMu.Unlock()
		return ErrNotConnected
	}
	c.responses[id] = ch
	c.responsesMu.Unlock()

	data, err := json.Marshal(message{ID: id, Type: "command", Action: action, Params: params})
	if err != nil {
		c.forget(id)
		return err
	}

	c.writeMu.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		c.forget(id)
		return fmt.Errorf("send %s: %w", action, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case resp := <-ch:
		if !resp.Success {
			return &CommandError{Action: action, Message: resp.Message}
		}
		return nil
	case <-c.done:
		c.forget(id)
		return ErrNotConnected
	case <-timer.C:
		c.forget(id)
		return fmt.Errorf("%s: %w", action, ErrCommandTimeout)
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	}
}

func (c *Client) forget(id string) {
	c.responsesMu.Lock()
	delete(c.responses, id)
	c.responsesMu.Unlock()
}

func (c *Client) listen() {
	defer c.shutdown()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.logger.Warn("game connection closed", "error", err)
			return
		}
		var resp response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.logger.Warn("unparseable game frame", "error", err)
			continue
		}
		switch resp.Type {
		case "response":
			c.dispatch(resp)
		case "error":
			c.logger.Error("game error", "message", resp.Message)
		}
	}
}

func (c *Client) dispatch(resp response) {
	if resp.ID == "" {
		return
	}
	c.responsesMu.Lock()
	ch, ok := c.responses[resp.ID]
	if ok {
		delete(c.responses, resp.ID)
	}
	c.responsesMu.Unlock()
	if ok {
		ch <- resp
	}
}

func (c *Client) shutdown() {
	c.responsesMu.Lock()
	defer c.responsesMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
