package spectate

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/brickbreaker/internal/loop/config"
	"github.com/tomz197/brickbreaker/internal/loop/server"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	readLimit    = 1 << 10 // Viewers never send payloads
)

// Source provides the shared server view. Satisfied by server.GameServer.
type Source interface {
	GetSnapshot() *server.ServerSnapshot
}

// Conn is one viewer connection.
type Conn interface {
	Send([]byte) error
	Close() error
}

type join struct {
	conn  Conn
	reply chan<- int
}

type leave struct {
	id int
}

// Hub owns the viewer set and broadcasts on its own goroutine.
// Commands reach it through inbox so the viewer map needs no lock.
type Hub struct {
	source   Source
	logger   *log.Logger
	inbox    chan any
	done     chan struct{} // Closed when Run returns
	clients  map[int]Conn
	nextID   int
	lastTick uint64
	wasIdle  bool
	upgrader websocket.Upgrader
}

// NewHub creates a hub reading frames from src.
func NewHub(src Source, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		source:  src,
		logger:  logger,
		inbox:   make(chan any, 64),
		done:    make(chan struct{}),
		clients: make(map[int]Conn),
		nextID:  1,
		wasIdle: true,
		upgrader: websocket.Upgrader{
			// Viewers are read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run broadcasts at SpectateBroadcastHz until ctx is cancelled, then closes every viewer.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / config.SpectateBroadcastHz)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for id, c := range h.clients {
				_ = c.Close()
				delete(h.clients, id)
			}
			return
		case cmd := <-h.inbox:
			h.handle(cmd)
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// send delivers cmd to the hub goroutine. Returns false once the hub stopped.
func (h *Hub) send(cmd any) bool {
	select {
	case h.inbox <- cmd:
		return true
	case <-h.done:
		return false
	}
}

// Viewers returns the number of connected viewers. Only safe on the hub goroutine or in tests.
func (h *Hub) Viewers() int { return len(h.clients) }

func (h *Hub) handle(cmd any) {
	switch c := cmd.(type) {
	case join:
		id := h.nextID
		h.nextID++
		h.clients[id] = c.conn
		h.logger.Debug("viewer joined", "viewer", id, "viewers", len(h.clients))
		if c.reply != nil {
			c.reply <- id
		}
		// Newcomers get the current picture without waiting for a change.
		h.sendCurrent(id, c.conn)
	case leave:
		if conn, ok := h.clients[c.id]; ok {
			_ = conn.Close()
			delete(h.clients, c.id)
			h.logger.Debug("viewer left", "viewer", c.id, "viewers", len(h.clients))
		}
	}
}

// message encodes the current leader frame, or an idle summary.
func (h *Hub) message() (msg []byte, tick uint64, idle bool, err error) {
	ss := h.source.GetSnapshot()
	if f, ok := BuildFrame(ss); ok {
		msg, err = Encode(MsgState, f)
		return msg, f.Tick, false, err
	}
	msg, err = Encode(MsgIdle, BuildIdle(ss))
	return msg, 0, true, err
}

func (h *Hub) sendCurrent(id int, c Conn) {
	msg, _, _, err := h.message()
	if err != nil {
		h.logger.Error("encode frame", "err", err)
		return
	}
	if err := c.Send(msg); err != nil {
		h.logger.Debug("viewer send failed", "viewer", id, "err", err)
		h.handle(leave{id: id})
	}
}

// broadcast sends a frame when the leader advanced, and an idle message
// once when play stops.
func (h *Hub) broadcast() {
	if len(h.clients) == 0 {
		return
	}
	msg, tick, idle, err := h.message()
	if err != nil {
		h.logger.Error("encode frame", "err", err)
		return
	}
	if idle && h.wasIdle {
		return
	}
	if !idle && tick == h.lastTick && !h.wasIdle {
		return
	}
	h.wasIdle = idle
	h.lastTick = tick

	var failed []int
	for id, c := range h.clients {
		if err := c.Send(msg); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		h.handle(leave{id: id})
	}
}

// ServeHTTP upgrades the request and keeps the viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn := &wsConn{ws: ws}

	welcome, err := Encode(MsgWelcome, Welcome{
		BroadcastHz: config.SpectateBroadcastHz,
		ArenaW:      config.ArenaWidth,
		ArenaH:      config.ArenaHeight,
	})
	if err == nil {
		err = conn.Send(welcome)
	}
	if err != nil {
		_ = ws.Close()
		return
	}

	reply := make(chan int, 1)
	if !h.send(join{conn: conn, reply: reply}) {
		_ = ws.Close()
		return
	}
	var id int
	select {
	case id = <-reply:
	case <-h.done:
		_ = ws.Close()
		return
	}
	defer h.send(leave{id: id})

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go conn.pingLoop(done)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

func (c *wsConn) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
