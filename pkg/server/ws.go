package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/reveal"
)

// Heartbeat settings for reveal streams.
const (
	PingInterval = 10 * time.Second
	PongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// Reveal stream event types.
const (
	EventStart     = "start"
	EventReveal    = "reveal"
	EventDone      = "done"
	EventStopped   = "stopped"
	EventCancelled = "cancelled"
	EventError     = "error"
)

// Client actions accepted on a reveal stream.
const (
	ActionCancel  = "cancel"
	ActionStop    = "stop"
	ActionRestart = "restart"
)

// RevealEvent is one server-to-client message.
type RevealEvent struct {
	Type     string `json:"type"`
	Count    int    `json:"count,omitempty"`
	Index    int    `json:"index,omitempty"`
	X        int    `json:"x,omitempty"`
	Y        int    `json:"y,omitempty"`
	Revealed int    `json:"revealed,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RevealAction is one client-to-server message.
type RevealAction struct {
	Action string `json:"action"`
}

// revealSession streams one animator's events to one websocket.
type revealSession struct {
	conn   *websocket.Conn
	anim   *reveal.Animator
	cells  []maze.Cell
	speed  float64
	send   chan RevealEvent
	done   chan struct{}
	closer sync.Once
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := renderOptions(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	m, err := pipeline.Fit(snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := &revealSession{
		conn:  conn,
		anim:  reveal.NewAnimator(s.reveal...),
		cells: snap.Cells(),
		speed: reveal.SpeedFactor(m.CellSize),
		send:  make(chan RevealEvent, 256),
		done:  make(chan struct{}),
	}
	s.logger.Debug("reveal stream opened", "id", chi.URLParam(r, "id"), "cell_size", m.CellSize)

	go sess.writePump()
	sess.start()
	sess.readPump(s)
}

// start (re)schedules the reveal. Each run counts its own events so a
// superseded run cannot emit done.
func (c *revealSession) start() {
	var fired atomic.Int64
	var total int64
	ready := make(chan struct{})
	cb := reveal.Callbacks{
		OnReveal: func(p maze.Coordinates) {
			<-ready
			i := fired.Add(1)
			c.emit(RevealEvent{Type: EventReveal, Index: int(i - 1), X: p.X, Y: p.Y})
			if i == total {
				c.emit(RevealEvent{Type: EventDone, Revealed: int(i)})
			}
		},
	}
	n := c.anim.Start(c.cells, c.speed, cb)
	total = int64(n)
	c.emit(RevealEvent{Type: EventStart, Count: n})
	close(ready)
	if n == 0 {
		c.emit(RevealEvent{Type: EventDone})
	}
}

func (c *revealSession) emit(ev RevealEvent) {
	select {
	case c.send <- ev:
	case <-c.done:
	}
}

func (c *revealSession) close() {
	c.closer.Do(func() {
		c.anim.Cancel()
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *revealSession) readPump(s *Server) {
	defer c.close()

	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		var msg RevealAction
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("reveal stream closed", "error", err)
			}
			return
		}
		switch msg.Action {
		case ActionCancel:
			c.anim.Cancel()
			c.emit(RevealEvent{Type: EventCancelled})
		case ActionStop:
			n := c.anim.Stop()
			c.emit(RevealEvent{Type: EventStopped, Revealed: n})
		case ActionRestart:
			c.start()
		default:
			c.emit(RevealEvent{Type: EventError, Error: "unknown action " + msg.Action})
		}
	}
}

func (c *revealSession) writePump() {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case ev := <-c.send:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
