package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 16 // 64 KB, a sweep request with inline climate fits
)

// Envelope types sent on the sweep stream.
const (
	envPoint  = "point"
	envResult = "result"
	envError  = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsWriter serializes writes; gorilla connections allow one concurrent writer.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) send(env wsEnvelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(env)
}

func (w *wsWriter) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.PingMessage, nil)
}

func (w *wsWriter) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// wsSweep reads one SweepRequest, streams every evaluated point as a
// "point" envelope in completion order and finishes with a "result"
// envelope carrying the stored run. Closing the socket cancels the sweep.
func (h *Handler) wsSweep(c *gin.Context) {
	userID := currentUser(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	w := &wsWriter{conn: conn}

	var req service.SweepRequest
	if err := conn.ReadJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("ws_bad_sweep_request", "err", err)
		}
		_ = w.send(wsEnvelope{Type: envError, Error: "invalid sweep request: " + err.Error()})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)
	go h.keepAlive(ctx, w, done, cancel)

	onPoint := func(p models.SweepPoint) {
		if ctx.Err() != nil {
			return
		}
		if err := w.send(wsEnvelope{Type: envPoint, Data: p}); err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err)
			}
			cancel()
		}
	}

	run, err := h.services.Optimizer.Sweep(ctx, userID, req, onPoint)
	if err != nil {
		msg := errSweep
		if service.IsValidation(err) {
			msg = err.Error()
		} else if h.log != nil {
			h.log.Errorw("ws_sweep_failed", "err", err, "user_id", userID, "variable", req.Variable)
		}
		_ = w.send(wsEnvelope{Type: envError, Error: msg})
		return
	}
	if err := w.send(wsEnvelope{Type: envResult, Data: run}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		return
	}
	w.close()
}

// keepAlive pings until ctx ends or the peer goes away, which cancels the sweep.
func (h *Handler) keepAlive(ctx context.Context, w *wsWriter, done <-chan struct{}, cancel context.CancelFunc) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			cancel()
			return
		case <-ping.C:
			if err := w.ping(); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				cancel()
				return
			}
		}
	}
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
