package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"blog_app/internal/logger"
	"blog_app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	feedMessageType = "feed"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The feed is read-only public data, so any origin may subscribe.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedCursor remembers the listing a subscriber last received.
type feedCursor struct {
	sent     bool
	newestID int
	count    int
}

// advance records page and reports whether it differs from the last one sent.
// A new post changes the newest id; a deletion changes the count.
func (fc *feedCursor) advance(page service.PostPage) bool {
	newest := 0
	if len(page.Posts) > 0 {
		newest = page.Posts[0].ID
	}
	if fc.sent && newest == fc.newestID && page.Page.Count == fc.count {
		return false
	}
	fc.sent, fc.newestID, fc.count = true, newest, page.Page.Count
	return true
}

// feedConn owns one subscriber connection.
type feedConn struct {
	ws  *websocket.Conn
	log *logger.Logger
}

func newFeedConn(ws *websocket.Conn, log *logger.Logger) *feedConn {
	ws.SetReadLimit(maxMsgSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &feedConn{ws: ws, log: log}
}

// drain reads (and discards) client frames so control frames are processed.
// The returned channel closes when the client goes away.
func (f *feedConn) drain() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := f.ws.ReadMessage(); err != nil {
				f.infow("ws_read_closed", "err", err)
				return
			}
		}
	}()
	return done
}

func (f *feedConn) ping() error {
	_ = f.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return f.ws.WriteMessage(websocket.PingMessage, nil)
}

func (f *feedConn) send(env wsEnvelope) error {
	_ = f.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return f.ws.WriteJSON(env)
}

func (f *feedConn) infow(key string, kv ...interface{}) {
	if f.log != nil {
		f.log.Infow(key, kv...)
	}
}

// @Summary      Live feed
// @Description  WebSocket pushing the first page of posts on connect and again whenever it changes.
// @Tags         posts
// @Param        interval     query  string  false  "poll interval, e.g. 2s (max 10s)"
// @Param        interval_ms  query  int     false  "poll interval in ms, e.g. 2000 (max 10000)"
// @Router       /ws/feed [get]
func (h *Handler) wsFeed(c *gin.Context) {
	interval := parseInterval(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = ws.Close() }()

	conn := newFeedConn(ws, h.log)
	done := conn.drain()
	ctx := c.Request.Context()

	var cursor feedCursor
	if err := h.pushFeed(ctx, conn, &cursor); err != nil {
		conn.infow("ws_write_failed_initial", "err", err)
		return
	}

	poll := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		poll.Stop()
		ping.Stop()
	}()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.ping(); err != nil {
				conn.infow("ws_ping_failed", "err", err)
				return
			}
		case <-poll.C:
			if err := h.pushFeed(ctx, conn, &cursor); err != nil {
				conn.infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// pushFeed sends the newest page when it differs from what cursor last saw.
// A listing failure is reported to the client before the connection drops.
func (h *Handler) pushFeed(ctx context.Context, conn *feedConn, cursor *feedCursor) error {
	page, err := h.services.List(ctx, 1)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_posts_failed", "err", err)
		}
		_ = conn.send(wsEnvelope{Type: feedMessageType, Error: errInternal})
		return err
	}
	if !cursor.advance(page) {
		return nil
	}
	return conn.send(wsEnvelope{Type: feedMessageType, Data: page})
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}
