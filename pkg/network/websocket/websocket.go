package websocket

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cocode-dev/cocode/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	DefaultMaxMessageSize = 1 << 20
	DefaultSendQueue      = 256
	DefaultPingInterval   = 54 * time.Second
	writeWait             = 10 * time.Second
)

type Options struct {
	MaxMessageSize int64
	SendQueue      int
	PingInterval   time.Duration
}

func (o *Options) withDefaults() {
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = DefaultMaxMessageSize
	}
	if o.SendQueue <= 0 {
		o.SendQueue = DefaultSendQueue
	}
	if o.PingInterval <= 0 {
		o.PingInterval = DefaultPingInterval
	}
}

type WS struct {
	conn deadlinedConn
	send chan []byte
	opts Options
	log  *logger.Logger

	OnMessage WSMessageHandler

	closeOnce sync.Once
	closing   chan struct{}
	shutdown  sync.WaitGroup
	Done      chan struct{}
}

type WSMessageHandler func(message []byte, err error)

type Upgrader struct {
	websocket.Upgrader
}

var DefaultUpgrader = Upgrader{
	Upgrader: websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		WriteBufferPool: &sync.Pool{},
		CheckOrigin:     func(*http.Request) bool { return true },
	},
}

// NewUpgrader makes an upgrader which accepts only the listed origins.
// An empty list or "*" accepts everything.
func NewUpgrader(origins ...string) *Upgrader {
	u := DefaultUpgrader
	u.CheckOrigin = checkOrigin(origins)
	return &u
}

func checkOrigin(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			allowed[strings.ToLower(o)] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}

// NewServer upgrades the HTTP request to a websocket connection.
func (u *Upgrader) NewServer(w http.ResponseWriter, r *http.Request, opts Options, log *logger.Logger) (*WS, error) {
	conn, err := u.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return NewServerWithConn(conn, opts, log), nil
}

func NewServerWithConn(conn *websocket.Conn, opts Options, log *logger.Logger) *WS {
	opts.withDefaults()
	if log == nil {
		log = logger.Default()
	}
	return &WS{
		conn:      deadlinedConn{sock: conn, wt: writeWait},
		send:      make(chan []byte, opts.SendQueue),
		opts:      opts,
		log:       log,
		OnMessage: func([]byte, error) {},
		closing:   make(chan struct{}),
		Done:      make(chan struct{}),
	}
}

func (ws *WS) SetMessageHandler(fn WSMessageHandler) { ws.OnMessage = fn }

// Listen starts the read and write pumps.
// The returned channel is closed when the connection is gone.
func (ws *WS) Listen() chan struct{} {
	ws.shutdown.Add(2)
	go ws.writer()
	go ws.reader()
	go func() {
		ws.shutdown.Wait()
		_ = ws.conn.close()
		close(ws.Done)
	}()
	return ws.Done
}

// reader pumps messages from the websocket connection to the OnMessage callback.
// Serializes all websocket reads.
func (ws *WS) reader() {
	defer func() {
		ws.Close()
		ws.shutdown.Done()
	}()
	ws.conn.setup(func(conn *websocket.Conn) {
		conn.SetReadLimit(ws.opts.MaxMessageSize)
		pongWait := ws.opts.PingInterval * 10 / 9
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })
	})
	for {
		message, err := ws.conn.read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.log.Warn().Err(err).Msg("ws read")
			}
			return
		}
		ws.OnMessage(message, nil)
	}
}

// writer pumps messages from the send queue to the websocket connection.
// Serializes all websocket writes.
func (ws *WS) writer() {
	ticker := time.NewTicker(ws.opts.PingInterval)
	defer func() {
		ticker.Stop()
		ws.shutdown.Done()
	}()
	for {
		select {
		case message := <-ws.send:
			if err := ws.conn.write(websocket.TextMessage, message); err != nil {
				ws.log.Debug().Err(err).Msg("ws write")
				ws.Close()
				return
			}
		case <-ticker.C:
			if err := ws.conn.write(websocket.PingMessage, nil); err != nil {
				ws.Close()
				return
			}
		case <-ws.closing:
			_ = ws.conn.write(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			// unblocks the reader
			_ = ws.conn.close()
			return
		}
	}
}

// Write puts the message into the send queue without blocking.
// When the queue is full the peer is too slow and the connection is closed.
func (ws *WS) Write(data []byte) bool {
	select {
	case <-ws.closing:
		return false
	default:
	}
	select {
	case ws.send <- data:
		return true
	default:
		ws.log.Warn().Int("queue", cap(ws.send)).Msg("ws send queue overflow, closing")
		ws.Close()
		return false
	}
}

// Close stops the connection, safe to call many times.
func (ws *WS) Close() { ws.closeOnce.Do(func() { close(ws.closing) }) }
