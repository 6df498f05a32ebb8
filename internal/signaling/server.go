package signaling

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lanikai/fakertc"
	"github.com/lanikai/fakertc/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server is a signaling Client that also acts as the signaling server: remote
// peers connect to it directly over a websocket at /ws, and each one is
// answered by its own simulated PeerConnection.
type Server struct {
	config Config
	opts   []fakertc.Option

	server   *http.Server
	upgrader websocket.Upgrader
	log      *logging.Logger

	// Canceled on shutdown, which closes every session.
	ctx    context.Context
	cancel context.CancelFunc

	// Guards closing and additions to wg, so no session starts once
	// Shutdown is waiting.
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// NewServer creates a server for the given configuration. opts are passed to
// every PeerConnection it creates.
func NewServer(config Config, opts ...fakertc.Option) *Server {
	if config.Port == 0 {
		config.Port = DefaultPort
	}

	router := http.NewServeMux()
	s := &Server{
		config: config,
		opts:   opts,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", config.Port),
			Handler: router,
		},
		upgrader: websocket.Upgrader{
			// Browsers may open the harness from any page.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: logging.DefaultLogger.WithTag("signaling"),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	router.HandleFunc("/ws", s.handleWebsocket)
	return s
}

// Handler returns the server's HTTP handler, for mounting elsewhere.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Listen serves on the configured port until Shutdown is called.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("Connect a websocket to ws://%s/ws", advertisedHost(ln.Addr()))
	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// Shutdown stops accepting connections, closes every open session, and waits
// for them to finish.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	s.cancel()
	err := s.server.Shutdown(ctx)
	s.wg.Wait()
	return errors.Wrap(err, "shutdown")
}

// addSession registers a session with Shutdown, or reports false if the
// server is shutting down.
func (s *Server) addSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	if !s.addSession() {
		http.Error(w, "server is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	// Upgrade websocket connection
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade: %v", err)
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Hijacked connections are not closed by http.Server.Shutdown.
	stop := context.AfterFunc(ctx, func() { ws.Close() })
	defer stop()

	s.log.Info("Session opened from %s", r.RemoteAddr)
	session := newSession(ctx, ws, s.config.RTC, s.opts...)
	err = session.serve()
	if websocket.IsCloseError(errors.Cause(err), websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
		s.log.Info("Session from %s closed", r.RemoteAddr)
	} else {
		s.log.Warn("Session from %s failed: %v", r.RemoteAddr, err)
	}
}

// advertisedHost returns host:port with the machine's mDNS name in place of an
// unspecified listen address.
func advertisedHost(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		if name, err := os.Hostname(); err == nil {
			host = name
			if !strings.Contains(host, ".") {
				host += ".local"
			}
		} else {
			host = "localhost"
		}
	}
	return net.JoinHostPort(host, port)
}
