// Package wayland implements a transparent Wayland socket proxy. It listens
// on its own socket, dials the real compositor for every client connection,
// and shuttles bytes and ancillary file descriptors through unchanged. A
// passive parser rides along on both directions so input events can be
// observed without ever sitting between the client and the compositor:
// forwarding happens first and never waits on observation.
package wayland

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

const (
	readBufferSize = 32 * 1024
	oobBufferSize  = 1024
)

// Server is the proxy endpoint handed to the child process.
type Server struct {
	observer   SeatObserver
	listener   *net.UnixListener
	socketPath string
	upstream   string

	closed atomic.Bool
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	runErr error
}

// NewServer creates the listening socket under XDG_RUNTIME_DIR and resolves
// the upstream compositor socket from WAYLAND_DISPLAY. The observer mints a
// fresh handler for every input-device object any client creates.
func NewServer(observer SeatObserver) (*Server, error) {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return nil, fmt.Errorf("XDG_RUNTIME_DIR is not set")
	}
	upstream := os.Getenv("WAYLAND_DISPLAY")
	if upstream == "" {
		upstream = "wayland-0"
	}
	if !filepath.IsAbs(upstream) {
		upstream = filepath.Join(runtimeDir, upstream)
	}

	socketPath := filepath.Join(runtimeDir, fmt.Sprintf("wlactions-%d-0", os.Getpid()))
	listener, err := net.ListenUnix("unix", &net.UnixAddr{Name: socketPath, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", socketPath, err)
	}

	return &Server{
		observer:   observer,
		listener:   listener,
		socketPath: socketPath,
		upstream:   upstream,
		conns:      make(map[net.Conn]struct{}),
	}, nil
}

// Display returns the value to place in the child's WAYLAND_DISPLAY.
// libwayland accepts an absolute socket path there.
func (s *Server) Display() string {
	return s.socketPath
}

// Run accepts client connections and proxies each one until Close is called
// or the listener fails. It returns nil after a clean Close, otherwise the
// first fatal proxy error.
func (s *Server) Run() error {
	var wg sync.WaitGroup
	for {
		client, err := s.listener.AcceptUnix()
		if err != nil {
			wasClosed := s.closed.Load()
			_ = s.Close()
			wg.Wait()
			if wasClosed {
				return s.firstErr()
			}
			return fmt.Errorf("failed to accept client: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serve(client)
		}()
	}
}

// Close stops the listener, tears down live connections, and removes the
// socket. Safe to call more than once.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.listener.Close()
	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	_ = os.Remove(s.socketPath)
	return err
}

// fail records the first fatal error and shuts the proxy down.
func (s *Server) fail(err error) {
	s.mu.Lock()
	if s.runErr == nil {
		s.runErr = err
	}
	s.mu.Unlock()
	_ = s.Close()
}

func (s *Server) firstErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *Server) serve(client *net.UnixConn) {
	defer func() {
		_ = client.Close()
	}()

	upstream, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: s.upstream, Net: "unix"})
	if err != nil {
		s.fail(fmt.Errorf("failed to dial compositor at %s: %w", s.upstream, err))
		return
	}
	defer func() {
		_ = upstream.Close()
	}()

	if !s.track(client) || !s.track(upstream) {
		return
	}
	defer s.untrack(client)
	defer s.untrack(upstream)

	obs := newStreamObserver(s.observer)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		shuttle(client, upstream, obs.observeClient)
		// Either side going away ends the session.
		_ = upstream.Close()
		_ = client.Close()
	}()
	shuttle(upstream, client, obs.observeServer)
	_ = upstream.Close()
	_ = client.Close()
	wg.Wait()
}

// shuttle copies one direction of a connection, forwarding data and ancillary
// fds exactly as received, then hands the data bytes to the observer. A
// client disconnecting mid-stream is normal teardown, so errors end the loop
// without escalating.
func shuttle(src, dst *net.UnixConn, observe func([]byte)) {
	buf := make([]byte, readBufferSize)
	oob := make([]byte, oobBufferSize)
	for {
		n, oobn, _, _, err := src.ReadMsgUnix(buf, oob)
		if n > 0 || oobn > 0 {
			if werr := forward(dst, buf[:n], oob[:oobn]); werr != nil {
				return
			}
			if n > 0 {
				observe(buf[:n])
			}
		}
		if err != nil {
			return
		}
	}
}

// forward writes one received chunk in full. WriteMsgUnix does not loop on
// partial writes the way Write does, so a congested send buffer would
// otherwise drop the tail of the chunk and corrupt the stream. The ancillary
// fds ride on the first write; the remainder goes out as plain data.
func forward(dst *net.UnixConn, data, oob []byte) error {
	sent, _, err := dst.WriteMsgUnix(data, oob, nil)
	if err != nil {
		return err
	}
	for sent < len(data) {
		n, err := dst.Write(data[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}
