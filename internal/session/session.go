// Package session owns the counting run: it wires the proxy to the tracking
// state, launches the child, and guarantees exactly one summary on every
// termination path.
package session

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/verte-zerg/wlactions/internal/counter"
	"github.com/verte-zerg/wlactions/internal/model"
	"github.com/verte-zerg/wlactions/internal/track"
	"github.com/verte-zerg/wlactions/internal/wayland"
)

// The three fatal failure kinds. Everything else the run observes (spurious
// releases, out-of-order scroll deliveries, clients disconnecting) is
// absorbed as a no-op.
var (
	ErrCreateServer = errors.New("could not create proxy server")
	ErrSpawnChild   = errors.New("could not spawn child")
	ErrServerRun    = errors.New("the proxy server terminated")
)

// Run launches program under the proxy and counts its input actions until
// the child exits, the proxy fails, or an interrupt arrives. The interrupt
// path prints the summary and terminates the process with exit code 0; the
// other paths print the same summary once and return any underlying error.
func Run(cfg model.Config, program []string) error {
	counters := counter.New()
	seat := track.NewSeat(counters, cfg.Debounce)
	start := time.Now()

	srv, err := wayland.NewServer(seat)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateServer, err)
	}

	cmd := exec.Command(program[0], program[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "WAYLAND_DISPLAY="+srv.Display())
	if err := cmd.Start(); err != nil {
		_ = srv.Close()
		return fmt.Errorf("%w: %w", ErrSpawnChild, err)
	}

	rep := newReporter(counters, start, cfg)
	rep.startRefresher()

	// Interrupting the run is a success outcome: report and leave.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		rep.finish()
		os.Exit(0)
	}()

	// The child exiting ends the blocking dispatch below.
	go func() {
		_ = cmd.Wait()
		_ = srv.Close()
	}()

	runErr := srv.Run()
	signal.Stop(sigCh)
	rep.finish()
	if runErr != nil {
		return fmt.Errorf("%w: %w", ErrServerRun, runErr)
	}
	return nil
}
