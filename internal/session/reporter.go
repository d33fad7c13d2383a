package session

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/wlactions/internal/counter"
	"github.com/verte-zerg/wlactions/internal/model"
	"github.com/verte-zerg/wlactions/internal/stats"
)

// reporter drives the live status line and the final summary. The running
// flag is the only signal the refresher polls; finish is wrapped in a
// sync.Once so a racing interrupt and a normal return cannot clear the flag
// with side effects twice or print two summaries.
type reporter struct {
	counters *counter.Counters
	start    time.Time
	quiet    bool
	refresh  time.Duration

	out      io.Writer
	terminal bool
	termFd   int
	width    func() int

	running   atomic.Bool
	lastWidth atomic.Int32
	once      sync.Once
	started   bool
	done      chan struct{}
}

func newReporter(counters *counter.Counters, start time.Time, cfg model.Config) *reporter {
	refresh := cfg.Refresh
	if refresh <= 0 {
		refresh = 100 * time.Millisecond
	}
	fd := int(os.Stderr.Fd())
	r := &reporter{
		counters: counters,
		start:    start,
		quiet:    cfg.Quiet,
		refresh:  refresh,
		out:      os.Stderr,
		terminal: term.IsTerminal(fd),
		termFd:   fd,
		done:     make(chan struct{}),
	}
	r.width = r.lineWidth
	r.running.Store(true)
	return r
}

// startRefresher begins the live display unless quiet mode is on.
func (r *reporter) startRefresher() {
	if r.quiet {
		return
	}
	r.started = true
	go r.loop()
}

func (r *reporter) loop() {
	defer close(r.done)
	for r.running.Load() {
		width := r.width()
		line := stats.StatusLine(r.counters.Snapshot(), width)
		// Display width, not byte length: truncation appends a multi-byte
		// ellipsis, and the clear must cover cells, not bytes.
		r.lastWidth.Store(int32(runewidth.StringWidth(line)))
		fmt.Fprintf(r.out, "\r%s", line)
		time.Sleep(r.refresh)
	}
}

func (r *reporter) lineWidth() int {
	if !r.terminal {
		return 0
	}
	w, _, err := term.GetSize(r.termFd)
	if err != nil || w <= 1 {
		return 0
	}
	// Leave the last cell free so the cursor never wraps.
	return w - 1
}

// finish clears the running flag, retires the refresher, and prints the
// summary. Only the first caller has any effect.
func (r *reporter) finish() {
	r.once.Do(func() {
		r.running.Store(false)
		if r.started {
			// Bounded by one poll interval.
			<-r.done
			r.clearLine()
		}
		sum := model.Summary{
			Counts:  r.counters.Snapshot(),
			Elapsed: time.Since(r.start),
		}
		_ = stats.RenderSummary(r.out, sum, r.terminal)
	})
}

// clearLine overwrites the status line so the summary never interleaves
// with stale live output.
func (r *reporter) clearLine() {
	width := int(r.lastWidth.Load())
	if width <= 0 {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", width))
}
