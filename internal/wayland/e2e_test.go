package wayland_test

import (
	"encoding/binary"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wlactions/internal/counter"
	"github.com/verte-zerg/wlactions/internal/model"
	"github.com/verte-zerg/wlactions/internal/track"
	"github.com/verte-zerg/wlactions/internal/wayland"
)

// wireMsg builds a message from 32-bit argument words.
func wireMsg(object uint32, opcode uint16, words ...uint32) []byte {
	size := 8 + 4*len(words)
	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, object)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size)<<16|uint32(opcode))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return buf
}

// wireString encodes a wire string (length, bytes, NUL, padding) as words.
func wireString(s string) []uint32 {
	raw := append([]byte(s), 0)
	padded := (len(raw) + 3) &^ 3
	raw = append(raw, make([]byte, padded-len(raw))...)
	words := make([]uint32, 0, 1+len(raw)/4)
	words = append(words, uint32(len(s)+1))
	for i := 0; i < len(raw); i += 4 {
		words = append(words, binary.LittleEndian.Uint32(raw[i:]))
	}
	return words
}

func drain(t *testing.T, conn *net.UnixConn, n int) {
	t.Helper()
	buf := make([]byte, n)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	total := 0
	for total < n {
		m, err := conn.Read(buf[total:])
		if err != nil {
			t.Fatalf("drain forwarded bytes: %v", err)
		}
		total += m
	}
}

// Drives the full pipeline: a synthetic client and compositor exchange real
// wire bytes through the proxy, and the tracking seat turns the observed
// events into counter updates.
func TestProxyCountsActionsThroughTrackingSeat(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	t.Setenv("WAYLAND_DISPLAY", "upstream-0")

	upstreamPath := filepath.Join(dir, "upstream-0")
	compositorLn, err := net.ListenUnix("unix", &net.UnixAddr{Name: upstreamPath, Net: "unix"})
	if err != nil {
		t.Fatalf("listen compositor: %v", err)
	}
	defer compositorLn.Close()

	counters := counter.New()
	seat := track.NewSeat(counters, track.DefaultDebounce)
	srv, err := wayland.NewServer(seat)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	runDone := make(chan error, 1)
	go func() { runDone <- srv.Run() }()

	client, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: srv.Display(), Net: "unix"})
	if err != nil {
		t.Fatalf("dial proxy: %v", err)
	}
	defer client.Close()

	compositor, err := compositorLn.AcceptUnix()
	if err != nil {
		t.Fatalf("accept at compositor: %v", err)
	}
	defer compositor.Close()

	// Client side: registry 2, seat 3, then keyboard 4, pointer 5, touch 6.
	var requests []byte
	requests = append(requests, wireMsg(1, 1, 2)...)
	bind := []uint32{1}
	bind = append(bind, wireString("wl_seat")...)
	bind = append(bind, 7, 3)
	requests = append(requests, wireMsg(2, 0, bind...)...)
	requests = append(requests, wireMsg(3, 1, 4)...)
	requests = append(requests, wireMsg(3, 0, 5)...)
	requests = append(requests, wireMsg(3, 2, 6)...)
	if _, err := client.Write(requests); err != nil {
		t.Fatalf("write requests: %v", err)
	}
	drain(t, compositor, len(requests))

	// Compositor side: a held key repeated before release counts once, one
	// full click, three discrete steps, five 24-unit chunks carrying into
	// one step, and one continuous axis event admitted by the debouncer.
	var events []byte
	events = append(events, wireMsg(4, 3, 1, 100, 30, uint32(wayland.KeyPressed))...)
	events = append(events, wireMsg(4, 3, 2, 110, 30, uint32(wayland.KeyPressed))...)
	events = append(events, wireMsg(4, 3, 3, 120, 30, uint32(wayland.KeyReleased))...)
	events = append(events, wireMsg(5, 3, 4, 130, 0x110, uint32(wayland.ButtonPressed))...)
	events = append(events, wireMsg(5, 3, 5, 140, 0x110, uint32(wayland.ButtonReleased))...)
	events = append(events, wireMsg(5, 8, uint32(wayland.AxisVertical), uint32(0x100000000-3))...)
	for i := 0; i < 5; i++ {
		events = append(events, wireMsg(5, 9, uint32(wayland.AxisVertical), 24)...)
	}
	events = append(events, wireMsg(5, 4, 150, uint32(wayland.AxisVertical), uint32(10<<8))...)
	events = append(events, wireMsg(6, 0, 6, 160, 9, 0, 5<<8, 5<<8)...)
	if _, err := compositor.Write(events); err != nil {
		t.Fatalf("write events: %v", err)
	}
	drain(t, client, len(events))

	want := model.Snapshot{KeyPresses: 1, ButtonClicks: 1, ScrollSteps: 5, TouchTaps: 1}
	deadline := time.Now().Add(2 * time.Second)
	for {
		if counters.Snapshot() == want {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("counters never settled: got %+v, want %+v", counters.Snapshot(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("close server: %v", err)
	}
	select {
	case err := <-runDone:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not return after close")
	}
}
