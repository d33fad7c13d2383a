package wayland

import "encoding/binary"

// Wire format: every message is an 8-byte header followed by a payload.
// The header is two native-endian 32-bit words: the target object id, then
// size<<16|opcode where size includes the header. Strings and arrays in the
// payload carry a 32-bit length and are padded to a 32-bit boundary.
//
// libwayland writes host byte order; this proxy assumes little-endian, which
// covers every platform Go ships a Wayland desktop on.

const headerSize = 8

// message is one framed protocol message. Payload aliases the decoder's
// buffer and is only valid until the next call to next.
type message struct {
	object  uint32
	opcode  uint16
	payload []byte
}

// decoder incrementally reassembles messages from an arbitrary byte stream.
// A malformed header poisons the decoder: resynchronising a byte stream with
// no message delimiters is not possible, so parsing stops while forwarding
// continues untouched.
type decoder struct {
	buf  []byte
	dead bool
}

// feed appends raw stream bytes for framing.
func (d *decoder) feed(p []byte) {
	if d.dead {
		return
	}
	d.buf = append(d.buf, p...)
}

// next returns the next complete message, if any.
func (d *decoder) next() (message, bool) {
	if d.dead || len(d.buf) < headerSize {
		return message{}, false
	}
	object := binary.LittleEndian.Uint32(d.buf[0:4])
	word := binary.LittleEndian.Uint32(d.buf[4:8])
	size := int(word >> 16)
	opcode := uint16(word & 0xffff)
	if size < headerSize {
		d.dead = true
		d.buf = nil
		return message{}, false
	}
	if len(d.buf) < size {
		return message{}, false
	}
	msg := message{
		object:  object,
		opcode:  opcode,
		payload: d.buf[headerSize:size],
	}
	d.buf = d.buf[size:]
	return msg, true
}

// args reads typed values out of a message payload. Reads past the end set
// the bad flag instead of panicking; ok reports whether every read fit.
type args struct {
	data []byte
	off  int
	bad  bool
}

func (a *args) uint32() uint32 {
	if a.bad || a.off+4 > len(a.data) {
		a.bad = true
		return 0
	}
	v := binary.LittleEndian.Uint32(a.data[a.off:])
	a.off += 4
	return v
}

func (a *args) int32() int32 {
	return int32(a.uint32())
}

func (a *args) fixed() Fixed {
	return Fixed(a.uint32())
}

// string reads a length-prefixed, NUL-terminated, 32-bit padded string.
func (a *args) string() string {
	n := int(a.uint32())
	if a.bad || n == 0 {
		a.bad = true
		return ""
	}
	padded := (n + 3) &^ 3
	if a.off+padded > len(a.data) {
		a.bad = true
		return ""
	}
	s := string(a.data[a.off : a.off+n-1])
	a.off += padded
	return s
}

func (a *args) ok() bool {
	return !a.bad
}

// Fixed is the protocol's signed 24.8 fixed-point number.
type Fixed int32

// Float converts to float64.
func (f Fixed) Float() float64 {
	return float64(f) / 256.0
}
