package wayland

import "sync"

type objectKind int

const (
	kindUnknown objectKind = iota
	kindRegistry
	kindSeat
	kindKeyboard
	kindPointer
	kindTouch
)

// streamObserver follows one client connection. It learns object ids from the
// client's requests (get_registry, bind, get_keyboard/pointer/touch) and uses
// them to decode the input events the compositor sends back. Both directions
// run on their own goroutine, so the table takes a lock; everything inside it
// is O(1) map work.
type streamObserver struct {
	seat SeatObserver

	mu        sync.Mutex
	kinds     map[uint32]objectKind
	keyboards map[uint32]KeyboardHandler
	pointers  map[uint32]PointerHandler
	touches   map[uint32]TouchHandler

	client decoder
	server decoder
}

func newStreamObserver(seat SeatObserver) *streamObserver {
	return &streamObserver{
		seat:      seat,
		kinds:     make(map[uint32]objectKind),
		keyboards: make(map[uint32]KeyboardHandler),
		pointers:  make(map[uint32]PointerHandler),
		touches:   make(map[uint32]TouchHandler),
	}
}

// observeClient parses request traffic (client to compositor).
func (o *streamObserver) observeClient(data []byte) {
	o.client.feed(data)
	for {
		msg, ok := o.client.next()
		if !ok {
			return
		}
		o.handleRequest(msg)
	}
}

// observeServer parses event traffic (compositor to client).
func (o *streamObserver) observeServer(data []byte) {
	o.server.feed(data)
	for {
		msg, ok := o.server.next()
		if !ok {
			return
		}
		o.handleEvent(msg)
	}
}

func (o *streamObserver) handleRequest(msg message) {
	if msg.object == displayObjectID {
		if msg.opcode == reqDisplayGetRegistry {
			a := args{data: msg.payload}
			id := a.uint32()
			if a.ok() {
				o.setKind(id, kindRegistry)
			}
		}
		return
	}

	switch o.kindOf(msg.object) {
	case kindRegistry:
		if msg.opcode != reqRegistryBind {
			return
		}
		a := args{data: msg.payload}
		a.uint32() // global name
		iface := a.string()
		a.uint32() // version
		id := a.uint32()
		if a.ok() && iface == seatInterface {
			o.setKind(id, kindSeat)
		}
	case kindSeat:
		a := args{data: msg.payload}
		id := a.uint32()
		if !a.ok() {
			return
		}
		switch msg.opcode {
		case reqSeatGetPointer:
			o.register(id, kindPointer)
		case reqSeatGetKeyboard:
			o.register(id, kindKeyboard)
		case reqSeatGetTouch:
			o.register(id, kindTouch)
		}
	}
}

func (o *streamObserver) handleEvent(msg message) {
	if msg.object == displayObjectID {
		if msg.opcode == evtDisplayDeleteID {
			a := args{data: msg.payload}
			id := a.uint32()
			if a.ok() {
				o.forget(id)
			}
		}
		return
	}

	switch o.kindOf(msg.object) {
	case kindKeyboard:
		if msg.opcode != evtKeyboardKey {
			return
		}
		a := args{data: msg.payload}
		a.uint32() // serial
		a.uint32() // time
		key := a.uint32()
		state := KeyState(a.uint32())
		if h := o.keyboard(msg.object); a.ok() && h != nil {
			h.HandleKey(key, state)
		}
	case kindPointer:
		h := o.pointer(msg.object)
		if h == nil {
			return
		}
		a := args{data: msg.payload}
		switch msg.opcode {
		case evtPointerButton:
			a.uint32() // serial
			a.uint32() // time
			button := a.uint32()
			state := ButtonState(a.uint32())
			if a.ok() {
				h.HandleButton(button, state)
			}
		case evtPointerAxis:
			a.uint32() // time
			axis := Axis(a.uint32())
			value := a.fixed()
			if a.ok() {
				h.HandleAxis(axis, value)
			}
		case evtPointerAxisDiscrete:
			axis := Axis(a.uint32())
			steps := a.int32()
			if a.ok() {
				h.HandleAxisDiscrete(axis, steps)
			}
		case evtPointerAxisValue120:
			axis := Axis(a.uint32())
			value := a.int32()
			if a.ok() {
				h.HandleAxisValue120(axis, value)
			}
		}
	case kindTouch:
		if msg.opcode != evtTouchDown {
			return
		}
		a := args{data: msg.payload}
		a.uint32() // serial
		a.uint32() // time
		a.uint32() // surface
		touch := a.int32()
		if h := o.touch(msg.object); a.ok() && h != nil {
			h.HandleDown(touch)
		}
	}
}

func (o *streamObserver) setKind(id uint32, kind objectKind) {
	o.mu.Lock()
	o.kinds[id] = kind
	o.mu.Unlock()
}

// register records a new device object and mints its handler.
func (o *streamObserver) register(id uint32, kind objectKind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.kinds[id] = kind
	switch kind {
	case kindKeyboard:
		o.keyboards[id] = o.seat.Keyboard()
	case kindPointer:
		o.pointers[id] = o.seat.Pointer()
	case kindTouch:
		o.touches[id] = o.seat.Touch()
	}
}

func (o *streamObserver) forget(id uint32) {
	o.mu.Lock()
	delete(o.kinds, id)
	delete(o.keyboards, id)
	delete(o.pointers, id)
	delete(o.touches, id)
	o.mu.Unlock()
}

func (o *streamObserver) kindOf(id uint32) objectKind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.kinds[id]
}

func (o *streamObserver) keyboard(id uint32) KeyboardHandler {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.keyboards[id]
}

func (o *streamObserver) pointer(id uint32) PointerHandler {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pointers[id]
}

func (o *streamObserver) touch(id uint32) TouchHandler {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.touches[id]
}
