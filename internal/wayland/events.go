package wayland

// KeyState is the state argument of wl_keyboard.key.
type KeyState uint32

// wl_keyboard.key states.
const (
	KeyReleased KeyState = 0
	KeyPressed  KeyState = 1
	KeyRepeated KeyState = 2
)

// ButtonState is the state argument of wl_pointer.button.
type ButtonState uint32

// wl_pointer.button states.
const (
	ButtonReleased ButtonState = 0
	ButtonPressed  ButtonState = 1
)

// Axis identifies a scroll direction.
type Axis uint32

// wl_pointer axes.
const (
	AxisVertical   Axis = 0
	AxisHorizontal Axis = 1
)

// KeyboardHandler observes events delivered to one wl_keyboard object.
type KeyboardHandler interface {
	HandleKey(key uint32, state KeyState)
}

// PointerHandler observes events delivered to one wl_pointer object.
type PointerHandler interface {
	HandleButton(button uint32, state ButtonState)
	HandleAxis(axis Axis, value Fixed)
	HandleAxisDiscrete(axis Axis, steps int32)
	HandleAxisValue120(axis Axis, value int32)
}

// TouchHandler observes events delivered to one wl_touch object.
type TouchHandler interface {
	HandleDown(touch int32)
}

// SeatObserver mints handlers for input devices as the client creates them.
// A compositor can hand out any number of keyboard/pointer/touch objects for
// the same physical seat, and a client may rebind after hotplug events, so
// the factory methods are called once per created protocol object and the
// returned handlers must share whatever dedup state they need.
type SeatObserver interface {
	Keyboard() KeyboardHandler
	Pointer() PointerHandler
	Touch() TouchHandler
}

// Request and event opcodes for the handful of interfaces the proxy follows.
const (
	displayObjectID = 1

	reqDisplayGetRegistry = 1
	reqRegistryBind       = 0
	reqSeatGetPointer     = 0
	reqSeatGetKeyboard    = 1
	reqSeatGetTouch       = 2

	evtDisplayDeleteID     = 1
	evtKeyboardKey         = 3
	evtPointerButton       = 3
	evtPointerAxis         = 4
	evtPointerAxisDiscrete = 8
	evtPointerAxisValue120 = 9
	evtTouchDown           = 0
)

const seatInterface = "wl_seat"
