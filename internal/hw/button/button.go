package button

import (
	"axigo/internal/debug"
	"axigo/internal/hw/gpio"
)

// State is the logical reading of a debounced input.
type State int

const (
	// Released: settled inactive, no pending edge.
	Released State = iota
	// JustPressed: press edge, visible for exactly one Sample.
	JustPressed
	// Held: sustained active run after the press edge.
	Held
	// JustReleased: release edge, visible for exactly one Sample.
	JustReleased
)

func (s State) String() string {
	switch s {
	case Released:
		return "released"
	case JustPressed:
		return "just-pressed"
	case Held:
		return "held"
	case JustReleased:
		return "just-released"
	}
	return "unknown"
}

// heldSaturation bounds the held tick counter so arbitrarily long presses
// cannot overflow it.
const heldSaturation = 1 << 16

// Debounced recovers a stable logical signal from a bouncy raw input.
// It is fed one raw reading per polling tick; raw transitions restart a
// settle timer, and only once the raw level has held steady longer than the
// debounce window does the logical state move. Press and release edges are
// reported for exactly one tick each, so the owner must poll every tick or
// edges are lost.
//
// Debounced is not safe for concurrent use; it is owned by the single
// polling loop that samples it. Time is a monotonic millisecond counter
// supplied by the caller, never read internally.
type Debounced struct {
	name       string
	settle     int64 // debounce window, ms
	activeLow  bool  // pulled-up wiring: electrically low means pressed
	lastRaw    gpio.Level
	lastChange int64 // timestamp of the last raw transition, ms
	state      State
	heldTicks  int
}

// New creates a debounced input. initialRaw is the raw level read at
// startup, settleMs the debounce window, activeLow true for a pulled-up
// input where Low means asserted.
func New(name string, initialRaw gpio.Level, settleMs int64, activeLow bool) *Debounced {
	return &Debounced{
		name:      name,
		settle:    settleMs,
		activeLow: activeLow,
		lastRaw:   initialRaw,
	}
}

// Sample feeds one raw reading taken at the monotonic timestamp now (ms).
// Call it once per polling tick, at a cadence short relative to the
// debounce window.
func (d *Debounced) Sample(raw gpio.Level, now int64) {
	// Every raw transition restarts the settle timer, bounce or not.
	if raw != d.lastRaw {
		d.lastChange = now
	}

	if now-d.lastChange > d.settle {
		active := (raw == gpio.Low) == d.activeLow
		if active {
			switch d.state {
			case Released:
				d.state = JustPressed
				debug.Edge(d.name, "pressed")
			case JustPressed:
				d.state = Held
				d.heldTicks = 1
			case Held:
				if d.heldTicks < heldSaturation {
					d.heldTicks++
				}
			case JustReleased:
				// Still active right after a release edge: resume a
				// held run, not a fresh press.
				d.state = Held
				d.heldTicks = 1
			}
		} else {
			switch d.state {
			case JustReleased:
				d.state = Released
			case JustPressed, Held:
				d.state = JustReleased
				d.heldTicks = 0
				debug.Edge(d.name, "released")
			}
		}
	}

	d.lastRaw = raw
}

// Pressed reports a press edge; true for exactly one Sample after the
// debounce window confirms activation.
func (d *Debounced) Pressed() bool { return d.state == JustPressed }

// Released reports a release edge; true for exactly one Sample.
func (d *Debounced) Released() bool { return d.state == JustReleased }

// Held reports a sustained active run longer than thresholdTicks settled
// ticks past the press edge.
func (d *Debounced) Held(thresholdTicks int) bool {
	return d.state == Held && d.heldTicks > thresholdTicks
}

// State returns the current logical state.
func (d *Debounced) State() State { return d.state }
