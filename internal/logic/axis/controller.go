package axis

import (
	"errors"
	"math"
)

var (
	// ErrInvalidLimit is returned when a controller is constructed with a
	// negative or non-finite travel limit.
	ErrInvalidLimit = errors.New("axis: limit must be finite and >= 0")

	// ErrNotFinite is returned by SetPosition for NaN or infinite targets.
	ErrNotFinite = errors.New("axis: target position must be finite")
)

// Controller owns the logical position of one linear axis. The position is
// always kept within [0, limit]; out-of-range targets are clamped, the way a
// physical carriage stops at its bumpers instead of overtravelling.
//
// The controller never talks to an actuator. Converting committed positions
// into motor steps is the motion layer's job.
type Controller struct {
	position float64
	limit    float64
	homed    bool
}

// NewController creates a controller for an axis with the given upper travel
// limit. The limit is fixed for the life of the controller; reconfiguring
// travel means constructing a new one.
func NewController(limit float64) (*Controller, error) {
	if limit < 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return nil, ErrInvalidLimit
	}
	return &Controller{limit: limit}, nil
}

// Home establishes the reference position: position 0, homed flag set.
// Calling it again is a no-op with the same observable effect.
func (c *Controller) Home() {
	c.position = 0
	c.homed = true
}

// SetPosition commits a new target position, clamped to [0, limit].
// Every finite target produces a defined in-range position; NaN and ±Inf
// are rejected with ErrNotFinite and leave the position untouched.
func (c *Controller) SetPosition(target float64) error {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return ErrNotFinite
	}
	switch {
	case target < 0:
		c.position = 0
	case target > c.limit:
		c.position = c.limit
	default:
		c.position = target
	}
	return nil
}

// Position returns the current logical position.
func (c *Controller) Position() float64 { return c.position }

// Limit returns the upper travel limit.
func (c *Controller) Limit() float64 { return c.limit }

// Homed reports whether a homing operation has completed.
func (c *Controller) Homed() bool { return c.homed }
