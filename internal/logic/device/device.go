package device

import (
	"fmt"
	"math"
	"sync"

	"axigo/internal/debug"
	"axigo/internal/logic/axis"
	"axigo/internal/logic/motion"
)

// Axis bundles one axis controller with its name, unit and optional mover.
// A nil Mover means the axis has no actuator wired (mock/dev setups).
type Axis struct {
	Name  string
	Unit  string
	Ctrl  *axis.Controller
	Mover *motion.Mover
}

// Device is the single source of truth for device state. All request
// handlers and the control loop go through it; mutation happens only via
// its methods, behind one mutex.
type Device struct {
	mu   sync.Mutex
	axes []Axis
}

// New creates a device from its axes. At least one axis is required.
func New(axes []Axis) (*Device, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("device: at least one axis required")
	}
	return &Device{axes: axes}, nil
}

// Type returns the device type string, e.g. "1d" for a single-axis device.
func (d *Device) Type() string {
	return fmt.Sprintf("%dd", len(d.axes))
}

// NumAxes returns the number of axes.
func (d *Device) NumAxes() int { return len(d.axes) }

// AxisNumbers returns the 1-based axis numbers, the form the wire API uses.
func (d *Device) AxisNumbers() []int {
	nums := make([]int, len(d.axes))
	for i := range d.axes {
		nums[i] = i + 1
	}
	return nums
}

// Units returns the position unit per axis.
func (d *Device) Units() []string {
	units := make([]string, len(d.axes))
	for i, a := range d.axes {
		units[i] = a.Unit
	}
	return units
}

// Positions returns the current logical position per axis.
func (d *Device) Positions() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	pos := make([]float64, len(d.axes))
	for i, a := range d.axes {
		pos[i] = a.Ctrl.Position()
	}
	return pos
}

// Limits returns the travel limit per axis.
func (d *Device) Limits() []float64 {
	limits := make([]float64, len(d.axes))
	for i, a := range d.axes {
		limits[i] = a.Ctrl.Limit()
	}
	return limits
}

// HomeStatus returns the homed flag per axis.
func (d *Device) HomeStatus() []bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	homed := make([]bool, len(d.axes))
	for i, a := range d.axes {
		homed[i] = a.Ctrl.Homed()
	}
	return homed
}

// HomeAll homes every axis: position zeroed, homed flag set, step origin
// reset on axes with a mover.
func (d *Device) HomeAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	debug.Command("homeAxis")
	for _, a := range d.axes {
		a.Ctrl.Home()
		if a.Mover != nil {
			a.Mover.Home()
		}
	}
}

// SetPositions commits one target per axis and drives the motors to the
// committed (clamped) positions. The target count must match the axis count.
// A non-finite target fails the whole command before any axis moves.
func (d *Device) SetPositions(targets []float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(targets) != len(d.axes) {
		return fmt.Errorf("device: got %d positions, want %d", len(targets), len(d.axes))
	}
	debug.Command("setPosition", targets)

	// Validate everything first so a bad axis target cannot leave the
	// device half-moved.
	for i, target := range targets {
		if math.IsNaN(target) || math.IsInf(target, 0) {
			return fmt.Errorf("axis %s: %w", d.axes[i].Name, axis.ErrNotFinite)
		}
	}

	for i, target := range targets {
		a := d.axes[i]
		if err := a.Ctrl.SetPosition(target); err != nil {
			return fmt.Errorf("axis %s: %w", a.Name, err)
		}
		if a.Mover != nil {
			if err := a.Mover.MoveTo(a.Ctrl.Position()); err != nil {
				return fmt.Errorf("axis %s: %w", a.Name, err)
			}
		}
	}
	return nil
}
