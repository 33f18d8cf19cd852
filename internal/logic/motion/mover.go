package motion

import (
	"math"

	"axigo/internal/debug"
	"axigo/internal/hw/stepper"
)

// Mover turns committed axis positions into stepper motion. It is the
// intermediate layer between the axis controller (pure position logic) and
// the motor driver: it keeps track of the step position already issued and
// emits only the delta on each move.
type Mover struct {
	motor      *stepper.Stepper
	stepsPerMm float64
	stepPos    int // steps issued since the last Home, relative to origin
}

// NewMover creates a mover for one axis motor. stepsPerMm converts logical
// millimetres into motor steps; if <= 0 it defaults to 100 (0.01 mm per step).
func NewMover(motor *stepper.Stepper, stepsPerMm float64) *Mover {
	if stepsPerMm <= 0 {
		stepsPerMm = 100
	}
	return &Mover{motor: motor, stepsPerMm: stepsPerMm}
}

// MoveTo drives the motor to the step position matching positionMm.
// The caller is expected to pass an already-clamped position.
func (m *Mover) MoveTo(positionMm float64) error {
	target := int(math.Round(positionMm * m.stepsPerMm))
	delta := target - m.stepPos
	if delta == 0 {
		return nil
	}
	debug.Verbose("Mover: %.3f mm -> step %d (delta %d)", positionMm, target, delta)
	if err := m.motor.MoveSteps(delta); err != nil {
		return err
	}
	m.stepPos = target
	return nil
}

// Home resets the step origin to the current carriage position.
// TODO: drive toward an endstop before zeroing; needs an endstop input pin
// in the axis config.
func (m *Mover) Home() {
	m.stepPos = 0
}

// StepPosition returns the step position issued so far.
func (m *Mover) StepPosition() int { return m.stepPos }
