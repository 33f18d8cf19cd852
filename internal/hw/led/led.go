package led

import (
	"sync"

	"axigo/internal/debug"
	"axigo/internal/hw/gpio"
)

// LED is an output pin with a cached on/off state. State changes are cheap;
// Update flushes the cached state to the pin. The polling loop calls Update
// every tick, so a Toggle from another goroutine (the WebSocket handler)
// takes effect on the next tick.
type LED struct {
	mu   sync.Mutex
	gpio gpio.Driver
	pin  int
	on   bool
}

// New creates an LED on the given pin, configured as output and switched off.
func New(g gpio.Driver, pin int) *LED {
	_ = g.SetupPin(pin, gpio.Output)
	_ = g.WritePin(pin, gpio.Low)
	return &LED{gpio: g, pin: pin}
}

// Set replaces the cached state.
func (l *LED) Set(on bool) {
	l.mu.Lock()
	l.on = on
	l.mu.Unlock()
}

// Toggle flips the cached state and returns the new value.
func (l *LED) Toggle() bool {
	l.mu.Lock()
	l.on = !l.on
	on := l.on
	l.mu.Unlock()
	debug.Verbose("LED pin %d toggled to %v", l.pin, on)
	return on
}

// On returns the cached state.
func (l *LED) On() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// Update writes the cached state to the pin.
func (l *LED) Update() error {
	l.mu.Lock()
	on := l.on
	l.mu.Unlock()

	level := gpio.Low
	if on {
		level = gpio.High
	}
	return l.gpio.WritePin(l.pin, level)
}
