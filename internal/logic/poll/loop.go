package poll

import (
	"context"
	"time"

	"axigo/internal/debug"
	"axigo/internal/hw/button"
	"axigo/internal/hw/gpio"
	"axigo/internal/hw/led"
)

// Notifier receives application-level events from the loop. The web hub
// implements it to push status frames to connected clients.
type Notifier interface {
	LEDChanged(on bool)
}

// Config wires the loop to its hardware and cadence.
type Config struct {
	Driver    gpio.Driver
	ButtonPin int
	Input     *button.Debounced
	Status    *led.LED
	Heartbeat *led.LED // optional
	Notifier  Notifier // optional
	Interval  time.Duration
}

// Loop is the device control loop: every tick it samples the button,
// reacts to press edges by toggling the status LED, blinks the heartbeat
// and flushes LED state to the pins. It is the single writer for the
// debounced input.
type Loop struct {
	cfg   Config
	start time.Time
}

// NewLoop creates a control loop. Interval defaults to 5ms.
func NewLoop(cfg Config) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Millisecond
	}
	return &Loop{cfg: cfg}
}

// Run drives ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	debug.Info("control loop running every %v", l.cfg.Interval)
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	l.start = time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.tick(time.Since(l.start).Milliseconds())
		}
	}
}

// tick runs one iteration at the given monotonic millisecond timestamp.
func (l *Loop) tick(now int64) {
	raw, err := l.cfg.Driver.ReadPin(l.cfg.ButtonPin)
	if err != nil {
		debug.Error(err)
	} else {
		l.cfg.Input.Sample(raw, now)
		if l.cfg.Input.Pressed() {
			on := l.cfg.Status.Toggle()
			if l.cfg.Notifier != nil {
				l.cfg.Notifier.LEDChanged(on)
			}
		}
	}

	// Heartbeat: on during the first 50ms of each second.
	if l.cfg.Heartbeat != nil {
		l.cfg.Heartbeat.Set(now%1000 < 50)
		if err := l.cfg.Heartbeat.Update(); err != nil {
			debug.Error(err)
		}
	}
	if err := l.cfg.Status.Update(); err != nil {
		debug.Error(err)
	}
}
