package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"axigo/internal/config"
	"axigo/internal/debug"
	"axigo/internal/hw/button"
	"axigo/internal/hw/gpio"
	"axigo/internal/hw/led"
	"axigo/internal/hw/stepper"
	"axigo/internal/logic/axis"
	"axigo/internal/logic/device"
	"axigo/internal/logic/motion"
	"axigo/internal/logic/poll"
	"axigo/internal/web"
)

func main() {
	// CLI flags
	webPort := &webPortFlag{defaultPort: 8080}
	flag.Var(webPort, "web", "override web port; -web= for default 8080, -web 8980 for custom port")
	cfgPath := flag.String("config", filepath.Join("configs", "default.yaml"), "path to config file")
	limitMm := flag.Float64("limit", 0, "override axis limit in mm for all configured axes (0 = use config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load configuration
	if err := config.ValidateConfigPath(*cfgPath); err != nil {
		log.Fatalf("invalid config path: %v", err)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	// Validate CLI overrides (only non-zero values are applied; zero means "use config default")
	if err := validateCLIOverrides(*limitMm); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, *limitMm)

	// Initialize debug system
	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", *cfgPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)

	// Initialize GPIO driver
	debug.Value("Mock GPIO", cfg.Defaults.MockGPIO)
	debug.Step(1, "Initializing GPIO driver")
	gpioDriver, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
	if err != nil {
		log.Fatalf("init GPIO failed: %v", err)
	}
	defer func() {
		if err := gpioDriver.Close(); err != nil {
			log.Printf("closing GPIO driver failed: %v", err)
		}
	}()

	// Initialize axes
	debug.Step(2, "Initializing axes")
	axes, err := buildAxes(gpioDriver, cfg)
	if err != nil {
		log.Fatalf("init axes failed: %v", err)
	}
	dev, err := device.New(axes)
	if err != nil {
		log.Fatalf("init device failed: %v", err)
	}
	debug.Summary("Device Summary")
	debug.Value("Device type", dev.Type())
	debug.Value("Axes", dev.NumAxes())
	debug.Value("Limits", dev.Limits())

	// Initialize button and LEDs
	debug.Step(3, "Initializing button and LEDs")
	statusLED := led.New(gpioDriver, cfg.Leds.StatusPin)
	var heartbeatLED *led.LED
	if cfg.Leds.HeartbeatPin > 0 {
		heartbeatLED = led.New(gpioDriver, cfg.Leds.HeartbeatPin)
	}
	if err := gpioDriver.SetupPin(cfg.Button.Pin, gpio.InputPullup); err != nil {
		log.Fatalf("setup button pin failed: %v", err)
	}
	initialRaw, err := gpioDriver.ReadPin(cfg.Button.Pin)
	if err != nil {
		log.Fatalf("read button pin failed: %v", err)
	}
	input := button.New("button", initialRaw, cfg.Button.DebounceMs, cfg.Button.ActiveLow)
	debug.Value("Button pin", cfg.Button.Pin)
	debug.Value("Debounce window (ms)", cfg.Button.DebounceMs)

	// Control loop, with the web hub receiving LED state changes
	debug.Step(4, "Starting control loop")
	hub := web.NewHub()
	loop := poll.NewLoop(poll.Config{
		Driver:    gpioDriver,
		ButtonPin: cfg.Button.Pin,
		Input:     input,
		Status:    statusLED,
		Heartbeat: heartbeatLED,
		Notifier:  hub,
		Interval:  cfg.PollInterval(),
	})
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	// Web server (config port, overridable by -web)
	port := cfg.Web.Port
	if p := webPort.port(); p > 0 {
		port = p
	}
	if port > 0 {
		srv := web.NewServer(fmt.Sprintf(":%d", port), dev, hub, statusLED)
		if err := srv.Run(ctx); err != nil {
			log.Fatalf("web server: %v", err)
		}
	} else {
		debug.Info("web server disabled")
		<-ctx.Done()
	}
	<-loopDone
}

// buildAxes creates an axis controller (and a mover, when stepper pins are
// configured) per configured axis.
func buildAxes(g gpio.Driver, cfg *config.Config) ([]device.Axis, error) {
	stepDelay := cfg.MoveSpeed() / 2
	axes := make([]device.Axis, 0, len(cfg.Axes))
	for _, ac := range cfg.Axes {
		ctrl, err := axis.NewController(ac.LimitMm)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", ac.Name, err)
		}

		var mover *motion.Mover
		if ac.Stepper.StepPin > 0 && ac.Stepper.DirPin > 0 {
			motor := stepper.NewStepper(g, stepper.Config{
				Name:          ac.Name,
				StepPin:       ac.Stepper.StepPin,
				DirPin:        ac.Stepper.DirPin,
				EnablePin:     ac.Stepper.EnablePin,
				StepsPerRev:   ac.Stepper.StepsPerRev,
				Microstepping: ac.Stepper.Microstepping,
				StepDelay:     stepDelay,
			})
			mover = motion.NewMover(motor, ac.StepsPerMm)
			debug.PrintStruct("Stepper config", ac.Stepper)
		} else {
			debug.Info("axis %s has no stepper pins, running without actuation", ac.Name)
		}

		axes = append(axes, device.Axis{
			Name:  ac.Name,
			Unit:  ac.Unit,
			Ctrl:  ctrl,
			Mover: mover,
		})
	}
	return axes, nil
}

// validateCLIOverrides checks that non-zero CLI overrides are within valid ranges.
// Zero values are ignored (they mean "use config default").
func validateCLIOverrides(limitMm float64) error {
	if limitMm != 0 {
		if math.IsNaN(limitMm) || math.IsInf(limitMm, 0) || limitMm < 0 {
			return fmt.Errorf("limit must be a positive finite value in mm, got %g", limitMm)
		}
	}
	return nil
}

// applyOverrides mutates cfg with overrides. Only non-zero override values are applied.
func applyOverrides(cfg *config.Config, limitMm float64) {
	if limitMm == 0 {
		return
	}
	for i := range cfg.Axes {
		cfg.Axes[i].LimitMm = limitMm
	}
}

// webPortFlag implements flag.Value for -web: 0 = use config, -web= or
// -web 8080 → 8080, -web 8980 → 8980.
type webPortFlag struct {
	val         int
	defaultPort int
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	if s == "" {
		w.val = w.defaultPort
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}

func (w *webPortFlag) port() int { return w.val }
