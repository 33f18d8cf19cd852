package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StepperConfig holds the configuration for an axis stepper motor.
type StepperConfig struct {
	StepPin       int `yaml:"step_pin"`
	DirPin        int `yaml:"dir_pin"`
	EnablePin     int `yaml:"enable_pin"` // A4988 ENABLE pin (BCM). 0 = not used. Active LOW.
	StepsPerRev   int `yaml:"steps_per_rev"`
	Microstepping int `yaml:"microstepping"`
}

// AxisConfig describes one linear axis.
type AxisConfig struct {
	Name       string        `yaml:"name"`         // e.g., "x"
	Unit       string        `yaml:"unit"`         // position unit, e.g., "mm"
	LimitMm    float64       `yaml:"limit_mm"`     // upper travel limit
	StepsPerMm float64       `yaml:"steps_per_mm"` // motor steps per millimetre of travel
	Stepper    StepperConfig `yaml:"stepper"`
}

// ButtonConfig describes the push button input.
type ButtonConfig struct {
	Pin        int   `yaml:"pin"`         // GPIO pin (BCM)
	ActiveLow  bool  `yaml:"active_low"`  // pulled-up wiring: LOW = pressed
	DebounceMs int64 `yaml:"debounce_ms"` // settle window
}

// LedConfig describes the indicator LEDs.
type LedConfig struct {
	StatusPin    int `yaml:"status_pin"`    // toggled by button / WebSocket
	HeartbeatPin int `yaml:"heartbeat_pin"` // 0 = no heartbeat LED
}

// DefaultsConfig contains generic parameters (cadence, debug, etc.).
type DefaultsConfig struct {
	PollIntervalMs int  `yaml:"poll_interval_ms"` // control loop tick period
	MoveSpeedMs    int  `yaml:"move_speed_ms"`    // delay between motor steps
	DebugLevel     int  `yaml:"debug_level"`      // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO       bool `yaml:"mock_gpio"`        // use mock GPIO (true=dev/test, false=real Raspberry Pi)
}

// WebConfig configures the HTTP/WebSocket server.
type WebConfig struct {
	Port int `yaml:"port"` // 0 = web server disabled
}

// Config aggregates all application configuration.
type Config struct {
	Axes     []AxisConfig   `yaml:"axes"`
	Button   ButtonConfig   `yaml:"button"`
	Leds     LedConfig      `yaml:"leds"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Web      WebConfig      `yaml:"web"`
}

// ValidateConfigPath checks that path points to a .yaml file under a
// configs/ directory, without traversal tricks.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if filepath.Ext(path) != ".yaml" {
		return fmt.Errorf("config file must have a .yaml extension, got %q", path)
	}
	clean := filepath.Clean(path)
	if strings.Contains(clean, "..") {
		return fmt.Errorf("config path must not traverse directories, got %q", path)
	}
	if filepath.Base(filepath.Dir(clean)) != "configs" {
		return fmt.Errorf("config file must live under a configs/ directory, got %q", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration with defaults applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// Basic validation
	if len(cfg.Axes) == 0 {
		return nil, fmt.Errorf("at least one axis is required")
	}
	for i := range cfg.Axes {
		a := &cfg.Axes[i]
		if a.Name == "" {
			a.Name = fmt.Sprintf("axis%d", i+1)
		}
		if a.Unit == "" {
			a.Unit = "mm"
		}
		if a.LimitMm < 0 {
			return nil, fmt.Errorf("axis %s: limit_mm must be >= 0, got %.2f", a.Name, a.LimitMm)
		}
		if a.LimitMm == 0 {
			a.LimitMm = 80 // reasonable default travel
		}
		if a.StepsPerMm < 0 {
			return nil, fmt.Errorf("axis %s: steps_per_mm must be >= 0, got %.2f", a.Name, a.StepsPerMm)
		}
		if a.StepsPerMm == 0 {
			a.StepsPerMm = 100 // 0.01 mm per step
		}
	}
	if cfg.Button.Pin <= 0 {
		return nil, fmt.Errorf("button.pin is required")
	}
	if cfg.Leds.StatusPin <= 0 {
		return nil, fmt.Errorf("leds.status_pin is required")
	}
	if cfg.Button.DebounceMs < 0 {
		return nil, fmt.Errorf("button.debounce_ms must be >= 0, got %d", cfg.Button.DebounceMs)
	}
	if cfg.Button.DebounceMs == 0 {
		cfg.Button.DebounceMs = 10 // contact bounce settle window
	}
	if cfg.Defaults.PollIntervalMs <= 0 {
		cfg.Defaults.PollIntervalMs = 5 // short relative to the debounce window
	}
	if cfg.Defaults.PollIntervalMs > int(cfg.Button.DebounceMs) {
		return nil, fmt.Errorf("poll_interval_ms (%d) must not exceed debounce_ms (%d)",
			cfg.Defaults.PollIntervalMs, cfg.Button.DebounceMs)
	}
	if cfg.Defaults.MoveSpeedMs <= 0 {
		cfg.Defaults.MoveSpeedMs = 2 // reasonable default
	}
	if cfg.Web.Port < 0 || cfg.Web.Port > 65535 {
		return nil, fmt.Errorf("web.port must be 0-65535, got %d", cfg.Web.Port)
	}

	return &cfg, nil
}

// PollInterval returns the control loop tick period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Defaults.PollIntervalMs) * time.Millisecond
}

// MoveSpeed returns the duration between two motor steps.
func (c *Config) MoveSpeed() time.Duration {
	return time.Duration(c.Defaults.MoveSpeedMs) * time.Millisecond
}
