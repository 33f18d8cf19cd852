package axis

import (
	"errors"
	"math"
	"testing"
)

func newTestController(t *testing.T, limit float64) *Controller {
	t.Helper()
	c, err := NewController(limit)
	if err != nil {
		t.Fatalf("NewController(%v): %v", limit, err)
	}
	return c
}

func TestNewController_InvalidLimit(t *testing.T) {
	cases := []struct {
		name  string
		limit float64
	}{
		{"negative", -1},
		{"negative_small", -0.001},
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewController(tc.limit); !errors.Is(err, ErrInvalidLimit) {
				t.Errorf("NewController(%v) error = %v, want ErrInvalidLimit", tc.limit, err)
			}
		})
	}
}

func TestNewController_ZeroLimit(t *testing.T) {
	c := newTestController(t, 0)
	if c.Limit() != 0 {
		t.Errorf("Limit() = %v, want 0", c.Limit())
	}
	if err := c.SetPosition(10); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %v, want 0 (zero-travel axis)", c.Position())
	}
}

func TestNewController_InitialState(t *testing.T) {
	c := newTestController(t, 80)
	if c.Position() != 0 {
		t.Errorf("initial Position() = %v, want 0", c.Position())
	}
	if c.Homed() {
		t.Error("initial Homed() = true, want false")
	}
	if c.Limit() != 80 {
		t.Errorf("Limit() = %v, want 80", c.Limit())
	}
}

func TestSetPosition_Clamping(t *testing.T) {
	cases := []struct {
		name   string
		target float64
		want   float64
	}{
		{"below_range", -5, 0},
		{"above_range", 200, 80},
		{"in_range", 42, 42},
		{"lower_boundary", 0, 0},
		{"upper_boundary", 80, 80},
		{"fractional", 12.5, 12.5},
		{"negative_zero", math.Copysign(0, -1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(t, 80)
			if err := c.SetPosition(tc.target); err != nil {
				t.Fatalf("SetPosition(%v): %v", tc.target, err)
			}
			if got := c.Position(); got != tc.want {
				t.Errorf("Position() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetPosition_NonFiniteRejected(t *testing.T) {
	cases := []struct {
		name   string
		target float64
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestController(t, 80)
			if err := c.SetPosition(30); err != nil {
				t.Fatalf("SetPosition(30): %v", err)
			}
			if err := c.SetPosition(tc.target); !errors.Is(err, ErrNotFinite) {
				t.Errorf("SetPosition(%v) error = %v, want ErrNotFinite", tc.target, err)
			}
			if c.Position() != 30 {
				t.Errorf("Position() = %v after rejected target, want 30 unchanged", c.Position())
			}
		})
	}
}

func TestSetPosition_InvariantHolds(t *testing.T) {
	c := newTestController(t, 80)
	targets := []float64{-1e9, -80.0001, -1, 0, 0.0001, 40, 79.9999, 80, 80.0001, 1e9}
	for _, target := range targets {
		if err := c.SetPosition(target); err != nil {
			t.Fatalf("SetPosition(%v): %v", target, err)
		}
		p := c.Position()
		if p < 0 || p > c.Limit() {
			t.Errorf("SetPosition(%v): Position() = %v outside [0, %v]", target, p, c.Limit())
		}
	}
}

func TestHome(t *testing.T) {
	c := newTestController(t, 80)
	if err := c.SetPosition(55); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}

	c.Home()
	if c.Position() != 0 {
		t.Errorf("Position() after Home = %v, want 0", c.Position())
	}
	if !c.Homed() {
		t.Error("Homed() = false after Home")
	}
}

func TestHome_Idempotent(t *testing.T) {
	c := newTestController(t, 80)
	c.Home()
	c.Home()
	if c.Position() != 0 || !c.Homed() {
		t.Errorf("double Home: Position() = %v, Homed() = %v; want 0, true",
			c.Position(), c.Homed())
	}
}
