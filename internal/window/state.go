package window

import (
	"fmt"
	"strings"
)

// TransparentType selects how transparency is realised.
type TransparentType int

const (
	TransparentNone TransparentType = iota
	TransparentAlpha
	TransparentColorKey
)

func (t TransparentType) String() string {
	switch t {
	case TransparentNone:
		return "none"
	case TransparentAlpha:
		return "alpha"
	case TransparentColorKey:
		return "colorkey"
	default:
		return fmt.Sprintf("transparent(%d)", int(t))
	}
}

// ParseTransparentType accepts none, alpha or colorkey in any case.
func ParseTransparentType(s string) (TransparentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return TransparentNone, nil
	case "alpha", "":
		return TransparentAlpha, nil
	case "colorkey", "color_key", "color-key":
		return TransparentColorKey, nil
	default:
		return TransparentAlpha, fmt.Errorf("unknown transparent type %q", s)
	}
}

// HitTestType selects how click-through is decided each tick.
type HitTestType int

const (
	HitTestNone HitTestType = iota
	HitTestOpacity
	HitTestRaycast
)

func (h HitTestType) String() string {
	switch h {
	case HitTestNone:
		return "none"
	case HitTestOpacity:
		return "opacity"
	case HitTestRaycast:
		return "raycast"
	default:
		return fmt.Sprintf("hittest(%d)", int(h))
	}
}

// ParseHitTestType accepts none, opacity or raycast in any case.
func ParseHitTestType(s string) (HitTestType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return HitTestNone, nil
	case "opacity", "":
		return HitTestOpacity, nil
	case "raycast":
		return HitTestRaycast, nil
	default:
		return HitTestOpacity, fmt.Errorf("unknown hit-test type %q", s)
	}
}

// Color is an RGBA colour with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// State is the cached window intent. Fields from TransparentType down are
// policy owned by the host side and never sent to the native library.
type State struct {
	Transparent    bool
	Borderless     bool
	Topmost        bool
	Bottommost     bool
	ClickThrough   bool
	Zoomed         bool
	Alpha          float32
	X, Y           float32
	Width, Height  float32
	AllowDropFiles bool

	TransparentType  TransparentType
	HitTestType      HitTestType
	OpacityThreshold float32
	HitTestEnabled   bool
	KeyColor         Color
	ShouldFitMonitor bool
	MonitorToFit     int
}

// DefaultState returns the initial intent of a fresh session.
func DefaultState() State {
	return State{
		Alpha:            1,
		TransparentType:  TransparentAlpha,
		HitTestType:      HitTestOpacity,
		OpacityThreshold: 0.1,
		HitTestEnabled:   true,
		KeyColor:         Color{R: 1, G: 0, B: 1, A: 0},
	}
}

// Normalize clamps the ranged fields.
func (s State) Normalize() State {
	s.Alpha = clamp01(s.Alpha)
	s.OpacityThreshold = clamp01(s.OpacityThreshold)
	if s.MonitorToFit < 0 {
		s.MonitorToFit = 0
	}
	return s
}

func clamp01(v float32) float32 {
	if v != v { // NaN
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
