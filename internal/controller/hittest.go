package controller

import "github.com/bnema/uniwin/internal/window"

// HitProbe answers per-pixel questions about the host's rendered content in
// window-local coordinates.
type HitProbe interface {
	// AlphaAt returns the opacity of the pixel under the point.
	AlphaAt(x, y float32) float32
	// HitAt reports whether any interactive object lies under the point.
	HitAt(x, y float32) bool
}

// UpdateHitTest decides click-through from the cursor position. Call it once
// per tick. Native is only told when the decision changes. It returns the
// current click-through state.
func (c *Controller) UpdateHitTest(probe HitProbe) bool {
	f := c.facade
	if c.status != StatusAttached || probe == nil || !f.HitTestEnabled() {
		return f.ClickThrough()
	}

	cx, cy, ok := f.CursorPosition()
	if !ok {
		return f.ClickThrough()
	}
	wx, wy := f.Position()
	lx, ly := cx-wx, cy-wy

	var through bool
	switch f.HitTestType() {
	case window.HitTestOpacity:
		through = probe.AlphaAt(lx, ly) < f.OpacityThreshold()
	case window.HitTestRaycast:
		through = !probe.HitAt(lx, ly)
	default:
		return f.ClickThrough()
	}

	if through != f.ClickThrough() {
		f.SetClickThrough(through)
	}
	return through
}

// Region is a window-local rectangle.
type Region struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// RegionProbe treats the listed regions as opaque, interactive content and
// everything else as empty. Hosts that cannot sample their own pixels use it
// to mark clickable areas.
type RegionProbe struct {
	Regions []Region
}

func (p RegionProbe) hit(x, y float32) bool {
	for _, r := range p.Regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// AlphaAt returns 1 inside a region and 0 elsewhere.
func (p RegionProbe) AlphaAt(x, y float32) float32 {
	if p.hit(x, y) {
		return 1
	}
	return 0
}

// HitAt reports whether the point lies in any region.
func (p RegionProbe) HitAt(x, y float32) bool {
	return p.hit(x, y)
}
