package viewer

import (
	"math"

	"realmview/pkg/realm"
)

// Viewport maps world coordinates to screen pixels:
//
//	screen = offset + world * scale
//
// Pan moves the offset, zoom rescales around an anchor point so the world
// position under the cursor stays put.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func NewViewport() *Viewport {
	return &Viewport{Scale: DefaultScale}
}

func (v *Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return v.OffsetX + wx*v.Scale, v.OffsetY + wy*v.Scale
}

func (v *Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.OffsetX) / v.Scale, (sy - v.OffsetY) / v.Scale
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under the screen anchor fixed. At a clamp
// boundary the factor is absorbed and the offset stays unchanged.
func (v *Viewport) ZoomAt(factor, anchorX, anchorY float64) {
	next := clampScale(v.Scale * factor)
	if next == v.Scale {
		return
	}
	wx, wy := v.ScreenToWorld(anchorX, anchorY)
	v.Scale = next
	v.OffsetX = anchorX - wx*v.Scale
	v.OffsetY = anchorY - wy*v.Scale
}

// SetScale applies a saved zoom preference without moving the origin.
func (v *Viewport) SetScale(scale float64) {
	v.Scale = clampScale(scale)
}

// CenterOn positions the view so the world rect (0,0)-(worldW,worldH) is
// centered in a screen of the given size at the current scale.
func (v *Viewport) CenterOn(worldW, worldH float64, screenW, screenH int) {
	v.OffsetX = (float64(screenW) - worldW*v.Scale) / 2
	v.OffsetY = (float64(screenH) - worldH*v.Scale) / 2
}

// TileAtScreen resolves the tile under a screen position, or nil when the
// position falls outside the grid.
func TileAtScreen(w *realm.WorldMap, v *Viewport, sx, sy float64) *realm.Tile {
	wx, wy := v.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 {
		return nil
	}
	return w.TileAt(int(math.Floor(wx/TileSize)), int(math.Floor(wy/TileSize)))
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultScale
	}
	return math.Min(MaxScale, math.Max(MinScale, s))
}
