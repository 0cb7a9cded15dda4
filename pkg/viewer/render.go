package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"realmview/pkg/realm"
)

type colorKey struct {
	level realm.Level
	id    string
}

// Renderer draws the tile grid for one level: region fills, the selection
// highlight and a single stroked path of all region boundaries. Resolved
// colors are cached per (level, id) until the overrides change.
type Renderer struct {
	colors map[colorKey]color.RGBA
}

func NewRenderer() *Renderer {
	return &Renderer{colors: make(map[colorKey]color.RGBA)}
}

// InvalidateColors drops the fill cache; call after any override change.
func (r *Renderer) InvalidateColors() {
	r.colors = make(map[colorKey]color.RGBA)
}

func (r *Renderer) fillColor(level realm.Level, id string, ov *realm.RegionOverrides, w *realm.WorldMap) color.RGBA {
	key := colorKey{level: level, id: id}
	if c, ok := r.colors[key]; ok {
		return c
	}
	rr, gg, bb, _ := realm.ResolveColor(level, id, ov, w).RGBA()
	c := color.RGBA{uint8(rr >> 8), uint8(gg >> 8), uint8(bb >> 8), 255}
	r.colors[key] = c
	return c
}

// DrawWorld renders the grid at the given level. Offscreen tiles are
// culled; a nil world or empty screen is a no-op.
func (r *Renderer) DrawWorld(screen *ebiten.Image, w *realm.WorldMap, ov *realm.RegionOverrides, vp *Viewport, level realm.Level, selectedID string) {
	if w == nil || screen == nil {
		return
	}
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	if screenW <= 0 || screenH <= 0 {
		return
	}

	// Map backdrop behind the whole grid.
	originX, originY := vp.WorldToScreen(0, 0)
	gridW := float32(float64(w.Width) * TileSize * vp.Scale)
	gridH := float32(float64(w.Height) * TileSize * vp.Scale)
	vector.DrawFilledRect(screen, float32(originX), float32(originY), gridW, gridH, colorMapBackground, false)

	side := float32(TileSize * vp.Scale)
	for i := range w.Tiles {
		tile := &w.Tiles[i]
		sx, sy := vp.WorldToScreen(float64(tile.X)*TileSize, float64(tile.Y)*TileSize)
		if sx > float64(screenW) || sy > float64(screenH) || sx+float64(side) < 0 || sy+float64(side) < 0 {
			continue
		}
		id := tile.RegionIDAt(level)
		vector.DrawFilledRect(screen, float32(sx), float32(sy), side, side, r.fillColor(level, id, ov, w), false)
		if selectedID != "" && id == selectedID {
			vector.DrawFilledRect(screen, float32(sx), float32(sy), side, side, colorSelection, false)
		}
	}

	r.strokeBoundaries(screen, w, vp, level)
}

// strokeBoundaries accumulates every edge between two different regions of
// the active level into one path and strokes it once. Each tile only checks
// its right and bottom neighbors, so no edge is emitted twice; the grid
// perimeter is not outlined.
func (r *Renderer) strokeBoundaries(screen *ebiten.Image, w *realm.WorldMap, vp *Viewport, level realm.Level) {
	var path vector.Path
	segments := 0

	for i := range w.Tiles {
		tile := &w.Tiles[i]
		id := tile.RegionIDAt(level)
		x0 := float64(tile.X) * TileSize
		y0 := float64(tile.Y) * TileSize

		if right := w.TileAt(tile.X+1, tile.Y); right != nil && right.RegionIDAt(level) != id {
			sx, sy := vp.WorldToScreen(x0+TileSize, y0)
			_, ey := vp.WorldToScreen(x0+TileSize, y0+TileSize)
			path.MoveTo(float32(sx), float32(sy))
			path.LineTo(float32(sx), float32(ey))
			segments++
		}
		if bottom := w.TileAt(tile.X, tile.Y+1); bottom != nil && bottom.RegionIDAt(level) != id {
			sx, sy := vp.WorldToScreen(x0, y0+TileSize)
			ex, _ := vp.WorldToScreen(x0+TileSize, y0+TileSize)
			path.MoveTo(float32(sx), float32(sy))
			path.LineTo(float32(ex), float32(sy))
			segments++
		}
	}
	if segments == 0 {
		return
	}

	strokeOpts := &vector.StrokeOptions{Width: float32(boundaryStrokeWidth * vp.Scale), MiterLimit: 10}
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(colorBoundary)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}
