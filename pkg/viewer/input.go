package viewer

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"realmview/pkg/realm"
)

// Controller turns raw Ebiten input state into viewport and selection
// changes: left-drag pans, the wheel zooms at the cursor, and a
// press-release pair that barely moved selects the region under it.
type Controller struct {
	dragging   bool
	lastMouseX int
	lastMouseY int
	pressX     int
	pressY     int
}

func (c *Controller) Update(a *App) {
	mx, my := ebiten.CursorPosition()

	a.updateHover(float64(mx), float64(my))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.dragging = true
		c.pressX, c.pressY = mx, my
		c.lastMouseX, c.lastMouseY = mx, my
	}
	if c.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.vp.Pan(float64(mx-c.lastMouseX), float64(my-c.lastMouseY))
		c.lastMouseX, c.lastMouseY = mx, my
	}
	if c.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		c.dragging = false
		dragDistance := math.Hypot(float64(mx-c.pressX), float64(my-c.pressY))
		if dragDistance < clickDragThreshold {
			a.selectAt(float64(mx), float64(my))
		}
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		a.vp.ZoomAt(math.Pow(1.1, wheelY*zoomWheelSensitivity), float64(mx), float64(my))
		a.saveZoomPreference()
	}

	c.handleKeys(a)
}

func (c *Controller) handleKeys(a *App) {
	// 1-4 switch the active level, coarsest on 4.
	for i, key := range []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4} {
		if inpututil.IsKeyJustPressed(key) {
			a.setLevel(realm.AllLevels()[i])
		}
	}

	// =/- step the zoom around the screen center, 0 resets it.
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		a.zoomAtCenter(zoomKeyStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		a.zoomAtCenter(1 / zoomKeyStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0) {
		a.vp.SetScale(DefaultScale)
		a.saveZoomPreference()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.resetView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.clearSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		a.dumpPartition()
	}
}
