package viewer

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"realmview/pkg/config"
	"realmview/pkg/devtools"
	"realmview/pkg/logs"
	"realmview/pkg/realm"
)

// SelectionEvent is published whenever the user selects a region.
type SelectionEvent struct {
	Level realm.Level
	ID    string
	Info  realm.RegionInfo
}

// App is the Ebiten game: it owns the world map, a private copy of the
// overrides, the viewport and the current level/selection state.
type App struct {
	cfg       *config.Config
	world     *realm.WorldMap
	overrides *realm.RegionOverrides

	vp         *Viewport
	renderer   *Renderer
	controller *Controller

	level      realm.Level
	selectedID string
	hoveredID  string

	width    int
	height   int
	centered bool

	fontSource *text.GoTextFaceSource
	hudFace    *text.GoTextFace

	events chan SelectionEvent
}

// New builds the viewer from preferences and an overrides payload. The
// payload is deep-cloned, so the caller's copy is never mutated.
func New(cfg *config.Config, overrides *realm.RegionOverrides) (*App, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	ov := overrides.Clone()
	gw, gh := cfg.GridSize()

	a := &App{
		cfg:        cfg,
		world:      realm.Build(gw, gh, ov),
		overrides:  ov,
		vp:         NewViewport(),
		renderer:   NewRenderer(),
		controller: &Controller{},
		level:      realm.LevelCounty,
		fontSource: src,
		hudFace:    &text.GoTextFace{Source: src, Size: hudFontSize},
		events:     make(chan SelectionEvent, 16),
	}
	a.vp.SetScale(cfg.ViewScale())
	return a, nil
}

// Events is the stream of region selections; the channel is buffered and
// events are dropped rather than blocking the game loop.
func (a *App) Events() <-chan SelectionEvent {
	return a.events
}

// SetOverrides swaps in a new overrides payload (deep-cloned) and rebuilds
// the partition. The selection is kept only if its region still exists.
func (a *App) SetOverrides(overrides *realm.RegionOverrides) {
	a.overrides = overrides.Clone()
	a.world = realm.Build(a.world.Width, a.world.Height, a.overrides)
	a.renderer.InvalidateColors()
	if a.selectedID != "" {
		if _, ok := realm.Info(a.world, a.level, a.selectedID, a.overrides); !ok {
			a.selectedID = ""
		}
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if !a.centered && a.width > 0 && a.height > 0 {
		a.centered = true
		a.vp.CenterOn(float64(a.world.Width)*TileSize, float64(a.world.Height)*TileSize, a.width, a.height)
	}
	a.controller.Update(a)
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.renderer.DrawWorld(screen, a.world, a.overrides, a.vp, a.level, a.selectedID)
	a.drawHUD(screen)
}

// Layout implements ebiten.Game.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (a *App) setLevel(level realm.Level) {
	if level == a.level || !level.IsValid() {
		return
	}
	a.level = level
	// Region ids are level-specific, so the old selection is meaningless.
	a.selectedID = ""
	a.hoveredID = ""
	logs.Debug("level switched", zap.String("level", level.String()))
}

func (a *App) clearSelection() {
	a.selectedID = ""
}

func (a *App) zoomAtCenter(factor float64) {
	a.vp.ZoomAt(factor, float64(a.width)/2, float64(a.height)/2)
	a.saveZoomPreference()
}

func (a *App) resetView() {
	a.vp.SetScale(DefaultScale)
	a.vp.CenterOn(float64(a.world.Width)*TileSize, float64(a.world.Height)*TileSize, a.width, a.height)
	a.saveZoomPreference()
}

// saveZoomPreference persists the current scale; save errors are not
// critical.
func (a *App) saveZoomPreference() {
	if err := a.cfg.SetViewScale(a.vp.Scale); err != nil {
		logs.Warn("could not save preferences", zap.Error(err))
	}
}

func (a *App) updateHover(sx, sy float64) {
	tile := TileAtScreen(a.world, a.vp, sx, sy)
	if tile == nil {
		a.hoveredID = ""
		return
	}
	a.hoveredID = tile.RegionIDAt(a.level)
}

func (a *App) selectAt(sx, sy float64) {
	tile := TileAtScreen(a.world, a.vp, sx, sy)
	if tile == nil {
		a.selectedID = ""
		return
	}
	id := tile.RegionIDAt(a.level)
	a.selectedID = id

	info, ok := realm.Info(a.world, a.level, id, a.overrides)
	if !ok {
		return
	}
	select {
	case a.events <- SelectionEvent{Level: a.level, ID: id, Info: info}:
	default:
		// Nobody is draining the channel; drop rather than stall the loop.
	}
	logs.Info("region selected",
		zap.String("level", a.level.String()),
		zap.String("id", id),
		zap.Int("tiles", info.TileCount))
}

func (a *App) dumpPartition() {
	const path = "realmview-partition.txt"
	if err := devtools.DumpPartition(a.world, a.overrides, path); err != nil {
		logs.Error("partition dump failed", zap.Error(err))
		return
	}
	logs.Info("partition dumped", zap.String("path", path))
}

// drawHUD renders the status panel: active level, selection details and the
// hovered region.
func (a *App) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("%s: %s", gotext.Get("Level"), gotext.Get(a.level.String())),
	}
	if a.selectedID != "" {
		if info, ok := realm.Info(a.world, a.level, a.selectedID, a.overrides); ok {
			lines = append(lines,
				fmt.Sprintf("%s: %s (%s)", gotext.Get("Selected"), info.Name, info.ID),
				fmt.Sprintf("%s: %d", gotext.Get("Tiles"), info.TileCount),
			)
			if info.Parent != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", gotext.Get("Parent"), info.Parent))
			}
		}
	}
	if a.hoveredID != "" && a.hoveredID != a.selectedID {
		lines = append(lines, fmt.Sprintf("%s: %s", gotext.Get("Hover"), a.hoveredID))
	}

	panelW := 0.0
	for _, line := range lines {
		if w, _ := text.Measure(line, a.hudFace, 0); w > panelW {
			panelW = w
		}
	}
	lineHeight := a.hudFace.Size + 6
	panelW += hudPadding * 2
	panelH := float64(len(lines))*lineHeight + hudPadding*2

	x := float32(hudMargin)
	y := float32(hudMargin)
	vector.DrawFilledRect(screen, x-hudBorderWidth, y-hudBorderWidth,
		float32(panelW)+hudBorderWidth*2, float32(panelH)+hudBorderWidth*2, colorPanelBorder, false)
	vector.DrawFilledRect(screen, x, y, float32(panelW), float32(panelH), colorPanelBackground, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x)+hudPadding, float64(y)+hudPadding+float64(i)*lineHeight)
		if i == 0 {
			op.ColorScale.ScaleWithColor(colorText)
		} else {
			op.ColorScale.ScaleWithColor(colorSubtle)
		}
		text.Draw(screen, line, a.hudFace, op)
	}
}
