// Package viewer provides the Ebiten-based interactive realm map viewer.
package viewer

import "image/color"

// Color palette for the viewer chrome. Region fills come from the resolver.
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}   // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}   // Darker for map area
	colorBoundary        = color.RGBA{235, 235, 245, 255} // Near-white region outlines
	colorSelection       = color.RGBA{255, 255, 255, 70} // Translucent highlight
	colorPanelBackground = color.RGBA{30, 30, 50, 220}   // Semi-transparent dark
	colorPanelBorder     = color.RGBA{120, 130, 180, 255}
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
)

// World geometry and zoom constraints.
const (
	// TileSize is the edge of one tile in world units; screen size is
	// TileSize times the viewport scale.
	TileSize = 20.0

	MinScale     = 0.6
	MaxScale     = 3.0
	DefaultScale = 1.0

	// boundaryStrokeWidth is in world units so outlines scale with zoom.
	boundaryStrokeWidth = TileSize / 10

	zoomKeyStep          = 1.25
	zoomWheelSensitivity = 1.0

	// A press-release pair that moved less than this many pixels counts
	// as a click rather than a drag.
	clickDragThreshold = 5.0
)

const (
	hudMargin      = 20
	hudPadding     = 10
	hudBorderWidth = 2
	hudFontSize    = 14.0
)
