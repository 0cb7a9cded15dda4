// Package realm models a rectangular tile grid partitioned into four nested
// administrative levels: county, duchy, kingdom and empire. The partition is
// derived deterministically from the grid dimensions and a fixed tiling
// factor, then adjusted by caller-supplied overrides.
package realm

import (
	"fmt"
	"strconv"
	"strings"
)

// Level identifies one of the four hierarchy tiers.
type Level int

// Hierarchy levels, innermost first.
const (
	LevelCounty Level = iota
	LevelDuchy
	LevelKingdom
	LevelEmpire
)

// AllLevels returns the hierarchy levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelCounty, LevelDuchy, LevelKingdom, LevelEmpire}
}

// IsValid reports whether l is one of the four hierarchy levels.
func (l Level) IsValid() bool {
	return l >= LevelCounty && l <= LevelEmpire
}

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelCounty:
		return "county"
	case LevelDuchy:
		return "duchy"
	case LevelKingdom:
		return "kingdom"
	case LevelEmpire:
		return "empire"
	}
	return "unknown"
}

// Parent returns the next level up. Empire has no parent level.
func (l Level) Parent() (Level, bool) {
	if l >= LevelCounty && l < LevelEmpire {
		return l + 1, true
	}
	return 0, false
}

// Tiling factors. A county covers exactly one tile, a duchy a block of
// counties and a kingdom a block of duchies. These are tunable constants;
// region ids are derived from them but callers never compute ids themselves.
const (
	countiesPerDuchy  = 4 // duchy spans a 4x4 block of counties
	duchiesPerKingdom = 2 // kingdom spans a 2x2 block of duchies
)

// EmpireID is the id of the single root region.
const EmpireID = "e-0"

// TileID returns the id of the tile at grid position (x, y).
func TileID(x, y int) string {
	return fmt.Sprintf("t-%d-%d", x, y)
}

// CountyID returns the natural county id for the tile at (x, y).
func CountyID(x, y int) string {
	return fmt.Sprintf("c-%d-%d", x, y)
}

// NaturalDuchyID returns the natural duchy id for the tile at (x, y).
func NaturalDuchyID(x, y int) string {
	return fmt.Sprintf("d-%d-%d", x/countiesPerDuchy, y/countiesPerDuchy)
}

// NaturalKingdomID returns the natural kingdom id for duchy grid position
// (dx, dy).
func NaturalKingdomID(dx, dy int) string {
	return fmt.Sprintf("k-%d-%d", dx/duchiesPerKingdom, dy/duchiesPerKingdom)
}

// OrphanDuchyID returns the synthesized duchy id for a county explicitly
// detached from its natural parent.
func OrphanDuchyID(countyID string) string {
	return "d-orphan-" + countyID
}

// OrphanKingdomID returns the synthesized kingdom id for a duchy explicitly
// detached from its natural parent, or for a duchy whose id carries no
// natural grid position.
func OrphanKingdomID(duchyID string) string {
	return "k-orphan-" + duchyID
}

// parseDuchyCoords recovers the duchy grid position from a natural duchy id.
// Synthesized ids (orphans, arbitrary override targets) have no position.
func parseDuchyCoords(id string) (dx, dy int, ok bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "d" {
		return 0, 0, false
	}
	dx, errX := strconv.Atoi(parts[1])
	dy, errY := strconv.Atoi(parts[2])
	if errX != nil || errY != nil || dx < 0 || dy < 0 {
		return 0, 0, false
	}
	return dx, dy, true
}

// Tile is a single grid cell. Tiles are immutable once the world map is
// built; the region ids record the resolved owner at every level.
type Tile struct {
	ID string
	X  int
	Y  int

	County  string
	Duchy   string
	Kingdom string
	Empire  string
}

// RegionIDAt returns the id of the tile's owning region at the given level.
// An invalid level yields the empty string.
func (t *Tile) RegionIDAt(level Level) string {
	switch level {
	case LevelCounty:
		return t.County
	case LevelDuchy:
		return t.Duchy
	case LevelKingdom:
		return t.Kingdom
	case LevelEmpire:
		return t.Empire
	}
	return ""
}

// County is the innermost region: a single tile's administrative unit.
type County struct {
	ID    string
	Tiles []string // tile ids, sorted
	Duchy string   // resolved parent id
}

// Duchy groups counties under a kingdom.
type Duchy struct {
	ID       string
	Counties []string // derived from resolved county parents, sorted
	Kingdom  string   // resolved parent id
}

// Kingdom groups duchies under the empire.
type Kingdom struct {
	ID      string
	Duchies []string // derived from resolved duchy parents, sorted
}

// Empire is the single root of the hierarchy.
type Empire struct {
	ID       string
	Kingdoms []string // sorted
}

// WorldMap is the complete built partition for one grid size and override
// set. It owns every region entity and is immutable after construction; any
// edit happens by changing the overrides input and rebuilding.
type WorldMap struct {
	Width  int
	Height int

	// Tiles is row-major with length Width*Height.
	Tiles []Tile

	Counties map[string]*County
	Duchies  map[string]*Duchy
	Kingdoms map[string]*Kingdom
	Empire   *Empire
}

// TileAt returns the tile at (x, y), or nil when out of bounds.
func (w *WorldMap) TileAt(x, y int) *Tile {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return nil
	}
	return &w.Tiles[y*w.Width+x]
}
