package realm

import (
	"sort"
	"strings"
)

// Build constructs the world map for a grid of the given dimensions with the
// supplied overrides applied. It is a pure function: the same inputs always
// yield a structurally identical map. Build never fails; malformed or
// dangling overrides degrade to well-defined defaults, and non-positive
// dimensions produce an empty map with just the root empire.
func Build(width, height int, overrides *RegionOverrides) *WorldMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	w := &WorldMap{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, width*height),
		Counties: make(map[string]*County, width*height),
		Duchies:  make(map[string]*Duchy),
		Kingdoms: make(map[string]*Kingdom),
		Empire:   &Empire{ID: EmpireID},
	}

	// Pass 1: register every tile under its natural county. Counties cover
	// exactly one tile, so membership is trivially a strict partition.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tile := Tile{
				ID:     TileID(x, y),
				X:      x,
				Y:      y,
				County: CountyID(x, y),
				Empire: EmpireID,
			}
			w.Tiles[y*width+x] = tile
			w.Counties[tile.County] = &County{
				ID:    tile.County,
				Tiles: []string{tile.ID},
			}
		}
	}

	// Pass 2: resolve every county's duchy parent. Row-major tile order
	// keeps the pass deterministic. A parent id that does not exist yet is
	// materialized; an explicit "none" synthesizes a sole-member orphan.
	for i := range w.Tiles {
		tile := &w.Tiles[i]
		county := w.Counties[tile.County]
		county.Duchy = resolveParent(
			overrides, LevelCounty, county.ID,
			NaturalDuchyID(tile.X, tile.Y),
			OrphanDuchyID(county.ID),
		)
		if _, ok := w.Duchies[county.Duchy]; !ok {
			w.Duchies[county.Duchy] = &Duchy{ID: county.Duchy}
		}
	}

	// Pass 3: resolve every duchy's kingdom parent. Duchies synthesized by
	// pass 2 have no grid position, so their natural default is an orphan
	// kingdom derived from their own id.
	for _, id := range sortedDuchyIDs(w) {
		duchy := w.Duchies[id]
		natural := OrphanKingdomID(id)
		if dx, dy, ok := parseDuchyCoords(id); ok {
			natural = NaturalKingdomID(dx, dy)
		}
		duchy.Kingdom = resolveParent(
			overrides, LevelDuchy, id,
			natural,
			OrphanKingdomID(id),
		)
		if _, ok := w.Kingdoms[duchy.Kingdom]; !ok {
			w.Kingdoms[duchy.Kingdom] = &Kingdom{ID: duchy.Kingdom}
		}
	}

	// Kingdoms always roll up to the single empire; only the empire's own
	// metadata can be overridden, never its place in the hierarchy.

	// Pass 4: re-derive membership lists from the resolved parent pointers.
	// Children sets are derived rather than stored independently so the two
	// can never drift apart.
	for _, id := range sortedCountyIDs(w) {
		county := w.Counties[id]
		duchy := w.Duchies[county.Duchy]
		duchy.Counties = append(duchy.Counties, id)
	}
	for _, id := range sortedDuchyIDs(w) {
		duchy := w.Duchies[id]
		kingdom := w.Kingdoms[duchy.Kingdom]
		kingdom.Duchies = append(kingdom.Duchies, id)
	}
	for _, id := range sortedKingdomIDs(w) {
		w.Empire.Kingdoms = append(w.Empire.Kingdoms, id)
	}

	// Finally stamp each tile with its resolved duchy and kingdom.
	for i := range w.Tiles {
		tile := &w.Tiles[i]
		county := w.Counties[tile.County]
		tile.Duchy = county.Duchy
		tile.Kingdom = w.Duchies[county.Duchy].Kingdom
	}

	return w
}

// resolveParent applies the tri-state parent override for one region:
// explicit id, explicit none (orphan), or absence (natural default). An
// explicit id that is blank after trimming is malformed and falls back to
// the natural default.
func resolveParent(overrides *RegionOverrides, level Level, id, natural, orphan string) string {
	meta, ok := overrides.Lookup(level, id)
	if !ok {
		return natural
	}
	switch meta.ParentMode {
	case ParentNone:
		return orphan
	case ParentTo:
		if trimmed := strings.TrimSpace(meta.ParentID); trimmed != "" {
			return trimmed
		}
		return natural
	}
	return natural
}

func sortedCountyIDs(w *WorldMap) []string {
	ids := make([]string, 0, len(w.Counties))
	for id := range w.Counties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedDuchyIDs(w *WorldMap) []string {
	ids := make([]string, 0, len(w.Duchies))
	for id := range w.Duchies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKingdomIDs(w *WorldMap) []string {
	ids := make([]string, 0, len(w.Kingdoms))
	for id := range w.Kingdoms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
