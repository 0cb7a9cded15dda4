package realm

// RegionInfo is a read-only projection of one region, computed on demand.
type RegionInfo struct {
	ID        string
	Level     Level
	TileCount int

	// Parent is the resolved parent id; empty for the empire.
	Parent string

	Name  string
	Color OKLCH
}

// Info resolves the aggregate view of a region: tile count, resolved parent
// and effective name/color. Unknown ids yield ok=false, never an error.
func Info(w *WorldMap, level Level, id string, overrides *RegionOverrides) (RegionInfo, bool) {
	if w == nil || !level.IsValid() {
		return RegionInfo{}, false
	}

	info := RegionInfo{ID: id, Level: level}

	switch level {
	case LevelCounty:
		county, ok := w.Counties[id]
		if !ok {
			return RegionInfo{}, false
		}
		info.TileCount = len(county.Tiles)
		info.Parent = county.Duchy
	case LevelDuchy:
		duchy, ok := w.Duchies[id]
		if !ok {
			return RegionInfo{}, false
		}
		info.TileCount = duchyTileCount(w, duchy)
		info.Parent = duchy.Kingdom
	case LevelKingdom:
		kingdom, ok := w.Kingdoms[id]
		if !ok {
			return RegionInfo{}, false
		}
		// A listed duchy missing from the duchy table contributes zero
		// tiles rather than failing the aggregate.
		for _, did := range kingdom.Duchies {
			if duchy, ok := w.Duchies[did]; ok {
				info.TileCount += duchyTileCount(w, duchy)
			}
		}
		info.Parent = EmpireID
	case LevelEmpire:
		if id != w.Empire.ID {
			return RegionInfo{}, false
		}
		// The single root covers every tile by definition.
		info.TileCount = w.Width * w.Height
	}

	info.Name = id
	if meta, ok := overrides.Lookup(level, id); ok && meta.Name != "" {
		info.Name = meta.Name
	}
	info.Color = ResolveColor(level, id, overrides, w)

	return info, true
}

func duchyTileCount(w *WorldMap, duchy *Duchy) int {
	n := 0
	for _, cid := range duchy.Counties {
		if county, ok := w.Counties[cid]; ok {
			n += len(county.Tiles)
		}
	}
	return n
}
