package realm

import (
	"testing"
)

func TestInfo_County(t *testing.T) {
	w := Build(8, 8, nil)
	info, ok := Info(w, LevelCounty, "c-0-0", nil)
	if !ok {
		t.Fatal("Info(c-0-0) absent, want present")
	}
	if info.TileCount != 1 {
		t.Errorf("county tile count = %d, want 1", info.TileCount)
	}
	if info.Parent != "d-0-0" {
		t.Errorf("county parent = %q, want d-0-0", info.Parent)
	}
	if info.Name != "c-0-0" {
		t.Errorf("default name = %q, want the id", info.Name)
	}
}

func TestInfo_KingdomAggregatesDuchies(t *testing.T) {
	w := Build(8, 8, nil)
	info, ok := Info(w, LevelKingdom, "k-0-0", nil)
	if !ok {
		t.Fatal("Info(k-0-0) absent, want present")
	}
	if info.TileCount != 64 {
		t.Errorf("kingdom tile count = %d, want 64", info.TileCount)
	}
	if info.Parent != EmpireID {
		t.Errorf("kingdom parent = %q, want %q", info.Parent, EmpireID)
	}
}

func TestInfo_KingdomToleratesMissingDuchy(t *testing.T) {
	w := Build(8, 8, nil)
	before, _ := Info(w, LevelKingdom, "k-0-0", nil)

	// A duchy id listed but absent from the table contributes zero.
	w.Kingdoms["k-0-0"].Duchies = append(w.Kingdoms["k-0-0"].Duchies, "d-ghost")
	after, ok := Info(w, LevelKingdom, "k-0-0", nil)
	if !ok {
		t.Fatal("Info failed with a dangling duchy id")
	}
	if after.TileCount != before.TileCount {
		t.Errorf("tile count = %d, want unchanged %d", after.TileCount, before.TileCount)
	}
}

func TestInfo_EmpireCoversWholeGrid(t *testing.T) {
	w := Build(6, 9, nil)
	info, ok := Info(w, LevelEmpire, EmpireID, nil)
	if !ok {
		t.Fatal("Info(empire) absent, want present")
	}
	if info.TileCount != 54 {
		t.Errorf("empire tile count = %d, want 54", info.TileCount)
	}
	if info.Parent != "" {
		t.Errorf("empire parent = %q, want none", info.Parent)
	}
}

func TestInfo_UnknownIDAbsent(t *testing.T) {
	w := Build(8, 8, nil)
	for _, level := range AllLevels() {
		if _, ok := Info(w, level, "nope", nil); ok {
			t.Errorf("Info(%v, nope) present, want absent", level)
		}
	}
	if _, ok := Info(w, Level(42), "c-0-0", nil); ok {
		t.Error("Info with invalid level present, want absent")
	}
}

func TestInfo_OrphanDuchyCountsDetachedCounty(t *testing.T) {
	ov := &RegionOverrides{
		Counties: map[string]RegionMeta{
			"c-0-0": {ParentMode: ParentNone},
		},
	}
	w := Build(8, 8, ov)

	info, ok := Info(w, LevelDuchy, "d-orphan-c-0-0", ov)
	if !ok {
		t.Fatal("Info(d-orphan-c-0-0) absent, want present")
	}
	if info.TileCount != 1 {
		t.Errorf("orphan duchy tile count = %d, want 1", info.TileCount)
	}
}

func TestInfo_NameOverride(t *testing.T) {
	ov := &RegionOverrides{
		Duchies: map[string]RegionMeta{
			"d-0-0": {Name: "Westmark"},
		},
	}
	w := Build(8, 8, ov)
	info, _ := Info(w, LevelDuchy, "d-0-0", ov)
	if info.Name != "Westmark" {
		t.Errorf("name = %q, want Westmark", info.Name)
	}
}

// Aggregated tile counts must match direct enumeration over the tile list
// at every level.
func TestInfo_CountsMatchDirectEnumeration(t *testing.T) {
	ov := &RegionOverrides{
		Counties: map[string]RegionMeta{
			"c-0-0": {ParentMode: ParentNone},
			"c-5-2": {ParentMode: ParentTo, ParentID: "d-9-9"},
		},
		Duchies: map[string]RegionMeta{
			"d-1-0": {ParentMode: ParentNone},
		},
	}
	w := Build(12, 10, ov)

	for _, level := range []Level{LevelCounty, LevelDuchy, LevelKingdom, LevelEmpire} {
		direct := make(map[string]int)
		for i := range w.Tiles {
			direct[w.Tiles[i].RegionIDAt(level)]++
		}
		for id, want := range direct {
			info, ok := Info(w, level, id, ov)
			if !ok {
				t.Errorf("Info(%v, %s) absent, want present", level, id)
				continue
			}
			if info.TileCount != want {
				t.Errorf("Info(%v, %s) tile count = %d, direct enumeration = %d",
					level, id, info.TileCount, want)
			}
		}
	}
}

func TestTile_RegionIDAt(t *testing.T) {
	w := Build(8, 8, nil)
	tile := w.TileAt(5, 3)
	if got := tile.RegionIDAt(LevelCounty); got != "c-5-3" {
		t.Errorf("county id = %q, want c-5-3", got)
	}
	if got := tile.RegionIDAt(LevelDuchy); got != "d-1-0" {
		t.Errorf("duchy id = %q, want d-1-0", got)
	}
	if got := tile.RegionIDAt(LevelKingdom); got != "k-0-0" {
		t.Errorf("kingdom id = %q, want k-0-0", got)
	}
	if got := tile.RegionIDAt(LevelEmpire); got != EmpireID {
		t.Errorf("empire id = %q, want %q", got, EmpireID)
	}
	if got := tile.RegionIDAt(Level(9)); got != "" {
		t.Errorf("invalid level id = %q, want empty", got)
	}
}
