package realm

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRegionMeta_JSONParentUnspecified(t *testing.T) {
	data, err := json.Marshal(RegionMeta{Name: "Westmark"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "parentId") {
		t.Errorf("unspecified parent must omit the parentId key, got %s", data)
	}

	var decoded RegionMeta
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ParentMode != ParentUnspecified {
		t.Errorf("ParentMode = %v, want ParentUnspecified", decoded.ParentMode)
	}
}

func TestRegionMeta_JSONParentNone(t *testing.T) {
	data, err := json.Marshal(RegionMeta{ParentMode: ParentNone})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"parentId":null`) {
		t.Errorf("explicit none must serialize as parentId:null, got %s", data)
	}

	var decoded RegionMeta
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ParentMode != ParentNone {
		t.Errorf("ParentMode = %v, want ParentNone", decoded.ParentMode)
	}
}

func TestRegionMeta_JSONParentSet(t *testing.T) {
	data, err := json.Marshal(RegionMeta{ParentMode: ParentTo, ParentID: "d-1-1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded RegionMeta
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ParentMode != ParentTo || decoded.ParentID != "d-1-1" {
		t.Errorf("decoded parent = (%v, %q), want (ParentTo, d-1-1)", decoded.ParentMode, decoded.ParentID)
	}
}

func TestRegionMeta_JSONMalformedParentTreatedAsUnspecified(t *testing.T) {
	var decoded RegionMeta
	if err := json.Unmarshal([]byte(`{"name":"X","parentId":42}`), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ParentMode != ParentUnspecified {
		t.Errorf("ParentMode = %v, want ParentUnspecified for non-string parentId", decoded.ParentMode)
	}
	if decoded.Name != "X" {
		t.Errorf("Name = %q, want X", decoded.Name)
	}
}

func TestLookup_EmptyMetaIsAbsent(t *testing.T) {
	ov := &RegionOverrides{
		Counties: map[string]RegionMeta{
			"c-0-0": {Name: "  ", Color: ""},
		},
	}
	if _, ok := ov.Lookup(LevelCounty, "c-0-0"); ok {
		t.Error("override with only blank fields must be treated as absent")
	}

	ov.Counties["c-0-0"] = RegionMeta{ParentMode: ParentNone}
	if _, ok := ov.Lookup(LevelCounty, "c-0-0"); !ok {
		t.Error("an explicit none parent alone must count as an override")
	}
}

func TestLookup_NilReceiver(t *testing.T) {
	var ov *RegionOverrides
	if _, ok := ov.Lookup(LevelDuchy, "d-0-0"); ok {
		t.Error("nil overrides must report absent")
	}
}

func TestLookup_Empire(t *testing.T) {
	ov := &RegionOverrides{Empire: &RegionMeta{Name: "The Realm"}}
	meta, ok := ov.Lookup(LevelEmpire, EmpireID)
	if !ok || meta.Name != "The Realm" {
		t.Errorf("Lookup(empire) = (%v, %v), want the singleton override", meta, ok)
	}
}

func TestSet_PrunesOnWrite(t *testing.T) {
	ov := &RegionOverrides{}
	ov.Set(LevelCounty, "c-0-0", RegionMeta{Name: "Origin"})
	if _, ok := ov.Counties["c-0-0"]; !ok {
		t.Fatal("Set did not store the override")
	}

	ov.Set(LevelCounty, "c-0-0", RegionMeta{})
	if _, ok := ov.Counties["c-0-0"]; ok {
		t.Error("Set with a zero meta must remove the entry")
	}

	ov.Set(LevelEmpire, "", RegionMeta{Name: "The Realm"})
	if ov.Empire == nil {
		t.Fatal("Set did not store the empire override")
	}
	ov.Set(LevelEmpire, "", RegionMeta{})
	if ov.Empire != nil {
		t.Error("Set with a zero meta must clear the empire override")
	}
}

func TestSnapshot_DropsNoOpEntries(t *testing.T) {
	ov := &RegionOverrides{
		Counties: map[string]RegionMeta{
			"c-0-0": {Name: "Origin"},
			"c-1-1": {},
		},
		Duchies: map[string]RegionMeta{
			"d-0-0": {Name: " "},
		},
	}
	snap := ov.Snapshot()
	if len(snap.Counties) != 1 {
		t.Errorf("snapshot counties = %v, want only c-0-0", snap.Counties)
	}
	if snap.Duchies != nil {
		t.Errorf("snapshot duchies = %v, want nil after pruning", snap.Duchies)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "duchies") {
		t.Errorf("pruned snapshot must not serialize empty tables, got %s", data)
	}
}

func TestClone_IsolatedFromOriginal(t *testing.T) {
	orig := &RegionOverrides{
		Counties: map[string]RegionMeta{"c-0-0": {Name: "Origin"}},
		Empire:   &RegionMeta{Name: "The Realm"},
	}
	cp := orig.Clone()
	cp.Counties["c-0-0"] = RegionMeta{Name: "Changed"}
	cp.Empire.Name = "Other"

	if orig.Counties["c-0-0"].Name != "Origin" {
		t.Error("mutating the clone changed the original county override")
	}
	if orig.Empire.Name != "The Realm" {
		t.Error("mutating the clone changed the original empire override")
	}
}

// Applying an override, exporting the pruned snapshot through JSON and
// re-applying it to a fresh default must reproduce the same resolved info.
func TestOverrides_RoundTripReproducesInfo(t *testing.T) {
	ov := &RegionOverrides{}
	ov.Set(LevelCounty, "c-0-0", RegionMeta{
		Name:       "Origin",
		Color:      "oklch(60% 0.1 200)",
		ParentMode: ParentNone,
	})

	worldA := Build(8, 8, ov)
	infoA, ok := Info(worldA, LevelCounty, "c-0-0", ov)
	if !ok {
		t.Fatal("Info on original overrides failed")
	}

	data, err := json.Marshal(ov.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	restored := &RegionOverrides{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	worldB := Build(8, 8, restored)
	infoB, ok := Info(worldB, LevelCounty, "c-0-0", restored)
	if !ok {
		t.Fatal("Info on restored overrides failed")
	}

	if infoA != infoB {
		t.Errorf("round-tripped info differs:\n  before: %+v\n  after:  %+v", infoA, infoB)
	}
}
