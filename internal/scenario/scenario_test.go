package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTaiwanStrait_Roster(t *testing.T) {
	s := TaiwanStrait()

	if len(s.BlueForce.Units) != 8 {
		t.Errorf("expected 8 blue units, got %d", len(s.BlueForce.Units))
	}
	if len(s.RedForce.Units) != 8 {
		t.Errorf("expected 8 red units, got %d", len(s.RedForce.Units))
	}
	if len(s.Objectives) != 4 {
		t.Errorf("expected 4 objectives, got %d", len(s.Objectives))
	}
	for _, u := range s.BlueForce.Units {
		if u.Side != SideBlue {
			t.Errorf("blue unit %s has side %s", u.ID, u.Side)
		}
		if u.Status != StatusReady {
			t.Errorf("unit %s should start ready, got %s", u.ID, u.Status)
		}
	}
	if s.Terrain["taiwan_strait"].WidthKM != 180 {
		t.Errorf("unexpected strait width %v", s.Terrain["taiwan_strait"].WidthKM)
	}
}

func TestForce_Helpers(t *testing.T) {
	s := TaiwanStrait()

	air := s.BlueForce.UnitsByDomain(DomainAir)
	if len(air) != 3 {
		t.Errorf("expected 3 blue air units, got %d", len(air))
	}

	s.BlueForce.Units[0].Status = StatusDestroyed
	active := s.BlueForce.ActiveUnits()
	if len(active) != 7 {
		t.Errorf("expected 7 active units after one destroyed, got %d", len(active))
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	s, err := reg.Get("taiwan_strait")
	if err != nil {
		t.Fatalf("Get(taiwan_strait): %v", err)
	}
	if s.Name != "Taiwan Strait Crisis" {
		t.Errorf("unexpected scenario name %q", s.Name)
	}

	if _, err := reg.Get("atlantic"); err == nil {
		t.Fatal("expected error for unknown scenario")
	} else if !strings.Contains(err.Error(), "taiwan_strait") {
		t.Errorf("error should list available scenarios, got %q", err)
	}
}

func TestLoadValidatesAgainstSchema(t *testing.T) {
	schema := filepath.Join("..", "..", "schemas", "scenario.cue")
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := TaiwanStrait().Save(good); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := Load(good, schema); err != nil {
		t.Fatalf("valid scenario rejected: %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, `
name: broken
blue_force:
  name: Blue
  units:
    - id: b1
      name: Squadron
      domain: submarine
      position: {lat: 200, lon: 0}
red_force:
  name: Red
  units: []
objectives: []
`)
	if _, err := Load(bad, schema); err == nil {
		t.Fatal("invalid domain and latitude should fail schema validation")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	orig := TaiwanStrait()
	if err := orig.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != orig.Name {
		t.Errorf("name mismatch: %q vs %q", loaded.Name, orig.Name)
	}
	if len(loaded.BlueForce.Units) != len(orig.BlueForce.Units) {
		t.Errorf("blue unit count mismatch: %d vs %d", len(loaded.BlueForce.Units), len(orig.BlueForce.Units))
	}
	if loaded.BlueForce.Units[0].Position.GridRef != "TW-1001" {
		t.Errorf("grid ref lost in round trip: %q", loaded.BlueForce.Units[0].Position.GridRef)
	}
	if loaded.BlueForce.Resources["missiles"] != 500 {
		t.Errorf("resources lost in round trip: %v", loaded.BlueForce.Resources)
	}
}
