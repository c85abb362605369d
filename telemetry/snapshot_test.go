package telemetry

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     42,
		WorldWidth:  1600,
		WorldHeight: 900,
		Tick:        1000,
		Projectiles: []ProjectileState{
			{
				ID:       1,
				Kind:     2,
				X:        150,
				Y:        250,
				Heading:  1.2,
				Speed:    220,
				Age:      3.5,
				Lifetime: 8.0,
				Behavior: "double_homing",
				Phase:    "pause",
			},
		},
		Casters: []CasterState{
			{ID: 9, X: 400, Y: 450, Heading: 0.5, Busy: true},
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if filepath.Base(path) != "snapshot_00001000.json" {
		t.Errorf("snapshot filename %q", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(snapshot, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", snapshot, loaded)
	}
}
