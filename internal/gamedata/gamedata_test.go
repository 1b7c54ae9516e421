package gamedata

import (
	"math/rand"
	"testing"

	"github.com/fruviad/angband/internal/cave"
)

func TestLoadFeatureTable(t *testing.T) {
	table, err := LoadFeatureTable()
	if err != nil {
		t.Fatalf("LoadFeatureTable failed: %v", err)
	}
	if table.Count() == 0 {
		t.Fatal("expected at least one feature definition")
	}
	// Feature ids must be dense so they can index chunk terrain arrays.
	for i := 0; i < table.Count(); i++ {
		def := table.Get(i)
		if def == nil {
			t.Fatalf("missing feature definition for id %d", i)
		}
		if def.ID != i {
			t.Errorf("feature %q has id %d at index %d", def.Name, def.ID, i)
		}
	}
}

func TestFeatureTableFlags(t *testing.T) {
	table := MustLoadFeatureTable()

	tests := []struct {
		name string
		feat int
		flag cave.FeatureFlag
		want bool
	}{
		{"floor is passable", FeatFloor, cave.FlagPassable, true},
		{"floor is projectable", FeatFloor, cave.FlagProject, true},
		{"floor does not block flow", FeatFloor, cave.FlagNoFlow, false},
		{"granite is a wall", FeatGranite, cave.FlagWall, true},
		{"granite blocks flow", FeatGranite, cave.FlagNoFlow, true},
		{"granite is not passable", FeatGranite, cave.FlagPassable, false},
		{"perm wall is permanent", FeatPerm, cave.FlagPermanent, true},
		{"closed door is a door", FeatClosedDoor, cave.FlagDoorAny, true},
		{"closed door lets flow through", FeatClosedDoor, cave.FlagNoFlow, false},
		{"open door is closable", FeatOpenDoor, cave.FlagClosable, true},
		{"locked door is locked", FeatLockedDoor, cave.FlagDoorLocked, true},
		{"jammed door is jammed", FeatJammedDoor, cave.FlagDoorJammed, true},
		{"secret door looks like rock", FeatSecretDoor, cave.FlagRock, true},
		{"secret door is a door", FeatSecretDoor, cave.FlagDoorAny, true},
		{"up stairs go up", FeatLessStairs, cave.FlagUpstair, true},
		{"down stairs go down", FeatMoreStairs, cave.FlagDownstair, true},
		{"stairs are interesting", FeatMoreStairs, cave.FlagInteresting, true},
		{"magma gold has treasure", FeatMagmaGold, cave.FlagGold, true},
		{"plain quartz has no treasure", FeatQuartz, cave.FlagGold, false},
		{"rubble is not a wall", FeatRubble, cave.FlagWall, false},
		{"rubble blocks flow", FeatRubble, cave.FlagNoFlow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Has(tt.feat, tt.flag)
			if got != tt.want {
				t.Errorf("Has(%d, %v) = %v, want %v", tt.feat, tt.flag, got, tt.want)
			}
		})
	}
}

func TestFeatureTableUnknownFeat(t *testing.T) {
	table := MustLoadFeatureTable()
	if table.Has(-1, cave.FlagWall) {
		t.Error("negative feature id should have no flags")
	}
	if table.Has(table.Count(), cave.FlagWall) {
		t.Error("out-of-range feature id should have no flags")
	}
}

func TestLoadMonsterRegistry(t *testing.T) {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		t.Fatalf("LoadMonsterRegistry failed: %v", err)
	}
	if registry.Count() == 0 {
		t.Fatal("expected at least one monster race")
	}
	for _, m := range registry.All() {
		if m.ID == "" {
			t.Error("monster with empty id")
		}
		if m.HP <= 0 {
			t.Errorf("monster %q has non-positive hp %d", m.ID, m.HP)
		}
		if m.SpawnWeight <= 0 {
			t.Errorf("monster %q has non-positive spawn weight", m.ID)
		}
		if len(m.Glyph) == 0 {
			t.Errorf("monster %q has no glyph", m.ID)
		}
	}
}

func TestMonsterRegistryGetByID(t *testing.T) {
	registry := MustLoadMonsterRegistry()
	kobold := registry.GetByID("kobold")
	if kobold == nil {
		t.Fatal("expected kobold in registry")
	}
	if kobold.Name != "Kobold" {
		t.Errorf("kobold name = %q", kobold.Name)
	}
	if registry.GetByID("no-such-race") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestSpawnRandomWeighting(t *testing.T) {
	registry := MustLoadMonsterRegistry()
	rng := rand.New(rand.NewSource(42))

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		def := registry.SpawnRandom(rng)
		if def == nil {
			t.Fatal("SpawnRandom returned nil")
		}
		counts[def.ID]++
	}

	// Every race should appear over a large sample.
	for _, m := range registry.All() {
		if counts[m.ID] == 0 {
			t.Errorf("race %q never spawned in 10000 rolls", m.ID)
		}
	}

	// The heaviest race should spawn more often than the lightest.
	if counts["kobold"] <= counts["will-o-wisp"] {
		t.Errorf("expected kobolds (%d) to outnumber wisps (%d)",
			counts["kobold"], counts["will-o-wisp"])
	}
}

func TestMonsterFlags(t *testing.T) {
	registry := MustLoadMonsterRegistry()

	wisp := registry.GetByID("will-o-wisp")
	if wisp == nil {
		t.Fatal("expected will-o-wisp in registry")
	}
	if !wisp.HasLight() {
		t.Error("wisp should carry light")
	}
	if !wisp.Smart() {
		t.Error("wisp should be smart")
	}

	rat := registry.GetByID("giant-rat")
	if rat == nil {
		t.Fatal("expected giant-rat in registry")
	}
	if !rat.Stupid() {
		t.Error("rat should be stupid")
	}
	if rat.HasLight() {
		t.Error("rat should not carry light")
	}
}

func TestParseHexColor(t *testing.T) {
	color, err := ParseHexColor("#ff8800")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	r, g, b := color.RGB()
	if r != 0xff || g != 0x88 || b != 0x00 {
		t.Errorf("got rgb(%d, %d, %d)", r, g, b)
	}

	if _, err := ParseHexColor("ff8800"); err == nil {
		t.Error("expected error for missing # prefix")
	}
	if _, err := ParseHexColor("#zzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}
