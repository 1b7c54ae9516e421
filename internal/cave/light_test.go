package cave

import (
	"math/rand"
	"testing"
)

func TestWizLight(t *testing.T) {
	c, _, _ := parseChunk(t,
		"PPPPPPP",
		"P..#..P",
		"P..+..P",
		"P.....P",
		"PPPPPPP",
	)
	sink := &recordingSink{}
	c.Events = sink

	c.WizLight(false)

	if !c.IsGlow(3, 3) {
		t.Error("open floor should be lit")
	}
	if !c.IsGlow(1, 3) {
		t.Error("wall next to open floor should be lit")
	}
	if c.IsMark(3, 3) {
		t.Error("plain floor is not memorized by clairvoyance")
	}
	if !c.IsMark(2, 3) {
		t.Error("the door should be memorized")
	}
	if !c.IsMark(1, 3) {
		t.Error("walls next to open squares should be memorized")
	}
	if sink.updates != 1 {
		t.Errorf("view update requests = %d, want 1", sink.updates)
	}
	if sink.memorized != 0 {
		t.Error("partial clairvoyance must not push full map knowledge")
	}

	c.WizLight(true)
	if sink.memorized != c.Height*c.Width {
		t.Errorf("full clairvoyance memorized %d squares, want %d",
			sink.memorized, c.Height*c.Width)
	}
}

func TestWizDark(t *testing.T) {
	c, _, _ := parseChunk(t,
		"PPPP",
		"P..P",
		"PPPP",
	)
	c.FlagOn(1, 1, SquareMark|SquareDTrap|SquareDEdge|SquareGlow)

	c.WizDark()

	if c.IsMark(1, 1) || c.IsDTrap(1, 1) || c.IsDEdge(1, 1) {
		t.Error("map memory and trap detection should be gone")
	}
	if !c.IsGlow(1, 1) {
		t.Error("forgetting the map does not extinguish lights")
	}
}

func TestIlluminate(t *testing.T) {
	c, _, _ := parseChunk(t,
		"PPPP",
		"P.+P",
		"PPPP",
	)

	c.Illuminate(true)
	if !c.IsGlow(1, 1) || !c.IsMark(1, 1) {
		t.Error("daytime lights and memorizes the floor")
	}

	c.Illuminate(false)
	if c.IsGlow(1, 1) || c.IsMark(1, 1) {
		t.Error("night darkens and forgets plain floor")
	}
	if !c.IsGlow(1, 2) || !c.IsMark(1, 2) {
		t.Error("night keeps non-floor terrain lit and known")
	}
}

func TestScatter(t *testing.T) {
	c := openChunk(t, 12, 12)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		y, x := Scatter(c, rng, 6, 6, 3, false)
		if !c.InBoundsFully(y, x) {
			t.Fatalf("scatter left the interior: (%d,%d)", y, x)
		}
		if Distance(6, 6, y, x) > 3 {
			t.Fatalf("scatter too far: (%d,%d)", y, x)
		}
	}

	// Near the border the candidates clamp to the interior.
	for i := 0; i < 50; i++ {
		y, x := Scatter(c, rng, 1, 1, 2, false)
		if !c.InBoundsFully(y, x) {
			t.Fatalf("scatter left the interior: (%d,%d)", y, x)
		}
	}

	// With line of sight required, a square behind a wall is never picked.
	for y := 4; y <= 8; y++ {
		c.SetFeat(y, 8, tGranite)
	}
	for i := 0; i < 100; i++ {
		y, x := Scatter(c, rng, 6, 6, 3, true)
		if x > 8 {
			t.Fatalf("scatter picked (%d,%d) behind the wall", y, x)
		}
	}
}
