package cave

import "testing"

// roomChunk builds two rooms joined by a corridor and flags the room
// footprints, wall ring included, the way the generator does.
//
//	PPPPPPPPPPPPP
//	P###P###P###P   room A: (1..3, 1..3)  room B: (1..3, 9..11)
//	P#.#P#.#P#.#P   corridor row 2, x 4..8, not room-flagged
//	P###P###P###P
//	PPPPPPPPPPPPP
func roomChunk(t *testing.T) *Chunk {
	c, _, _ := parseChunk(t,
		"PPPPPPPPPPPPP",
		"P###########P",
		"P#.#.....#.#P",
		"P###########P",
		"PPPPPPPPPPPPP",
	)
	flagRoom := func(y1, x1, y2, x2 int) {
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				c.FlagOn(y, x, SquareRoom)
			}
		}
	}
	flagRoom(1, 1, 3, 3)
	flagRoom(1, 9, 3, 11)
	// Open the room walls toward the corridor.
	c.SetFeat(2, 3, tFloor)
	c.SetFeat(2, 9, tFloor)
	return c
}

func TestLightRoomContainment(t *testing.T) {
	c := roomChunk(t)

	c.LightRoom(2, 2, true)

	// Room A is lit in full, ring included.
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if !c.IsGlow(y, x) {
				t.Errorf("room A square (%d,%d) not lit", y, x)
			}
		}
	}
	// The corridor and room B stay dark.
	for x := 4; x <= 8; x++ {
		if c.IsGlow(2, x) {
			t.Errorf("corridor square (2,%d) lit", x)
		}
	}
	for y := 1; y <= 3; y++ {
		for x := 9; x <= 11; x++ {
			if c.IsGlow(y, x) {
				t.Errorf("room B square (%d,%d) lit", y, x)
			}
		}
	}
}

func TestLightRoomOutsideRoom(t *testing.T) {
	c := roomChunk(t)

	// Lighting from a corridor square does nothing: the seed is not a room.
	c.LightRoom(2, 6, true)

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.IsGlow(y, x) {
				t.Fatalf("square (%d,%d) lit from a non-room seed", y, x)
			}
		}
	}
}

func TestUnlightRoomForgets(t *testing.T) {
	c := roomChunk(t)
	// Put a door in room A's ring and memorize the room.
	c.SetFeat(3, 2, tClosedDoor)
	c.LightRoom(2, 2, true)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			c.FlagOn(y, x, SquareMark)
		}
	}

	c.LightRoom(2, 2, false)

	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			if c.IsGlow(y, x) {
				t.Errorf("room square (%d,%d) still lit", y, x)
			}
		}
	}
	if c.IsMark(2, 2) {
		t.Error("boring floor should be forgotten when the room goes dark")
	}
	if !c.IsMark(3, 2) {
		t.Error("the door should stay memorized when the room goes dark")
	}
}

func TestLightRoomNotifies(t *testing.T) {
	c := roomChunk(t)
	sink := &recordingSink{}
	c.Events = sink

	c.LightRoom(2, 2, true)

	if sink.updates != 1 {
		t.Errorf("view update requests = %d, want 1", sink.updates)
	}
	if sink.redraws == 0 {
		t.Error("lit squares should be redrawn")
	}
}

func TestLightRoomWakesMonsters(t *testing.T) {
	c := roomChunk(t)

	smart := &testOccupant{asleep: true, smart: true}
	awake := &testOccupant{asleep: false}
	outside := &testOccupant{asleep: true, smart: true}
	c.Entities = &testEntities{occupants: map[Loc]*testOccupant{
		{Y: 2, X: 2}:  smart,
		{Y: 2, X: 1}:  awake,
		{Y: 2, X: 10}: outside,
	}}

	c.LightRoom(2, 2, true)

	if smart.Asleep() {
		t.Error("a smart monster always wakes when its room is lit")
	}
	if awake.woke {
		t.Error("an already awake monster got a wake call")
	}
	if !outside.Asleep() {
		t.Error("a monster in another room should sleep on")
	}
}
