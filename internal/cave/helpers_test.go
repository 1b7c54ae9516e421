package cave

import (
	"math/rand"
	"testing"
)

// Test feature ids. The table below mirrors the shipped terrain data closely
// enough for the engine's predicates.
const (
	tNone = iota
	tFloor
	tGranite
	tPerm
	tOpenDoor
	tClosedDoor
	tLockedDoor
	tSecretDoor
	tMagma
	tMagmaGold
	tQuartz
	tRubble
	tUpStairs
	tDownStairs
	tBrokenDoor
)

// testFeatureSet resolves the test feature ids to their flags.
type testFeatureSet struct{}

var testFeatureFlags = map[int]FeatureFlag{
	tNone:       0,
	tFloor:      FlagPassable | FlagProject | FlagFloor,
	tGranite:    FlagWall | FlagRock | FlagGranite | FlagNoFlow,
	tPerm:       FlagWall | FlagRock | FlagGranite | FlagPermanent | FlagNoFlow,
	tOpenDoor:   FlagPassable | FlagProject | FlagDoorAny | FlagClosable | FlagInteresting,
	tClosedDoor: FlagDoorAny | FlagDoorClosed | FlagInteresting,
	tLockedDoor: FlagDoorAny | FlagDoorClosed | FlagDoorLocked | FlagInteresting,
	tSecretDoor: FlagWall | FlagRock | FlagGranite | FlagDoorAny | FlagNoFlow,
	tMagma:      FlagWall | FlagRock | FlagMagma | FlagNoFlow,
	tMagmaGold:  FlagWall | FlagRock | FlagMagma | FlagGold | FlagNoFlow,
	tQuartz:     FlagWall | FlagRock | FlagQuartz | FlagNoFlow,
	tRubble:     FlagRock | FlagNoFlow | FlagInteresting,
	tUpStairs:   FlagPassable | FlagProject | FlagStair | FlagUpstair | FlagPermanent | FlagInteresting,
	tDownStairs: FlagPassable | FlagProject | FlagStair | FlagDownstair | FlagPermanent | FlagInteresting,
	tBrokenDoor: FlagPassable | FlagProject | FlagDoorAny | FlagInteresting,
}

func (testFeatureSet) Has(feat int, flag FeatureFlag) bool {
	return testFeatureFlags[feat]&flag != 0
}

// parseChunk builds a chunk from a terrain picture. Legend:
//
//	. floor      # granite     P permanent   + closed door
//	' open door  s secret door % magma       q quartz
//	: rubble     < up stairs   > down stairs
//	@ floor, and the returned origin
//
// All rows must be the same length.
func parseChunk(t *testing.T, rows ...string) (c *Chunk, oy, ox int) {
	t.Helper()

	height := len(rows)
	width := len(rows[0])
	c = NewChunk(height, width, testFeatureSet{}, rand.New(rand.NewSource(1)))
	oy, ox = -1, -1

	for y, row := range rows {
		if len(row) != width {
			t.Fatalf("row %d has length %d, want %d", y, len(row), width)
		}
		for x, ch := range row {
			feat := tFloor
			switch ch {
			case '.':
			case '@':
				oy, ox = y, x
			case '#':
				feat = tGranite
			case 'P':
				feat = tPerm
			case '+':
				feat = tClosedDoor
			case '\'':
				feat = tOpenDoor
			case 's':
				feat = tSecretDoor
			case '%':
				feat = tMagma
			case 'q':
				feat = tQuartz
			case ':':
				feat = tRubble
			case '<':
				feat = tUpStairs
			case '>':
				feat = tDownStairs
			default:
				t.Fatalf("unknown terrain rune %q", ch)
			}
			c.SetFeat(y, x, feat)
		}
	}
	return c, oy, ox
}

// testObserver is a minimal observer for view tests.
type testObserver struct {
	y, x    int
	radius  int
	blinded bool
}

func (o *testObserver) Position() (int, int) { return o.y, o.x }
func (o *testObserver) Light() int           { return o.radius }
func (o *testObserver) Blind() bool          { return o.blinded }

// recordingSink counts event sink callbacks.
type recordingSink struct {
	redraws   int
	memorized int
	updates   int
	feelings  []int
}

func (s *recordingSink) RedrawSquare(y, x int)    { s.redraws++ }
func (s *recordingSink) SquareMemorized(y, x int) { s.memorized++ }
func (s *recordingSink) RequestViewUpdate()       { s.updates++ }
func (s *recordingSink) FeelingReached(count int) { s.feelings = append(s.feelings, count) }

// testOccupant is a minimal sleeping monster for wake tests.
type testOccupant struct {
	asleep bool
	smart  bool
	stupid bool
	woke   bool
}

func (m *testOccupant) Asleep() bool { return m.asleep }
func (m *testOccupant) Smart() bool  { return m.smart }
func (m *testOccupant) Stupid() bool { return m.stupid }
func (m *testOccupant) Wake()        { m.asleep = false; m.woke = true }

// testEntities places occupants and light sources at fixed squares.
type testEntities struct {
	occupants map[Loc]*testOccupant
	lights    []Loc
}

func (e *testEntities) EachLightSource(fn func(y, x int)) {
	for _, l := range e.lights {
		fn(l.Y, l.X)
	}
}

func (e *testEntities) OccupantAt(y, x int) Occupant {
	m, ok := e.occupants[Loc{Y: y, X: x}]
	if !ok {
		return nil
	}
	return m
}
