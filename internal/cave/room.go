package cave

import "github.com/zyedidia/generic/mapset"

// Wake chances, in percent, for monsters caught in a room illumination.
const (
	wakeChanceNormal = 25
	wakeChanceStupid = 10
	wakeChanceSmart  = 100
)

// pointSet is an ordered, duplicate-free collection of squares. The room
// flood appends newly discovered squares while scanning the collection by
// index, which gives breadth-first order without a separate queue.
type pointSet struct {
	pts     []Loc
	members mapset.Set[Loc]
}

func newPointSet(capacity int) *pointSet {
	return &pointSet{
		pts:     make([]Loc, 0, capacity),
		members: mapset.New[Loc](),
	}
}

func (ps *pointSet) contains(y, x int) bool {
	return ps.members.Has(Loc{Y: y, X: x})
}

func (ps *pointSet) add(y, x int) {
	ps.pts = append(ps.pts, Loc{Y: y, X: x})
	ps.members.Put(Loc{Y: y, X: x})
}

// roomAux collects a square into the flood set if it is part of a room and
// not already collected.
func (c *Chunk) roomAux(ps *pointSet, y, x int) {
	if !c.InBounds(y, x) {
		return
	}
	if ps.contains(y, x) {
		return
	}
	if !c.IsRoom(y, x) {
		return
	}
	ps.add(y, x)
}

// LightRoom illuminates (or darkens) the room containing the given square.
// The flood collects room squares in all eight directions; walls are
// collected, so they get lit too, but do not spread further.
func (c *Chunk) LightRoom(y1, x1 int, light bool) {
	ps := newPointSet(200)
	c.roomAux(ps, y1, x1)

	// While squares are in the queue, add their neighbors.
	for i := 0; i < len(ps.pts); i++ {
		y, x := ps.pts[i].Y, ps.pts[i].X

		// Walls get lit, but stop light.
		if !c.IsProjectable(y, x) {
			continue
		}

		c.roomAux(ps, y+1, x)
		c.roomAux(ps, y-1, x)
		c.roomAux(ps, y, x+1)
		c.roomAux(ps, y, x-1)

		c.roomAux(ps, y+1, x+1)
		c.roomAux(ps, y-1, x-1)
		c.roomAux(ps, y-1, x+1)
		c.roomAux(ps, y+1, x-1)
	}

	if light {
		c.lightSquares(ps)
	} else {
		c.unlightSquares(ps)
	}
}

// lightSquares perma-lights every square in the set and gives sleeping
// monsters caught in the light a chance to wake: smart ones always do,
// stupid ones rarely.
func (c *Chunk) lightSquares(ps *pointSet) {
	for _, l := range ps.pts {
		c.FlagOn(l.Y, l.X, SquareGlow)
	}

	c.sink().RequestViewUpdate()

	for _, l := range ps.pts {
		c.sink().RedrawSquare(l.Y, l.X)

		if c.Entities == nil {
			continue
		}
		mon := c.Entities.OccupantAt(l.Y, l.X)
		if mon == nil || !mon.Asleep() {
			continue
		}

		chance := wakeChanceNormal
		if mon.Stupid() {
			chance = wakeChanceStupid
		}
		if mon.Smart() {
			chance = wakeChanceSmart
		}

		if c.rng.Intn(100) < chance {
			mon.Wake()
		}
	}
}

// unlightSquares darkens every square in the set. Boring squares are also
// forgotten; interesting terrain stays memorized.
func (c *Chunk) unlightSquares(ps *pointSet) {
	for _, l := range ps.pts {
		c.FlagOff(l.Y, l.X, SquareGlow)

		if !c.IsInteresting(l.Y, l.X) {
			c.FlagOff(l.Y, l.X, SquareMark)
		}
	}

	c.sink().RequestViewUpdate()

	for _, l := range ps.pts {
		c.sink().RedrawSquare(l.Y, l.X)
	}
}
