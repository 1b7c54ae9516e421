package cave

import "math/rand"

// WizLight illuminates the whole level: every square next to an open area is
// perma-lit, and everything except plain floor is memorized. Used by the
// clairvoyance effect and the debug console.
func (c *Chunk) WizLight(full bool) {
	for y := 1; y < c.Height-1; y++ {
		for x := 1; x < c.Width-1; x++ {
			if c.SeemsLikeWall(y, x) {
				continue
			}

			for d := 0; d < 9; d++ {
				yy := y + DDY[d]
				xx := x + DDX[d]

				c.FlagOn(yy, xx, SquareGlow)

				if !c.IsFloor(yy, xx) || c.IsTrap(yy, xx) {
					c.FlagOn(yy, xx, SquareMark)
				}
			}
		}
	}

	if full {
		for y := 0; y < c.Height; y++ {
			for x := 0; x < c.Width; x++ {
				c.sink().SquareMemorized(y, x)
			}
		}
	}

	c.sink().RequestViewUpdate()
}

// WizDark forgets the level map: memorized terrain and trap detection are
// cleared everywhere.
func (c *Chunk) WizDark() {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.FlagOff(y, x, SquareMark)
			c.FlagOff(y, x, SquareDTrap)
			c.FlagOff(y, x, SquareDEdge)
		}
	}

	c.sink().RequestViewUpdate()
}

// Illuminate applies day or night lighting to a surface level. By day every
// square is lit and known; by night only interesting, non-floor squares stay
// that way.
func (c *Chunk) Illuminate(daytime bool) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if daytime || !c.IsFloor(y, x) {
				c.FlagOn(y, x, SquareGlow)
				c.FlagOn(y, x, SquareMark)
			} else {
				c.FlagOff(y, x, SquareGlow)
				c.FlagOff(y, x, SquareMark)
			}
		}
	}

	c.sink().RequestViewUpdate()
}

// Scatter picks a location within the given distance of (y,x), fully in
// bounds, optionally requiring line of sight from the source. Callers must
// make sure such a location exists; the search does not give up.
func Scatter(c *Chunk, rng *rand.Rand, y, x, d int, needLOS bool) (ny, nx int) {
	for {
		ny = randSpread(rng, y, d)
		nx = randSpread(rng, x, d)

		if !c.InBoundsFully(ny, nx) {
			continue
		}
		if d > 1 && Distance(y, x, ny, nx) > d {
			continue
		}
		if !needLOS {
			return ny, nx
		}
		if LOS(c, y, x, ny, nx) {
			return ny, nx
		}
	}
}

func randSpread(rng *rand.Rand, center, spread int) int {
	return center - spread + rng.Intn(2*spread+1)
}
