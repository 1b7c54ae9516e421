package cave

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fruviad/angband/internal/telemetry"
)

// feeling1 is the number of feeling squares the observer must see before the
// level feeling is announced.
const feeling1 = 10

// ForgetView clears the view and seen state of every square, redrawing the
// squares that change.
func (c *Chunk) ForgetView() {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if !c.IsView(y, x) {
				continue
			}
			c.FlagOff(y, x, SquareView)
			c.FlagOff(y, x, SquareSeen)
			c.sink().RedrawSquare(y, x)
		}
	}
}

// markWasSeen saves the old seen state and clears view and seen everywhere,
// so the pass can later report exactly the squares that changed.
func (c *Chunk) markWasSeen() {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.IsSeen(y, x) {
				c.FlagOn(y, x, SquareWasSeen)
			}
			c.FlagOff(y, x, SquareView)
			c.FlagOff(y, x, SquareSeen)
		}
	}
}

// addMonsterLights marks the 3x3 box around every light-carrying creature
// viewable and seen, as far as the observer can actually see it.
func (c *Chunk) addMonsterLights(py, px int) {
	if c.Entities == nil {
		return
	}

	c.Entities.EachLightSource(func(my, mx int) {
		inLOS := LOS(c, py, px, my, mx)

		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				sy := my + i
				sx := mx + j
				if !c.InBounds(sy, sx) {
					continue
				}

				// A hidden light source lights only open squares;
				// otherwise a torch behind a wall would expose the
				// wall's far side.
				if !inLOS && !c.IsProjectable(sy, sx) {
					continue
				}

				if Distance(py, px, sy, sx) > MaxSight {
					continue
				}

				if !LOS(c, py, px, sy, sx) {
					continue
				}

				c.FlagOn(sy, sx, SquareView)
				c.FlagOn(sy, sx, SquareSeen)
			}
		}
	})
}

// becomeViewable marks a square viewable, and seen when lit by the
// observer's light or by permanent glow. For a glowing wall the glow check
// moves one step toward the observer, since glow on a wall means the face
// toward the lit side is lit.
func (c *Chunk) becomeViewable(y, x int, lit bool, py, px int) {
	yc, xc := y, x

	if c.IsView(y, x) {
		return
	}

	c.FlagOn(y, x, SquareView)

	if lit {
		c.FlagOn(y, x, SquareSeen)
	}

	if c.IsGlow(y, x) {
		if c.IsWall(y, x) {
			if x < px {
				xc = x + 1
			} else if x > px {
				xc = x - 1
			}
			if y < py {
				yc = y + 1
			} else if y > py {
				yc = y - 1
			}
		}
		if c.IsGlow(yc, xc) {
			c.FlagOn(y, x, SquareSeen)
		}
	}
}

// updateViewOne decides visibility for one square. Walls borrow the
// sightline of the square one step toward the observer, so the near face of
// a wall running alongside a corridor is visible even though a strict
// center-to-center sightline would clip the neighboring wall square. Two
// fallbacks keep the trick honest: the borrowed square must not itself be a
// wall (or both faces of a double-thick wall would show), and a wall only
// reachable through the knight's move exception must not borrow at all.
// These corrections are tuned for gameplay feel; preserve them as they are.
func (c *Chunk) updateViewOne(y, x, radius, py, px int) {
	yc, xc := y, x

	d := Distance(y, x, py, px)
	lit := d < radius

	if d > MaxSight {
		return
	}

	if c.IsWall(y, x) {
		dx := x - px
		dy := y - py
		ax := abs(dx)
		ay := abs(dy)
		sx := sign(dx)
		sy := sign(dy)

		if x < px {
			xc = x + 1
		} else if x > px {
			xc = x - 1
		}
		if y < py {
			yc = y + 1
		} else if y > py {
			yc = y - 1
		}

		if c.IsWall(yc, xc) {
			yc, xc = y, x
		}

		if ax == 2 && ay == 1 {
			if !c.IsWall(y, x-sx) && c.IsWall(y-sy, x-sx) {
				yc, xc = y, x
			}
		} else if ax == 1 && ay == 2 {
			if !c.IsWall(y-sy, x) && c.IsWall(y-sy, x-sx) {
				yc, xc = y, x
			}
		}
	}

	if LOS(c, py, px, yc, xc) {
		c.becomeViewable(y, x, lit, py, px)
	}
}

// updateOne finishes the pass for one square: applies blindness, reports
// transitions against the saved state, and clears the scratch flag.
func (c *Chunk) updateOne(y, x int, blind bool) {
	if blind {
		c.FlagOff(y, x, SquareSeen)
	}

	// Unseen became seen.
	if c.IsSeen(y, x) && !c.WasSeen(y, x) {
		if c.IsFeel(y, x) {
			c.feelingSquares++
			c.FlagOff(y, x, SquareFeel)
			if c.feelingSquares == feeling1 {
				c.sink().FeelingReached(c.feelingSquares)
			}
		}

		c.NoteSpot(y, x)
		c.sink().RedrawSquare(y, x)
	}

	// Seen became unseen.
	if !c.IsSeen(y, x) && c.WasSeen(y, x) {
		c.sink().RedrawSquare(y, x)
	}

	c.FlagOff(y, x, SquareWasSeen)
}

// UpdateView recomputes the viewable and seen state of every square for the
// observer. Call it after the observer moves, the light radius changes, or
// terrain or glow changes inside the current view. The pass runs to
// completion and is idempotent: repeating it without an intervening change
// performs identical flag writes.
func (c *Chunk) UpdateView(ctx context.Context, p Observer) {
	tracer := telemetry.Tracer("cave")
	_, span := tracer.Start(ctx, "view.update")
	defer span.End()

	py, px := p.Position()
	c.assertBounds(py, px)

	c.markWasSeen()

	// A positive light radius reaches one grid further than it nominally
	// claims; radius zero stays zero and leaves only ambient glow.
	radius := p.Light()
	if radius > 0 {
		radius++
	}

	c.addMonsterLights(py, px)

	// The observer's own square is always viewable.
	c.FlagOn(py, px, SquareView)
	if radius > 0 || c.IsGlow(py, px) {
		c.FlagOn(py, px, SquareSeen)
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.updateViewOne(y, x, radius, py, px)
		}
	}

	blind := p.Blind()
	seen := 0
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.updateOne(y, x, blind)
			if c.IsSeen(y, x) {
				seen++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("view.radius", radius),
		attribute.Bool("view.blind", blind),
		attribute.Int("view.seen_squares", seen),
	)
}

// NoLight reports whether the observer's own square is dark.
func (c *Chunk) NoLight(p Observer) bool {
	y, x := p.Position()
	return !c.IsSeen(y, x)
}
