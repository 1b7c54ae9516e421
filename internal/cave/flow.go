package cave

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fruviad/angband/internal/telemetry"
)

const (
	// FlowMax is the capacity of the circular queue used as the flow BFS
	// frontier. It must exceed the number of squares reachable within the
	// depth limit.
	FlowMax = 2048

	// DefaultFlowDepth bounds how far the flow spreads from its origin.
	DefaultFlowDepth = 32
)

// Flow computes per-square traversal costs toward a moving origin, stamping
// each reached square with a generation so stale data needs no wholesale
// reset. One Flow belongs to one chunk; create a fresh one when the level
// changes.
type Flow struct {
	depth int
	save  int
}

// NewFlow creates a flow field bounded by the given depth. Depth must fit
// the 8-bit cost array and leave the generation recycling room, so it is
// capped at 127.
func NewFlow(depth int) *Flow {
	if depth <= 0 {
		depth = DefaultFlowDepth
	}
	if depth > 127 {
		depth = 127
	}
	return &Flow{depth: depth}
}

// Depth returns the configured maximum cost.
func (f *Flow) Depth() int {
	return f.depth
}

// Generation returns the current generation stamp; zero means the flow has
// never run.
func (f *Flow) Generation() int {
	return f.save
}

// Forget drops all flow data. A no-op when the flow has never run since the
// last forget, to spare the full-grid writes.
func (f *Flow) Forget(c *Chunk) {
	if f.save == 0 {
		return
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.cost[y][x] = 0
			c.when[y][x] = 0
		}
	}

	f.save = 0
}

// Update fills the cost of every square reachable from the origin within the
// depth limit with the number of steps needed to reach it, moving eight
// directions at cost one, and stamps each with the new generation.
//
// Generations run 1 through 255. Instead of wrapping, the timestamp space is
// recycled: stamps at or above 128 slide down by 128, older ones drop to
// zero, and the counter restarts at 128. Relative recency among the newest
// half of the range survives, and the grid never needs a full reset.
//
// The frontier is a fixed circular queue. On overflow the newly discovered
// square is dropped: an incomplete flow on a pathological level beats
// unbounded memory.
func (f *Flow) Update(ctx context.Context, c *Chunk, py, px int) {
	tracer := telemetry.Tracer("cave")
	_, span := tracer.Start(ctx, "flow.update")
	defer span.End()

	c.assertBounds(py, px)

	// Cycle the generation counter.
	if f.save == 255 {
		for y := 0; y < c.Height; y++ {
			for x := 0; x < c.Width; x++ {
				w := int(c.when[y][x])
				if w >= 128 {
					c.when[y][x] = uint8(w - 128)
				} else {
					c.when[y][x] = 0
				}
			}
		}
		f.save = 128
	} else {
		f.save++
	}

	n := f.save

	var flowY, flowX [FlowMax]uint8
	head, tail := 0, 0

	// Seed the origin.
	c.when[py][px] = uint8(n)
	c.cost[py][px] = 0
	flowY[tail] = uint8(py)
	flowX[tail] = uint8(px)
	tail++

	reached := 1

	for head != tail {
		ty := int(flowY[head])
		tx := int(flowX[head])

		if head++; head == FlowMax {
			head = 0
		}

		// Squares at the depth limit are reached but not expanded.
		if int(c.cost[ty][tx]) == f.depth {
			continue
		}
		childCost := int(c.cost[ty][tx]) + 1

		for d := 0; d < 8; d++ {
			oldTail := tail

			y := ty + DDY[d]
			x := tx + DDX[d]
			if !c.InBounds(y, x) {
				continue
			}

			// Already stamped this generation.
			if int(c.when[y][x]) == n {
				continue
			}

			if c.BlocksFlow(y, x) {
				continue
			}

			c.when[y][x] = uint8(n)
			c.cost[y][x] = uint8(childCost)
			reached++

			flowY[tail] = uint8(y)
			flowX[tail] = uint8(x)
			if tail++; tail == FlowMax {
				tail = 0
			}

			// Queue full: forget the new entry rather than grow.
			if tail == head {
				tail = oldTail
			}
		}
	}

	span.SetAttributes(
		attribute.Int("flow.generation", n),
		attribute.Int("flow.depth", f.depth),
		attribute.Int("flow.reached_squares", reached),
	)
}
