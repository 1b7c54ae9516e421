package cave

import (
	"context"
	"testing"
)

// openChunk builds a floor-filled chunk with a permanent border.
func openChunk(t *testing.T, height, width int) *Chunk {
	t.Helper()
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		row := make([]byte, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				row[x] = 'P'
			} else {
				row[x] = '.'
			}
		}
		rows[y] = string(row)
	}
	c, _, _ := parseChunk(t, rows...)
	return c
}

func chebyshev(y1, x1, y2, x2 int) int {
	ay := abs(y2 - y1)
	ax := abs(x2 - x1)
	if ay > ax {
		return ay
	}
	return ax
}

func TestFlowOpenField(t *testing.T) {
	c := openChunk(t, 20, 20)
	f := NewFlow(5)

	f.Update(context.Background(), c, 10, 10)

	gen := f.Generation()
	if gen != 1 {
		t.Fatalf("generation after first update = %d, want 1", gen)
	}

	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			d := chebyshev(10, 10, y, x)
			if d <= 5 {
				if c.FlowWhen(y, x) != gen {
					t.Errorf("square (%d,%d) at distance %d not reached", y, x, d)
					continue
				}
				// In an open field the cost is the chebyshev distance.
				if c.FlowCost(y, x) != d {
					t.Errorf("cost at (%d,%d) = %d, want %d", y, x, c.FlowCost(y, x), d)
				}
			} else {
				if c.FlowWhen(y, x) == gen {
					t.Errorf("square (%d,%d) beyond the depth was stamped", y, x)
				}
			}
		}
	}
}

func TestFlowMonotonic(t *testing.T) {
	c, _, _ := parseChunk(t,
		"PPPPPPPPPPPP",
		"P..........P",
		"P.########.P",
		"P.#......#.P",
		"P.#.####.#.P",
		"P.#.#@.#.#.P",
		"P.#.#..#.#.P",
		"P.#......#.P",
		"P.########.P",
		"P..........P",
		"PPPPPPPPPPPP",
	)
	f := NewFlow(0)
	f.Update(context.Background(), c, 5, 5)
	gen := f.Generation()

	if c.FlowCost(5, 5) != 0 {
		t.Fatalf("origin cost = %d, want 0", c.FlowCost(5, 5))
	}

	// Every reached square other than the origin has a reached neighbor
	// exactly one step cheaper.
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.FlowWhen(y, x) != gen || (y == 5 && x == 5) {
				continue
			}
			cost := c.FlowCost(y, x)
			found := false
			for d := 0; d < 8; d++ {
				ny, nx := y+DDY[d], x+DDX[d]
				if !c.InBounds(ny, nx) || c.FlowWhen(ny, nx) != gen {
					continue
				}
				if c.FlowCost(ny, nx) == cost-1 {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("square (%d,%d) cost %d has no neighbor at cost %d",
					y, x, cost, cost-1)
			}
		}
	}

	// Walls are never part of the flow.
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.BlocksFlow(y, x) && c.FlowWhen(y, x) == gen {
				t.Errorf("wall (%d,%d) was stamped", y, x)
			}
		}
	}
}

func TestFlowDepthBound(t *testing.T) {
	c := openChunk(t, 5, 40)
	f := NewFlow(7)

	f.Update(context.Background(), c, 2, 2)

	gen := f.Generation()
	maxCost := 0
	for y := 1; y < 4; y++ {
		for x := 1; x < 39; x++ {
			if c.FlowWhen(y, x) != gen {
				continue
			}
			if cost := c.FlowCost(y, x); cost > maxCost {
				maxCost = cost
			}
		}
	}
	if maxCost != 7 {
		t.Errorf("max cost = %d, want the configured depth 7", maxCost)
	}
	if c.FlowWhen(2, 11) == gen {
		t.Error("square beyond the depth limit was reached")
	}
}

func TestFlowThroughDoors(t *testing.T) {
	// Closed doors pass scent; granite and rubble do not.
	c, _, _ := parseChunk(t,
		"PPPPPPPPP",
		"P@+.#.:.P",
		"PPPPPPPPP",
	)
	f := NewFlow(0)
	f.Update(context.Background(), c, 1, 1)
	gen := f.Generation()

	if c.FlowWhen(1, 2) != gen || c.FlowWhen(1, 3) != gen {
		t.Error("flow should pass through a closed door")
	}
	if c.FlowWhen(1, 4) == gen {
		t.Error("flow should stop at granite")
	}
	if c.FlowWhen(1, 5) == gen {
		t.Error("flow should not slip past granite")
	}
}

func TestFlowMovingOrigin(t *testing.T) {
	c := openChunk(t, 10, 10)
	f := NewFlow(0)
	ctx := context.Background()

	f.Update(ctx, c, 2, 2)
	f.Update(ctx, c, 7, 7)

	gen := f.Generation()
	if gen != 2 {
		t.Fatalf("generation = %d, want 2", gen)
	}
	if c.FlowCost(7, 7) != 0 {
		t.Errorf("new origin cost = %d, want 0", c.FlowCost(7, 7))
	}
	if c.FlowCost(2, 2) != chebyshev(2, 2, 7, 7) {
		t.Errorf("old origin cost = %d, want %d", c.FlowCost(2, 2), chebyshev(2, 2, 7, 7))
	}
}

func TestFlowGenerationRecycling(t *testing.T) {
	c := openChunk(t, 8, 8)
	f := NewFlow(0)
	ctx := context.Background()

	for i := 0; i < 255; i++ {
		f.Update(ctx, c, 4, 4)
	}
	if f.Generation() != 255 {
		t.Fatalf("generation = %d, want 255", f.Generation())
	}

	// The next update recycles the stamp space instead of wrapping to zero.
	f.Update(ctx, c, 4, 4)
	if f.Generation() != 128 {
		t.Fatalf("generation after recycle = %d, want 128", f.Generation())
	}

	// The flow remains fully valid under the new generation.
	gen := f.Generation()
	for y := 1; y < 7; y++ {
		for x := 1; x < 7; x++ {
			if c.FlowWhen(y, x) != gen {
				t.Errorf("square (%d,%d) lost after recycling", y, x)
			}
		}
	}
}

func TestFlowForget(t *testing.T) {
	c := openChunk(t, 8, 8)
	f := NewFlow(0)

	// Forget before any update is a no-op.
	f.Forget(c)
	if f.Generation() != 0 {
		t.Fatalf("generation = %d before any update", f.Generation())
	}

	f.Update(context.Background(), c, 4, 4)
	f.Forget(c)

	if f.Generation() != 0 {
		t.Errorf("generation = %d after forget, want 0", f.Generation())
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c.FlowWhen(y, x) != 0 || c.FlowCost(y, x) != 0 {
				t.Fatalf("square (%d,%d) kept flow data after forget", y, x)
			}
		}
	}
}

func TestNewFlowDepthClamp(t *testing.T) {
	if d := NewFlow(0).Depth(); d != DefaultFlowDepth {
		t.Errorf("zero depth -> %d, want default %d", d, DefaultFlowDepth)
	}
	if d := NewFlow(500).Depth(); d != 127 {
		t.Errorf("oversized depth -> %d, want 127", d)
	}
	if d := NewFlow(9).Depth(); d != 9 {
		t.Errorf("depth 9 -> %d", d)
	}
}
