// Package cave implements the dungeon-grid visibility and navigation engine:
// per-square terrain and state flags, an integer line-of-sight test, the
// per-move visibility recomputation, room light floods, and the breadth-first
// flow field monsters use to track the player.
package cave

import (
	"fmt"
	"math/rand"
)

// MaxSight is the furthest distance, in grids, the player can ever see.
const MaxSight = 20

// Loc is a grid coordinate. Coordinates are row-major: y first.
type Loc struct {
	Y, X int
}

// The eight adjacent offsets followed by the center, in keypad order
// (south, north, east, west, then the diagonals).
var (
	DDY = [9]int{1, -1, 0, 0, 1, 1, -1, -1, 0}
	DDX = [9]int{0, 0, 1, -1, 1, -1, 1, -1, 0}
)

// Chunk is one dungeon level: a fixed-size grid of feature ids plus the
// per-square flag, flow cost and flow timestamp arrays. A chunk serves a
// single observer; the view and seen state belong to that observer.
type Chunk struct {
	Height int
	Width  int

	feat [][]uint8
	info [][]SquareFlag
	cost [][]uint8
	when [][]uint8

	featCount      []int
	feelingSquares int

	feats FeatureSet
	rng   *rand.Rand

	// Entities supplies creatures for monster light and room illumination;
	// Events receives redraw and memorization notifications. Both may be
	// left nil.
	Entities EntityProvider
	Events   EventSink

	// Live marks the chunk as part of the running game. Terrain changes on
	// a live chunk memorize and redraw the square; on a chunk still being
	// generated they clear the generation wall flags instead.
	Live bool
}

// NewChunk creates an empty chunk of the given dimensions. The feature set
// must resolve every feature id later written into the chunk. The rng drives
// the wake rolls made when a room is lit.
func NewChunk(height, width int, feats FeatureSet, rng *rand.Rand) *Chunk {
	// The flow arrays and queue store coordinates and stamps in 8 bits.
	if height <= 0 || width <= 0 || height > 255 || width > 255 {
		panic(fmt.Sprintf("cave: bad chunk dimensions %dx%d", height, width))
	}
	if feats == nil {
		panic("cave: nil feature set")
	}
	if rng == nil {
		panic("cave: nil rng")
	}

	c := &Chunk{
		Height:    height,
		Width:     width,
		feat:      make([][]uint8, height),
		info:      make([][]SquareFlag, height),
		cost:      make([][]uint8, height),
		when:      make([][]uint8, height),
		featCount: make([]int, 256),
		feats:     feats,
		rng:       rng,
	}
	for y := 0; y < height; y++ {
		c.feat[y] = make([]uint8, width)
		c.info[y] = make([]SquareFlag, width)
		c.cost[y] = make([]uint8, width)
		c.when[y] = make([]uint8, width)
	}
	c.featCount[0] = height * width
	return c
}

// InBounds reports whether the square lies on the chunk.
func (c *Chunk) InBounds(y, x int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// InBoundsFully reports whether the square lies on the chunk and is not on
// its outermost border.
func (c *Chunk) InBoundsFully(y, x int) bool {
	return x > 0 && x < c.Width-1 && y > 0 && y < c.Height-1
}

// assertBounds panics on an out-of-bounds square. Callers handing the chunk
// bad coordinates are broken; there is no recovery.
func (c *Chunk) assertBounds(y, x int) {
	if !c.InBounds(y, x) {
		panic(fmt.Sprintf("cave: square (%d,%d) outside %dx%d chunk", y, x, c.Height, c.Width))
	}
}

// Feat returns the feature id of the square.
func (c *Chunk) Feat(y, x int) int {
	c.assertBounds(y, x)
	return int(c.feat[y][x])
}

// FeatCount returns how many squares currently hold the feature.
func (c *Chunk) FeatCount(feat int) int {
	return c.featCount[feat]
}

// FlagOn sets a flag on the square.
func (c *Chunk) FlagOn(y, x int, flag SquareFlag) {
	c.assertBounds(y, x)
	c.info[y][x] |= flag
}

// FlagOff clears a flag on the square.
func (c *Chunk) FlagOff(y, x int, flag SquareFlag) {
	c.assertBounds(y, x)
	c.info[y][x] &^= flag
}

// FlagHas reports whether the square carries the flag.
func (c *Chunk) FlagHas(y, x int, flag SquareFlag) bool {
	c.assertBounds(y, x)
	return c.info[y][x]&flag != 0
}

// FlowCost returns the square's flow cost: the number of steps needed to
// reach the flow origin. Only meaningful when FlowWhen carries the current
// generation.
func (c *Chunk) FlowCost(y, x int) int {
	c.assertBounds(y, x)
	return int(c.cost[y][x])
}

// FlowWhen returns the square's flow timestamp; zero means never reached.
func (c *Chunk) FlowWhen(y, x int) int {
	c.assertBounds(y, x)
	return int(c.when[y][x])
}

// FeelingSquares returns how many feeling trigger squares the observer has
// seen on this level.
func (c *Chunk) FeelingSquares() int {
	return c.feelingSquares
}

func (c *Chunk) sink() EventSink {
	if c.Events == nil {
		return noopSink{}
	}
	return c.Events
}

func (c *Chunk) featHas(y, x int, flag FeatureFlag) bool {
	return c.feats.Has(int(c.feat[y][x]), flag)
}
