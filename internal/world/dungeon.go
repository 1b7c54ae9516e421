// Package world generates dungeon levels as cave chunks.
package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fruviad/angband/internal/cave"
	"github.com/fruviad/angband/internal/gamedata"
	"github.com/fruviad/angband/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 24

	// BSP parameters
	minRoomSize = 5  // Minimum room dimension
	maxRoomSize = 13 // Maximum room dimension
	minLeafSize = 8  // Minimum BSP leaf size before stopping split

	// Feature placement chances, in percent
	doorChance   = 35
	lockedChance = 15 // of placed doors
	secretChance = 10 // of placed doors
	rubbleChance = 2  // per room floor square
	litChance    = 60 // per room
	trapCount    = 4  // hidden traps per level

	streamerCount = 3 // mineral veins per level
	goldChance    = 10

	vaultMinDim = 7 // smallest room that fits an inner chamber
)

// Dungeon represents one generated level. The chunk holds the terrain; the
// dungeon remembers the room list and stair positions on top of it.
type Dungeon struct {
	Chunk *cave.Chunk
	Rooms []Room
	Depth int

	StairUpY, StairUpX     int
	StairDownY, StairDownX int

	rng *rand.Rand
}

// NewDungeon creates a new dungeon filled with solid granite inside a
// permanent boundary wall.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	c := cave.NewChunk(height, width, gamedata.MustLoadFeatureTable(), rng)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				c.SetFeat(y, x, gamedata.FeatPerm)
			} else {
				c.SetFeat(y, x, gamedata.FeatGranite)
			}
		}
	}

	return &Dungeon{
		Chunk: c,
		Rooms: make([]Room, 0),
		rng:   rng,
	}
}

// Generate creates the dungeon layout using BSP algorithm.
func (d *Dungeon) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	c := d.Chunk

	// Start BSP with the entire dungeon as root
	root := &bspNode{
		y:      1,
		x:      1,
		height: c.Height - 2,
		width:  c.Width - 2,
	}

	// Recursively split the dungeon
	d.splitNode(root)

	// Create rooms in leaf nodes
	d.createRooms(root)

	// Connect rooms with corridors
	d.connectRooms(root)

	// Decorate: doors at room entrances, a vault, mineral veins, rubble,
	// stairs
	d.placeDoors()
	d.placeVault()
	for i := 0; i < streamerCount; i++ {
		feat := gamedata.FeatMagma
		if d.rng.Intn(2) == 0 {
			feat = gamedata.FeatQuartz
		}
		d.addStreamer(feat)
	}
	d.placeRubble()
	d.placeStairs()
	d.placeTraps()

	// Record telemetry
	span.SetAttributes(
		attribute.Int("dungeon.width", c.Width),
		attribute.Int("dungeon.height", c.Height),
		attribute.Int("dungeon.depth", d.Depth),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(y, x int) int {
	for i, room := range d.Rooms {
		if room.Contains(y, x) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random passable point within the specified room.
func (d *Dungeon) RandomPointInRoom(roomIndex int) (int, int) {
	if roomIndex < 0 || roomIndex >= len(d.Rooms) {
		return -1, -1
	}
	room := d.Rooms[roomIndex]

	// Try random points until we find a passable one (max 100 attempts)
	for i := 0; i < 100; i++ {
		y := room.Y + d.rng.Intn(room.Height)
		x := room.X + d.rng.Intn(room.Width)
		if d.Chunk.IsPassable(y, x) && !d.Chunk.IsStairs(y, x) {
			return y, x
		}
	}

	// Fallback to room center
	return room.Center()
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	y, x          int
	height, width int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (d *Dungeon) splitNode(node *bspNode) {
	// Stop if too small to split
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	// Determine split direction
	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false // Split vertically (left/right)
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true // Split horizontally (top/bottom)
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return // Can't split
	}

	// Calculate split position
	var splitPos int
	if splitHorizontally {
		min := minLeafSize
		max := node.height - minLeafSize
		if max <= min {
			return
		}
		splitPos = min + d.rng.Intn(max-min+1)
	} else {
		min := minLeafSize
		max := node.width - minLeafSize
		if max <= min {
			return
		}
		splitPos = min + d.rng.Intn(max-min+1)
	}

	// Create child nodes
	if splitHorizontally {
		node.left = &bspNode{
			y:      node.y,
			x:      node.x,
			height: splitPos,
			width:  node.width,
		}
		node.right = &bspNode{
			y:      node.y + splitPos,
			x:      node.x,
			height: node.height - splitPos,
			width:  node.width,
		}
	} else {
		node.left = &bspNode{
			y:      node.y,
			x:      node.x,
			height: node.height,
			width:  splitPos,
		}
		node.right = &bspNode{
			y:      node.y,
			x:      node.x + splitPos,
			height: node.height,
			width:  node.width - splitPos,
		}
	}

	// Recursively split children
	d.splitNode(node.left)
	d.splitNode(node.right)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (d *Dungeon) createRooms(node *bspNode) {
	if node == nil {
		return
	}

	if !node.isLeaf() {
		d.createRooms(node.left)
		d.createRooms(node.right)
		return
	}

	// Create a room within this leaf
	roomHeight := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1))
	roomWidth := minRoomSize + d.rng.Intn(min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1))

	// Ensure room fits within leaf
	if roomHeight > node.height-2 {
		roomHeight = node.height - 2
	}
	if roomWidth > node.width-2 {
		roomWidth = node.width - 2
	}
	if roomHeight < minRoomSize || roomWidth < minRoomSize {
		return // Skip if too small
	}

	// Random position within leaf
	roomY := node.y + 1 + d.rng.Intn(node.height-roomHeight-1)
	roomX := node.x + 1 + d.rng.Intn(node.width-roomWidth-1)

	room := Room{
		Y:      roomY,
		X:      roomX,
		Height: roomHeight,
		Width:  roomWidth,
		Lit:    d.rng.Intn(100) < litChance,
	}
	node.room = &room
	d.Rooms = append(d.Rooms, room)

	// Carve out the room
	d.carveRoom(room)
}

// carveRoom turns the room interior to floor and marks the room footprint,
// wall ring included, with the room flag. The wall ring squares get the
// outer-wall role so streamers leave them alone; the ring corners get the
// solid role on top. Interior floors become level feeling triggers. Lit
// rooms glow over the whole footprint so torchless characters can see them.
func (d *Dungeon) carveRoom(room Room) {
	c := d.Chunk
	for y := room.Y - 1; y <= room.Y+room.Height; y++ {
		for x := room.X - 1; x <= room.X+room.Width; x++ {
			if !c.InBounds(y, x) {
				continue
			}
			interior := room.Contains(y, x)
			if interior {
				c.SetFeat(y, x, gamedata.FeatFloor)
				c.FlagOn(y, x, cave.SquareFeel)
			} else if c.IsWall(y, x) {
				c.FlagOn(y, x, cave.SquareWallOuter)
				onCornerY := y == room.Y-1 || y == room.Y+room.Height
				onCornerX := x == room.X-1 || x == room.X+room.Width
				if onCornerY && onCornerX {
					c.FlagOn(y, x, cave.SquareWallSolid)
				}
			}
			c.FlagOn(y, x, cave.SquareRoom)
			if room.Lit {
				c.FlagOn(y, x, cave.SquareGlow)
			}
		}
	}
}

// connectRooms connects rooms with corridors.
func (d *Dungeon) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	// Connect children first
	d.connectRooms(node.left)
	d.connectRooms(node.right)

	// Get a room from each subtree and connect them
	leftRoom := d.getRoom(node.left)
	rightRoom := d.getRoom(node.right)

	if leftRoom != nil && rightRoom != nil {
		d.carveCorridor(*leftRoom, *rightRoom)
	}
}

// getRoom returns a room from a subtree (any room will do).
func (d *Dungeon) getRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}

	if node.room != nil {
		return node.room
	}

	// Try left subtree first
	if room := d.getRoom(node.left); room != nil {
		return room
	}
	return d.getRoom(node.right)
}

// carveCorridor creates a corridor between two rooms.
func (d *Dungeon) carveCorridor(room1, room2 Room) {
	y1, x1 := room1.Center()
	y2, x2 := room2.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if d.rng.Intn(2) == 0 {
		d.carveHorizontalTunnel(x1, x2, y1)
		d.carveVerticalTunnel(y1, y2, x2)
	} else {
		d.carveVerticalTunnel(y1, y2, x1)
		d.carveHorizontalTunnel(x1, x2, y2)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if d.Chunk.InBoundsFully(y, x) && !d.Chunk.IsFloor(y, x) {
			d.Chunk.SetFeat(y, x, gamedata.FeatFloor)
		}
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if d.Chunk.InBoundsFully(y, x) && !d.Chunk.IsFloor(y, x) {
			d.Chunk.SetFeat(y, x, gamedata.FeatFloor)
		}
	}
}

// placeDoors scans for corridor squares that pierce a room's wall ring and
// converts some of them into doors. Such a square sits in the ring (room
// flag, not in any room interior) with walls on both sides across the
// travel axis.
func (d *Dungeon) placeDoors() {
	c := d.Chunk
	for y := 1; y < c.Height-1; y++ {
		for x := 1; x < c.Width-1; x++ {
			if !c.IsFloor(y, x) || !c.IsRoom(y, x) {
				continue
			}
			if d.RoomIndexAt(y, x) != -1 {
				continue // room interior, not the ring
			}
			horizGap := c.IsWall(y, x-1) && c.IsWall(y, x+1)
			vertGap := c.IsWall(y-1, x) && c.IsWall(y+1, x)
			if !horizGap && !vertGap {
				continue
			}
			if d.rng.Intn(100) >= doorChance {
				continue
			}
			roll := d.rng.Intn(100)
			switch {
			case roll < secretChance:
				c.SetFeat(y, x, gamedata.FeatSecretDoor)
			case roll < secretChance+lockedChance:
				c.SetFeat(y, x, gamedata.FeatLockedDoor)
			default:
				c.SetFeat(y, x, gamedata.FeatClosedDoor)
			}
		}
	}
}

// placeVault walls off an inner chamber inside one sufficiently large room,
// entered through a single closed door. The chamber walls carry the
// inner-wall role and the whole chamber is flagged as a vault.
func (d *Dungeon) placeVault() {
	for _, i := range d.rng.Perm(len(d.Rooms)) {
		room := d.Rooms[i]
		if room.Height < vaultMinDim || room.Width < vaultMinDim {
			continue
		}
		d.buildVault(room)
		return
	}
}

func (d *Dungeon) buildVault(room Room) {
	c := d.Chunk
	y1, x1 := room.Y+1, room.X+1
	y2, x2 := room.Y+room.Height-2, room.X+room.Width-2

	// Leave a one-square walkway between the chamber and the room wall so
	// every entrance to the room still reaches the chamber door.
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if y == y1 || y == y2 || x == x1 || x == x2 {
				c.SetFeat(y, x, gamedata.FeatGranite)
				c.FlagOn(y, x, cave.SquareWallInner)
				c.FlagOff(y, x, cave.SquareFeel)
			}
			c.FlagOn(y, x, cave.SquareVault)
		}
	}

	switch d.rng.Intn(4) {
	case 0:
		c.SetFeat(y1, x1+1+d.rng.Intn(x2-x1-1), gamedata.FeatClosedDoor)
	case 1:
		c.SetFeat(y2, x1+1+d.rng.Intn(x2-x1-1), gamedata.FeatClosedDoor)
	case 2:
		c.SetFeat(y1+1+d.rng.Intn(y2-y1-1), x1, gamedata.FeatClosedDoor)
	default:
		c.SetFeat(y1+1+d.rng.Intn(y2-y1-1), x2, gamedata.FeatClosedDoor)
	}
}

// addStreamer lays a mineral vein through the level as a random walk,
// replacing plain granite. Room walls, vault walls and permanent rock are
// spared. Some vein squares carry treasure.
func (d *Dungeon) addStreamer(feat int) {
	c := d.Chunk
	y := 1 + d.rng.Intn(c.Height-2)
	x := 1 + d.rng.Intn(c.Width-2)
	dir := d.rng.Intn(8)

	for i := 0; i < c.Height+c.Width; i++ {
		if !c.InBoundsFully(y, x) {
			break
		}
		if c.Feat(y, x) == gamedata.FeatGranite && !c.IsWallOuter(y, x) && !c.IsWallInner(y, x) {
			f := feat
			if d.rng.Intn(100) < goldChance {
				if feat == gamedata.FeatMagma {
					f = gamedata.FeatMagmaGold
				} else {
					f = gamedata.FeatQuartzGold
				}
			}
			c.SetFeat(y, x, f)
		}
		// Drift mostly along the chosen direction
		if d.rng.Intn(4) == 0 {
			dir = d.rng.Intn(8)
		}
		y += cave.DDY[dir]
		x += cave.DDX[dir]
	}
}

// placeRubble scatters rubble piles over room floors.
func (d *Dungeon) placeRubble() {
	c := d.Chunk
	for _, room := range d.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if c.IsFloor(y, x) && d.rng.Intn(100) < rubbleChance {
					c.SetFeat(y, x, gamedata.FeatRubble)
				}
			}
		}
	}
}

// placeTraps hides a few traps on room floors. They stay invisible until
// detected or triggered.
func (d *Dungeon) placeTraps() {
	if len(d.Rooms) == 0 {
		return
	}
	c := d.Chunk
	for i := 0; i < trapCount; i++ {
		room := d.rng.Intn(len(d.Rooms))
		y, x := d.RandomPointInRoom(room)
		if !c.IsFloor(y, x) || c.IsTrap(y, x) {
			continue
		}
		c.FlagOn(y, x, cave.SquareTrap)
		c.FlagOn(y, x, cave.SquareInvis)
	}
}

// placeStairs puts an up staircase in the first room and a down staircase in
// the last. With a single room both land in it.
func (d *Dungeon) placeStairs() {
	if len(d.Rooms) == 0 {
		return
	}
	upY, upX := d.RandomPointInRoom(0)
	d.Chunk.SetFeat(upY, upX, gamedata.FeatLessStairs)
	d.StairUpY, d.StairUpX = upY, upX

	downY, downX := d.RandomPointInRoom(len(d.Rooms) - 1)
	if downY == upY && downX == upX {
		downY, downX = d.RandomPointInRoom(len(d.Rooms) - 1)
	}
	d.Chunk.SetFeat(downY, downX, gamedata.FeatMoreStairs)
	d.StairDownY, d.StairDownX = downY, downX
}
