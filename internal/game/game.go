// Package game wires the level, entities and terminal UI into a running game.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/fruviad/angband/internal/cave"
	"github.com/fruviad/angband/internal/entity"
	"github.com/fruviad/angband/internal/gamedata"
	"github.com/fruviad/angband/internal/telemetry"
	"github.com/fruviad/angband/internal/ui"
	"github.com/fruviad/angband/internal/world"
)

// detectRadius is the half-width of the trap detection rectangle.
const detectRadius = 12

// Game holds the entire game state.
type Game struct {
	cfg      *Config
	log      *zap.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	registry *gamedata.MonsterRegistry

	rng      *rand.Rand
	dungeon  *world.Dungeon
	chunk    *cave.Chunk
	player   *entity.Player
	monsters *entity.Roster
	flow     *cave.Flow

	running bool
	message string
	redraws int // squares redrawn since the last frame
}

// New creates a new game instance.
func New(cfg *Config, log *zap.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	table, err := gamedata.LoadFeatureTable()
	if err != nil {
		screen.Close()
		return nil, err
	}
	registry, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		screen.Close()
		return nil, err
	}

	seed := cfg.Dungeon.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		renderer: ui.NewRenderer(screen, table),
		registry: registry,
		rng:      rand.New(rand.NewSource(seed)),
		monsters: entity.NewRoster(),
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.newLevel(ctx, 1, true)
	initSpan.SetAttributes(
		attribute.Int("dungeon.rooms", len(g.dungeon.Rooms)),
		attribute.Int("monsters.count", g.monsters.Count()),
	)
	initSpan.End()

	for g.running {
		g.renderer.Render(g.chunk, g.player, g.monsters)
		g.renderer.RenderMessage(g.statusLine(), g.chunk.Height)
		if g.message != "" {
			g.renderer.RenderMessage(g.message, g.chunk.Height+1)
		}
		g.screen.Show()
		g.redraws = 0

		g.handleInput(ctx)
	}

	return nil
}

// newLevel generates and enters a fresh level at the given depth. The player
// arrives on the staircase matching the direction of travel.
func (g *Game) newLevel(ctx context.Context, depth int, descending bool) {
	g.monsters.Clear()

	d := world.NewDungeon(g.cfg.Dungeon.Width, g.cfg.Dungeon.Height, g.rng)
	d.Depth = depth
	d.Generate(ctx)

	g.dungeon = d
	g.chunk = d.Chunk
	g.chunk.Entities = g.monsters
	g.chunk.Events = g

	// Level 1 opens to the surface, so it starts with day or night lighting.
	if depth == 1 {
		hour := time.Now().Hour()
		g.chunk.Illuminate(hour >= 6 && hour < 18)
	}
	g.chunk.Live = true

	py, px := d.StairUpY, d.StairUpX
	if !descending {
		py, px = d.StairDownY, d.StairDownX
	}
	if g.player == nil {
		g.player = entity.NewPlayer(py, px)
		g.player.Radius = g.cfg.Player.LightRadius
	} else {
		g.player.MoveTo(py, px)
	}
	g.player.Depth = depth

	g.spawnMonsters()

	g.flow = cave.NewFlow(g.cfg.Flow.Depth)
	g.flow.Update(ctx, g.chunk, g.player.Y, g.player.X)
	g.chunk.UpdateView(ctx, g.player)

	g.log.Info("entered level",
		zap.Int("depth", depth),
		zap.Int("rooms", len(d.Rooms)),
		zap.Int("monsters", g.monsters.Count()))
	g.message = fmt.Sprintf("You enter level %d.", depth)
}

// spawnMonsters seeds the level with monsters scattered around random room
// squares, away from the player's staircase.
func (g *Game) spawnMonsters() {
	for i := 0; i < g.cfg.Dungeon.Monsters; i++ {
		room := g.rng.Intn(len(g.dungeon.Rooms))
		y, x := g.dungeon.RandomPointInRoom(room)
		y, x = cave.Scatter(g.chunk, g.rng, y, x, 2, false)
		if !g.chunk.IsPassable(y, x) || g.monsters.At(y, x) != nil {
			continue
		}
		if y == g.player.Y && x == g.player.X {
			continue
		}
		def := g.registry.SpawnRandom(g.rng)
		g.monsters.Add(entity.NewMonster(def, y, x, g.rng))
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(ctx, -1, 0)
	case tcell.KeyDown:
		g.tryMove(ctx, 1, 0)
	case tcell.KeyLeft:
		g.tryMove(ctx, 0, -1)
	case tcell.KeyRight:
		g.tryMove(ctx, 0, 1)

	case tcell.KeyRune:
		g.handleRune(ctx, ev.Rune())
	}
}

// handleRune dispatches character commands, roguelike movement included.
func (g *Game) handleRune(ctx context.Context, r rune) {
	switch r {
	case 'q', 'Q':
		g.running = false

	case 'h':
		g.tryMove(ctx, 0, -1)
	case 'j':
		g.tryMove(ctx, 1, 0)
	case 'k':
		g.tryMove(ctx, -1, 0)
	case 'l':
		g.tryMove(ctx, 0, 1)
	case 'y':
		g.tryMove(ctx, -1, -1)
	case 'u':
		g.tryMove(ctx, -1, 1)
	case 'b':
		g.tryMove(ctx, 1, -1)
	case 'n':
		g.tryMove(ctx, 1, 1)

	case '>':
		g.takeStairs(ctx, true)
	case '<':
		g.takeStairs(ctx, false)

	case 'o':
		g.openDoor(ctx)
	case 'c':
		g.closeDoor(ctx)

	case 'T':
		g.detectTraps(ctx)
	case 'z':
		g.chunk.LightRoom(g.player.Y, g.player.X, true)
		g.message = "Light floods the room."
		g.endTurn(ctx)
	case 'Z':
		g.chunk.LightRoom(g.player.Y, g.player.X, false)
		g.message = "Darkness falls."
		g.endTurn(ctx)

	case 'M':
		g.chunk.WizLight(true)
		g.message = "The level lies revealed."
		g.endTurn(ctx)
	case 'F':
		g.chunk.WizDark()
		g.message = "You forget the level."
		g.endTurn(ctx)
	}
}

// tryMove attempts to move the player by the given delta. Bumping a closed
// door opens it, a locked door rattles, a monster is disturbed. Each of
// these costs a turn; walking into rock does not.
func (g *Game) tryMove(ctx context.Context, dy, dx int) {
	ny := g.player.Y + dy
	nx := g.player.X + dx
	if !g.chunk.InBounds(ny, nx) {
		return
	}
	g.message = ""

	if mon := g.monsters.At(ny, nx); mon != nil {
		g.message = fmt.Sprintf("The %s blocks your way!", mon.Def.Name)
		mon.Wake()
		g.endTurn(ctx)
		return
	}

	switch {
	case g.chunk.IsPassable(ny, nx):
		g.player.Move(dy, dx)
		g.describeGround()
		g.endTurn(ctx)

	case g.chunk.IsClosedDoor(ny, nx) && !g.chunk.IsLockedDoor(ny, nx):
		g.chunk.SetFeat(ny, nx, gamedata.FeatOpenDoor)
		g.message = "The door opens."
		g.endTurn(ctx)

	case g.chunk.IsLockedDoor(ny, nx):
		g.message = "The door is stuck."
		g.endTurn(ctx)

	default:
		// Secret doors look and act like the wall around them.
		g.message = "There is a wall in the way."
	}
}

// openDoor opens the closed door next to the player. When several known
// doors qualify the player has to bump the one they mean instead.
func (g *Game) openDoor(ctx context.Context) {
	count, y, x := g.chunk.CountFeats(g.player.Y, g.player.X, (*cave.Chunk).IsClosedDoor, false)
	switch {
	case count == 0:
		g.message = "You see no door there to open."
	case count > 1:
		g.message = "Which door? Walk into the one you mean."
	case g.chunk.IsLockedDoor(y, x):
		g.message = "The door is stuck."
		g.endTurn(ctx)
	default:
		g.chunk.SetFeat(y, x, gamedata.FeatOpenDoor)
		g.message = "The door opens."
		g.endTurn(ctx)
	}
}

// closeDoor closes the open door next to the player.
func (g *Game) closeDoor(ctx context.Context) {
	count, y, x := g.chunk.CountFeats(g.player.Y, g.player.X, (*cave.Chunk).IsOpenDoor, false)
	switch {
	case count == 0:
		g.message = "You see no door there to close."
	case count > 1:
		g.message = "Which door? Stand next to just one."
	case g.monsters.At(y, x) != nil:
		g.message = "Something is in the way."
	default:
		g.chunk.SetFeat(y, x, gamedata.FeatClosedDoor)
		g.message = "The door closes."
		g.endTurn(ctx)
	}
}

// describeGround reports what the player is standing on.
func (g *Game) describeGround() {
	y, x := g.player.Y, g.player.X
	switch {
	case g.chunk.IsUpStairs(y, x):
		g.message = "There is a staircase up here. Press < to climb."
	case g.chunk.IsDownStairs(y, x):
		g.message = "There is a staircase down here. Press > to descend."
	case g.chunk.IsTrap(y, x) && !g.chunk.IsInvis(y, x):
		g.message = "Careful, a trap!"
	}
}

// takeStairs moves to the next or previous level when standing on the
// matching staircase.
func (g *Game) takeStairs(ctx context.Context, down bool) {
	y, x := g.player.Y, g.player.X
	if down {
		if !g.chunk.IsDownStairs(y, x) {
			g.message = "There is no staircase down here."
			return
		}
		g.newLevel(ctx, g.player.Depth+1, true)
		return
	}
	if !g.chunk.IsUpStairs(y, x) {
		g.message = "There is no staircase up here."
		return
	}
	if g.player.Depth <= 1 {
		g.message = "You see daylight above. Not yet."
		return
	}
	g.newLevel(ctx, g.player.Depth-1, false)
}

// detectTraps marks a rectangle around the player as trap-detected,
// reveals the traps inside it and flags the boundary of the region so the
// player knows where the knowledge ends.
func (g *Game) detectTraps(ctx context.Context) {
	c := g.chunk
	py, px := g.player.Y, g.player.X

	for y := py - detectRadius; y <= py+detectRadius; y++ {
		for x := px - detectRadius; x <= px+detectRadius; x++ {
			if !c.InBoundsFully(y, x) {
				continue
			}
			c.FlagOn(y, x, cave.SquareDTrap)
			if c.IsTrap(y, x) {
				c.FlagOff(y, x, cave.SquareInvis)
				c.NoteSpot(y, x)
			}
		}
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if !c.InBoundsFully(y, x) {
				continue
			}
			if c.DTrapEdge(y, x) {
				c.FlagOn(y, x, cave.SquareDEdge)
			}
		}
	}

	g.message = "You sense the presence of traps."
	g.endTurn(ctx)
}

// endTurn runs everything that follows a player action: monster pathing is
// refreshed from the player's position, monsters act, and the player's view
// is rebuilt.
func (g *Game) endTurn(ctx context.Context) {
	g.flow.Update(ctx, g.chunk, g.player.Y, g.player.X)
	g.monsterTurns()
	g.chunk.UpdateView(ctx, g.player)
}

// monsterTurns moves every awake monster one step along the flow toward the
// player. Squares the flow never reached this generation are ignored, so
// monsters beyond the flow depth stay put.
func (g *Game) monsterTurns() {
	gen := g.flow.Generation()
	for _, m := range g.monsters.All() {
		if !m.IsAlive() || m.Asleep() {
			continue
		}
		if cave.Distance(m.Y, m.X, g.player.Y, g.player.X) <= 1 {
			continue // already adjacent
		}

		bestY, bestX := m.Y, m.X
		bestCost := -1
		if g.chunk.FlowWhen(m.Y, m.X) == gen {
			bestCost = g.chunk.FlowCost(m.Y, m.X)
		}
		for dir := 0; dir < 8; dir++ {
			ny := m.Y + cave.DDY[dir]
			nx := m.X + cave.DDX[dir]
			if !g.chunk.InBounds(ny, nx) || !g.chunk.IsPassable(ny, nx) {
				continue
			}
			if g.chunk.FlowWhen(ny, nx) != gen {
				continue
			}
			if g.monsters.At(ny, nx) != nil {
				continue
			}
			if ny == g.player.Y && nx == g.player.X {
				continue
			}
			cost := g.chunk.FlowCost(ny, nx)
			if bestCost < 0 || cost < bestCost {
				bestCost = cost
				bestY, bestX = ny, nx
			}
		}
		m.Y, m.X = bestY, bestX
	}
}

// statusLine summarizes the player state for the bottom of the screen.
func (g *Game) statusLine() string {
	return fmt.Sprintf("Depth: %d  Pos: (%d,%d)  Explored: %d",
		g.player.Depth, g.player.Y, g.player.X, g.chunk.FeelingSquares())
}

// RedrawSquare records that a square's appearance changed. The whole frame
// is redrawn each loop, so this only feeds the frame counter.
func (g *Game) RedrawSquare(y, x int) {
	g.redraws++
}

// SquareMemorized is called when a square enters the player's map memory.
func (g *Game) SquareMemorized(y, x int) {}

// RequestViewUpdate notes that terrain or lighting changed under the
// current view. The view is rebuilt at the end of the turn anyway.
func (g *Game) RequestViewUpdate() {}

// FeelingReached fires when the player has seen enough of the level to form
// an impression of it.
func (g *Game) FeelingReached(count int) {
	g.log.Info("level feeling available", zap.Int("squares", count))
	g.message = "You feel you know this place a little now."
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
