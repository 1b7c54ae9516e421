package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/fruviad/angband/internal/cave"
	"github.com/fruviad/angband/internal/entity"
	"github.com/fruviad/angband/internal/gamedata"
)

// Torch-lit squares get a warm tint to distinguish them from permanently
// lit ones.
var torchColor = tcell.NewRGBColor(0xff, 0xcc, 0x55)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	table  *gamedata.FeatureTable
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, table *gamedata.FeatureTable) *Renderer {
	return &Renderer{screen: screen, table: table}
}

// Render draws the level, monsters and player to the screen. Only what the
// player can see or remembers is drawn: squares in view and lit use their
// true appearance, memorized squares are dimmed, everything else is blank.
func (r *Renderer) Render(c *cave.Chunk, player *entity.Player, monsters *entity.Roster) {
	r.screen.Clear()

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			ch, style, ok := r.squareAppearance(c, y, x)
			if !ok {
				continue
			}
			r.screen.SetContent(x, y, ch, style)
		}
	}

	// Monsters are drawn only where the player currently sees.
	for _, m := range monsters.All() {
		if !m.IsAlive() || !c.IsSeen(m.Y, m.X) {
			continue
		}
		style := tcell.StyleDefault.Foreground(m.Def.TCellColor())
		r.screen.SetContent(m.X, m.Y, m.Def.GlyphRune(), style)
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(player.X, player.Y, player.Symbol, playerStyle)

	r.screen.Show()
}

// squareAppearance returns the rune and style for one square, or ok=false
// when the square is unknown and should stay blank.
func (r *Renderer) squareAppearance(c *cave.Chunk, y, x int) (rune, tcell.Style, bool) {
	seen := c.IsSeen(y, x)
	if !seen && !c.IsMark(y, x) {
		return ' ', tcell.StyleDefault, false
	}

	feat := c.Feat(y, x)
	// Secret doors look like the surrounding rock until found.
	if c.IsSecretDoor(y, x) {
		feat = gamedata.FeatGranite
	}
	def := r.table.Get(feat)
	if def == nil {
		return '?', tcell.StyleDefault, true
	}
	ch := def.GlyphRune()

	// Revealed traps draw over the floor they sit on.
	if c.IsTrap(y, x) && !c.IsInvis(y, x) {
		return '^', tcell.StyleDefault.Foreground(tcell.ColorRed), true
	}

	var style tcell.Style
	switch {
	case seen && !c.IsGlow(y, x):
		style = tcell.StyleDefault.Foreground(torchColor)
	case seen:
		style = tcell.StyleDefault.Foreground(def.TCellColor())
	default:
		// Memorized but out of view.
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}

	// The boundary of the trap-detected region shows as a marked floor.
	if c.IsDEdge(y, x) && c.IsFloor(y, x) {
		style = style.Foreground(tcell.ColorGreen)
	}

	return ch, style, true
}

// RenderMessage displays a message at the given row of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}
