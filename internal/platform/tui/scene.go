package tui

import (
	"fmt"

	"github.com/vovakirdan/bear-run/internal/core"
	"github.com/vovakirdan/bear-run/internal/games/bearrun"
)

// obstacleSprites maps catalog names to a fill rune and color.
var obstacleSprites = map[string]core.Cell{
	"stump": {Rune: '▓', Color: core.ColorBrown},
	"rock":  {Rune: '▒', Color: core.ColorGray},
	"crate": {Rune: '#', Color: core.ColorOrange},
}

var defaultSprite = core.Cell{Rune: '█', Color: core.ColorRed}

// endMessages are the overlay lines shown once a run is over.
var endMessages = map[bearrun.EndReason][2]string{
	bearrun.EndTimeout:   {"TIME'S UP!", "press space to run again"},
	bearrun.EndCollision: {"CRASHED! Luck is part of the run too.", "press space to try again"},
	bearrun.EndGoal:      {"YOU MADE IT! The bear is home.", "press space to run again"},
}

// DrawScene renders a snapshot into the screen buffer. Surface pixels map
// to cells at core.CellW x core.CellH.
func DrawScene(s *core.Screen, snap bearrun.Snapshot) {
	// A blackout hides everything, HUD included
	if snap.BlackedOut {
		s.Fill('█', core.ColorBlack)
		return
	}
	s.Clear()

	drawGround(s, snap.Ground)

	if snap.GoalVisible {
		g := snap.Goal
		r := core.RectF{X: g.X, Y: g.Y, W: g.Width, H: g.Height}.Cells(core.CellW, core.CellH)
		s.DrawBox(r, core.ColorGreen)
		s.SetColored(r.X+r.W/2, r.Y+r.H/2, '⚑', core.ColorBrightWhite)
	}

	// Spawns wait past the right edge; skip anything off screen
	bounds := s.Bounds()
	for _, o := range snap.Obstacles {
		r := core.RectF{X: o.X, Y: o.Y, W: o.Width, H: o.Height}.Cells(core.CellW, core.CellH)
		if !r.Intersects(bounds) {
			continue
		}
		sprite, ok := obstacleSprites[o.Name]
		if !ok {
			sprite = defaultSprite
		}
		s.DrawRect(r, sprite.Rune, sprite.Color)
	}

	drawBear(s, snap.Character)
	drawHUD(s, snap)

	if snap.Phase.Over() {
		drawEndMessage(s, snap.Reason)
	}
}

func drawGround(s *core.Screen, ground float64) {
	row := int(ground / core.CellH)
	row = core.Clamp(row, 0, max(s.Height()-1, 0))
	s.DrawHLine(0, row, s.Width(), '▔', core.ColorGreen)
	for y := row + 1; y < s.Height(); y++ {
		s.DrawHLine(0, y, s.Width(), '░', core.ColorGray)
	}
}

func drawBear(s *core.Screen, c bearrun.Character) {
	r := core.RectF{X: c.X, Y: c.Top(), W: c.Width, H: c.Height}.Cells(core.CellW, core.CellH)
	s.DrawRect(r, '█', core.ColorBrown)
	// Ears on the top corners when the sprite is wide enough
	if r.W >= 3 {
		s.SetColored(r.X, r.Y, '▟', core.ColorBrown)
		s.SetColored(r.Right()-1, r.Y, '▙', core.ColorBrown)
	}
}

func drawHUD(s *core.Screen, snap bearrun.Snapshot) {
	s.DrawText(1, 0, "BEAR RUN", core.ColorYellow)
	clock := snap.Clock
	s.DrawText(s.Width()-len(clock)-1, 0, clock, core.ColorBrightWhite)
	if s.Height() > 1 {
		s.DrawText(1, 1, fmt.Sprintf("jumps %d", snap.Jumps), core.ColorCyan)
	}
}

func drawEndMessage(s *core.Screen, reason bearrun.EndReason) {
	lines, ok := endMessages[reason]
	if !ok {
		return
	}
	mid := s.Height() / 3
	color := core.ColorRed
	if reason == bearrun.EndGoal {
		color = core.ColorGreen
	}
	s.DrawTextCentered(mid, lines[0], color)
	s.DrawTextCentered(mid+1, lines[1], core.ColorWhite)
}
