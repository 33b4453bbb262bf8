package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/okian/boxshot/internal/domain/types"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Styles used by the renderer.
var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLive      = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleDestroyed = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleMarker    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCallout   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleDialog    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleLowEnergy = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

const (
	energyBarWidth = 20
	lowEnergy      = 25.0
)

// Draw paints one frame of snap onto c. The caller clears and shows the
// screen.
func Draw(c Canvas, l Layout, snap *types.Snapshot) {
	if !l.Valid() {
		return
	}

	drawHUD(c, l, snap)

	for i := range snap.Entities {
		drawEntity(c, l, &snap.Entities[i])
	}

	if snap.Shot.Visible {
		x, y := l.ToCell(snap.Shot.X, snap.Shot.Y)
		if x >= 0 && x < l.Cols && y >= hudRows && y < l.Rows {
			c.SetContent(x, y, '+', nil, styleMarker)
		}
	}

	for _, co := range snap.Callouts {
		x, y := l.ToCell(co.X, co.Y)
		drawText(c, l, x+1, y, calloutText(co), styleCallout)
	}

	if snap.GameOver() {
		drawGameOver(c, l, snap)
	}
}

func drawHUD(c Canvas, l Layout, snap *types.Snapshot) {
	for x := 0; x < l.Cols; x++ {
		c.SetContent(x, 0, ' ', nil, styleHUD)
	}

	energyStyle := styleHUD
	if snap.Energy <= lowEnergy {
		energyStyle = styleLowEnergy
	}

	x := drawText(c, l, 0, 0, fmt.Sprintf("SCORE %d  ", int(snap.Score)), styleHUD)
	x = drawText(c, l, x, 0, "ENERGY "+energyBar(snap.Energy)+" "+strconv.Itoa(int(snap.Energy)), energyStyle)
	drawText(c, l, x, 0, "  r: play again  q: quit", styleHUD)
}

// energyBar renders energy as a fixed-width gauge, full at 100.
func energyBar(energy float64) string {
	filled := int(energy / 100 * energyBarWidth)
	filled = max(0, min(filled, energyBarWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", energyBarWidth-filled) + "]"
}

func drawEntity(c Canvas, l Layout, e *types.Entity) {
	x0, y0, x1, y1, ok := l.Rect(e.X, e.Y, e.Size)
	if !ok {
		return
	}
	style := styleLive
	if e.Destroyed {
		style = styleDestroyed
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.SetContent(x, y, ' ', nil, style)
		}
	}
	if !e.Destroyed && e.Health > 0 && e.Health < 10 {
		c.SetContent((x0+x1)/2, (y0+y1)/2, rune('0'+e.Health), nil, style)
	}
}

func calloutText(co types.Callout) string {
	return fmt.Sprintf("+%d (%s)", int(co.Points), strconv.FormatFloat(co.HealthLabel, 'f', -1, 64))
}

func drawGameOver(c Canvas, l Layout, snap *types.Snapshot) {
	lines := []string{
		"",
		"  GAME OVER  ",
		fmt.Sprintf("  score %d  ", int(snap.Score)),
		"  r: play again   q: quit  ",
		"",
	}
	width := 0
	for _, s := range lines {
		width = max(width, len(s))
	}
	top := hudRows + (l.Rows-hudRows-len(lines))/2
	left := (l.Cols - width) / 2
	for i, s := range lines {
		y := top + i
		for x := left; x < left+width; x++ {
			c.SetContent(x, y, ' ', nil, styleDialog)
		}
		drawText(c, l, left+(width-len(s))/2, y, s, styleDialog)
	}
}

// drawText writes s from (x, y), clipping at the screen edge, and returns
// the column after the last rune.
func drawText(c Canvas, l Layout, x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= l.Rows {
		return x
	}
	for _, r := range s {
		if x >= 0 && x < l.Cols {
			c.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}
