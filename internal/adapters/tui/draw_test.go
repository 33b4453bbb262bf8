package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/boxshot/internal/domain/types"
)

type cell struct {
	r     rune
	style tcell.Style
}

// fakeCanvas records the last rune and style written to each cell.
type fakeCanvas struct {
	cells map[[2]int]cell
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{cells: make(map[[2]int]cell)}
}

func (f *fakeCanvas) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = cell{r: primary, style: style}
}

func (f *fakeCanvas) row(y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		c, ok := f.cells[[2]int{x, y}]
		if !ok {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.r)
	}
	return b.String()
}

func (f *fakeCanvas) contains(text string, width, height int) bool {
	for y := 0; y < height; y++ {
		if strings.Contains(f.row(y, width), text) {
			return true
		}
	}
	return false
}

func TestDraw(t *testing.T) {
	Convey("Given an 80x25 layout over an 800x600 world", t, func() {
		l := NewLayout(80, 25, 800, 600)
		c := newFakeCanvas()

		Convey("When drawing an active round", func() {
			snap := &types.Snapshot{
				Score:  120,
				Energy: 76,
				State:  "active",
				Entities: []types.Entity{
					{ID: 1, X: 100, Y: 100, Size: 40, Health: 3},
					{ID: 2, X: 400, Y: 300, Size: 20, Health: 0, Destroyed: true},
				},
				Shot:     types.ShotMarker{X: 500, Y: 500, Visible: true},
				Callouts: []types.Callout{{ID: 1, X: 120, Y: 120, Points: 40, HealthLabel: 20, Visible: true}},
			}
			Draw(c, l, snap)

			Convey("Then the HUD shows score and energy", func() {
				hud := c.row(0, 80)
				So(hud, ShouldContainSubstring, "SCORE 120")
				So(hud, ShouldContainSubstring, "ENERGY [###############-----] 76")
			})

			Convey("Then live squares are blue with their health", func() {
				x, y := l.ToCell(100, 100)
				So(c.cells[[2]int{x, y}].style, ShouldEqual, styleLive)
				So(c.contains("3", 80, 25), ShouldBeTrue)
			})

			Convey("Then destroyed squares are red", func() {
				x, y := l.ToCell(400, 300)
				So(c.cells[[2]int{x, y}].style, ShouldEqual, styleDestroyed)
			})

			Convey("Then the marker and callout are drawn", func() {
				x, y := l.ToCell(500, 500)
				So(c.cells[[2]int{x, y}].r, ShouldEqual, '+')
				So(c.contains("+40 (20)", 80, 25), ShouldBeTrue)
			})

			Convey("Then there is no game-over dialog", func() {
				So(c.contains("GAME OVER", 80, 25), ShouldBeFalse)
			})
		})

		Convey("When drawing a finished round", func() {
			Draw(c, l, &types.Snapshot{Score: 310, State: "game_over"})

			Convey("Then the dialog shows the final score", func() {
				So(c.contains("GAME OVER", 80, 25), ShouldBeTrue)
				So(c.contains("score 310", 80, 25), ShouldBeTrue)
			})
		})

		Convey("When a square has drifted off screen", func() {
			Draw(c, l, &types.Snapshot{State: "active", Energy: 50, Entities: []types.Entity{{ID: 9, X: -300, Y: 900, Size: 50, Health: 5}}})

			Convey("Then nothing is drawn below the HUD", func() {
				for k := range c.cells {
					So(k[1], ShouldEqual, 0)
				}
			})
		})
	})
}

func TestEnergyBar(t *testing.T) {
	tests := []struct {
		energy float64
		want   string
	}{
		{0, "[--------------------]"},
		{50, "[##########----------]"},
		{100, "[####################]"},
		{250, "[####################]"},
	}
	for _, tt := range tests {
		if got := energyBar(tt.energy); got != tt.want {
			t.Errorf("energyBar(%v) = %q, want %q", tt.energy, got, tt.want)
		}
	}
}
