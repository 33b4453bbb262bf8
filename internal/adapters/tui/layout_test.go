package tui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLayout(t *testing.T) {
	Convey("Given an 80x25 terminal over an 800x600 world", t, func() {
		l := NewLayout(80, 25, 800, 600)

		Convey("Then each cell is 10 by 25 world units below the HUD row", func() {
			So(l.Valid(), ShouldBeTrue)
			cx, cy := l.ToCell(0, 0)
			So(cx, ShouldEqual, 0)
			So(cy, ShouldEqual, 1)

			cx, cy = l.ToCell(799.9, 599.9)
			So(cx, ShouldEqual, 79)
			So(cy, ShouldEqual, 24)
		})

		Convey("Then a cell maps back to a point inside it", func() {
			p, ok := l.ToWorld(10, 3)
			So(ok, ShouldBeTrue)
			So(p.X, ShouldEqual, 105)
			So(p.Y, ShouldEqual, 62.5)

			cx, cy := l.ToCell(p.X, p.Y)
			So(cx, ShouldEqual, 10)
			So(cy, ShouldEqual, 3)
		})

		Convey("Then the HUD and off-screen cells are not part of the world", func() {
			_, ok := l.ToWorld(5, 0)
			So(ok, ShouldBeFalse)
			_, ok = l.ToWorld(80, 5)
			So(ok, ShouldBeFalse)
			_, ok = l.ToWorld(-1, 5)
			So(ok, ShouldBeFalse)
		})

		Convey("Then squares are clipped to the playfield", func() {
			x0, y0, x1, y1, ok := l.Rect(-15, -30, 40)
			So(ok, ShouldBeTrue)
			So(x0, ShouldEqual, 0)
			So(y0, ShouldEqual, 1)
			So(x1, ShouldEqual, 2)
			So(y1, ShouldEqual, 1)

			_, _, _, _, ok = l.Rect(900, 100, 40)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a terminal too small for a playfield", t, func() {
		So(NewLayout(80, 1, 800, 600).Valid(), ShouldBeFalse)
		So(NewLayout(0, 24, 800, 600).Valid(), ShouldBeFalse)
	})
}
