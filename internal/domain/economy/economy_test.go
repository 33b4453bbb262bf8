package economy_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/okian/boxshot/internal/domain/economy"
	"github.com/okian/boxshot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEconomy(t *testing.T) {
	Convey("Given a new economy", t, func() {
		e := economy.New()

		Convey("Then it should start with zero score and full energy", func() {
			So(e.Score(), ShouldEqual, 0)
			So(e.Energy(), ShouldEqual, 100)
			So(e.State(), ShouldEqual, model.StateActive)
			So(e.CanShoot(), ShouldBeTrue)
		})

		Convey("When spending", func() {
			Convey("Then energy should drop by the amount", func() {
				So(e.Spend(10), ShouldEqual, 90)
			})

			Convey("And energy should floor at zero", func() {
				e.Spend(95)
				So(e.Spend(10), ShouldEqual, 0)
				So(e.State(), ShouldEqual, model.StateGameOver)
				So(e.CanShoot(), ShouldBeFalse)
			})
		})

		Convey("When gaining without a ceiling", func() {
			e.Gain(4)

			Convey("Then energy may exceed the initial value", func() {
				So(e.Energy(), ShouldEqual, 104)
			})
		})

		Convey("When a negative gain would go below zero", func() {
			e.Spend(100)
			e.Gain(-5)

			Convey("Then energy should stay at zero", func() {
				So(e.Energy(), ShouldEqual, 0)
			})
		})

		Convey("When awarding points", func() {
			e.Award(42.5)
			e.Award(20)
			e.Award(-3)

			Convey("Then the score should accumulate and never drop", func() {
				So(e.Score(), ShouldEqual, 62.5)
			})
		})

		Convey("When decaying", func() {
			e.Decay(1)

			Convey("Then energy should drop by one", func() {
				So(e.Energy(), ShouldEqual, 99)
			})
		})

		Convey("When resetting after play", func() {
			e.Award(300)
			e.Spend(100)
			e.Reset()

			Convey("Then score and energy should be restored", func() {
				So(e.Score(), ShouldEqual, 0)
				So(e.Energy(), ShouldEqual, 100)
				So(e.State(), ShouldEqual, model.StateActive)
			})
		})
	})

	Convey("Given an economy with a ceiling", t, func() {
		e := economy.New(economy.WithInitialEnergy(50), economy.WithCeiling(60))

		Convey("Then gains should stop at the ceiling", func() {
			So(e.Energy(), ShouldEqual, 50)
			So(e.Gain(8), ShouldEqual, 58)
			So(e.Gain(8), ShouldEqual, 60)
			So(e.Gain(8), ShouldEqual, 60)
		})
	})
}

func TestEconomySpendFormula(t *testing.T) {
	for _, v := range []float64{0.5, 9.99, 10, 10.01, 55, 100, 250} {
		e := economy.New(economy.WithInitialEnergy(v))
		want := math.Max(0, v-10)
		if got := e.Spend(10); got != want {
			t.Errorf("spend(10) from %v = %v, want %v", v, got, want)
		}
	}

	e := economy.New()
	e.Spend(100)
	if got := e.Spend(10); got != 0 {
		t.Errorf("spend(10) from 0 = %v, want 0", got)
	}
}

func TestEconomyNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	e := economy.New()
	for i := 0; i < 10_000; i++ {
		switch rng.IntN(3) {
		case 0:
			e.Spend(rng.Float64() * 30)
		case 1:
			e.Decay(rng.Float64() * 3)
		default:
			e.Gain(rng.Float64() * 4)
		}
		if e.Energy() < 0 {
			t.Fatalf("energy went negative after %d operations: %v", i, e.Energy())
		}
	}
}
