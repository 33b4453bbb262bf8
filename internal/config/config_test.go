package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/boxshot/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry the game constants", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SpawnInterval(), convey.ShouldEqual, time.Second)
			convey.So(cfg.MotionInterval(), convey.ShouldEqual, 100*time.Millisecond)
			convey.So(cfg.DecayInterval(), convey.ShouldEqual, time.Second)
			convey.So(cfg.ShotMarkerTTL(), convey.ShouldEqual, 100*time.Millisecond)
			convey.So(cfg.CalloutTTL(), convey.ShouldEqual, time.Second)
			convey.So(cfg.ShotCost, convey.ShouldEqual, 10)
			convey.So(cfg.DecayAmount, convey.ShouldEqual, 1)
			convey.So(cfg.InitialEnergy, convey.ShouldEqual, 100)
			convey.So(cfg.EnergyCeiling, convey.ShouldEqual, 0)
			convey.So(cfg.ExitAnimation(), convey.ShouldEqual, 300*time.Millisecond)
		})

		convey.Convey("And it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = "" },
			"zero queue":         func(c *config.Config) { c.QueueSize = 0 },
			"zero viewport":      func(c *config.Config) { c.ViewportWidth = 0 },
			"zero spawn period":  func(c *config.Config) { c.SpawnIntervalMS = 0 },
			"zero marker ttl":    func(c *config.Config) { c.ShotMarkerMS = 0 },
			"negative shot cost": func(c *config.Config) { c.ShotCost = -1 },
			"zero energy":        func(c *config.Config) { c.InitialEnergy = 0 },
			"negative ceiling":   func(c *config.Config) { c.EnergyCeiling = -5 },
			"zero entity cap":    func(c *config.Config) { c.MaxEntities = 0 },
			"negative exit":      func(c *config.Config) { c.ExitAnimationMS = -1 },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" should be rejected", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
