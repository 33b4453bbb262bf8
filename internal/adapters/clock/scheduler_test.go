package clock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/boxshot/internal/adapters/clock"
	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/adapters/mq/worker"
	"github.com/okian/boxshot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler feeding a running loop", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		loop := worker.NewLoop(q)
		go loop.Run(ctx)

		s := clock.NewScheduler(q)
		defer s.Stop()

		Convey("When two periodic tasks run", func() {
			var fast, slow atomic.Int64
			s.Every("fast", 5*time.Millisecond, func(context.Context) { fast.Add(1) })
			s.Every("slow", 20*time.Millisecond, func(context.Context) { slow.Add(1) })
			s.Start(ctx)
			time.Sleep(110 * time.Millisecond)
			s.Stop()

			Convey("Then both fire at their own rate", func() {
				So(fast.Load(), ShouldBeGreaterThan, slow.Load())
				So(slow.Load(), ShouldBeGreaterThanOrEqualTo, 2)
			})

			Convey("Then nothing fires after Stop", func() {
				time.Sleep(10 * time.Millisecond)
				before := fast.Load()
				time.Sleep(30 * time.Millisecond)
				So(fast.Load(), ShouldEqual, before)
			})
		})

		Convey("When one-shot timers are scheduled", func() {
			fired := make(chan string, 2)
			s.AfterFunc(5*time.Millisecond, "a", func(context.Context) { fired <- "a" })
			s.AfterFunc(5*time.Millisecond, "b", func(context.Context) { fired <- "b" })

			Convey("Then each fires once on the loop", func() {
				got := map[string]bool{}
				for range 2 {
					select {
					case name := <-fired:
						got[name] = true
					case <-time.After(time.Second):
						t.Fatal("timer did not fire")
					}
				}
				So(got, ShouldContainKey, "a")
				So(got, ShouldContainKey, "b")
				So(s.Pending(), ShouldEqual, 0)
			})
		})

		Convey("When a timer is pending at Stop", func() {
			var fired atomic.Bool
			s.AfterFunc(50*time.Millisecond, "late", func(context.Context) { fired.Store(true) })
			So(s.Pending(), ShouldEqual, 1)
			s.Stop()
			time.Sleep(80 * time.Millisecond)

			Convey("Then it never fires", func() {
				So(fired.Load(), ShouldBeFalse)
				So(s.Pending(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a scheduler whose queue is never drained", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(1))
		s := clock.NewScheduler(q)
		s.Every("motion", 2*time.Millisecond, func(context.Context) {})
		s.Start(context.Background())
		time.Sleep(40 * time.Millisecond)
		s.Stop()

		Convey("Then extra ticks are dropped rather than queued", func() {
			So(q.Len(), ShouldEqual, 1)
			So(s.Dropped(), ShouldBeGreaterThan, 0)
		})
	})
}
