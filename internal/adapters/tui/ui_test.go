package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeGame struct {
	mu       sync.Mutex
	snap     types.Snapshot
	outcome  types.ShotOutcome
	shots    []types.Point
	exits    []uint64
	replays  int
	snapErr  error
	shootErr error
}

func (f *fakeGame) Snapshot(context.Context) (types.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.snapErr
}

func (f *fakeGame) Shoot(_ context.Context, p types.Point) (types.ShotOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shots = append(f.shots, p)
	return f.outcome, f.shootErr
}

func (f *fakeGame) ExitAnimationComplete(_ context.Context, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exits = append(f.exits, id)
	return true, nil
}

func (f *fakeGame) PlayAgain(context.Context) (types.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replays++
	f.snap.Generation++
	f.snap.Entities = nil
	return f.snap, nil
}

type countingSound struct {
	hits, kills int
}

func (s *countingSound) Hit()  { s.hits++ }
func (s *countingSound) Kill() { s.kills++ }

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func TestUI_Input(t *testing.T) {
	Convey("Given a UI over an 800x600 world", t, func() {
		ctx := context.Background()
		game := &fakeGame{snap: types.Snapshot{Width: 800, Height: 600, State: "active", Energy: 100}}
		sound := &countingSound{}
		u := New(newTestScreen(t), game, WithSound(sound))
		So(u.render(ctx), ShouldBeNil)

		Convey("A left click shoots at the centre of the clicked cell", func() {
			quit, err := u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			So(err, ShouldBeNil)
			So(quit, ShouldBeFalse)
			So(game.shots, ShouldResemble, []types.Point{{X: 105, Y: 62.5}})
		})

		Convey("Holding the button fires only once", func() {
			u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			u.handle(ctx, tcell.NewEventMouse(11, 3, tcell.Button1, tcell.ModNone))
			u.handle(ctx, tcell.NewEventMouse(11, 3, tcell.ButtonNone, tcell.ModNone))
			u.handle(ctx, tcell.NewEventMouse(12, 3, tcell.Button1, tcell.ModNone))
			So(len(game.shots), ShouldEqual, 2)
		})

		Convey("Clicks on the HUD row are ignored", func() {
			u.handle(ctx, tcell.NewEventMouse(10, 0, tcell.Button1, tcell.ModNone))
			So(game.shots, ShouldBeEmpty)
		})

		Convey("A kill plays the kill sound", func() {
			game.outcome = types.ShotOutcome{Accepted: true, Hits: []types.Hit{{EntityID: 1}, {EntityID: 2, Destroyed: true}}}
			u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			So(sound.kills, ShouldEqual, 1)
			So(sound.hits, ShouldEqual, 0)
		})

		Convey("A rejected shot is silent", func() {
			game.outcome = types.ShotOutcome{Accepted: false}
			u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			So(sound.kills+sound.hits, ShouldEqual, 0)
		})

		Convey("r plays again", func() {
			quit, err := u.handle(ctx, tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
			So(err, ShouldBeNil)
			So(quit, ShouldBeFalse)
			So(game.replays, ShouldEqual, 1)
			So(u.generation, ShouldEqual, 1)
		})

		Convey("q, Esc and Ctrl-C quit", func() {
			for _, ev := range []*tcell.EventKey{
				tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
				tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
				tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
			} {
				quit, err := u.handle(ctx, ev)
				So(err, ShouldBeNil)
				So(quit, ShouldBeTrue)
			}
		})

		Convey("A closed game ends the session", func() {
			game.shootErr = fmt.Errorf("service not started: %w", queue.ErrClosed)
			_, err := u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			So(errors.Is(err, queue.ErrClosed), ShouldBeTrue)
		})

		Convey("A busy game only skips the shot", func() {
			game.shootErr = fmt.Errorf("service busy: %w", queue.ErrFull)
			_, err := u.handle(ctx, tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
			So(err, ShouldBeNil)
		})
	})
}

func TestUI_Exits(t *testing.T) {
	Convey("Given a destroyed square on screen", t, func() {
		ctx := context.Background()
		game := &fakeGame{snap: types.Snapshot{
			Width: 800, Height: 600, State: "active", Energy: 50,
			Entities: []types.Entity{{ID: 3, X: 10, Y: 10, Size: 30, Destroyed: true}},
		}}
		now := time.Unix(0, 0)
		u := New(newTestScreen(t), game, WithExitDelay(100*time.Millisecond))
		u.now = func() time.Time { return now }

		So(u.render(ctx), ShouldBeNil)
		So(game.exits, ShouldBeEmpty)

		Convey("The exit is reported once the delay has passed", func() {
			now = now.Add(100 * time.Millisecond)
			So(u.render(ctx), ShouldBeNil)
			So(game.exits, ShouldResemble, []uint64{3})
		})

		Convey("A new round drops pending exits", func() {
			game.snap.Generation = 1
			now = now.Add(100 * time.Millisecond)
			So(u.render(ctx), ShouldBeNil)
			So(game.exits, ShouldBeEmpty)
		})
	})
}

func TestUI_Run(t *testing.T) {
	Convey("Run returns when the context is cancelled", t, func() {
		game := &fakeGame{snap: types.Snapshot{Width: 800, Height: 600, State: "active", Energy: 100}}
		u := New(newTestScreen(t), game, WithFrameInterval(time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		So(u.Run(ctx), ShouldBeNil)
	})

	Convey("Run fails when the game is closed", t, func() {
		game := &fakeGame{snapErr: queue.ErrClosed}
		u := New(newTestScreen(t), game)
		So(u.Run(context.Background()), ShouldEqual, queue.ErrClosed)
	})
}
