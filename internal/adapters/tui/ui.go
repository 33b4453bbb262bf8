// Package tui renders the simulation in a terminal and feeds mouse clicks
// and key presses back into it.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
)

// Game is the simulation surface the terminal client drives.
type Game interface {
	Snapshot(ctx context.Context) (types.Snapshot, error)
	Shoot(ctx context.Context, p types.Point) (types.ShotOutcome, error)
	ExitAnimationComplete(ctx context.Context, id uint64) (bool, error)
	PlayAgain(ctx context.Context) (types.Snapshot, error)
}

// UI is the terminal client. It owns the screen for the duration of Run.
type UI struct {
	screen tcell.Screen
	game   Game
	sound  Sound
	exits  *exitTracker
	frame  time.Duration
	logger logger.Logger

	layout     Layout
	generation uint64
	pressed    bool
	now        func() time.Time
}

// New creates a UI drawing on screen. The screen must already be
// initialised.
func New(screen tcell.Screen, game Game, opts ...Option) *UI {
	u := &UI{
		screen: screen,
		game:   game,
		sound:  NopSound{},
		exits:  newExitTracker(DefaultExitDelay),
		frame:  DefaultFrameInterval,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = logger.Get().Named("tui")
	}
	return u
}

// Run draws frames and handles input until the user quits, ctx is
// cancelled, or the game becomes unreachable.
func (u *UI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(u.frame)
	defer ticker.Stop()

	if err := u.render(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := u.handle(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			if err := u.render(ctx); err != nil {
				return err
			}
		}
	}
}

// handle applies one input event. It reports true when the user asked to
// quit.
func (u *UI) handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true, nil
			case 'r', 'R':
				return false, u.playAgain(ctx)
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		click := down && !u.pressed
		u.pressed = down
		if click {
			x, y := ev.Position()
			return false, u.shoot(ctx, x, y)
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false, nil
}

func (u *UI) shoot(ctx context.Context, cx, cy int) error {
	p, ok := u.layout.ToWorld(cx, cy)
	if !ok {
		return nil
	}
	out, err := u.game.Shoot(ctx, p)
	if err != nil {
		return u.check(ctx, "shoot", err)
	}
	if !out.Accepted || len(out.Hits) == 0 {
		return nil
	}
	for _, h := range out.Hits {
		if h.Destroyed {
			u.sound.Kill()
			return nil
		}
	}
	u.sound.Hit()
	return nil
}

func (u *UI) playAgain(ctx context.Context) error {
	snap, err := u.game.PlayAgain(ctx)
	if err != nil {
		return u.check(ctx, "play again", err)
	}
	u.exits.reset()
	u.generation = snap.Generation
	u.logger.Info(ctx, "new round",
		logger.String("round_id", snap.RoundID),
		logger.Uint64("generation", snap.Generation))
	return nil
}

// render draws one frame and reports finished exit animations.
func (u *UI) render(ctx context.Context) error {
	snap, err := u.game.Snapshot(ctx)
	if err != nil {
		return u.check(ctx, "snapshot", err)
	}
	if snap.Generation != u.generation {
		u.exits.reset()
		u.generation = snap.Generation
	}

	now := u.now()
	u.exits.observe(snap.Entities, now)
	for _, id := range u.exits.ready(now) {
		if _, err := u.game.ExitAnimationComplete(ctx, id); err != nil {
			return u.check(ctx, "exit", err)
		}
	}

	cols, rows := u.screen.Size()
	u.layout = NewLayout(cols, rows, snap.Width, snap.Height)

	u.screen.Clear()
	Draw(u.screen, u.layout, &snap)
	u.screen.Show()
	return nil
}

// check decides whether a game error ends the session. A closed game is
// fatal; busy or slow calls skip the current frame.
func (u *UI) check(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, queue.ErrClosed):
		return err
	case ctx.Err() != nil:
		return nil
	default:
		u.logger.Warn(ctx, "game call failed",
			logger.String("op", op),
			logger.Error(err))
		return nil
	}
}
