// Package game runs one arcade session: it spawns and moves squares, resolves
// shots, drains energy and tracks the active/game-over lifecycle.
//
// A Game is not safe for concurrent use. Every method, including the
// callbacks it hands to Timers, must run on the single goroutine that owns
// the simulation.
package game

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/boxshot/internal/adapters/repository"
	"github.com/okian/boxshot/internal/domain/callout"
	"github.com/okian/boxshot/internal/domain/combat"
	"github.com/okian/boxshot/internal/domain/economy"
	"github.com/okian/boxshot/internal/domain/model"
	"github.com/okian/boxshot/internal/domain/types"
	"github.com/okian/boxshot/pkg/logger"
	"github.com/okian/boxshot/pkg/metrics"
)

// Default game configuration constants.
const (
	defaultWidth       = 800.0
	defaultHeight      = 600.0
	defaultDecayAmount = 1.0
	defaultMaxCallouts = 8
	defaultMarkerTTL   = 100 * time.Millisecond
	defaultCalloutTTL  = 1000 * time.Millisecond
)

// Timer names passed to Timers.AfterFunc.
const (
	TimerShotMarker = "shot_marker"
	TimerCallout    = "callout"
)

// Sampler draws the random quantities of the simulation.
type Sampler interface {
	Size() float64
	Position() model.Point
	Drift() model.Point
}

// Timers schedules one-shot callbacks. fn must be invoked on the goroutine
// that owns the Game.
type Timers interface {
	AfterFunc(d time.Duration, name string, fn func(ctx context.Context))
}

// Stats summarises the session for monitoring.
type Stats struct {
	RoundID    string  `json:"round_id"`
	Generation uint64  `json:"generation"`
	Entities   int     `json:"entities"`
	Live       int     `json:"live"`
	Callouts   int     `json:"callouts"`
	Score      float64 `json:"score"`
	Energy     float64 `json:"energy"`
	State      string  `json:"state"`
	Shots      uint64  `json:"shots"`
	Hits       uint64  `json:"hits"`
	Kills      uint64  `json:"kills"`
	Spawned    uint64  `json:"spawned"`
	Rounds     uint64  `json:"rounds"`
}

// Game is one arcade session.
type Game struct {
	store    repository.Store
	sampler  Sampler
	timers   Timers
	eco      *economy.Economy
	resolver *combat.Resolver
	callouts *callout.Board
	log      logger.Logger

	viewport      model.Viewport
	shotCost      float64
	decayAmount   float64
	initialEnergy float64
	energyCeiling float64
	maxCallouts   int
	markerTTL     time.Duration
	calloutTTL    time.Duration

	marker     model.ShotMarker
	shotSeq    uint64
	generation uint64
	roundID    string
	state      model.State

	shots, hits, kills, spawned, rounds uint64
}

// New creates a game in the ACTIVE state with a full energy gauge.
func New(store repository.Store, sampler Sampler, timers Timers, opts ...Option) *Game {
	g := &Game{
		store:         store,
		sampler:       sampler,
		timers:        timers,
		viewport:      model.Viewport{Width: defaultWidth, Height: defaultHeight},
		shotCost:      combat.DefaultShotCost,
		decayAmount:   defaultDecayAmount,
		initialEnergy: economy.DefaultInitialEnergy,
		maxCallouts:   defaultMaxCallouts,
		markerTTL:     defaultMarkerTTL,
		calloutTTL:    defaultCalloutTTL,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Get().Named("game")
	}

	g.eco = economy.New(
		economy.WithInitialEnergy(g.initialEnergy),
		economy.WithCeiling(g.energyCeiling),
	)
	g.resolver = combat.NewResolver(g.eco, combat.WithShotCost(g.shotCost))
	g.callouts = callout.NewBoard(callout.WithMaxSize(g.maxCallouts))
	g.roundID = uuid.NewString()
	g.rounds = 1
	g.state = g.eco.State()
	g.publish()
	return g
}

// Spawn adds one randomly sized and placed square. It keeps running while the
// game is over so the field stays alive behind the game-over dialog.
func (g *Game) Spawn(ctx context.Context) model.Entity {
	size := g.sampler.Size()
	pos := g.sampler.Position()
	e, evicted := g.store.Spawn(size, pos)
	g.spawned++
	if len(evicted) > 0 {
		g.log.Debug(ctx, "population cap reached",
			logger.Uint64("id", e.ID),
			logger.Int("evicted", len(evicted)),
		)
	}
	metrics.UpdateLiveEntities(g.store.Len())
	return e
}

// TickMotion drifts every square by an independent random step.
func (g *Game) TickMotion(_ context.Context) {
	g.store.Move(func(e *model.Entity) {
		d := g.sampler.Drift()
		e.Pos.X += d.X
		e.Pos.Y += d.Y
	})
}

// Decay applies the periodic energy drain.
func (g *Game) Decay(ctx context.Context) {
	g.eco.Decay(g.decayAmount)
	g.observe(ctx)
}

// Shoot resolves a click at p. While the game is over the attempt is
// reported as not accepted and nothing changes.
func (g *Game) Shoot(ctx context.Context, p model.Point) types.ShotOutcome {
	res, ok := g.resolver.Resolve(g.store, p)
	if !ok {
		metrics.RecordShot("rejected")
		return g.outcome(false, p, 0, nil)
	}
	g.shots++

	g.shotSeq++
	g.marker = model.ShotMarker{Pos: p, Seq: g.shotSeq, Visible: true}
	gen, seq := g.generation, g.shotSeq
	g.timers.AfterFunc(g.markerTTL, TimerShotMarker, func(ctx context.Context) {
		g.clearMarker(ctx, gen, seq)
	})

	hits := make([]types.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		g.hits++
		if h.Killed {
			g.kills++
		}
		metrics.RecordHit(h.Points, h.Reward, h.Killed)

		c, evicted, dropped := g.callouts.Push(model.Callout{
			EntityID:    h.Entity.ID,
			Pos:         p,
			Points:      h.Points,
			HealthLabel: combat.CalloutValue(h.Entity.Size),
		})
		if dropped {
			g.log.Debug(ctx, "callout evicted", logger.Uint64("callout", evicted))
		}
		id := c.ID
		g.timers.AfterFunc(g.calloutTTL, TimerCallout, func(ctx context.Context) {
			g.expireCallout(ctx, gen, id)
		})

		hits = append(hits, types.Hit{
			EntityID:    h.Entity.ID,
			HealthAfter: h.Entity.Health,
			Destroyed:   h.Entity.Destroyed,
			Points:      h.Points,
			Reward:      h.Reward,
		})
	}

	if len(hits) == 0 {
		metrics.RecordShot("miss")
	} else {
		metrics.RecordShot("hit")
	}
	metrics.UpdateActiveCallouts(g.callouts.Len())
	g.observe(ctx)
	return g.outcome(true, p, res.Cost, hits)
}

// ExitAnimationComplete removes a destroyed square once the renderer has
// finished animating it out. Unknown or still-alive ids are ignored.
func (g *Game) ExitAnimationComplete(ctx context.Context, id uint64) bool {
	if !g.store.RemoveDestroyed(id) {
		g.log.Debug(ctx, "exit ignored", logger.Uint64("id", id))
		return false
	}
	metrics.UpdateLiveEntities(g.store.Len())
	return true
}

// PlayAgain starts a new round: squares, score, energy and transient
// markers are cleared and the generation advances so that timers scheduled
// in the old round do nothing. Periodic tasks are left running.
func (g *Game) PlayAgain(ctx context.Context) types.Snapshot {
	prev := g.roundID
	g.store.Clear()
	g.eco.Reset()
	g.callouts.Reset()
	g.marker = model.ShotMarker{}
	g.generation++
	g.roundID = uuid.NewString()
	g.rounds++
	g.state = g.eco.State()

	metrics.RecordReset()
	metrics.UpdateLiveEntities(0)
	metrics.UpdateActiveCallouts(0)
	g.publish()
	g.log.Info(ctx, "new round",
		logger.String("round_id", g.roundID),
		logger.String("previous_round_id", prev),
		logger.Uint64("generation", g.generation),
	)
	return g.Snapshot()
}

// Snapshot returns a copy of everything a renderer needs.
func (g *Game) Snapshot() types.Snapshot {
	list := g.store.List()
	entities := make([]types.Entity, len(list))
	for i, e := range list {
		entities[i] = types.Entity{
			ID:        e.ID,
			X:         e.Pos.X,
			Y:         e.Pos.Y,
			Size:      e.Size,
			Health:    e.Health,
			Destroyed: e.Destroyed,
		}
	}

	board := g.callouts.List()
	callouts := make([]types.Callout, len(board))
	for i, c := range board {
		callouts[i] = toCallout(c)
	}
	var latest types.Callout
	if c, ok := g.callouts.Latest(); ok {
		latest = toCallout(c)
	}

	return types.Snapshot{
		RoundID:    g.roundID,
		Generation: g.generation,
		Width:      g.viewport.Width,
		Height:     g.viewport.Height,
		Entities:   entities,
		Score:      g.eco.Score(),
		Energy:     g.eco.Energy(),
		State:      g.eco.State().String(),
		Shot: types.ShotMarker{
			X:       g.marker.Pos.X,
			Y:       g.marker.Pos.Y,
			Visible: g.marker.Visible,
		},
		Callout:  latest,
		Callouts: callouts,
	}
}

// State returns the current lifecycle state.
func (g *Game) State() model.State { return g.eco.State() }

// Generation returns the reset counter.
func (g *Game) Generation() uint64 { return g.generation }

// Stats returns session counters.
func (g *Game) Stats() Stats {
	return Stats{
		RoundID:    g.roundID,
		Generation: g.generation,
		Entities:   g.store.Len(),
		Live:       g.store.Live(),
		Callouts:   g.callouts.Len(),
		Score:      g.eco.Score(),
		Energy:     g.eco.Energy(),
		State:      g.eco.State().String(),
		Shots:      g.shots,
		Hits:       g.hits,
		Kills:      g.kills,
		Spawned:    g.spawned,
		Rounds:     g.rounds,
	}
}

func (g *Game) clearMarker(ctx context.Context, gen, seq uint64) {
	if gen != g.generation || seq != g.marker.Seq {
		metrics.RecordStaleCallback(TimerShotMarker)
		g.log.Debug(ctx, "stale marker timer",
			logger.Uint64("generation", gen),
			logger.Uint64("seq", seq),
		)
		return
	}
	g.marker.Visible = false
}

func (g *Game) expireCallout(ctx context.Context, gen, id uint64) {
	if gen != g.generation || !g.callouts.Remove(id) {
		metrics.RecordStaleCallback(TimerCallout)
		g.log.Debug(ctx, "stale callout timer",
			logger.Uint64("generation", gen),
			logger.Uint64("callout", id),
		)
		return
	}
	metrics.UpdateActiveCallouts(g.callouts.Len())
}

// observe publishes the economy and logs the transition into game over.
func (g *Game) observe(ctx context.Context) {
	g.publish()
	next := g.eco.State()
	if next == g.state {
		return
	}
	g.state = next
	if next == model.StateGameOver {
		metrics.RecordGameOver()
		g.log.Info(ctx, "game over",
			logger.String("round_id", g.roundID),
			logger.Float64("score", g.eco.Score()),
			logger.Uint64("shots", g.shots),
			logger.Uint64("kills", g.kills),
		)
	}
}

func (g *Game) publish() {
	metrics.UpdateEconomy(g.eco.Score(), g.eco.Energy())
}

func (g *Game) outcome(accepted bool, p model.Point, cost float64, hits []types.Hit) types.ShotOutcome {
	return types.ShotOutcome{
		Accepted: accepted,
		X:        p.X,
		Y:        p.Y,
		Cost:     cost,
		Hits:     hits,
		Score:    g.eco.Score(),
		Energy:   g.eco.Energy(),
		State:    g.eco.State().String(),
	}
}

func toCallout(c model.Callout) types.Callout {
	return types.Callout{
		ID:          c.ID,
		X:           c.Pos.X,
		Y:           c.Pos.Y,
		Points:      c.Points,
		HealthLabel: c.HealthLabel,
		Visible:     true,
	}
}
