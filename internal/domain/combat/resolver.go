// Package combat turns a pointer coordinate into damage, score and energy
// deltas.
package combat

import (
	"math"

	"github.com/okian/boxshot/internal/domain/economy"
	"github.com/okian/boxshot/internal/domain/model"
)

// Default resolver configuration constants.
const (
	DefaultShotCost = 10.0

	// rewardBase and rewardBand define the energy refund per hit:
	// clamp(rewardBase - floor(size/rewardBand), 0, rewardBase).
	rewardBase = 4.0
	rewardBand = 20.0
)

// Targets finds the entities a shot can affect.
type Targets interface {
	At(p model.Point) []*model.Entity
}

// Hit is the effect of one shot on one entity.
type Hit struct {
	Entity model.Entity // state after the hit
	Points float64
	Reward float64
	Killed bool
}

// Result is the effect of one accepted shot.
type Result struct {
	Point model.Point
	Cost  float64
	Hits  []Hit
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithShotCost sets the energy spent per shot, hit or miss.
func WithShotCost(cost float64) Option {
	return func(r *Resolver) {
		if cost >= 0 {
			r.cost = cost
		}
	}
}

// Resolver applies shots against a target set and an economy.
type Resolver struct {
	eco  *economy.Economy
	cost float64
}

// NewResolver creates a resolver bound to eco.
func NewResolver(eco *economy.Economy, opts ...Option) *Resolver {
	r := &Resolver{eco: eco, cost: DefaultShotCost}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cost returns the energy spent per shot.
func (r *Resolver) Cost() float64 { return r.cost }

// Resolve applies a shot at p. It returns false, mutating nothing, when the
// economy has no energy left. Otherwise the shot cost is spent first and
// every non-destroyed entity containing p is hit once, in store order.
func (r *Resolver) Resolve(targets Targets, p model.Point) (Result, bool) {
	if !r.eco.CanShoot() {
		return Result{}, false
	}

	r.eco.Spend(r.cost)
	res := Result{Point: p, Cost: r.cost}

	for _, e := range targets.At(p) {
		killed := e.Damage()
		points := e.Size
		reward := Reward(e.Size)
		r.eco.Award(points)
		r.eco.Gain(reward)
		res.Hits = append(res.Hits, Hit{
			Entity: *e,
			Points: points,
			Reward: reward,
			Killed: killed,
		})
	}
	return res, true
}

// Reward returns the energy refunded for hitting a square of the given size.
// Smaller squares refund more: 4 for sizes below 20 down to 0 from 80 up.
func Reward(size float64) float64 {
	return math.Min(rewardBase, math.Max(0, rewardBase-math.Floor(size/rewardBand)))
}

// CalloutValue is the secondary number shown with a hit's callout.
func CalloutValue(size float64) float64 {
	return size / 2
}
