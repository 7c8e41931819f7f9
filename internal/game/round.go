// Package game holds the round and session state machines.
package game

import (
	"math"
	"sort"

	"github.com/verte-zerg/tuimath/internal/model"
)

// Epsilon tolerates float round-trip error between displayed and
// stored values when matching a selection.
const Epsilon = 0.01

// Round tracks one round's expressions, the ascending order the player
// must select them in, and the cursor into that order.
type Round struct {
	exprs  []model.Expression
	target []float64
	next   int
}

// NewRound builds a round from generated expressions. The ascending
// sort of their values is the required selection order; the generator
// guarantees no ties, so the order is strict.
func NewRound(exprs []model.Expression) *Round {
	target := make([]float64, len(exprs))
	for i, e := range exprs {
		target[i] = e.Value
	}
	sort.Float64s(target)
	return &Round{exprs: exprs, target: target}
}

// Expressions returns the round's expressions in generation order.
// Display order is the renderer's concern.
func (r *Round) Expressions() []model.Expression {
	return r.exprs
}

// TargetOrder returns the ascending expected values.
func (r *Round) TargetOrder() []float64 {
	return r.target
}

// NextIndex returns the cursor into the target order.
func (r *Round) NextIndex() int {
	return r.next
}

// Complete reports whether every value has been selected in order.
func (r *Round) Complete() bool {
	return r.next == len(r.target)
}

// Submit checks a selected value against the next expected value and
// advances the cursor on a match. NaN (a malformed selection) never
// matches, so it falls through to the penalty path.
func (r *Round) Submit(value float64) bool {
	if r.Complete() {
		return false
	}
	if math.Abs(value-r.target[r.next]) < Epsilon {
		r.next++
		return true
	}
	return false
}
