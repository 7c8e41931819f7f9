// Package synth generates arithmetic expressions for game rounds.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/verte-zerg/tuimath/internal/difficulty"
	"github.com/verte-zerg/tuimath/internal/model"
)

// Retry budgets keep generation bounded when a tier makes distinct
// results hard to find. Exhausting the round budget is not an error:
// the round simply gets fewer bubbles.
const (
	slotAttempts  = 500
	roundAttempts = 5000
)

// floatChance is the share of operand draws that become one-decimal
// floats when the tier allows them.
const floatChance = 0.5

// Synthesizer produces randomized expression sets.
type Synthesizer struct {
	rnd *rand.Rand
}

// New returns a Synthesizer seeded with the current time.
func New() *Synthesizer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Synthesizer with a fixed seed for reproducible rounds.
func NewSeeded(seed int64) *Synthesizer {
	return &Synthesizer{rnd: rand.New(rand.NewSource(seed))}
}

// Generate produces up to count expressions for the tier. Results are
// pairwise distinct after 3-decimal rounding and bounded by the tier's
// magnitude cap. Operators cycle round-robin across slots so every
// round mixes operator kinds.
func (s *Synthesizer) Generate(tier difficulty.Tier, count int) []model.Expression {
	exprs := make([]model.Expression, 0, count)
	seen := make(map[string]struct{}, count)
	total := 0
	for slot := 0; slot < count; slot++ {
		op := tier.Operators[slot%len(tier.Operators)]
		for attempt := 0; attempt < slotAttempts; attempt++ {
			total++
			if total > roundAttempts {
				return exprs
			}
			expr, ok := s.build(tier, op)
			if !ok {
				continue
			}
			key := dedupeKey(expr.Value)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			exprs = append(exprs, expr)
			break
		}
	}
	return exprs
}

func (s *Synthesizer) build(tier difficulty.Tier, op difficulty.Op) (model.Expression, bool) {
	switch op {
	case difficulty.OpDiv:
		return s.division(tier)
	case difficulty.OpPow:
		return s.power(tier)
	default:
		return s.arithmetic(tier, op)
	}
}

// division picks the denominator first, inside a safe nonzero
// sub-range. Integer tiers build the numerator as a multiple of the
// denominator so the result is exact; float tiers allow fractional
// quotients with 2-decimal rounding.
func (s *Synthesizer) division(tier difficulty.Tier) (model.Expression, bool) {
	denMax := tier.OperandMax / 2
	if denMax < 1 {
		denMax = 1
	}
	den := s.intBetween(1, denMax)
	if tier.FloatEnabled && s.rnd.Float64() < floatChance {
		num := s.intBetween(tier.OperandMin, tier.OperandMax)
		value := round2(float64(num) / float64(den))
		return finish(fmt.Sprintf("%d/%d", num, den), value, tier)
	}
	factor := s.intBetween(1, 9)
	num := den * factor
	return finish(fmt.Sprintf("%d/%d", num, den), float64(factor), tier)
}

func (s *Synthesizer) power(tier difficulty.Tier) (model.Expression, bool) {
	base := s.intBetween(tier.PowBaseMin, tier.PowBaseMax)
	exp := s.intBetween(tier.PowExpMin, tier.PowExpMax)
	value := round2(math.Pow(float64(base), float64(exp)))
	return finish(fmt.Sprintf("%d^%d", base, exp), value, tier)
}

func (s *Synthesizer) arithmetic(tier difficulty.Tier, op difficulty.Op) (model.Expression, bool) {
	a := s.operand(tier)
	b := s.operand(tier)
	var value float64
	switch op {
	case difficulty.OpAdd:
		value = a + b
	case difficulty.OpSub:
		value = a - b
	case difficulty.OpMul:
		value = a * b
	default:
		return model.Expression{}, false
	}
	display := formatOperand(a) + op.String() + formatOperand(b)
	return finish(display, round2(value), tier)
}

// operand draws from the tier range, as a one-decimal float roughly
// half the time when the tier allows floats.
func (s *Synthesizer) operand(tier difficulty.Tier) float64 {
	n := s.intBetween(tier.OperandMin, tier.OperandMax)
	if tier.FloatEnabled && s.rnd.Float64() < floatChance {
		return round1(float64(n) + s.rnd.Float64())
	}
	return float64(n)
}

func (s *Synthesizer) intBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rnd.Intn(max-min+1)
}

func finish(display string, value float64, tier difficulty.Tier) (model.Expression, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return model.Expression{}, false
	}
	if math.Abs(value) > tier.MaxMagnitude {
		return model.Expression{}, false
	}
	return model.Expression{Display: display, Value: value}, true
}

func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// dedupeKey buckets a value at 3 decimals so float round-trip
// artifacts collapse while genuinely distinct results survive.
func dedupeKey(v float64) string {
	v = round3(v)
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
