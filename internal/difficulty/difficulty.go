// Package difficulty maps round numbers to generation tiers.
package difficulty

// Op is an arithmetic operator available to a tier.
type Op int

// Operators in display order.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// String returns the display symbol for the operator.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// Tier is the difficulty configuration for one round: operand bounds,
// operator set, float enablement, and exponent limits.
type Tier struct {
	OperandMin   int
	OperandMax   int
	Operators    []Op
	FloatEnabled bool
	PowBaseMin   int
	PowBaseMax   int
	PowExpMin    int
	PowExpMax    int
	MaxMagnitude float64
}

// MaxMagnitude caps the absolute value of any generated result.
const MaxMagnitude = 999999

var allOps = []Op{OpAdd, OpSub, OpMul, OpDiv, OpPow}

// bands widen operand ranges at discrete round thresholds.
var bands = []struct {
	upTo  int
	min   int
	max   int
	float bool
}{
	{3, 1, 10, false},
	{6, 1, 15, false},
	{9, 1, 20, false},
	{14, 2, 30, true},
	{19, 2, 50, true},
	{0, 2, 80, true},
}

// TierFor returns the tier for a 1-based round number. It is pure and
// total: any round below 1 is treated as round 1, and rounds past the
// last band reuse it.
func TierFor(round int) Tier {
	if round < 1 {
		round = 1
	}
	band := bands[len(bands)-1]
	for _, b := range bands {
		if b.upTo != 0 && round <= b.upTo {
			band = b
			break
		}
	}
	return Tier{
		OperandMin:   band.min,
		OperandMax:   band.max,
		Operators:    allOps,
		FloatEnabled: band.float,
		PowBaseMin:   2,
		PowBaseMax:   9,
		PowExpMin:    2,
		PowExpMax:    powExpCeil(round),
		MaxMagnitude: MaxMagnitude,
	}
}

// powExpCeil raises the exponent limit at round thresholds. 9^6 stays
// below MaxMagnitude, so the base range never needs to shrink.
func powExpCeil(round int) int {
	switch {
	case round < 10:
		return 3
	case round < 20:
		return 4
	default:
		return 6
	}
}
