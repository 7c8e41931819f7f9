package difficulty

import "testing"

func TestTierForIsTotal(t *testing.T) {
	for _, round := range []int{-5, 0, 1, 2, 25, 100, 1000} {
		tier := TierFor(round)
		if tier.OperandMin < 1 || tier.OperandMax <= tier.OperandMin {
			t.Fatalf("round %d: bad operand range %d..%d", round, tier.OperandMin, tier.OperandMax)
		}
		if len(tier.Operators) != 5 {
			t.Fatalf("round %d: expected 5 operators, got %d", round, len(tier.Operators))
		}
		if tier.PowBaseMin < 2 || tier.PowExpMin < 2 {
			t.Fatalf("round %d: bad power bounds %+v", round, tier)
		}
		if tier.MaxMagnitude != MaxMagnitude {
			t.Fatalf("round %d: unexpected magnitude cap %v", round, tier.MaxMagnitude)
		}
	}
}

func TestTierForWidensWithRound(t *testing.T) {
	prevMax := 0
	for round := 1; round <= 30; round++ {
		tier := TierFor(round)
		if tier.OperandMax < prevMax {
			t.Fatalf("round %d: operand max shrank from %d to %d", round, prevMax, tier.OperandMax)
		}
		prevMax = tier.OperandMax
	}
}

func TestTierForExponentThresholds(t *testing.T) {
	cases := []struct {
		round int
		want  int
	}{
		{1, 3},
		{9, 3},
		{10, 4},
		{19, 4},
		{20, 6},
		{25, 6},
	}
	for _, tc := range cases {
		if got := TierFor(tc.round).PowExpMax; got != tc.want {
			t.Fatalf("round %d: expected exponent ceiling %d, got %d", tc.round, tc.want, got)
		}
	}
}

func TestTierForFloatThreshold(t *testing.T) {
	if TierFor(9).FloatEnabled {
		t.Fatalf("expected integer-only tier at round 9")
	}
	if !TierFor(10).FloatEnabled {
		t.Fatalf("expected float tier at round 10")
	}
}

func TestOpString(t *testing.T) {
	symbols := map[Op]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^"}
	for op, want := range symbols {
		if op.String() != want {
			t.Fatalf("operator %d: expected %q, got %q", op, want, op.String())
		}
	}
}
