package calc

import (
	"math"
	"testing"
)

func TestTerminalValueConsistency(t *testing.T) {
	// TV must equal CF_final * (1+g) / (r-g) for any valid (r, g) pair.
	pairs := []struct {
		r, g float64
	}{
		{0.12, 0.03},
		{0.105, 0.02},
		{0.08, 0.00},
		{0.15, 0.045},
		{0.10, -0.01}, // shrinking perpetuity is still valid
	}

	finalCF := 7346640384000.0
	for _, p := range pairs {
		tv := TerminalValueGordonGrowth(finalCF, p.r, p.g)
		expected := finalCF * (1 + p.g) / (p.r - p.g)
		if math.Abs(tv-expected) > 1e-6*math.Abs(expected) {
			t.Errorf("TV(r=%.3f, g=%.3f) expected %f, got %f", p.r, p.g, expected, tv)
		}
		if tv <= 0 {
			t.Errorf("TV(r=%.3f, g=%.3f) should be positive, got %f", p.r, p.g, tv)
		}
	}
}

func TestTerminalValueGuard(t *testing.T) {
	// r <= g is rejected upstream by the normalizer; the primitive returns 0.
	if tv := TerminalValueGordonGrowth(100, 0.03, 0.12); tv != 0 {
		t.Errorf("expected 0 for r <= g, got %f", tv)
	}
	if tv := TerminalValueGordonGrowth(100, 0.05, 0.05); tv != 0 {
		t.Errorf("expected 0 for r == g, got %f", tv)
	}
}

func TestPresentValue(t *testing.T) {
	// 112 received in one year at 12% is worth 100 today.
	pv := PresentValue(112, 0.12, 1)
	if math.Abs(pv-100) > 0.0001 {
		t.Errorf("expected 100, got %f", pv)
	}

	// Zero periods means no discounting.
	if pv := PresentValue(500, 0.12, 0); pv != 500 {
		t.Errorf("expected 500 undiscounted, got %f", pv)
	}

	if pv := PresentValue(500, 0.12, -1); pv != 0 {
		t.Errorf("expected 0 for negative periods, got %f", pv)
	}
}

func TestPresentValueOfCashFlows(t *testing.T) {
	flows := []float64{100, 100, 100}
	r := 0.10
	expected := 100/1.1 + 100/(1.1*1.1) + 100/(1.1*1.1*1.1)

	pv := PresentValueOfCashFlows(flows, r)
	if math.Abs(pv-expected) > 0.0001 {
		t.Errorf("expected %f, got %f", expected, pv)
	}
}

func TestProjectGrowthSeries(t *testing.T) {
	series := ProjectGrowthSeries(1000, 0.08, 3)
	if len(series) != 3 {
		t.Fatalf("expected 3 periods, got %d", len(series))
	}
	expected := []float64{1080, 1166.4, 1259.712}
	for i, v := range series {
		if math.Abs(v-expected[i]) > 0.0001 {
			t.Errorf("year %d expected %f, got %f", i+1, expected[i], v)
		}
	}
}

func TestCostOfEquityCAPM(t *testing.T) {
	// r_e = 4.318% + 1.64 * 4.18% = 11.1732%
	re := CostOfEquityCAPM(0.04318, 1.64, 0.0418)
	if math.Abs(re-0.111732) > 0.000001 {
		t.Errorf("expected 0.111732, got %f", re)
	}
}

func TestWACC(t *testing.T) {
	// 40% debt at 6% pre-tax (20% tax), 60% equity at 12%
	// WACC = 0.06*0.8*0.4 + 0.12*0.6 = 0.0192 + 0.072 = 0.0912
	w := WACC(0.06, 0.20, 0.40, 0.12, 0.60)
	if math.Abs(w-0.0912) > 0.000001 {
		t.Errorf("expected 0.0912, got %f", w)
	}
}
