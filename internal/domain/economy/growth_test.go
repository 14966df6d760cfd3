package economy

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func newDefaultGrowth(t *testing.T) *GrowthModel {
	t.Helper()
	m, err := NewGrowthModel(DefaultGrowthParameters())
	if err != nil {
		t.Fatalf("NewGrowthModel returned error: %v", err)
	}
	return m
}

func TestGrowthFirstStep(t *testing.T) {
	m := newDefaultGrowth(t)

	preOutput := math.Pow(100, 0.3) * math.Pow(1000, 0.7)
	if !approx(m.State().Output, preOutput) {
		t.Fatalf("expected initial output %v, got %v", preOutput, m.State().Output)
	}
	if math.Abs(preOutput-501.19) > 0.01 {
		t.Fatalf("expected initial output near 501.19, got %v", preOutput)
	}

	m.Step()
	st := m.State()

	if st.Year != 1 {
		t.Errorf("expected year 1, got %d", st.Year)
	}
	if !approx(st.Technology, 1.01) {
		t.Errorf("expected technology 1.01, got %v", st.Technology)
	}
	if !approx(st.Labor, 1020) {
		t.Errorf("expected labor 1020, got %v", st.Labor)
	}
	wantCapital := 100 + 0.2*preOutput - 0.05*100
	if !approx(st.Capital, wantCapital) {
		t.Errorf("expected capital %v, got %v", wantCapital, st.Capital)
	}
	wantOutput := st.Technology * math.Pow(st.Capital, 0.3) * math.Pow(st.Labor, 0.7)
	if !approx(st.Output, wantOutput) {
		t.Errorf("expected post-step output %v, got %v", wantOutput, st.Output)
	}
	if !approx(st.Consumption, 0.8*st.Output) || !approx(st.Investment, 0.2*st.Output) {
		t.Errorf("consumption/investment not derived from output: %+v", st)
	}
}

func TestGrowthMonotoneTechnologyAndLabor(t *testing.T) {
	cases := []GrowthParameters{
		DefaultGrowthParameters(),
		{Alpha: 0.5, Delta: 0.1, N: 0, G: 0, S: 0.3, A0: 2, K0: 10, L0: 50},
		{Alpha: 0.2, Delta: 0, N: 0.05, G: 0.03, S: 1, A0: 0.5, K0: 1, L0: 1},
	}

	for i, p := range cases {
		m, err := NewGrowthModel(p)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		prev := m.State()
		for step := 0; step < 150; step++ {
			m.Step()
			st := m.State()
			if st.Technology < prev.Technology || st.Labor < prev.Labor {
				t.Fatalf("case %d step %d: technology/labor decreased: %+v -> %+v", i, step, prev, st)
			}
			prev = st
		}
	}
}

func TestGrowthCapitalNeverNegative(t *testing.T) {
	m := newDefaultGrowth(t)

	for i := 0; i < 50; i++ {
		m.ApplyShock(ShockCapitalDestruction, 0.6)
		m.ApplyShock(ShockCapitalDestruction, -1.7)
		m.ApplyShock(ShockDepreciation, 0.5)
		m.Step()
		if st := m.State(); st.Capital < 0 {
			t.Fatalf("iteration %d: capital went negative: %v", i, st.Capital)
		}
	}
}

func TestGrowthDerivedFieldsConsistent(t *testing.T) {
	m := newDefaultGrowth(t)

	check := func(label string) {
		st := m.State()
		if st.GDPPerCapita != st.Output/st.Labor {
			t.Fatalf("%s: gdpPerCapita %v != output/labor %v", label, st.GDPPerCapita, st.Output/st.Labor)
		}
		if st.CapitalPerWorker != st.Capital/st.Labor {
			t.Fatalf("%s: capitalPerWorker %v != capital/labor %v", label, st.CapitalPerWorker, st.Capital/st.Labor)
		}
	}

	for _, kind := range ShockKinds() {
		m.ApplyShock(kind, 0.07)
		check("after " + string(kind))
		m.Step()
		check("step after " + string(kind))
	}
}

func TestGrowthApplyShock(t *testing.T) {
	m := newDefaultGrowth(t)
	before := m.State()
	params := m.Params()

	m.ApplyShock(ShockTechnology, 0.1)
	m.ApplyShock(ShockProductivity, 0.005)
	m.ApplyShock(ShockPopulation, -0.02)
	m.ApplyShock(ShockDepreciation, 0.01)
	m.ApplyShock(ShockCapitalDestruction, -0.15)

	st := m.State()
	p := m.Params()
	if !approx(st.Technology, before.Technology*1.1) {
		t.Errorf("technology shock: got %v", st.Technology)
	}
	if !approx(p.G, params.G+0.005) {
		t.Errorf("productivity shock: got g=%v", p.G)
	}
	if !approx(st.Labor, before.Labor*0.98) {
		t.Errorf("population shock: got %v", st.Labor)
	}
	if !approx(p.Delta, params.Delta+0.01) {
		t.Errorf("depreciation shock: got delta=%v", p.Delta)
	}
	if !approx(st.Capital, before.Capital*0.85) {
		t.Errorf("capital destruction must use |magnitude|: got %v", st.Capital)
	}
}

func TestGrowthIgnoresForeignShocks(t *testing.T) {
	m := newDefaultGrowth(t)
	before := m.State()

	m.ApplyShock(ShockInflation, 0.5)
	m.ApplyShock(ShockKind("typo"), 0.5)

	if m.State() != before {
		t.Fatalf("expected no change, got %+v", m.State())
	}
}

func TestSetSavingsRate(t *testing.T) {
	m := newDefaultGrowth(t)
	m.SetSavingsRate(35)

	if !approx(m.Params().S, 0.35) {
		t.Fatalf("expected s=0.35, got %v", m.Params().S)
	}
	st := m.State()
	if !approx(st.Investment, 0.35*st.Output) {
		t.Fatalf("investment not recomputed: %+v", st)
	}
}

func TestRecordGrowthRateMemo(t *testing.T) {
	m := newDefaultGrowth(t)

	m.Step()
	if r := m.RecordGrowthRate(); r != 0 {
		t.Fatalf("year 1 must read 0, got %v", r)
	}

	m.Step()
	// No previous reading yet: the first reading at year 2 is 0.
	if r := m.RecordGrowthRate(); r != 0 {
		t.Fatalf("first reading must be 0, got %v", r)
	}

	prev := m.State().GDPPerCapita
	m.Step()
	cur := m.State().GDPPerCapita
	want := (cur - prev) / prev * 100
	if r := m.RecordGrowthRate(); !approx(r, want) {
		t.Fatalf("expected %v, got %v", want, r)
	}
	if !approx(m.GrowthRate(), want) {
		t.Fatalf("GrowthRate must return last recorded value, got %v", m.GrowthRate())
	}

	// A second call without a step sees no change.
	if r := m.RecordGrowthRate(); r != 0 {
		t.Fatalf("second call without step must be 0, got %v", r)
	}
	if m.LastRecordedYear() != 3 {
		t.Fatalf("expected last recorded year 3, got %d", m.LastRecordedYear())
	}
}

func TestResetGrowthMemo(t *testing.T) {
	m := newDefaultGrowth(t)
	for i := 0; i < 4; i++ {
		m.Step()
		m.RecordGrowthRate()
	}

	m.ResetGrowthMemo()
	m.Step()
	if r := m.RecordGrowthRate(); r != 0 {
		t.Fatalf("expected 0 after memo reset, got %v", r)
	}
}

func TestWarmUpStepKeepsYear(t *testing.T) {
	m := newDefaultGrowth(t)
	before := m.State()

	m.WarmUpStep()
	st := m.State()
	if st.Year != 0 {
		t.Fatalf("expected year 0, got %d", st.Year)
	}
	if st.Technology <= before.Technology || st.Labor <= before.Labor {
		t.Fatalf("warm-up step must still evolve the economy: %+v", st)
	}
}

func TestNewGrowthModelRejectsDegenerateParameters(t *testing.T) {
	mutate := []func(p *GrowthParameters){
		func(p *GrowthParameters) { p.L0 = 0 },
		func(p *GrowthParameters) { p.L0 = -5 },
		func(p *GrowthParameters) { p.A0 = 0 },
		func(p *GrowthParameters) { p.K0 = 0 },
		func(p *GrowthParameters) { p.Alpha = 1 },
		func(p *GrowthParameters) { p.Alpha = 0 },
		func(p *GrowthParameters) { p.Delta = -0.1 },
		func(p *GrowthParameters) { p.S = 1.5 },
		func(p *GrowthParameters) { p.N = -1 },
		func(p *GrowthParameters) { p.G = math.NaN() },
		func(p *GrowthParameters) { p.K0 = math.Inf(1) },
	}

	for i, fn := range mutate {
		p := DefaultGrowthParameters()
		fn(&p)
		if _, err := NewGrowthModel(p); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("case %d: expected ErrInvalidParameters, got %v", i, err)
		}
	}
}

func TestGrowthOverridesApply(t *testing.T) {
	s := 0.35
	l0 := 2000.0
	p := GrowthOverrides{S: &s, L0: &l0}.Apply(DefaultGrowthParameters())

	if p.S != 0.35 || p.L0 != 2000 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.Alpha != 0.3 || p.K0 != 100 {
		t.Fatalf("unset fields must keep defaults: %+v", p)
	}
}
