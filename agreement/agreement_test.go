package agreement

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
)

func TestPresetsListEveryBuiltIn(t *testing.T) {
	presets := Presets()
	for _, id := range []string{"metalux", "plain-bareme"} {
		terms, ok := presets[id]
		if !ok {
			t.Fatalf("preset %q missing", id)
		}
		if terms.ID != id {
			t.Errorf("preset %q carries ID %q", id, terms.ID)
		}
	}
}

func TestPresetsReturnFreshValues(t *testing.T) {
	// Callers may tweak a copy; the next caller must not see it.
	a := Metalux()
	a.Seniority.CapYears = 99
	a.Seniority.RateSteps[0].RatePercent = decimal.NewFromInt(50)

	b := Metalux()
	if b.Seniority.CapYears == 99 {
		t.Error("CapYears mutation leaked across calls")
	}
	if b.Seniority.RateSteps[0].RatePercent.Equal(decimal.NewFromInt(50)) {
		t.Error("rate step mutation leaked across calls")
	}
}

func TestMetaluxRateStepsAscending(t *testing.T) {
	steps := Metalux().Seniority.RateSteps
	for i := 1; i < len(steps); i++ {
		if steps[i].Years <= steps[i-1].Years {
			t.Fatalf("steps not ascending at index %d", i)
		}
		if steps[i].RatePercent.LessThan(steps[i-1].RatePercent) {
			t.Fatalf("rates regress at %d years", steps[i].Years)
		}
	}
}

func TestMetaluxDeclaresEveryCapability(t *testing.T) {
	m := Metalux()
	if m.Seniority == nil || !m.Seniority.AllTiers {
		t.Error("seniority must apply to all tiers")
	}
	if m.NightShiftRatePercent.IsZero() || m.NightEarlyLateRatePercent.IsZero() || m.SundayRatePercent.IsZero() {
		t.Error("surcharge rates must all be set")
	}
	if m.ThirteenMonths == nil {
		t.Error("thirteen-payment spread must be set")
	}

	kinds := map[engine.ValueKind]bool{}
	for _, def := range m.Bonuses {
		kinds[def.ValueKind] = true
	}
	if !kinds[engine.ValueHourlyRate] || !kinds[engine.ValueFixedAmount] {
		t.Error("bonuses must cover both hourly and fixed kinds")
	}
	if len(m.FixedBonuses()) != 1 {
		t.Errorf("want exactly one fixed bonus, got %d", len(m.FixedBonuses()))
	}
}

func TestPlainBaremeLeavesConventionRates(t *testing.T) {
	p := PlainBareme()
	if p.Seniority == nil {
		t.Fatal("seniority missing")
	}
	if p.Seniority.AllTiers {
		t.Error("plain scale is non-exempt only")
	}
	if !p.NightShiftRatePercent.IsZero() || !p.SundayRatePercent.IsZero() {
		t.Error("surcharges must stay with the convention")
	}
	if len(p.Bonuses) != 0 || p.ThirteenMonths != nil {
		t.Error("no bonuses or payment spread expected")
	}
}
