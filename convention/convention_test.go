package convention

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/pay-engine/engine"
)

func TestBaseSalaryTableCoversEveryClass(t *testing.T) {
	c := Catalog()
	prev := decimal.Zero
	for class := 1; class <= 18; class++ {
		base, ok := c.BaseSalary(class)
		if !ok {
			t.Fatalf("class %d missing from the salary table", class)
		}
		if !base.GreaterThan(prev) {
			t.Errorf("class %d base %s not above class %d base %s", class, base, class-1, prev)
		}
		prev = base
	}
	if _, ok := c.BaseSalary(0); ok {
		t.Error("class 0 must not resolve")
	}
	if _, ok := c.BaseSalary(19); ok {
		t.Error("class 19 must not resolve")
	}
}

func TestJuniorScheduleTiers(t *testing.T) {
	c := Catalog()
	cases := []struct {
		class      int
		experience string
		want       string
		found      bool
	}{
		{11, "0", "32060", true},
		{11, "1.9", "32060", true},
		{11, "2", "33890", true},
		{11, "3.99", "33890", true},
		{11, "4", "35720", true},
		{11, "5.5", "35720", true},
		{11, "6", "", false}, // standard table takes over
		{12, "0", "35180", true},
		{12, "2", "37190", true},
		{12, "4", "39200", true},
		{13, "1", "", false}, // not junior-eligible
	}
	for _, tc := range cases {
		got, ok := c.JuniorBaseSalary(tc.class, decimal.RequireFromString(tc.experience))
		if ok != tc.found {
			t.Errorf("class %d exp %s: found=%v, want %v", tc.class, tc.experience, ok, tc.found)
			continue
		}
		if tc.found && got.String() != tc.want {
			t.Errorf("class %d exp %s: got %s, want %s", tc.class, tc.experience, got, tc.want)
		}
	}
}

func TestJuniorScheduleBelowStandardBase(t *testing.T) {
	// The junior figures only make sense strictly below the standard base.
	c := Catalog()
	for _, class := range []int{11, 12} {
		standard, _ := c.BaseSalary(class)
		for _, tier := range juniorSchedules[class] {
			if !tier.annual.LessThan(standard) {
				t.Errorf("class %d junior tier %s not below standard %s", class, tier.annual, standard)
			}
		}
	}
}

func TestSeniorityRatesNonExemptOnly(t *testing.T) {
	def := Catalog().SeniorityBonus()
	if def.Convention == nil {
		t.Fatal("seniority definition lacks convention config")
	}
	rates := def.Convention.RatePercentByClass
	prev := decimal.Zero
	for class := 1; class <= 10; class++ {
		rate, ok := rates[class]
		if !ok {
			t.Fatalf("class %d missing a seniority rate", class)
		}
		if !rate.GreaterThan(prev) {
			t.Errorf("class %d rate %s not above class %d rate %s", class, rate, class-1, prev)
		}
		prev = rate
	}
	for class := engine.ExemptClassThreshold; class <= 18; class++ {
		if _, ok := rates[class]; ok {
			t.Errorf("exempt class %d must not carry a convention seniority rate", class)
		}
	}
}

func TestCatalogDefinitionsWellFormed(t *testing.T) {
	c := Catalog()

	if got := c.SeniorityBonus().Kind; got != engine.KindBonus {
		t.Errorf("seniority kind %q", got)
	}
	if got := c.NightSurcharge().Kind; got != engine.KindSurcharge {
		t.Errorf("night kind %q", got)
	}
	if got := c.SundaySurcharge().Kind; got != engine.KindSurcharge {
		t.Errorf("sunday kind %q", got)
	}

	upgrades := c.ScheduleUpgrades()
	if len(upgrades) != 2 {
		t.Fatalf("want 2 schedule upgrades, got %d", len(upgrades))
	}
	keys := map[engine.ScheduleType]decimal.Decimal{}
	for _, def := range upgrades {
		if def.Kind != engine.KindScheduleUpgrade || def.Convention == nil {
			t.Fatalf("malformed upgrade definition %q", def.ID)
		}
		keys[def.Convention.ScheduleKey] = def.Convention.UpgradeRatePercent
	}
	if !keys[engine.ScheduleHoursExemption].Equal(HoursExemptionRatePercent) {
		t.Error("hours-exemption upgrade rate mismatch")
	}
	if !keys[engine.ScheduleDaysExemption].Equal(DaysExemptionRatePercent) {
		t.Error("days-exemption upgrade rate mismatch")
	}
}
