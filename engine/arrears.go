/*
arrears.go - Month-by-month retroactive underpayment replay

PURPOSE:
  Replays the compensation calculator over a historical date range to
  compare what was legally owed each month against what the worker
  declares was actually paid, accumulating the shortfall.

ALGORITHM:
  For each calendar month in [Start, End] that appears in the declared
  pay map (absence means "no data", not "paid zero"):
    1. Derive that month's seniority: whole elapsed years since hire.
    2. Snapshot the profile with that seniority.
    3. Compute the annual figure owed (floor-only or full).
    4. Convert annual to monthly, honoring the 13-payment spread and any
       lump-sum bonus scheduled for a specific month.
    5. Record owed - declared. Only strictly positive differences feed
       the shortfall total: months are independent, an overpaid month
       never offsets an underpaid one.

MONTH KEYS:
  Declared pay is keyed by "YYYY-MM" strings, the exact format the rows
  carry back out.

SEE ALSO:
  - calculator.go: Computes the per-month annual figure
  - elements.go: Fixed-bonus eligibility at the month's reference date
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyLayout formats a calendar month as a declared-pay map key.
const MonthKeyLayout = "2006-01"

// ReplayInput carries everything one arrears query needs.
type ReplayInput struct {
	Start    time.Time
	End      time.Time
	HireDate time.Time

	// ClassChangeDate, when set, marks when the profile's classification
	// took effect: earlier months are skipped since the supplied class
	// cannot price them.
	ClassChangeDate *time.Time

	// DeclaredPay maps "YYYY-MM" to the gross amount actually paid.
	DeclaredPay map[string]decimal.Decimal

	Profile WorkerProfile
	Terms   *AgreementTerms

	// FloorOnly replays the regulatory minimum (ModeBaseOnly) instead of
	// the full compensation.
	FloorOnly bool
}

// PeriodRow is one replayed month. Immutable after creation.
type PeriodRow struct {
	Month      string // "YYYY-MM"
	Owed       decimal.Decimal
	Declared   decimal.Decimal
	Difference decimal.Decimal // signed: owed - declared
}

// ReplayResult aggregates a replay: every priced month, the subset with a
// strictly positive difference, and their integer-rounded sum.
type ReplayResult struct {
	TotalShortfall decimal.Decimal
	Shortfalls     []PeriodRow
	Rows           []PeriodRow
}

// Replay iterates the query range month by month. ErrInvalidPeriod is
// returned only for an inverted range; data gaps are skipped silently.
func Replay(in ReplayInput, catalog Catalog) (ReplayResult, error) {
	start := firstOfMonth(in.Start)
	end := firstOfMonth(in.End)
	if end.Before(start) {
		return ReplayResult{TotalShortfall: decimal.Zero}, ErrInvalidPeriod
	}

	// The calculator ignores terms when the profile has not opted in; the
	// monthly conversion must see the same ruleset, or a disabled
	// agreement's payment spread would divide a convention-only figure.
	if !in.Profile.AgreementEnabled {
		in.Terms = nil
	}

	mode := ModeFull
	if in.FloorOnly {
		mode = ModeBaseOnly
	}

	result := ReplayResult{TotalShortfall: decimal.Zero}
	total := decimal.Zero

	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		declared, present := in.DeclaredPay[month.Format(MonthKeyLayout)]
		if !present {
			continue // no data for this month
		}
		if in.ClassChangeDate != nil && month.Before(firstOfMonth(*in.ClassChangeDate)) {
			continue
		}

		snapshot := in.Profile
		snapshot.SeniorityYears = seniorityAt(in.HireDate, month)
		snapshot.AsOfMonth = month

		annual := ComputeAnnual(snapshot, in.Terms, mode, catalog)
		owed := monthlyShare(annual, snapshot, in.Terms, month, mode)

		row := PeriodRow{
			Month:      month.Format(MonthKeyLayout),
			Owed:       owed,
			Declared:   declared,
			Difference: owed.Sub(declared),
		}
		result.Rows = append(result.Rows, row)
		if row.Difference.IsPositive() {
			result.Shortfalls = append(result.Shortfalls, row)
			total = total.Add(row.Difference)
		}
	}

	result.TotalShortfall = RoundUnits(total)
	return result, nil
}

// seniorityAt returns whole elapsed years since hire at the given month.
func seniorityAt(hire, month time.Time) decimal.Decimal {
	months := monthsBetween(firstOfMonth(hire), month)
	if months < 0 {
		months = 0
	}
	return decimal.NewFromInt(int64(months / 12))
}

// monthlyShare converts the annual owed figure into this month's share.
//
// Lump-sum bonuses scheduled for a specific month are pulled out of the
// annual figure before division (so they are not double-divided) and
// added back on top of their own month. The 13-payment spread, when the
// active agreement declares one, gives the designated double month 2/13
// of the remaining annual figure and every other month 1/13.
func monthlyShare(annual CompensationResult, p WorkerProfile, terms *AgreementTerms, month time.Time, mode Mode) decimal.Decimal {
	spread := annual.Total
	lump := decimal.Zero

	if terms != nil && mode == ModeFull {
		for _, def := range terms.FixedBonuses() {
			cfg := def.Agreement
			if cfg == nil || cfg.PaidInMonth == 0 {
				continue
			}
			amount := appliedAmount(annual, def)
			if amount.IsZero() {
				continue
			}
			spread = spread.Sub(amount)
			if month.Month() == cfg.PaidInMonth {
				lump = lump.Add(amount)
			}
		}
	}

	var share decimal.Decimal
	if terms != nil && terms.ThirteenMonths != nil {
		thirteen := decimal.NewFromInt(13)
		share = spread.Div(thirteen)
		if month.Month() == terms.ThirteenMonths.DoubleMonth {
			share = share.Mul(decimal.NewFromInt(2))
		}
	} else {
		share = spread.Div(twelve)
	}

	return RoundCents(share.Add(lump))
}

// appliedAmount finds the annual amount actually applied for a definition,
// zero when the pass omitted it (ineligible or inactive). Matched by
// definition ID: labels are display text and may repeat across bonuses.
func appliedAmount(annual CompensationResult, def ElementDefinition) decimal.Decimal {
	for _, e := range annual.Elements {
		if e.ID == def.ID {
			return e.Amount
		}
	}
	return decimal.Zero
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
