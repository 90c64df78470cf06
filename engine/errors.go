/*
errors.go - Error taxonomy for the compensation engine

PURPOSE:
  All error types in one place for consistency and discoverability.

PROPAGATION POLICY:
  The engine is a pure function library embedded in interactive hosts.
  Domain-data problems (bad scores, a class missing from a salary table,
  a malformed agreement) must never abort the host: computation functions
  degrade to well-typed zero results that callers detect by inspecting
  totals and scenario tags. The errors below exist for constructor
  validation and for callers that want to know *why* a fallback happened;
  they are returned alongside the safe default, never thrown across the
  library boundary mid-computation.

ERROR CATEGORIES:
  1. InvalidInput  - malformed score/profile shape, degrade to safe default
  2. Configuration - resolved class absent from a required lookup table
  3. MissingData   - arrears month absent from declared pay, skip silently

SEE ALSO:
  - classification.go: Returns ErrInvalidScores with the lowest-class fallback
  - calculator.go: Maps configuration gaps to ScenarioError results
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidScores is returned when classification input is not exactly
	// six integers in [1,10]. Callers fall back to the lowest class.
	ErrInvalidScores = errors.New("invalid criteria scores")

	// ErrClassNotInTable is returned when a resolved class has no entry in
	// a required lookup table. Calculations surface this as ScenarioError.
	ErrClassNotInTable = errors.New("class missing from lookup table")

	// ErrMalformedAgreement is returned by the factory when an agreement
	// definition fails validation at load time.
	ErrMalformedAgreement = errors.New("malformed agreement definition")

	// ErrInvalidPeriod is returned when an arrears range ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ScoreError reports which criterion score was out of range.
type ScoreError struct {
	Index int // 0-based criterion index
	Value int
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("criterion %d score %d out of range [1,10]", e.Index+1, e.Value)
}

func (e *ScoreError) Unwrap() error { return ErrInvalidScores }

// TableError reports which table a class was missing from.
type TableError struct {
	Class int
	Table string // e.g. "base_salary", "seniority_rate"
}

func (e *TableError) Error() string {
	return fmt.Sprintf("class %d has no %s entry", e.Class, e.Table)
}

func (e *TableError) Unwrap() error { return ErrClassNotInTable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error is due to invalid caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidScores) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsConfigError returns true if the error indicates a rule-catalog gap.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrClassNotInTable) ||
		errors.Is(err, ErrMalformedAgreement)
}
