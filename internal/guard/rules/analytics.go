// Package rules implements the deterministic evaluation pipeline:
// threshold analytics plus the ordered decision tables that turn one
// reading into reasons, actions, and a confidence figure.
package rules

import (
	"math"

	"github.com/HerbHall/energyguard/pkg/energy"
)

// Threshold constants for the analytics stage. All four are load-bearing:
// changing any of them changes alert classification or scoring.
const (
	// SpikeFactor flags a reading as anomalous when its usage exceeds the
	// previous reading's usage by more than this factor.
	SpikeFactor = 1.25

	// CriticalRatio and WarningRatio classify the usage/expected ratio.
	// Both comparisons are inclusive (>=).
	CriticalRatio = 1.35
	WarningRatio  = 1.15

	// ScoreSlope is the efficiency penalty per unit of ratio deviation
	// from 1.0.
	ScoreSlope = 75.0
)

// UsageRatio returns usage relative to the expected baseline.
// Fails with an invalid-input error when expected is not positive, so
// callers never divide by zero.
func UsageRatio(usage, expected float64) (float64, error) {
	if expected <= 0 {
		return 0, energy.NewError(energy.ErrCodeInvalidInput, "expected_avg must be positive", nil)
	}
	return usage / expected, nil
}

// SpikeDetected reports whether usage jumped past SpikeFactor times the
// previous reading's usage. A nil previous reading (empty history) is
// never a spike. The comparison is strict: exactly 125% does not trip it.
func SpikeDetected(usage float64, prev *energy.Reading) bool {
	if prev == nil {
		return false
	}
	return usage > prev.Usage*SpikeFactor
}

// AlertFor classifies a ratio and spike flag into an alert level.
// The critical check runs first: a detected spike forces CRITICAL even
// when the ratio alone would be NORMAL.
func AlertFor(ratio float64, spike bool) energy.AlertLevel {
	switch {
	case spike || ratio >= CriticalRatio:
		return energy.AlertCritical
	case ratio >= WarningRatio:
		return energy.AlertWarning
	default:
		return energy.AlertNormal
	}
}

// EfficiencyScore maps a ratio onto a 0-100 score with one decimal place.
// A ratio of exactly 1.0 scores 100; deviation in either direction is
// penalized linearly at ScoreSlope points per unit, then clamped.
// Rounding is half away from zero (math.Round).
func EfficiencyScore(ratio float64) float64 {
	score := 100 - math.Abs(ratio-1)*ScoreSlope
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return math.Round(score*10) / 10
}
