// Package energy provides public SDK types for the EnergyGuard evaluation system.
// This package is Apache 2.0 licensed, part of the public plugin SDK.
package energy

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertLevel is the coarse severity classification of one evaluation.
type AlertLevel string

const (
	AlertNormal   AlertLevel = "NORMAL"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Rank orders alert levels by severity: NORMAL < WARNING < CRITICAL.
// Unknown levels rank below NORMAL.
func (l AlertLevel) Rank() int {
	switch l {
	case AlertNormal:
		return 0
	case AlertWarning:
		return 1
	case AlertCritical:
		return 2
	default:
		return -1
	}
}

// Priority classifies how urgently an action should be taken.
type Priority string

const (
	PriorityLow       Priority = "LOW"
	PriorityMedium    Priority = "MEDIUM"
	PriorityHigh      Priority = "HIGH"
	PriorityImmediate Priority = "IMMEDIATE"
)

// Sector is an open category describing where energy is consumed.
// The decision rules special-case SectorFactory and SectorPowerPlant;
// any other value falls through without sector-specific reasoning.
type Sector string

const (
	SectorHome       Sector = "Home"
	SectorFactory    Sector = "Factory"
	SectorPowerPlant Sector = "Power Plant"
)

// TimeOfDay is an open category for the observation period.
// Only TimeDay is distinguished by the decision rules.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "Day"
	TimeNight TimeOfDay = "Night"
)

// Reading is one immutable observation of energy usage and its context.
type Reading struct {
	Usage       float64   `json:"usage"`        // kWh consumed in the current period
	ExpectedAvg float64   `json:"expected_avg"` // Baseline expected kWh, must be positive
	Sector      Sector    `json:"sector"`
	Time        TimeOfDay `json:"time"`
	Sunlight    bool      `json:"sunlight"`
	Temperature float64   `json:"temperature"` // Ambient degrees Celsius
}

// Validate reports whether the reading is usable by the evaluation core.
// Unknown sector/time values are accepted (open categories), and usage
// magnitude is deliberately unbounded; only the ratio divisor is enforced.
func (r Reading) Validate() error {
	if r.ExpectedAvg <= 0 {
		return NewError(ErrCodeInvalidInput, "expected_avg must be positive", nil)
	}
	return nil
}

// Analysis holds the derived quantities for one reading.
type Analysis struct {
	Ratio   float64    `json:"ratio"`   // usage / expected_avg
	Anomaly bool       `json:"anomaly"` // usage spiked past 125% of the previous reading
	Alert   AlertLevel `json:"alert"`
	Score   float64    `json:"score"` // Efficiency score in [0,100], one decimal
}

// Action is one prioritized step from the decision engine.
type Action struct {
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// Diagnosis is the decision engine's output for one reading.
// Reasons and actions preserve rule evaluation order.
type Diagnosis struct {
	Reasons    []string `json:"reasons"`
	Actions    []Action `json:"actions"`
	Confidence int      `json:"confidence"` // Percentage in [0,100]
}

// CostEstimate prices a reading's consumption against a tariff.
// Advisory metadata only: it never influences analysis or decisions.
type CostEstimate struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	RatePerKWh decimal.Decimal `json:"rate_per_kwh"`
}

// Evaluation is the full record of one evaluation cycle.
type Evaluation struct {
	ID          string        `json:"id"`
	Reading     Reading       `json:"reading"`
	Analysis    Analysis      `json:"analysis"`
	Diagnosis   Diagnosis     `json:"diagnosis"`
	Cost        *CostEstimate `json:"cost,omitempty"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
}

// Trend reports the running usage average of a session.
// Average is present only when at least two readings exist.
type Trend struct {
	Samples   int      `json:"samples"`
	Available bool     `json:"available"`
	Average   *float64 `json:"trend_average,omitempty"`
}
