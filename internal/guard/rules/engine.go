package rules

import (
	"fmt"

	"github.com/HerbHall/energyguard/pkg/energy"
)

const (
	// CoolingThreshold is the ambient temperature (°C) above which
	// cooling demand is assumed to drive usage.
	CoolingThreshold = 30.0

	// BaseConfidence is granted to every diagnosis on top of the
	// increments from matched contextual rules. The sum is capped at 100.
	BaseConfidence = 30
)

// Facts bundles the inputs the decision engine evaluates. The rules read
// it, never mutate it.
type Facts struct {
	Reading energy.Reading
	Ratio   float64
	Anomaly bool
	Alert   energy.AlertLevel
}

// reasonRule contributes one causal explanation and a confidence increment
// when its predicate holds.
type reasonRule struct {
	when       func(f Facts) bool
	explain    func(f Facts) string
	confidence int
}

// actionRule contributes one prioritized step when its predicate holds.
type actionRule struct {
	when     func(f Facts) bool
	priority energy.Priority
	text     string
}

func always(Facts) bool { return true }

func sunlit(f Facts) bool { return f.Reading.Sunlight }

// reasonRules is the ordered table for causal reasons. Declaration order
// fixes the output ordering. Every rule is checked independently (never
// else-if), so a reading matching several rules accumulates every matching
// reason and every confidence increment.
var reasonRules = []reasonRule{
	{
		when: always,
		explain: func(f Facts) string {
			return fmt.Sprintf("Usage is %.2f× expected level", f.Ratio)
		},
	},
	{
		when:    func(f Facts) bool { return f.Anomaly },
		explain: func(Facts) string { return "Sudden energy spike detected" },
	},
	{
		when:       func(f Facts) bool { return f.Reading.Temperature > CoolingThreshold },
		explain:    func(Facts) string { return "High temperature → increased cooling demand" },
		confidence: 15,
	},
	{
		when:       func(f Facts) bool { return f.Reading.Sunlight && f.Reading.Time == energy.TimeDay },
		explain:    func(Facts) string { return "Available sunlight not optimally utilized" },
		confidence: 20,
	},
	{
		when:       func(f Facts) bool { return f.Reading.Sector == energy.SectorFactory },
		explain:    func(Facts) string { return "Industrial processes generate recoverable waste" },
		confidence: 20,
	},
	{
		when:       func(f Facts) bool { return f.Reading.Sector == energy.SectorPowerPlant },
		explain:    func(Facts) string { return "Grid-level load balancing opportunity detected" },
		confidence: 20,
	},
}

// actionPlans maps each alert level to its ordered action table. Exactly
// one table applies per diagnosis; within it, rules append in order.
var actionPlans = map[energy.AlertLevel][]actionRule{
	energy.AlertCritical: {
		{when: always, priority: energy.PriorityImmediate, text: "Reduce non-essential electrical load"},
		{when: sunlit, priority: energy.PriorityImmediate, text: "Activate Smart Daylight-Mirroring System"},
		{when: industrial, priority: energy.PriorityImmediate, text: "Enable ORC Waste Energy Recovery Line"},
		{when: always, priority: energy.PriorityHigh, text: "Shift base load to geothermal supply"},
	},
	energy.AlertWarning: {
		{when: always, priority: energy.PriorityMedium, text: "Optimize operational schedule"},
		{when: sunlit, priority: energy.PriorityMedium, text: "Increase daylight-based lighting usage"},
	},
	energy.AlertNormal: {
		{when: always, priority: energy.PriorityLow, text: "No corrective action required"},
	},
}

func industrial(f Facts) bool {
	return f.Reading.Sector == energy.SectorFactory || f.Reading.Sector == energy.SectorPowerPlant
}

// Diagnose evaluates the ordered rule tables against the facts and returns
// the causal reasons, the action plan for the alert level, and the
// diagnosis confidence.
func Diagnose(f Facts) energy.Diagnosis {
	d := energy.Diagnosis{
		Reasons: make([]string, 0, len(reasonRules)),
	}

	accumulated := 0
	for _, rule := range reasonRules {
		if !rule.when(f) {
			continue
		}
		d.Reasons = append(d.Reasons, rule.explain(f))
		accumulated += rule.confidence
	}

	plan := actionPlans[f.Alert]
	d.Actions = make([]energy.Action, 0, len(plan))
	for _, rule := range plan {
		if rule.when(f) {
			d.Actions = append(d.Actions, energy.Action{Priority: rule.priority, Description: rule.text})
		}
	}

	d.Confidence = accumulated + BaseConfidence
	if d.Confidence > 100 {
		d.Confidence = 100
	}
	return d
}
