package rules

import (
	"math"
	"testing"

	"github.com/HerbHall/energyguard/pkg/energy"
)

func TestUsageRatio(t *testing.T) {
	tests := []struct {
		name     string
		usage    float64
		expected float64
		want     float64
	}{
		{name: "usage at baseline", usage: 100, expected: 100, want: 1.0},
		{name: "usage double baseline", usage: 100, expected: 50, want: 2.0},
		{name: "usage half baseline", usage: 50, expected: 100, want: 0.5},
		{name: "negative usage passes through", usage: -20, expected: 100, want: -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UsageRatio(tt.usage, tt.expected)
			if err != nil {
				t.Fatalf("UsageRatio() error = %v, want nil", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("UsageRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsageRatio_InvalidBaseline(t *testing.T) {
	for _, expected := range []float64{0, -1, -250.5} {
		_, err := UsageRatio(100, expected)
		if err == nil {
			t.Fatalf("UsageRatio(100, %v) error = nil, want invalid input", expected)
		}
		if !energy.IsInvalidInput(err) {
			t.Errorf("UsageRatio(100, %v) error = %v, want invalid input", expected, err)
		}
	}
}

func TestSpikeDetected(t *testing.T) {
	prev := &energy.Reading{Usage: 100, ExpectedAvg: 100}

	tests := []struct {
		name  string
		usage float64
		prev  *energy.Reading
		want  bool
	}{
		{name: "no previous reading", usage: 1000, prev: nil, want: false},
		{name: "just above factor", usage: 126, prev: prev, want: true},
		{name: "exactly at factor is not a spike", usage: 125, prev: prev, want: false},
		{name: "barely above factor", usage: 125.0001, prev: prev, want: true},
		{name: "below previous", usage: 80, prev: prev, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpikeDetected(tt.usage, tt.prev); got != tt.want {
				t.Errorf("SpikeDetected(%v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}

func TestAlertFor(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		spike bool
		want  energy.AlertLevel
	}{
		{name: "ratio at critical threshold", ratio: 1.35, spike: false, want: energy.AlertCritical},
		{name: "ratio just below critical", ratio: 1.349999, spike: false, want: energy.AlertWarning},
		{name: "ratio at warning threshold", ratio: 1.15, spike: false, want: energy.AlertWarning},
		{name: "ratio just below warning", ratio: 1.149999, spike: false, want: energy.AlertNormal},
		{name: "ratio at baseline", ratio: 1.0, spike: false, want: energy.AlertNormal},
		{name: "spike forces critical at low ratio", ratio: 0.5, spike: true, want: energy.AlertCritical},
		{name: "far above critical", ratio: 4.2, spike: false, want: energy.AlertCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlertFor(tt.ratio, tt.spike); got != tt.want {
				t.Errorf("AlertFor(%v, %v) = %v, want %v", tt.ratio, tt.spike, got, tt.want)
			}
		})
	}
}

func TestEfficiencyScore(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{name: "perfect ratio", ratio: 1.0, want: 100},
		{name: "under baseline", ratio: 0.8, want: 85},
		{name: "over baseline", ratio: 1.2, want: 85},
		{name: "critical-level deviation", ratio: 1.4, want: 70},
		{name: "heavy overuse clamps to zero", ratio: 2.5, want: 0},
		{name: "negative ratio clamps to zero", ratio: -1, want: 0},
		{name: "rounds to one decimal", ratio: 1.111, want: 91.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EfficiencyScore(tt.ratio); got != tt.want {
				t.Errorf("EfficiencyScore(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestEfficiencyScore_Bounds(t *testing.T) {
	for _, ratio := range []float64{-3, 0, 0.25, 0.5, 1, 1.3333, 2, 10, 100} {
		got := EfficiencyScore(ratio)
		if got < 0 || got > 100 {
			t.Errorf("EfficiencyScore(%v) = %v, outside [0,100]", ratio, got)
		}
	}
}
