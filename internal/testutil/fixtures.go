// Package testutil provides fixture helpers shared by package tests.
package testutil

import (
	"github.com/HerbHall/energyguard/pkg/energy"
)

// NewReading returns a Reading with sensible defaults, suitable for test
// fixtures. Override individual fields via options as needed.
func NewReading(opts ...func(*energy.Reading)) energy.Reading {
	r := energy.Reading{
		Usage:       100,
		ExpectedAvg: 100,
		Sector:      energy.SectorHome,
		Time:        energy.TimeDay,
		Sunlight:    true,
		Temperature: 21,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithUsage sets the consumed kWh.
func WithUsage(kwh float64) func(*energy.Reading) {
	return func(r *energy.Reading) { r.Usage = kwh }
}

// WithExpectedAvg sets the expected baseline kWh.
func WithExpectedAvg(kwh float64) func(*energy.Reading) {
	return func(r *energy.Reading) { r.ExpectedAvg = kwh }
}

// WithSector sets the sector.
func WithSector(s energy.Sector) func(*energy.Reading) {
	return func(r *energy.Reading) { r.Sector = s }
}

// WithTime sets the time of day.
func WithTime(t energy.TimeOfDay) func(*energy.Reading) {
	return func(r *energy.Reading) { r.Time = t }
}

// WithSunlight sets the sunlight flag.
func WithSunlight(sunny bool) func(*energy.Reading) {
	return func(r *energy.Reading) { r.Sunlight = sunny }
}

// WithTemperature sets the ambient temperature in degrees Celsius.
func WithTemperature(degC float64) func(*energy.Reading) {
	return func(r *energy.Reading) { r.Temperature = degC }
}
