package tariff

import (
	"errors"
	"fmt"

	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/shopspring/decimal"
)

// Calculator prices energy consumption under a fixed tariff.
// The zero value prices everything at zero; construct with NewCalculator.
type Calculator struct {
	rate     decimal.Decimal
	currency string
}

// NewCalculator builds a Calculator from a decimal rate string such as
// "0.32". The rate must parse and be positive, and the currency must be
// non-empty.
func NewCalculator(rate, currency string) (Calculator, error) {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return Calculator{}, fmt.Errorf("parse tariff rate %q: %w", rate, err)
	}
	if d.Sign() <= 0 {
		return Calculator{}, fmt.Errorf("tariff rate must be positive, got %s", d)
	}
	if currency == "" {
		return Calculator{}, errors.New("tariff currency must not be empty")
	}
	return Calculator{rate: d, currency: currency}, nil
}

// Estimate prices kwh at the configured rate, rounded to two decimal
// places with halves away from zero. kwh must be finite.
func (c Calculator) Estimate(kwh float64) energy.CostEstimate {
	return energy.CostEstimate{
		Amount:     c.rate.Mul(decimal.NewFromFloat(kwh)).Round(2),
		Currency:   c.currency,
		RatePerKWh: c.rate,
	}
}

// Rate returns the configured price per kWh.
func (c Calculator) Rate() decimal.Decimal { return c.rate }

// Currency returns the configured currency code.
func (c Calculator) Currency() string { return c.currency }
