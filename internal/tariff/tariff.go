// Package tariff prices energy consumption against a configured rate.
// It provides the pricing role; cost estimates are advisory metadata
// and never influence analytics or alerting.
package tariff

import (
	"context"
	"fmt"
	"math"

	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/HerbHall/energyguard/pkg/roles"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin         = (*Module)(nil)
	_ plugin.HTTPProvider   = (*Module)(nil)
	_ plugin.HealthChecker  = (*Module)(nil)
	_ plugin.Validator      = (*Module)(nil)
	_ roles.PricingProvider = (*Module)(nil)
)

// Module implements the Tariff pricing plugin.
type Module struct {
	logger *zap.Logger
	cfg    TariffConfig
	calc   Calculator
}

// New creates a new Tariff plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "tariff",
		Version:     "0.1.0",
		Description: "Energy cost estimation against a configured tariff",
		Roles:       []string{roles.RolePricing},
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("unmarshal tariff config: %w", err)
		}
	}

	// An unusable rate is reported by ValidateConfig; the registry
	// disables the module before any estimate is served.
	if calc, err := NewCalculator(m.cfg.RatePerKWh, m.cfg.Currency); err == nil {
		m.calc = calc
	}

	m.logger.Info("tariff module initialized",
		zap.String("rate_per_kwh", m.cfg.RatePerKWh),
		zap.String("currency", m.cfg.Currency),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("tariff module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("tariff module stopped")
	return nil
}

// ValidateConfig rejects tariff settings the calculator cannot price with.
func (m *Module) ValidateConfig() error {
	if _, err := NewCalculator(m.cfg.RatePerKWh, m.cfg.Currency); err != nil {
		return fmt.Errorf("tariff config: %w", err)
	}
	return nil
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	return plugin.HealthStatus{
		Status: "healthy",
		Details: map[string]string{
			"rate_per_kwh": m.calc.Rate().String(),
			"currency":     m.calc.Currency(),
		},
	}
}

// -- roles.PricingProvider --

// EstimateCost prices kwh consumption at the configured tariff.
func (m *Module) EstimateCost(_ context.Context, kwh float64) (energy.CostEstimate, error) {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return energy.CostEstimate{}, energy.NewError(energy.ErrCodeInvalidInput, "kwh must be a finite number", nil)
	}
	return m.calc.Estimate(kwh), nil
}
