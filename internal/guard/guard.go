// Package guard implements the evaluation core of EnergyGuard: reading
// history, threshold analytics, the decision rule engine, and the session
// lifecycle, exposed over HTTP routes, bus events, and the advisor role.
package guard

import (
	"context"
	"strconv"
	"time"

	"github.com/HerbHall/energyguard/internal/guard/rules"
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
	_ roles.AdvisorProvider = (*Module)(nil)
)

var errNoPricing = energy.NewError(energy.ErrCodeNotFound, "pricing provider unavailable", nil)

// Module implements the Guard evaluation plugin. It owns the session and
// fronts it with HTTP routes, bus events, and Prometheus metrics.
type Module struct {
	logger  *zap.Logger
	bus     plugin.EventBus
	plugins plugin.PluginResolver

	session *Session
}

// New creates a new Guard plugin instance.
func New() *Module {
	m := &Module{}
	m.session = NewSession(rolePricer{m})
	return m
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "guard",
		Version:     "0.1.0",
		Description: "Energy usage evaluation and advisory engine",
		Roles:       []string{roles.RoleAdvisor},
		Required:    true,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.bus = deps.Bus
	m.plugins = deps.Plugins

	m.logger.Info("guard module initialized",
		zap.Float64("critical_ratio", rules.CriticalRatio),
		zap.Float64("warning_ratio", rules.WarningRatio),
		zap.Float64("spike_factor", rules.SpikeFactor),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("guard module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("guard module stopped")
	return nil
}

// Evaluate runs one reading through the session, records metrics, and
// publishes the completed evaluation on the bus. Implements
// roles.AdvisorProvider.
func (m *Module) Evaluate(ctx context.Context, reading energy.Reading) (*energy.Evaluation, error) {
	eval, err := m.session.Evaluate(ctx, reading)
	if err != nil {
		return nil, err
	}

	recordEvaluation(eval)

	m.logger.Info("evaluation completed",
		zap.String("id", eval.ID),
		zap.String("alert", string(eval.Analysis.Alert)),
		zap.Float64("ratio", eval.Analysis.Ratio),
		zap.Float64("score", eval.Analysis.Score),
		zap.Bool("anomaly", eval.Analysis.Anomaly),
		zap.Int("confidence", eval.Diagnosis.Confidence),
	)

	if m.bus != nil {
		m.bus.PublishAsync(ctx, plugin.Event{
			Topic:     TopicEvaluationCompleted,
			Source:    "guard",
			Timestamp: eval.EvaluatedAt,
			Payload:   eval,
		})
		if eval.Analysis.Alert != energy.AlertNormal {
			m.bus.PublishAsync(ctx, plugin.Event{
				Topic:     TopicAlertRaised,
				Source:    "guard",
				Timestamp: eval.EvaluatedAt,
				Payload: AlertPayload{
					EvaluationID: eval.ID,
					Alert:        eval.Analysis.Alert,
					Ratio:        eval.Analysis.Ratio,
					Anomaly:      eval.Analysis.Anomaly,
					Score:        eval.Analysis.Score,
					Sector:       eval.Reading.Sector,
					Reasons:      eval.Diagnosis.Reasons,
				},
			})
		}
	}

	return eval, nil
}

// ResetSession discards the current session and reports what was dropped.
func (m *Module) ResetSession(ctx context.Context) ResetPayload {
	readings, evaluations := m.session.Reset()
	sessionResetsTotal.Inc()

	payload := ResetPayload{
		ReadingsDiscarded:    readings,
		EvaluationsDiscarded: evaluations,
	}

	m.logger.Info("session reset",
		zap.Int("readings_discarded", readings),
		zap.Int("evaluations_discarded", evaluations),
	)

	if m.bus != nil {
		m.bus.PublishAsync(ctx, plugin.Event{
			Topic:     TopicSessionReset,
			Source:    "guard",
			Timestamp: time.Now().UTC(),
			Payload:   payload,
		})
	}

	return payload
}

// -- plugin.HealthChecker --

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	snap := m.session.Snapshot()

	details := map[string]string{
		"readings":    strconv.Itoa(snap.Readings),
		"evaluations": strconv.Itoa(snap.Evaluations),
	}

	pricingAvailable := "false"
	if m.plugins != nil {
		if providers := m.plugins.ResolveByRole(roles.RolePricing); len(providers) > 0 {
			pricingAvailable = "true"
		}
	}
	details["pricing_available"] = pricingAvailable

	return plugin.HealthStatus{
		Status:  "healthy",
		Details: details,
	}
}

// -- roles.AdvisorProvider --

// Evaluations implements roles.AdvisorProvider.
func (m *Module) Evaluations(_ context.Context) ([]energy.Evaluation, error) {
	return m.session.Evaluations(), nil
}

// Snapshot implements roles.AdvisorProvider.
func (m *Module) Snapshot(_ context.Context) (roles.SessionSnapshot, error) {
	return m.session.Snapshot(), nil
}

// rolePricer defers pricing-role resolution to call time, so Init order
// between guard and a pricing plugin does not matter.
type rolePricer struct {
	m *Module
}

func (p rolePricer) EstimateCost(ctx context.Context, kwh float64) (energy.CostEstimate, error) {
	if p.m.plugins != nil {
		for _, pl := range p.m.plugins.ResolveByRole(roles.RolePricing) {
			if provider, ok := pl.(roles.PricingProvider); ok {
				return provider.EstimateCost(ctx, kwh)
			}
		}
	}
	return energy.CostEstimate{}, errNoPricing
}
