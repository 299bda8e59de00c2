package guard

import (
	"context"
	"sync"
	"testing"

	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/HerbHall/energyguard/pkg/plugin/plugintest"
	"github.com/HerbHall/energyguard/pkg/roles"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestPluginContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() })
}

func TestModuleInfo(t *testing.T) {
	info := New().Info()
	if info.Name != "guard" {
		t.Errorf("Info().Name = %q, want guard", info.Name)
	}
	if !info.Required {
		t.Error("Info().Required = false, want true")
	}
	if len(info.Roles) != 1 || info.Roles[0] != roles.RoleAdvisor {
		t.Errorf("Info().Roles = %v, want [advisor]", info.Roles)
	}
}

func TestModuleRoutes(t *testing.T) {
	routes := New().Routes()

	expected := []struct {
		method string
		path   string
	}{
		{"POST", "/evaluate"},
		{"GET", "/evaluations"},
		{"GET", "/evaluations/{id}"},
		{"GET", "/history"},
		{"GET", "/trend"},
		{"GET", "/status"},
		{"POST", "/session/reset"},
	}
	if len(routes) != len(expected) {
		t.Fatalf("expected %d routes, got %d", len(expected), len(routes))
	}
	for i, e := range expected {
		if routes[i].Method != e.method || routes[i].Path != e.path {
			t.Errorf("route[%d] = %s %s, want %s %s",
				i, routes[i].Method, routes[i].Path, e.method, e.path)
		}
	}
}

// recordingBus captures published events. Delivery is synchronous so
// assertions stay deterministic.
type recordingBus struct {
	mu     sync.Mutex
	events []plugin.Event
}

func (b *recordingBus) Publish(_ context.Context, event plugin.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) PublishAsync(ctx context.Context, event plugin.Event) {
	_ = b.Publish(ctx, event)
}

func (b *recordingBus) Subscribe(string, plugin.EventHandler) func() { return func() {} }
func (b *recordingBus) SubscribeAll(plugin.EventHandler) func()      { return func() {} }

func (b *recordingBus) byTopic(topic string) []plugin.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []plugin.Event
	for _, e := range b.events {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// stubTariff fills the pricing role with a flat 0.50/kWh rate.
type stubTariff struct{}

func (stubTariff) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:       "tariff",
		Version:    "0.0.1",
		Roles:      []string{roles.RolePricing},
		APIVersion: plugin.APIVersionCurrent,
	}
}

func (stubTariff) Init(context.Context, plugin.Dependencies) error { return nil }
func (stubTariff) Start(context.Context) error                     { return nil }
func (stubTariff) Stop(context.Context) error                      { return nil }

func (stubTariff) EstimateCost(_ context.Context, kwh float64) (energy.CostEstimate, error) {
	rate := decimal.NewFromFloat(0.5)
	return energy.CostEstimate{
		Amount:     rate.Mul(decimal.NewFromFloat(kwh)).Round(2),
		Currency:   "EUR",
		RatePerKWh: rate,
	}, nil
}

type stubResolver struct {
	plugins []plugin.Plugin
}

func (r stubResolver) Resolve(name string) (plugin.Plugin, bool) {
	for _, p := range r.plugins {
		if p.Info().Name == name {
			return p, true
		}
	}
	return nil, false
}

func (r stubResolver) ResolveByRole(role string) []plugin.Plugin {
	var out []plugin.Plugin
	for _, p := range r.plugins {
		for _, have := range p.Info().Roles {
			if have == role {
				out = append(out, p)
			}
		}
	}
	return out
}

func newTestModule(t *testing.T, bus plugin.EventBus, resolver plugin.PluginResolver) *Module {
	t.Helper()
	m := New()
	deps := plugin.Dependencies{
		Logger:  zap.NewNop(),
		Bus:     bus,
		Plugins: resolver,
	}
	if err := m.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return m
}

func TestEvaluatePublishesEvents(t *testing.T) {
	bus := &recordingBus{}
	m := newTestModule(t, bus, nil)
	ctx := context.Background()

	if _, err := m.Evaluate(ctx, energy.Reading{Usage: 120, ExpectedAvg: 100}); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	completed := bus.byTopic(TopicEvaluationCompleted)
	if len(completed) != 1 {
		t.Fatalf("completed events = %d, want 1", len(completed))
	}
	if completed[0].Source != "guard" {
		t.Errorf("event source = %q, want guard", completed[0].Source)
	}

	raised := bus.byTopic(TopicAlertRaised)
	if len(raised) != 1 {
		t.Fatalf("alert events = %d, want 1", len(raised))
	}
	payload, ok := raised[0].Payload.(AlertPayload)
	if !ok {
		t.Fatalf("alert payload type = %T, want AlertPayload", raised[0].Payload)
	}
	if payload.Alert != energy.AlertWarning {
		t.Errorf("alert payload level = %v, want WARNING", payload.Alert)
	}
	if payload.EvaluationID == "" {
		t.Error("alert payload evaluation ID is empty")
	}
}

func TestEvaluateNormalSkipsAlertEvent(t *testing.T) {
	bus := &recordingBus{}
	m := newTestModule(t, bus, nil)

	if _, err := m.Evaluate(context.Background(), energy.Reading{Usage: 100, ExpectedAvg: 100}); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if got := bus.byTopic(TopicEvaluationCompleted); len(got) != 1 {
		t.Errorf("completed events = %d, want 1", len(got))
	}
	if got := bus.byTopic(TopicAlertRaised); len(got) != 0 {
		t.Errorf("alert events = %d, want 0 for NORMAL", len(got))
	}
}

func TestResetSessionPublishesEvent(t *testing.T) {
	bus := &recordingBus{}
	m := newTestModule(t, bus, nil)
	ctx := context.Background()

	m.Evaluate(ctx, energy.Reading{Usage: 100, ExpectedAvg: 100})
	m.Evaluate(ctx, energy.Reading{Usage: 110, ExpectedAvg: 100})

	payload := m.ResetSession(ctx)
	if payload.ReadingsDiscarded != 2 || payload.EvaluationsDiscarded != 2 {
		t.Errorf("ResetSession() = %+v, want 2/2 discarded", payload)
	}

	events := bus.byTopic(TopicSessionReset)
	if len(events) != 1 {
		t.Fatalf("reset events = %d, want 1", len(events))
	}
	got, ok := events[0].Payload.(ResetPayload)
	if !ok {
		t.Fatalf("reset payload type = %T, want ResetPayload", events[0].Payload)
	}
	if got != payload {
		t.Errorf("reset payload = %+v, want %+v", got, payload)
	}
}

func TestEvaluateAttachesCostFromPricingRole(t *testing.T) {
	resolver := stubResolver{plugins: []plugin.Plugin{stubTariff{}}}
	m := newTestModule(t, &recordingBus{}, resolver)

	eval, err := m.Evaluate(context.Background(), energy.Reading{Usage: 10, ExpectedAvg: 10})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Cost == nil {
		t.Fatal("Evaluate() cost = nil, want estimate from pricing role")
	}
	if !eval.Cost.Amount.Equal(decimal.NewFromFloat(5)) {
		t.Errorf("Evaluate() cost amount = %v, want 5", eval.Cost.Amount)
	}
}

func TestEvaluateWithoutPricingRole(t *testing.T) {
	m := newTestModule(t, &recordingBus{}, stubResolver{})

	eval, err := m.Evaluate(context.Background(), energy.Reading{Usage: 10, ExpectedAvg: 10})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.Cost != nil {
		t.Errorf("Evaluate() cost = %+v, want nil without pricing role", eval.Cost)
	}
}

func TestModuleHealth(t *testing.T) {
	m := newTestModule(t, &recordingBus{}, stubResolver{plugins: []plugin.Plugin{stubTariff{}}})
	ctx := context.Background()

	m.Evaluate(ctx, energy.Reading{Usage: 100, ExpectedAvg: 100})

	health := m.Health(ctx)
	if health.Status != "healthy" {
		t.Errorf("Health().Status = %q, want healthy", health.Status)
	}
	if health.Details["readings"] != "1" {
		t.Errorf("Health() readings = %q, want 1", health.Details["readings"])
	}
	if health.Details["evaluations"] != "1" {
		t.Errorf("Health() evaluations = %q, want 1", health.Details["evaluations"])
	}
	if health.Details["pricing_available"] != "true" {
		t.Errorf("Health() pricing_available = %q, want true", health.Details["pricing_available"])
	}

	bare := newTestModule(t, &recordingBus{}, nil)
	if got := bare.Health(ctx).Details["pricing_available"]; got != "false" {
		t.Errorf("Health() pricing_available without resolver = %q, want false", got)
	}
}

func TestAdvisorProviderMethods(t *testing.T) {
	m := newTestModule(t, &recordingBus{}, nil)
	ctx := context.Background()

	m.Evaluate(ctx, energy.Reading{Usage: 100, ExpectedAvg: 100})
	m.Evaluate(ctx, energy.Reading{Usage: 120, ExpectedAvg: 100})

	evals, err := m.Evaluations(ctx)
	if err != nil {
		t.Fatalf("Evaluations() error = %v", err)
	}
	if len(evals) != 2 {
		t.Fatalf("Evaluations() = %d, want 2", len(evals))
	}
	if evals[0].Analysis.Alert != energy.AlertNormal || evals[1].Analysis.Alert != energy.AlertWarning {
		t.Error("Evaluations() not in evaluation order")
	}

	snap, err := m.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Evaluations != 2 {
		t.Errorf("Snapshot().Evaluations = %d, want 2", snap.Evaluations)
	}
	if snap.TrendAverage == nil || *snap.TrendAverage != 110 {
		t.Errorf("Snapshot().TrendAverage = %v, want 110", snap.TrendAverage)
	}
}
