package ws

import (
	"context"
	"testing"
	"time"

	"github.com/HerbHall/energyguard/internal/config"
	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/HerbHall/energyguard/pkg/plugin/plugintest"
	"github.com/HerbHall/energyguard/pkg/roles"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func TestPluginContract(t *testing.T) {
	plugintest.TestPluginContract(t, func() plugin.Plugin { return New() })
}

func TestModuleInfo(t *testing.T) {
	info := New().Info()
	if info.Name != "ws" {
		t.Errorf("Info().Name = %q, want ws", info.Name)
	}
	if info.Required {
		t.Error("Info().Required = true, want false")
	}
	if len(info.Roles) != 0 {
		t.Errorf("Info().Roles = %v, want none", info.Roles)
	}
}

func TestModuleRoutes(t *testing.T) {
	routes := New().Routes()
	if len(routes) != 1 {
		t.Fatalf("len(Routes()) = %d, want 1", len(routes))
	}
	if routes[0].Method != "GET" || routes[0].Path != "" {
		t.Errorf("Routes()[0] = %s %q, want GET \"\"", routes[0].Method, routes[0].Path)
	}
}

func scopedConfig(settings map[string]any) plugin.Config {
	v := viper.New()
	for key, value := range settings {
		v.Set(key, value)
	}
	return config.New(v)
}

func newTestModule(t *testing.T, cfg plugin.Config, resolver plugin.PluginResolver) *Module {
	t.Helper()
	m := New()
	deps := plugin.Dependencies{
		Logger:  zap.NewNop(),
		Config:  cfg,
		Plugins: resolver,
	}
	if err := m.Init(context.Background(), deps); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return m
}

func TestInitDefaults(t *testing.T) {
	m := newTestModule(t, nil, nil)
	if m.cfg.PingInterval != 30*time.Second {
		t.Errorf("PingInterval = %v, want 30s", m.cfg.PingInterval)
	}
	if m.cfg.SendBuffer != 256 {
		t.Errorf("SendBuffer = %d, want 256", m.cfg.SendBuffer)
	}
}

func TestInitConfigOverride(t *testing.T) {
	m := newTestModule(t, scopedConfig(map[string]any{
		"ping_interval": "5s",
		"send_buffer":   16,
	}), nil)
	if m.cfg.PingInterval != 5*time.Second {
		t.Errorf("PingInterval = %v, want 5s", m.cfg.PingInterval)
	}
	if m.cfg.SendBuffer != 16 {
		t.Errorf("SendBuffer = %d, want 16", m.cfg.SendBuffer)
	}
}

func TestInitClampsSendBuffer(t *testing.T) {
	m := newTestModule(t, scopedConfig(map[string]any{"send_buffer": -1}), nil)
	if m.cfg.SendBuffer != 256 {
		t.Errorf("SendBuffer = %d, want 256 (clamped)", m.cfg.SendBuffer)
	}
}

func TestSubscriptions(t *testing.T) {
	m := newTestModule(t, nil, nil)
	subs := m.Subscriptions()

	want := []string{
		guard.TopicEvaluationCompleted,
		guard.TopicAlertRaised,
		guard.TopicSessionReset,
	}
	if len(subs) != len(want) {
		t.Fatalf("len(Subscriptions()) = %d, want %d", len(subs), len(want))
	}
	for i, topic := range want {
		if subs[i].Topic != topic {
			t.Errorf("Subscriptions()[%d].Topic = %q, want %q", i, subs[i].Topic, topic)
		}
		if subs[i].Handler == nil {
			t.Errorf("Subscriptions()[%d].Handler is nil", i)
		}
	}
}

func connectTestClient(m *Module) *Client {
	client := newTestClient("10.0.0.9:51000", 16)
	m.hub.Register(client)
	return client
}

func receiveMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestOnEvaluationBroadcasts(t *testing.T) {
	m := newTestModule(t, nil, nil)
	client := connectTestClient(m)

	eval := &energy.Evaluation{ID: "eval-1"}
	at := time.Now().UTC()
	m.onEvaluation(context.Background(), plugin.Event{
		Topic:     guard.TopicEvaluationCompleted,
		Timestamp: at,
		Payload:   eval,
	})

	msg := receiveMessage(t, client)
	if msg.Type != MessageEvaluation {
		t.Errorf("Type = %v, want %v", msg.Type, MessageEvaluation)
	}
	if !msg.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, at)
	}
	if got, ok := msg.Data.(*energy.Evaluation); !ok || got.ID != "eval-1" {
		t.Errorf("Data = %#v, want evaluation eval-1", msg.Data)
	}
}

func TestOnAlertBroadcasts(t *testing.T) {
	m := newTestModule(t, nil, nil)
	client := connectTestClient(m)

	m.onAlert(context.Background(), plugin.Event{
		Topic: guard.TopicAlertRaised,
		Payload: guard.AlertPayload{
			EvaluationID: "eval-2",
			Alert:        energy.AlertCritical,
		},
	})

	msg := receiveMessage(t, client)
	if msg.Type != MessageAlert {
		t.Errorf("Type = %v, want %v", msg.Type, MessageAlert)
	}
	alert, ok := msg.Data.(guard.AlertPayload)
	if !ok {
		t.Fatalf("Data = %#v, want guard.AlertPayload", msg.Data)
	}
	if alert.Alert != energy.AlertCritical {
		t.Errorf("Alert = %v, want %v", alert.Alert, energy.AlertCritical)
	}
}

func TestOnSessionResetBroadcasts(t *testing.T) {
	m := newTestModule(t, nil, nil)
	client := connectTestClient(m)

	m.onSessionReset(context.Background(), plugin.Event{
		Topic:   guard.TopicSessionReset,
		Payload: guard.ResetPayload{ReadingsDiscarded: 3, EvaluationsDiscarded: 3},
	})

	msg := receiveMessage(t, client)
	if msg.Type != MessageSessionReset {
		t.Errorf("Type = %v, want %v", msg.Type, MessageSessionReset)
	}
	reset, ok := msg.Data.(guard.ResetPayload)
	if !ok {
		t.Fatalf("Data = %#v, want guard.ResetPayload", msg.Data)
	}
	if reset.ReadingsDiscarded != 3 {
		t.Errorf("ReadingsDiscarded = %d, want 3", reset.ReadingsDiscarded)
	}
}

func TestOnEvaluationIgnoresForeignPayload(t *testing.T) {
	m := newTestModule(t, nil, nil)
	client := connectTestClient(m)

	m.onEvaluation(context.Background(), plugin.Event{
		Topic:   guard.TopicEvaluationCompleted,
		Payload: "not an evaluation",
	})

	select {
	case msg := <-client.send:
		t.Errorf("unexpected message broadcast: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

// stubAdvisor fills the advisor role with a canned snapshot.
type stubAdvisor struct {
	snap roles.SessionSnapshot
}

func (stubAdvisor) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:       "guard",
		Version:    "0.0.1",
		Roles:      []string{roles.RoleAdvisor},
		APIVersion: plugin.APIVersionCurrent,
	}
}

func (stubAdvisor) Init(context.Context, plugin.Dependencies) error { return nil }
func (stubAdvisor) Start(context.Context) error                     { return nil }
func (stubAdvisor) Stop(context.Context) error                      { return nil }

func (stubAdvisor) Evaluate(context.Context, energy.Reading) (*energy.Evaluation, error) {
	return nil, energy.NewError(energy.ErrCodeInvalidInput, "not implemented", nil)
}

func (stubAdvisor) Evaluations(context.Context) ([]energy.Evaluation, error) {
	return nil, nil
}

func (s stubAdvisor) Snapshot(context.Context) (roles.SessionSnapshot, error) {
	return s.snap, nil
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

func TestWelcomeMessageWithAdvisor(t *testing.T) {
	advisor := stubAdvisor{snap: roles.SessionSnapshot{Readings: 4, Evaluations: 4}}
	m := newTestModule(t, nil, stubResolver{plugins: []plugin.Plugin{advisor}})

	msg := m.welcomeMessage(context.Background())
	if msg.Type != MessageWelcome {
		t.Errorf("Type = %v, want %v", msg.Type, MessageWelcome)
	}
	welcome, ok := msg.Data.(WelcomeData)
	if !ok {
		t.Fatalf("Data = %#v, want WelcomeData", msg.Data)
	}
	if welcome.Snapshot == nil {
		t.Fatal("Snapshot is nil, want session state")
	}
	if welcome.Snapshot.Readings != 4 {
		t.Errorf("Snapshot.Readings = %d, want 4", welcome.Snapshot.Readings)
	}
}

func TestWelcomeMessageWithoutAdvisor(t *testing.T) {
	m := newTestModule(t, nil, nil)

	msg := m.welcomeMessage(context.Background())
	welcome, ok := msg.Data.(WelcomeData)
	if !ok {
		t.Fatalf("Data = %#v, want WelcomeData", msg.Data)
	}
	if welcome.Snapshot != nil {
		t.Errorf("Snapshot = %#v, want nil", welcome.Snapshot)
	}
}

func TestPingerBroadcastsPings(t *testing.T) {
	m := newTestModule(t, scopedConfig(map[string]any{"ping_interval": "10ms"}), nil)
	client := connectTestClient(m)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		if err := m.Stop(context.Background()); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	}()

	msg := receiveMessage(t, client)
	if msg.Type != MessagePing {
		t.Errorf("Type = %v, want %v", msg.Type, MessagePing)
	}
}
