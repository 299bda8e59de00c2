// Package ws streams guard session activity to WebSocket clients: every
// evaluation, raised alert and session reset is forwarded from the event
// bus to all connected clients as a JSON envelope.
package ws

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin          = (*Module)(nil)
	_ plugin.HTTPProvider    = (*Module)(nil)
	_ plugin.HealthChecker   = (*Module)(nil)
	_ plugin.EventSubscriber = (*Module)(nil)
)

// Module implements the WebSocket streaming plugin.
type Module struct {
	logger  *zap.Logger
	plugins plugin.PluginResolver
	cfg     WSConfig
	hub     *Hub

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new WS plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "ws",
		Version:     "0.1.0",
		Description: "Live evaluation stream over WebSocket",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.plugins = deps.Plugins

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("unmarshal ws config: %w", err)
		}
	}
	if m.cfg.SendBuffer <= 0 {
		m.cfg.SendBuffer = DefaultConfig().SendBuffer
	}

	m.hub = NewHub(m.logger)

	m.logger.Info("ws module initialized",
		zap.Duration("ping_interval", m.cfg.PingInterval),
		zap.Int("send_buffer", m.cfg.SendBuffer),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.ctx, m.cancel = context.WithCancel(context.Background())
	if m.cfg.PingInterval > 0 {
		m.startPinger()
	}
	m.logger.Info("ws module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info("ws module stopped")
	return nil
}

// Health implements plugin.HealthChecker.
func (m *Module) Health(_ context.Context) plugin.HealthStatus {
	clients := 0
	if m.hub != nil {
		clients = m.hub.ClientCount()
	}
	return plugin.HealthStatus{
		Status: "healthy",
		Details: map[string]string{
			"clients": strconv.Itoa(clients),
		},
	}
}

// startPinger launches a background goroutine that keeps connections
// alive with periodic ping envelopes.
func (m *Module) startPinger() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.cfg.PingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.hub.Broadcast(Message{
					Type:      MessagePing,
					Timestamp: time.Now().UTC(),
				})
			}
		}
	}()
}

// -- plugin.EventSubscriber --

// Subscriptions forwards guard session activity to connected clients.
func (m *Module) Subscriptions() []plugin.Subscription {
	return []plugin.Subscription{
		{Topic: guard.TopicEvaluationCompleted, Handler: m.onEvaluation},
		{Topic: guard.TopicAlertRaised, Handler: m.onAlert},
		{Topic: guard.TopicSessionReset, Handler: m.onSessionReset},
	}
}

func (m *Module) onEvaluation(_ context.Context, event plugin.Event) {
	eval, ok := event.Payload.(*energy.Evaluation)
	if !ok {
		return
	}
	m.hub.Broadcast(Message{
		Type:      MessageEvaluation,
		Timestamp: event.Timestamp,
		Data:      eval,
	})
}

func (m *Module) onAlert(_ context.Context, event plugin.Event) {
	alert, ok := event.Payload.(guard.AlertPayload)
	if !ok {
		return
	}
	m.hub.Broadcast(Message{
		Type:      MessageAlert,
		Timestamp: event.Timestamp,
		Data:      alert,
	})
}

func (m *Module) onSessionReset(_ context.Context, event plugin.Event) {
	reset, ok := event.Payload.(guard.ResetPayload)
	if !ok {
		return
	}
	m.hub.Broadcast(Message{
		Type:      MessageSessionReset,
		Timestamp: event.Timestamp,
		Data:      reset,
	})
}
