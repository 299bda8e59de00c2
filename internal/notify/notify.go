// Package notify forwards guard alerts to a configured webhook URL.
// Delivery is outbound only and best-effort: failures are logged, never
// retried, and never affect the evaluation pipeline.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/HerbHall/energyguard/pkg/roles"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin          = (*Module)(nil)
	_ plugin.EventSubscriber = (*Module)(nil)
	_ roles.Notifier         = (*Module)(nil)
)

// Module implements the Notify webhook plugin.
type Module struct {
	logger   *zap.Logger
	cfg      NotifyConfig
	minLevel energy.AlertLevel
	client   *http.Client
}

// New creates a new Notify plugin instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "notify",
		Version:     "0.1.0",
		Description: "Forwards guard alerts to a configurable webhook URL",
		Roles:       []string{roles.RoleNotification},
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = DefaultConfig()
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return fmt.Errorf("unmarshal notify config: %w", err)
		}
	}
	if m.cfg.Timeout <= 0 {
		m.cfg.Timeout = DefaultConfig().Timeout
	}

	level, ok := parseLevel(m.cfg.MinLevel)
	if !ok {
		m.logger.Warn("unknown notify min_level, using WARNING",
			zap.String("min_level", m.cfg.MinLevel),
		)
		level = energy.AlertWarning
	}
	m.minLevel = level

	m.client = &http.Client{Timeout: m.cfg.Timeout}

	if m.cfg.URL == "" {
		m.logger.Warn("notify URL not configured; notifications will be dropped")
	}

	m.logger.Info("notify module initialized",
		zap.String("url", m.cfg.URL),
		zap.Duration("timeout", m.cfg.Timeout),
		zap.Bool("enabled", m.cfg.Enabled),
		zap.String("min_level", string(m.minLevel)),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("notify module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("notify module stopped")
	return nil
}

// Subscriptions implements plugin.EventSubscriber.
func (m *Module) Subscriptions() []plugin.Subscription {
	return []plugin.Subscription{
		{Topic: guard.TopicAlertRaised, Handler: m.onAlert},
		{Topic: guard.TopicSessionReset, Handler: m.onReset},
	}
}

// WebhookPayload is the JSON body sent to the webhook URL.
type WebhookPayload struct {
	Event     string `json:"event"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

func (m *Module) onAlert(ctx context.Context, event plugin.Event) {
	payload, ok := event.Payload.(guard.AlertPayload)
	if !ok {
		return
	}
	if payload.Alert.Rank() < m.minLevel.Rank() {
		return
	}
	m.forward(ctx, event)
}

func (m *Module) onReset(ctx context.Context, event plugin.Event) {
	// Session resets are delivered regardless of min_level; the filter
	// only grades alerts.
	if _, ok := event.Payload.(guard.ResetPayload); !ok {
		return
	}
	m.forward(ctx, event)
}

func (m *Module) forward(ctx context.Context, event plugin.Event) {
	if !m.cfg.Enabled || m.cfg.URL == "" {
		return
	}

	body, err := json.Marshal(WebhookPayload{
		Event:     event.Topic,
		Source:    event.Source,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Data:      event.Payload,
	})
	if err != nil {
		m.logger.Error("failed to marshal webhook payload",
			zap.String("topic", event.Topic),
			zap.Error(err),
		)
		return
	}

	// The delivery outlives the request that triggered the event; the
	// client timeout bounds it instead.
	if err := m.send(context.WithoutCancel(ctx), body, event.Topic); err != nil {
		m.logger.Warn("webhook delivery failed",
			zap.String("url", m.cfg.URL),
			zap.String("topic", event.Topic),
			zap.Error(err),
		)
	}
}

// -- roles.Notifier --

// Notify sends an ad-hoc notification to the webhook URL. Returns nil
// without sending when the plugin is disabled.
func (m *Module) Notify(ctx context.Context, notification roles.Notification) error {
	if !m.cfg.Enabled {
		return nil
	}
	if m.cfg.URL == "" {
		return errors.New("notify URL not configured")
	}

	body, err := json.Marshal(WebhookPayload{
		Event:     notification.Topic,
		Source:    "notify",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      notification,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return m.send(ctx, body, notification.Topic)
}

func (m *Module) send(ctx context.Context, body []byte, topic string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "EnergyGuard-Notify/0.1")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	m.logger.Debug("webhook delivered",
		zap.String("topic", topic),
		zap.Int("status_code", resp.StatusCode),
	)
	return nil
}
