// Package roles defines typed contracts for plugin roles.
// Plugins that fill a role (declared via PluginInfo.Roles) should implement
// the corresponding interface so callers can use type-safe access via
// PluginResolver.ResolveByRole followed by a type assertion.
//
// This package is Apache 2.0 licensed, part of the public plugin SDK.
package roles

import (
	"context"

	"github.com/HerbHall/energyguard/pkg/energy"
)

// Role name constants match the strings used in PluginInfo.Roles.
const (
	RoleAdvisor      = "advisor"
	RolePricing      = "pricing"
	RoleNotification = "notification"
)

// AdvisorProvider is implemented by plugins that evaluate energy readings
// and keep the session record. Resolve via
// PluginResolver.ResolveByRole(RoleAdvisor) then type-assert.
type AdvisorProvider interface {
	// Evaluate runs one reading through the analysis and decision pipeline
	// and archives it into the session.
	Evaluate(ctx context.Context, reading energy.Reading) (*energy.Evaluation, error)

	// Evaluations returns the session's evaluations in evaluation order.
	Evaluations(ctx context.Context) ([]energy.Evaluation, error)

	// Snapshot returns a summary of the current session.
	Snapshot(ctx context.Context) (SessionSnapshot, error)
}

// PricingProvider is implemented by plugins that price energy consumption.
// Consumers must tolerate its absence: a missing pricing plugin means cost
// estimates are simply omitted.
type PricingProvider interface {
	// EstimateCost prices the given consumption in kWh.
	EstimateCost(ctx context.Context, kwh float64) (energy.CostEstimate, error)
}

// Notifier is implemented by plugins that deliver outbound notifications
// (webhooks, chat hooks, etc.).
type Notifier interface {
	// Notify sends a notification with the given payload.
	Notify(ctx context.Context, notification Notification) error
}
