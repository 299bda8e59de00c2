package roles

import (
	"time"

	"github.com/HerbHall/energyguard/pkg/energy"
)

// SessionSnapshot summarizes the advisor's current session state.
type SessionSnapshot struct {
	Readings      int                       `json:"readings"`
	Evaluations   int                       `json:"evaluations"`
	Alerts        map[energy.AlertLevel]int `json:"alerts,omitempty"`
	LastAlert     energy.AlertLevel         `json:"last_alert,omitempty"`
	LastScore     *float64                  `json:"last_score,omitempty"`
	TrendAverage  *float64                  `json:"trend_average,omitempty"`
	SessionsReset int                       `json:"sessions_reset"`
	StartedAt     time.Time                 `json:"started_at"`
}

// Notification represents a message to be delivered by a Notifier.
type Notification struct {
	Topic   string         `json:"topic"`
	Summary string         `json:"summary"`
	Body    string         `json:"body,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}
