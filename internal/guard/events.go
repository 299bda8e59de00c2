package guard

import "github.com/HerbHall/energyguard/pkg/energy"

// Event topics published by the Guard module.
const (
	// TopicEvaluationCompleted fires after every evaluation; payload is the
	// full *energy.Evaluation.
	TopicEvaluationCompleted = "guard.evaluation.completed"

	// TopicAlertRaised fires for WARNING and CRITICAL evaluations only;
	// payload is an AlertPayload.
	TopicAlertRaised = "guard.alert.raised"

	// TopicSessionReset fires when the session is discarded; payload is a
	// ResetPayload.
	TopicSessionReset = "guard.session.reset"
)

// AlertPayload summarizes an evaluation that raised an alert.
type AlertPayload struct {
	EvaluationID string            `json:"evaluation_id"`
	Alert        energy.AlertLevel `json:"alert"`
	Ratio        float64           `json:"ratio"`
	Anomaly      bool              `json:"anomaly"`
	Score        float64           `json:"score"`
	Sector       energy.Sector     `json:"sector"`
	Reasons      []string          `json:"reasons"`
}

// ResetPayload reports what a session reset discarded.
type ResetPayload struct {
	ReadingsDiscarded    int `json:"readings_discarded"`
	EvaluationsDiscarded int `json:"evaluations_discarded"`
}
