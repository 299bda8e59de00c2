package guard

import (
	"context"
	"sync"
	"time"

	"github.com/HerbHall/energyguard/internal/guard/rules"
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/roles"
	"github.com/google/uuid"
)

// Pricer prices consumption for attachment to evaluations. Satisfied by
// roles.PricingProvider. A nil Pricer or an errored estimate leaves the
// evaluation without a cost; pricing never fails an evaluation.
type Pricer interface {
	EstimateCost(ctx context.Context, kwh float64) (energy.CostEstimate, error)
}

// Session owns one evaluation session: the reading history, the ordered
// evaluation log, and the running tallies. Evaluate runs its whole cycle
// inside one critical section, so concurrent evaluations serialize and
// each anomaly check sees exactly the history that preceded it.
type Session struct {
	mu      sync.Mutex
	history *History
	log     []energy.Evaluation
	byID    map[string]int
	tallies map[energy.AlertLevel]int
	resets  int
	started time.Time

	pricer Pricer
}

// NewSession creates an empty session. pricer may be nil, in which case
// evaluations carry no cost estimates.
func NewSession(pricer Pricer) *Session {
	return &Session{
		history: NewHistory(),
		byID:    make(map[string]int),
		tallies: make(map[energy.AlertLevel]int),
		started: time.Now().UTC(),
		pricer:  pricer,
	}
}

// Evaluate validates the reading, derives its analysis against the
// pre-existing history, runs the decision rules, then archives the reading
// and the finished evaluation. The anomaly check always compares against
// the last reading appended before this call.
func (s *Session) Evaluate(ctx context.Context, r energy.Reading) (*energy.Evaluation, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ratio, err := rules.UsageRatio(r.Usage, r.ExpectedAvg)
	if err != nil {
		return nil, err
	}

	var prev *energy.Reading
	if last, ok := s.history.Last(); ok {
		prev = &last
	}
	anomaly := rules.SpikeDetected(r.Usage, prev)
	alert := rules.AlertFor(ratio, anomaly)

	eval := energy.Evaluation{
		ID:      uuid.NewString(),
		Reading: r,
		Analysis: energy.Analysis{
			Ratio:   ratio,
			Anomaly: anomaly,
			Alert:   alert,
			Score:   rules.EfficiencyScore(ratio),
		},
		Diagnosis: rules.Diagnose(rules.Facts{
			Reading: r,
			Ratio:   ratio,
			Anomaly: anomaly,
			Alert:   alert,
		}),
		EvaluatedAt: time.Now().UTC(),
	}

	if s.pricer != nil {
		if cost, err := s.pricer.EstimateCost(ctx, r.Usage); err == nil {
			eval.Cost = &cost
		}
	}

	s.history.Add(r)
	s.log = append(s.log, eval)
	s.byID[eval.ID] = len(s.log) - 1
	s.tallies[alert]++

	return &eval, nil
}

// Evaluations returns a copy of the session's evaluation log in
// evaluation order.
func (s *Session) Evaluations() []energy.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]energy.Evaluation, len(s.log))
	copy(out, s.log)
	return out
}

// EvaluationByID returns one archived evaluation.
func (s *Session) EvaluationByID(id string) (energy.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byID[id]
	if !ok {
		return energy.Evaluation{}, energy.NewError(energy.ErrCodeNotFound, "evaluation not found", nil)
	}
	return s.log[idx], nil
}

// Readings returns the session history in insertion order.
func (s *Session) Readings() []energy.Reading {
	return s.history.Readings()
}

// Trend reports the session's running usage average.
func (s *Session) Trend() energy.Trend {
	s.mu.Lock()
	defer s.mu.Unlock()

	trend := energy.Trend{Samples: s.history.Len()}
	if avg, ok := s.history.TrendAverage(); ok {
		trend.Available = true
		trend.Average = &avg
	}
	return trend
}

// Snapshot summarizes the session for status reporting.
func (s *Session) Snapshot() roles.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := roles.SessionSnapshot{
		Readings:      s.history.Len(),
		Evaluations:   len(s.log),
		SessionsReset: s.resets,
		StartedAt:     s.started,
	}
	if len(s.tallies) > 0 {
		snap.Alerts = make(map[energy.AlertLevel]int, len(s.tallies))
		for level, n := range s.tallies {
			snap.Alerts[level] = n
		}
	}
	if n := len(s.log); n > 0 {
		last := s.log[n-1]
		snap.LastAlert = last.Analysis.Alert
		score := last.Analysis.Score
		snap.LastScore = &score
	}
	if avg, ok := s.history.TrendAverage(); ok {
		snap.TrendAverage = &avg
	}
	return snap
}

// Reset discards the history and the evaluation log, starting a fresh
// session. Returns how many readings and evaluations were discarded.
func (s *Session) Reset() (readings, evaluations int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings = s.history.Len()
	evaluations = len(s.log)

	s.history = NewHistory()
	s.log = nil
	s.byID = make(map[string]int)
	s.tallies = make(map[energy.AlertLevel]int)
	s.resets++
	s.started = time.Now().UTC()

	return readings, evaluations
}
