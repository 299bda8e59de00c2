package guard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/HerbHall/energyguard/pkg/plugin"
)

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "POST", Path: "/evaluate", Handler: m.handleEvaluate},
		{Method: "GET", Path: "/evaluations", Handler: m.handleListEvaluations},
		{Method: "GET", Path: "/evaluations/{id}", Handler: m.handleGetEvaluation},
		{Method: "GET", Path: "/history", Handler: m.handleHistory},
		{Method: "GET", Path: "/trend", Handler: m.handleTrend},
		{Method: "GET", Path: "/status", Handler: m.handleStatus},
		{Method: "POST", Path: "/session/reset", Handler: m.handleResetSession},
	}
}

// handleEvaluate evaluates one energy reading.
//
//	@Summary		Evaluate a reading
//	@Description	Runs one reading through analytics and the decision engine, archives it in the session, and returns the full evaluation.
//	@Tags			guard
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			reading body energy.Reading true "Reading"
//	@Success		200 {object} energy.Evaluation
//	@Failure		400 {object} map[string]any
//	@Router			/guard/evaluate [post]
func (m *Module) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var reading energy.Reading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	eval, err := m.Evaluate(r.Context(), reading)
	if err != nil {
		if energy.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	writeJSON(w, http.StatusOK, eval)
}

// handleListEvaluations returns the session's evaluations in evaluation
// order (newest last).
//
//	@Summary		List evaluations
//	@Description	Returns the session's evaluations in evaluation order.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit query int false "Return only the most recent N"
//	@Success		200 {array} energy.Evaluation
//	@Router			/guard/evaluations [get]
func (m *Module) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	evals := m.session.Evaluations()
	if limit := parseLimit(r, 0); limit > 0 && len(evals) > limit {
		evals = evals[len(evals)-limit:]
	}
	writeJSON(w, http.StatusOK, evals)
}

// handleGetEvaluation returns one archived evaluation by ID.
//
//	@Summary		Get evaluation
//	@Description	Returns one archived evaluation by its ID.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id path string true "Evaluation ID"
//	@Success		200 {object} energy.Evaluation
//	@Failure		404 {object} map[string]any
//	@Router			/guard/evaluations/{id} [get]
func (m *Module) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	eval, err := m.session.EvaluationByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "evaluation not found")
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// handleHistory returns all readings of the session in insertion order.
//
//	@Summary		Session history
//	@Description	Returns the session's readings in insertion order.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {array} energy.Reading
//	@Router			/guard/history [get]
func (m *Module) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.session.Readings())
}

// handleTrend returns the session's running usage average.
//
//	@Summary		Usage trend
//	@Description	Returns the mean usage across the session; available only once two readings exist.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} energy.Trend
//	@Router			/guard/trend [get]
func (m *Module) handleTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.session.Trend())
}

// handleStatus returns a summary of the module's session.
//
//	@Summary		Guard status
//	@Description	Returns counts, last alert, and trend availability for the current session.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} roles.SessionSnapshot
//	@Router			/guard/status [get]
func (m *Module) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.session.Snapshot())
}

// handleResetSession discards the history and evaluation log.
//
//	@Summary		Reset session
//	@Description	Discards the session's history and evaluation log and reports the discard counts.
//	@Tags			guard
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} ResetPayload
//	@Router			/guard/session/reset [post]
func (m *Module) handleResetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.ResetSession(r.Context()))
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://energyguard.dev/problems/" + problemSlug(status),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}

func problemSlug(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "-")
}

func parseLimit(r *http.Request, defaultLimit int) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			return n
		}
	}
	return defaultLimit
}
