package tariff

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/HerbHall/energyguard/pkg/plugin"
	"github.com/shopspring/decimal"
)

// RateResponse is the payload returned by the rate endpoint.
type RateResponse struct {
	RatePerKWh decimal.Decimal `json:"rate_per_kwh"`
	Currency   string          `json:"currency"`
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/rate", Handler: m.handleRate},
		{Method: "GET", Path: "/estimate", Handler: m.handleEstimate},
	}
}

// handleRate returns the active tariff.
//
//	@Summary		Current tariff
//	@Description	Returns the configured energy rate and currency.
//	@Tags			tariff
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200 {object} tariff.RateResponse
//	@Router			/tariff/rate [get]
func (m *Module) handleRate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RateResponse{
		RatePerKWh: m.calc.Rate(),
		Currency:   m.calc.Currency(),
	})
}

// handleEstimate prices a consumption amount passed as a query parameter.
//
//	@Summary		Estimate cost
//	@Description	Estimates the cost of the given consumption at the configured tariff.
//	@Tags			tariff
//	@Produce		json
//	@Security		BearerAuth
//	@Param			kwh query number true "Consumption in kWh"
//	@Success		200 {object} energy.CostEstimate
//	@Failure		400 {object} map[string]any
//	@Router			/tariff/estimate [get]
func (m *Module) handleEstimate(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("kwh")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing kwh parameter")
		return
	}
	kwh, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid kwh parameter")
		return
	}

	est, err := m.EstimateCost(r.Context(), kwh)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, est)
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
