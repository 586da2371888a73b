// Package valuation exposes the engine over HTTP. Handlers are thin: they
// decode the flat request shape, consult the vault so repeated requests
// with identical inputs skip re-discounting, and serialize the result as
// plain decimal JSON. Formatting for display stays in the presentation
// layer.
package valuation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"fairval/pkg/core/store"
	"fairval/pkg/core/valuation"
)

// Handler serves the valuation endpoints.
type Handler struct {
	vault *store.ValuationVault
	log   zerolog.Logger
}

// NewHandler wires a handler. A nil vault disables caching; every request
// is computed fresh.
func NewHandler(vault *store.ValuationVault, log zerolog.Logger) *Handler {
	return &Handler{vault: vault, log: log}
}

// ComputeRequest is the wire shape of a valuation request.
type ComputeRequest struct {
	Snapshot    valuation.FinancialSnapshot `json:"snapshot"`
	Assumptions valuation.AssumptionSet     `json:"assumptions"`
	Weights     valuation.ModelWeights      `json:"weights"`

	Proxies        *valuation.ProxyConfig `json:"proxies,omitempty"`
	MarginOfSafety float64                `json:"margin_of_safety,omitempty"`

	IncludeSensitivity bool                  `json:"include_sensitivity,omitempty"`
	Grid               *valuation.GridConfig `json:"grid,omitempty"`

	// SkipCache forces a fresh computation even on a vault hit.
	SkipCache bool `json:"skip_cache,omitempty"`
}

// ReblendRequest reweights an already-computed result without re-running
// the models.
type ReblendRequest struct {
	Result         valuation.ValuationResult `json:"result"`
	Weights        valuation.ModelWeights    `json:"weights"`
	MarginOfSafety float64                   `json:"margin_of_safety,omitempty"`
}

// HandleCompute runs the engine for one (snapshot, assumptions, weights)
// tuple. POST only.
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	symbol := req.Snapshot.Symbol
	fingerprint := store.Fingerprint(req.Snapshot, req.Assumptions, req.Weights, req.Proxies, req.MarginOfSafety)

	if h.vault != nil && !req.SkipCache && !req.IncludeSensitivity {
		cached, err := h.vault.Get(r.Context(), symbol, fingerprint)
		if err != nil {
			h.log.Warn().Err(err).Str("symbol", symbol).Msg("vault read failed, computing fresh")
		} else if cached != nil {
			h.log.Debug().Str("symbol", symbol).Msg("vault hit")
			writeJSON(w, cached)
			return
		}
	}

	opts := valuation.Options{
		Proxies:        req.Proxies,
		Recommendation: valuation.RecommendationConfig{MarginOfSafety: req.MarginOfSafety},
	}
	if req.IncludeSensitivity {
		grid := valuation.GridConfig{}
		if req.Grid != nil {
			grid = *req.Grid
		}
		opts.Sensitivity = &grid
	}

	res, err := valuation.ComputeWithOptions(req.Snapshot, req.Assumptions, req.Weights, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if h.vault != nil && !req.IncludeSensitivity {
		if err := h.vault.Save(r.Context(), symbol, fingerprint, res); err != nil {
			h.log.Warn().Err(err).Str("symbol", symbol).Msg("vault write failed")
		}
	}

	h.log.Info().
		Str("symbol", symbol).
		Float64("blended", res.BlendedPrice).
		Str("recommendation", string(res.Recommendation)).
		Msg("valuation computed")
	writeJSON(w, res)
}

// HandleReblend recomputes the blend, summary, and recommendation of a
// prior result under new weights. Pure recomputation over the four cached
// model values; no cash flow is re-discounted.
func (h *Handler) HandleReblend(w http.ResponseWriter, r *http.Request) {
	var req ReblendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := valuation.Reblend(&req.Result, req.Weights,
		valuation.RecommendationConfig{MarginOfSafety: req.MarginOfSafety})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, res)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// writeEngineError maps the engine's fatal error taxonomy onto HTTP
// status codes with enough context to correct the request.
func writeEngineError(w http.ResponseWriter, err error) {
	var invalid *valuation.InvalidInputError
	var noModel *valuation.NoModelSelectedError

	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error(), invalid.Field)
	case errors.As(err, &noModel):
		writeError(w, http.StatusUnprocessableEntity, "no_model_selected", err.Error(), "")
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error(), "")
	}
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
		"field":   field,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
