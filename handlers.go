package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mohanad/carpriced/currency"
	"github.com/mohanad/carpriced/model"
	"github.com/mohanad/carpriced/pricing"
	"github.com/mohanad/carpriced/storage"
)

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorResponse{
		Status: "error",
		Error:  errorPayload{Code: code, Message: message, Details: details},
	})
}

type predictRequest struct {
	// Values maps column names to collected form values: numbers for numeric
	// inputs, 0/1 for boolean flags, strings for categorical selections.
	Values   map[string]any `json:"values"`
	Currency string         `json:"currency"`
}

type predictResponse struct {
	Currency   string                  `json:"currency"`
	Symbol     string                  `json:"symbol"`
	Price      float64                 `json:"price"`
	Display    string                  `json:"display"`
	PriceUSD   float64                 `json:"price_usd"`
	DisplayUSD string                  `json:"display_usd"`
	Warnings   []string                `json:"warnings,omitempty"`
	Advisories []pricing.FieldAdvisory `json:"advisories,omitempty"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	// Validation blocks before anything external is touched. All violations
	// are reported together so the form can highlight every bad field.
	violations, advisories := pricing.ValidateCollected(req.Values)
	if len(violations) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed",
			"please correct the highlighted input errors before predicting", violations)
		return
	}

	if s.predictor == nil {
		writeError(w, http.StatusServiceUnavailable, "prediction_disabled",
			"model artifacts are not loaded; prediction is unavailable", nil)
		return
	}

	// The form sends the transmission display label; the model wants the
	// internal code.
	if v, ok := req.Values["transmission"]; ok {
		req.Values["transmission"] = pricing.ToInternalCode(fmt.Sprint(v))
	}

	rec, missing := pricing.Assemble(s.schema, req.Values)
	warnings := make([]string, 0, len(missing))
	for _, m := range missing {
		warnings = append(warnings, m.String())
	}

	priceUSD, err := s.predictor.Predict(r.Context(), rec)
	if err != nil {
		var perr *model.PredictionError
		if errors.As(err, &perr) {
			log.Error().Err(perr.Err).Msg("prediction failed")
			writeError(w, http.StatusInternalServerError, "prediction_failed", perr.Error(), map[string]any{
				"expected_columns": perr.ExpectedColumns,
				"actual_columns":   perr.ActualColumns,
				"column_types":     perr.ColumnTypes,
			})
			return
		}
		log.Error().Err(err).Msg("prediction failed")
		writeError(w, http.StatusInternalServerError, "prediction_failed", err.Error(), nil)
		return
	}

	table := s.rateCache.Table(r.Context())
	price, display := currency.Convert(priceUSD, req.Currency, table)

	s.recordPrediction(req.Currency, priceUSD, price, rec)

	writeJSON(w, http.StatusOK, successResponse{
		Status: "ok",
		Data: predictResponse{
			Currency:   req.Currency,
			Symbol:     currency.Symbol(req.Currency),
			Price:      price,
			Display:    display,
			PriceUSD:   priceUSD,
			DisplayUSD: currency.Format(priceUSD, "USD"),
			Warnings:   warnings,
			Advisories: advisories,
		},
	})
}

// recordPrediction writes to the history store when one is configured.
// Failures are logged, not surfaced: history is best effort.
func (s *Server) recordPrediction(code string, priceUSD, price float64, rec *pricing.Record) {
	if s.store == nil {
		return
	}
	err := s.store.Insert(&storage.Prediction{
		Currency: code,
		PriceUSD: priceUSD,
		Price:    price,
		Record:   rec.ValueMap(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to record prediction")
	}
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, successResponse{
		Status: "ok",
		Data:   s.rateCache.Table(r.Context()),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, successResponse{
		Status: "ok",
		Data:   s.buildCatalog(),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, successResponse{
		Status: "ok",
		Data: map[string]any{
			"prediction_enabled": s.predictor != nil,
		},
	})
}
