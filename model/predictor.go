package model

import (
	"context"
	"fmt"
	"math"

	"github.com/mohanad/carpriced/pricing"
)

// Predictor produces a price estimate in USD for an assembled feature
// record. Implementations are stateless and deterministic for a given model
// state.
type Predictor interface {
	Predict(ctx context.Context, rec *pricing.Record) (float64, error)
}

// PredictionError wraps a transform or predict failure with the context
// needed to diagnose it: the columns the pipeline expected, the columns the
// record carried, and each record value's concrete type. Predictions are
// never retried.
type PredictionError struct {
	ExpectedColumns []string
	ActualColumns   []string
	ColumnTypes     map[string]string
	Err             error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v (pipeline expects %d columns, record has %d)",
		e.Err, len(e.ExpectedColumns), len(e.ActualColumns))
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

type artifactPredictor struct {
	preprocessor *Preprocessor
	model        *RegressionForest
	columns      []string
}

// NewPredictor wraps loaded artifacts behind the Predictor boundary.
func NewPredictor(a *Artifacts) Predictor {
	return &artifactPredictor{
		preprocessor: a.Preprocessor,
		model:        a.Model,
		columns:      a.Columns,
	}
}

func (p *artifactPredictor) Predict(ctx context.Context, rec *pricing.Record) (price float64, err error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// The transform and predict stages are treated as opaque; anything they
	// panic with is converted to a PredictionError at this boundary.
	defer func() {
		if r := recover(); r != nil {
			err = p.failure(rec, fmt.Errorf("panic in prediction pipeline: %v", r))
		}
	}()

	features, err := p.preprocessor.Transform(rec)
	if err != nil {
		return 0, p.failure(rec, err)
	}

	out := p.model.Predict(features)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, p.failure(rec, fmt.Errorf("model returned non-finite value %v", out))
	}

	return math.Round(out*100) / 100, nil
}

func (p *artifactPredictor) failure(rec *pricing.Record, err error) *PredictionError {
	types := make(map[string]string, rec.Len())
	for _, col := range rec.Columns() {
		v, _ := rec.Value(col)
		types[col] = fmt.Sprintf("%T", v)
	}
	return &PredictionError{
		ExpectedColumns: p.columns,
		ActualColumns:   rec.Columns(),
		ColumnTypes:     types,
		Err:             err,
	}
}

// StaticPredictor always returns the configured price (or error). It is the
// fake adapter used in tests and local development without artifacts.
type StaticPredictor struct {
	Price float64
	Err   error
}

func (s *StaticPredictor) Predict(ctx context.Context, rec *pricing.Record) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Price, nil
}
