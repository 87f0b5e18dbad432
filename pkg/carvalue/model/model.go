// Package model wraps an externally trained price model behind a single
// Predict capability.
package model

import (
	"fmt"
	"math"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

// Record is one row of model input keyed by exact field name. Categorical
// values are strings, numeric values ints or floats.
type Record map[string]any

// Model is a trained regressor. Implementations must be safe for concurrent
// use and hold no state between calls.
type Model interface {
	Predict(rec Record) (float64, error)
}

// ModelLoadError reports an artifact that is missing, unreadable or does not
// match the CarQuery input schema.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// PredictionError reports a query the model could not price.
type PredictionError struct {
	Reason string
	Err    error
}

func (e *PredictionError) Error() string {
	if e.Err == nil {
		return "prediction failed: " + e.Reason
	}
	return fmt.Sprintf("prediction failed: %s: %v", e.Reason, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

// ToRecord converts q into model input. Empty categorical values are
// reported as missing fields.
func ToRecord(q dal.CarQuery) (Record, error) {
	rec := make(Record, len(dal.QueryColumns()))
	for c, v := range q.Fields() {
		if s, ok := v.(string); ok && s == "" {
			return nil, &PredictionError{Reason: fmt.Sprintf("missing required field %q", c.String())}
		}
		rec[c.String()] = v
	}
	return rec, nil
}

// Predict prices q with m. It does not retry and has no fallback estimate.
// Negative model output floors at zero.
func Predict(m Model, q dal.CarQuery) (dal.PriceEstimate, error) {
	rec, err := ToRecord(q)
	if err != nil {
		return 0, err
	}
	v, err := m.Predict(rec)
	if err != nil {
		return 0, &PredictionError{Reason: "model rejected query", Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &PredictionError{Reason: fmt.Sprintf("model returned non-finite value %v", v)}
	}
	if v < 0 {
		v = 0
	}
	return dal.PriceEstimate(v), nil
}
