package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/mohanad/carpriced/pricing"
)

// NumericParams holds the fitted parameters for one numeric column: the
// median used to impute missing values and the mean/std used to standardize.
type NumericParams struct {
	Column string
	Median float64
	Mean   float64
	Std    float64
}

// CategoricalParams holds the fitted one-hot vocabulary for one categorical
// column. A value outside the vocabulary encodes to the zero vector.
type CategoricalParams struct {
	Column     string
	Categories []string
}

// Preprocessor is a fitted feature pipeline. It converts a single-row
// feature record into the numeric vector the regression model expects:
// numeric columns are median-imputed and standardized, categorical columns
// are one-hot encoded against the vocabulary seen at fit time.
type Preprocessor struct {
	Numeric     []NumericParams
	Categorical []CategoricalParams
}

// Width returns the length of the feature vector Transform produces.
func (p *Preprocessor) Width() int {
	w := len(p.Numeric)
	for _, c := range p.Categorical {
		w += len(c.Categories)
	}
	return w
}

// Transform encodes a record into a feature vector. The record must contain
// every fitted column; a missing column is a contract violation and errors.
func (p *Preprocessor) Transform(rec *pricing.Record) ([]float64, error) {
	out := make([]float64, 0, p.Width())

	for _, np := range p.Numeric {
		raw, ok := rec.Value(np.Column)
		if !ok {
			return nil, fmt.Errorf("record is missing numeric column %q", np.Column)
		}
		v := pricing.CoerceNumeric(raw)
		if math.IsNaN(v) {
			v = np.Median
		}
		std := np.Std
		if std == 0 {
			std = 1
		}
		out = append(out, (v-np.Mean)/std)
	}

	for _, cp := range p.Categorical {
		raw, ok := rec.Value(cp.Column)
		if !ok {
			return nil, fmt.Errorf("record is missing categorical column %q", cp.Column)
		}
		s := fmt.Sprint(raw)
		for _, cat := range cp.Categories {
			if s == cat {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}

	return out, nil
}

// FitPreprocessor fits imputation, scaling and one-hot parameters from raw
// training rows (column name to raw CSV string, empty string meaning
// missing). Column order follows the schema; numeric and boolean columns are
// fitted as numerics, the rest as categoricals.
func FitPreprocessor(schema *pricing.Schema, rows []map[string]string) (*Preprocessor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no training rows")
	}

	p := &Preprocessor{}
	for _, col := range schema.Columns() {
		if col.Kind == pricing.KindCategorical {
			p.Categorical = append(p.Categorical, fitCategorical(col.Name, rows))
			continue
		}
		np, err := fitNumeric(col.Name, rows)
		if err != nil {
			return nil, err
		}
		p.Numeric = append(p.Numeric, np)
	}
	return p, nil
}

func fitNumeric(column string, rows []map[string]string) (NumericParams, error) {
	var values []float64
	for _, row := range rows {
		s := row[column]
		if s == "" {
			continue
		}
		v := pricing.CoerceNumeric(s)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return NumericParams{}, fmt.Errorf("column %q has no numeric values to fit", column)
	}

	return NumericParams{
		Column: column,
		Median: median(values),
		Mean:   mean(values),
		Std:    stddev(values),
	}, nil
}

func fitCategorical(column string, rows []map[string]string) CategoricalParams {
	seen := map[string]struct{}{}
	for _, row := range rows {
		s := row[column]
		if s == "" {
			s = pricing.UnknownSentinel
		}
		seen[s] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for s := range seen {
		categories = append(categories, s)
	}
	sort.Strings(categories)
	return CategoricalParams{Column: column, Categories: categories}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
