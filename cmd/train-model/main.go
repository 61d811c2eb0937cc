// train-model fits the feature preprocessor and regression forest on a
// listings CSV and writes the artifact set carpriced loads at startup.
//
// The CSV needs a header row; every column except the target must have a
// declared kind. Empty cells are treated as missing.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/mohanad/carpriced/model"
	"github.com/mohanad/carpriced/pricing"
)

func main() {
	var csvPath, outDir, target string
	var trees, depth, maxFeatures int
	var seed int64

	flag.StringVar(&csvPath, "csv", "", "Training data CSV (required)")
	flag.StringVar(&outDir, "out", "model-artifacts", "Directory to write artifacts to")
	flag.StringVar(&target, "target", "price", "Target column name")
	flag.IntVar(&trees, "trees", 100, "Number of trees")
	flag.IntVar(&depth, "depth", 16, "Max tree depth (0 = unlimited)")
	flag.IntVar(&maxFeatures, "max-features", 0, "Features considered per split (0 = all)")
	flag.Int64Var(&seed, "seed", 1, "Random seed")
	flag.Parse()

	if csvPath == "" {
		fmt.Fprintf(os.Stderr, "-csv is required\n")
		os.Exit(1)
	}

	columns, rows, y, err := readTrainingCSV(csvPath, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", csvPath, err)
		os.Exit(1)
	}
	fmt.Printf("Read %d rows, %d feature columns\n", len(rows), len(columns))

	schema, err := pricing.BuildSchema(columns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building schema: %v\n", err)
		os.Exit(1)
	}

	preprocessor, err := model.FitPreprocessor(schema, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fitting preprocessor: %v\n", err)
		os.Exit(1)
	}

	X := make([][]float64, 0, len(rows))
	for _, row := range rows {
		collected := make(map[string]any, len(row))
		for col, v := range row {
			if v != "" {
				collected[col] = v
			}
		}
		rec, _ := pricing.Assemble(schema, collected)
		features, err := preprocessor.Transform(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error transforming row: %v\n", err)
			os.Exit(1)
		}
		X = append(X, features)
	}

	forest := model.NewRegressionForest(
		model.WithNEstimators(trees),
		model.WithMaxDepth(depth),
		model.WithMaxFeatures(maxFeatures),
		model.WithSeed(seed),
	)
	fmt.Printf("Fitting %d trees...\n", trees)
	if err := forest.Fit(X, y); err != nil {
		fmt.Fprintf(os.Stderr, "Error fitting forest: %v\n", err)
		os.Exit(1)
	}

	var absErr float64
	for i, x := range X {
		absErr += math.Abs(forest.Predict(x) - y[i])
	}
	fmt.Printf("Training MAE: %.2f\n", absErr/float64(len(X)))

	artifacts := &model.Artifacts{
		Preprocessor: preprocessor,
		Model:        forest,
		Columns:      schema.ColumnNames(),
	}
	if err := artifacts.Save(outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving artifacts: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Artifacts written to %s\n", outDir)
}

// readTrainingCSV splits a CSV into feature rows and the target vector.
func readTrainingCSV(path, target string) ([]string, []map[string]string, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	targetIdx := -1
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if name == target {
			targetIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if targetIdx < 0 {
		return nil, nil, nil, fmt.Errorf("target column %q not in header", target)
	}

	var rows []map[string]string
	var y []float64
	for {
		record, err := r.Read()
		if err != nil {
			break
		}

		yv, err := strconv.ParseFloat(record[targetIdx], 64)
		if err != nil {
			// Rows without a usable target are skipped rather than imputed.
			continue
		}

		row := make(map[string]string, len(columns))
		for i, name := range header {
			if i == targetIdx {
				continue
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
		y = append(y, yv)
	}
	if len(rows) == 0 {
		return nil, nil, nil, fmt.Errorf("no usable rows")
	}
	return columns, rows, y, nil
}
