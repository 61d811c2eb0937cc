package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory. The three files are
// produced together by cmd/train-model and are only meaningful as a set.
const (
	PreprocessorFile = "preprocessor.gob"
	ModelFile        = "rf_model.gob"
	ColumnsFile      = "columns.gob"
)

// Artifacts bundles the fitted model state loaded at startup: the feature
// preprocessor, the regression forest and the ordered feature column list.
type Artifacts struct {
	Preprocessor *Preprocessor
	Model        *RegressionForest
	Columns      []string
}

// LoadError reports a missing or corrupt model artifact. The prediction
// feature is disabled when loading fails; the rest of the service keeps
// running.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load model artifact %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadArtifacts reads the three artifact files from dir.
func LoadArtifacts(dir string) (*Artifacts, error) {
	a := &Artifacts{}
	if err := loadGob(filepath.Join(dir, PreprocessorFile), &a.Preprocessor); err != nil {
		return nil, err
	}
	if err := loadGob(filepath.Join(dir, ModelFile), &a.Model); err != nil {
		return nil, err
	}
	if err := loadGob(filepath.Join(dir, ColumnsFile), &a.Columns); err != nil {
		return nil, err
	}
	if len(a.Columns) == 0 {
		return nil, &LoadError{Path: filepath.Join(dir, ColumnsFile), Err: fmt.Errorf("empty column list")}
	}
	return a, nil
}

// Save writes the artifact set to dir, creating it if needed.
func (a *Artifacts) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model dir: %w", err)
	}
	if err := saveGob(filepath.Join(dir, PreprocessorFile), a.Preprocessor); err != nil {
		return err
	}
	if err := saveGob(filepath.Join(dir, ModelFile), a.Model); err != nil {
		return err
	}
	return saveGob(filepath.Join(dir, ColumnsFile), a.Columns)
}

func loadGob(path string, dest any) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(dest); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return nil
}

func saveGob(path string, src any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(src); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
