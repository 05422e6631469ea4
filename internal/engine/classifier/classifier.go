// Package classifier loads a trained classification model and predicts class
// indices from scaled feature rows.
package classifier

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Model predicts one class index per row.
type Model interface {
	Predict(x [][]float64) ([]int64, error)
	NumFeatures() int
	Close() error
}

// Open picks a loader from the file extension: .onnx runs through ONNX
// Runtime (libPath locates the shared library), .json/.yaml/.yml is a tree
// ensemble evaluated in-process.
func Open(path, libPath string) (Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".onnx":
		return LoadONNX(path, libPath)
	case ".json", ".yaml", ".yml":
		return LoadForest(path)
	default:
		return nil, fmt.Errorf("classifier: unsupported model format %q", ext)
	}
}
