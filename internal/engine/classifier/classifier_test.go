package classifier

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// stump splits on column 0 at 0.5: left votes class 0, right votes class 1.
func stump() Tree {
	return Tree{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{0, -2, -2},
		Threshold:     []float64{0.5, -2, -2},
		Value:         [][]float64{{5, 5}, {5, 0}, {0, 5}},
	}
}

func TestForestPredict(t *testing.T) {
	f, err := NewForest(ForestFile{NFeatures: 2, Trees: []Tree{stump()}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Predict([][]float64{{0.1, 9}, {0.5, 0}, {0.9, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{0, 0, 1}, got); diff != "" {
		t.Fatalf("Predict mismatch (-want +got):\n%s", diff)
	}
}

func TestForestAveragesTrees(t *testing.T) {
	// Second tree always leans towards class 1 but weakly; the stump decides.
	weak := Tree{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{-2},
		Threshold:     []float64{-2},
		Value:         [][]float64{{4, 6}},
	}
	f, err := NewForest(ForestFile{NFeatures: 1, Trees: []Tree{stump(), weak}})
	if err != nil {
		t.Fatal(err)
	}

	proba, err := f.PredictProba([]float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0.7, 0.3}, proba, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("PredictProba mismatch (-want +got):\n%s", diff)
	}
	got, _ := f.Predict([][]float64{{0}})
	if got[0] != 0 {
		t.Fatalf("Predict = %d, want 0", got[0])
	}
}

func TestForestClassMapping(t *testing.T) {
	f, err := NewForest(ForestFile{NFeatures: 1, Classes: []int64{2, 3}, Trees: []Tree{stump()}})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := f.Predict([][]float64{{1}})
	if got[0] != 3 {
		t.Fatalf("Predict = %d, want 3", got[0])
	}
}

func TestForestDeterministic(t *testing.T) {
	f, err := NewForest(ForestFile{NFeatures: 1, Trees: []Tree{stump(), stump()}})
	if err != nil {
		t.Fatal(err)
	}
	first, _ := f.Predict([][]float64{{0.42}})
	for i := 0; i < 50; i++ {
		got, _ := f.Predict([][]float64{{0.42}})
		if got[0] != first[0] {
			t.Fatalf("run %d: got %d, want %d", i, got[0], first[0])
		}
	}
}

func TestForestWrongWidth(t *testing.T) {
	f, err := NewForest(ForestFile{NFeatures: 2, Trees: []Tree{stump()}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Predict([][]float64{{1}}); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestNewForestValidation(t *testing.T) {
	badChild := stump()
	badChild.ChildrenLeft = []int{0, -1, -1}

	badFeature := stump()
	badFeature.Feature = []int{7, -2, -2}

	ragged := stump()
	ragged.Value = [][]float64{{1, 1}, {1}, {1, 1}}

	short := stump()
	short.Threshold = []float64{0.5}

	tests := []struct {
		name string
		file ForestFile
		want string
	}{
		{"no features", ForestFile{Trees: []Tree{stump()}}, "n_features"},
		{"no trees", ForestFile{NFeatures: 1}, "no trees"},
		{"self loop", ForestFile{NFeatures: 1, Trees: []Tree{badChild}}, "child"},
		{"bad feature", ForestFile{NFeatures: 1, Trees: []Tree{badFeature}}, "feature 7"},
		{"ragged values", ForestFile{NFeatures: 1, Trees: []Tree{ragged}}, "class values"},
		{"short arrays", ForestFile{NFeatures: 1, Trees: []Tree{short}}, "length"},
		{"classes", ForestFile{NFeatures: 1, Classes: []int64{1}, Trees: []Tree{stump()}}, "classes"},
		{"names", ForestFile{NFeatures: 1, FeatureNames: []string{"a", "b"}, Trees: []Tree{stump()}}, "feature_names"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewForest(tt.file)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestOpenForestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	body := `{
  "n_features": 1,
  "trees": [{
    "children_left": [1, -1, -1],
    "children_right": [2, -1, -1],
    "feature": [0, -2, -2],
    "threshold": [0.5, -2, -2],
    "value": [[5, 5], [5, 0], [0, 5]]
  }]
}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	if m.NumFeatures() != 1 {
		t.Fatalf("NumFeatures = %d, want 1", m.NumFeatures())
	}
	got, err := m.Predict([][]float64{{0.75}})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 {
		t.Fatalf("Predict = %d, want 1", got[0])
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("model.pkl", ""); err == nil {
		t.Fatal("expected error for .pkl")
	}
}

func TestOpenMissingForest(t *testing.T) {
	if _, err := Open("/nonexistent/model.json", ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
