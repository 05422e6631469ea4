package classifier

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Only the first call has
// any effect; later calls return the first result.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNX runs a classifier exported to ONNX (for example with skl2onnx). The
// model must take one float tensor of shape [batch, features] and produce
// an int64 label tensor of shape [batch].
type ONNX struct {
	mu          sync.Mutex
	session     *ort.DynamicAdvancedSession
	inputName   string
	outputName  string
	numFeatures int64
}

// LoadONNX creates an inference session for modelPath. An empty libPath
// means libonnxruntime.so in the model's directory.
func LoadONNX(modelPath, libPath string) (*ONNX, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}

	inputName, numFeatures, err := validateInput(inputs)
	if err != nil {
		return nil, err
	}
	outputName, err := findLabelOutput(outputs)
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &ONNX{
		session:     session,
		inputName:   inputName,
		outputName:  outputName,
		numFeatures: numFeatures,
	}, nil
}

// validateInput expects a single float tensor input of shape [batch, n].
func validateInput(inputs []ort.InputOutputInfo) (string, int64, error) {
	if len(inputs) != 1 {
		return "", 0, fmt.Errorf("onnx: expected 1 model input, got %d", len(inputs))
	}
	in := inputs[0]
	if in.OrtValueType != ort.ONNXTypeTensor || in.DataType != ort.TensorElementDataTypeFloat {
		return "", 0, fmt.Errorf("onnx: input %q must be a float tensor", in.Name)
	}
	if len(in.Dimensions) != 2 || in.Dimensions[1] <= 0 {
		return "", 0, fmt.Errorf("onnx: expected input shape [batch, features], got %v", in.Dimensions)
	}
	return in.Name, in.Dimensions[1], nil
}

// findLabelOutput returns the first int64 tensor output. Probability outputs
// (often a sequence of maps) are not requested.
func findLabelOutput(outputs []ort.InputOutputInfo) (string, error) {
	for _, out := range outputs {
		if out.OrtValueType == ort.ONNXTypeTensor && out.DataType == ort.TensorElementDataTypeInt64 {
			return out.Name, nil
		}
	}
	return "", fmt.Errorf("onnx: model has no int64 label output")
}

// NumFeatures returns the width of the model input.
func (m *ONNX) NumFeatures() int {
	return int(m.numFeatures)
}

// Predict runs the rows as one batch. Inputs are converted to float32.
func (m *ONNX) Predict(x [][]float64) ([]int64, error) {
	batch := int64(len(x))
	if batch == 0 {
		return nil, nil
	}
	flat := make([]float32, 0, batch*m.numFeatures)
	for r, row := range x {
		if int64(len(row)) != m.numFeatures {
			return nil, fmt.Errorf("onnx: row %d has %d columns, want %d", r, len(row), m.numFeatures)
		}
		for _, v := range row {
			flat = append(flat, float32(v))
		}
	}

	tIn, err := ort.NewTensor(ort.NewShape(batch, m.numFeatures), flat)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create %s tensor: %w", m.inputName, err)
	}
	defer tIn.Destroy()

	tOut, err := ort.NewEmptyTensor[int64](ort.NewShape(batch))
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	m.mu.Lock()
	err = m.session.Run([]ort.Value{tIn}, []ort.Value{tOut})
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	// Copy data out before the tensor is destroyed.
	src := tOut.GetData()
	result := make([]int64, len(src))
	copy(result, src)
	return result, nil
}

// Close releases the ONNX session.
func (m *ONNX) Close() error {
	return m.session.Destroy()
}
