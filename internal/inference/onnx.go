package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	"leafdoctor/internal/imaging"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXConfig locates the model artifact and, optionally, the onnxruntime
// shared library.
type ONNXConfig struct {
	ModelPath         string
	SharedLibraryPath string
}

// ONNXEngine runs a single-input ONNX classifier through onnxruntime.
type ONNXEngine struct {
	// mu serialises Run: the session is bound to one pair of tensors.
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]

	shape   imaging.Shape
	classes int
}

var _ Engine = (*ONNXEngine)(nil)

// NewONNXEngine loads the model once and reads its declared input and output
// shapes. It fails if the artifact is missing or not a usable classifier.
func NewONNXEngine(cfg ONNXConfig) (*ONNXEngine, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model artifact %q: %w", cfg.ModelPath, err)
	}

	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("read model io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return nil, fmt.Errorf("expected 1 input and at least 1 output, got %d and %d", len(inputs), len(outputs))
	}

	shape, err := imaging.ParseInputShape(inputs[0].Dimensions)
	if err != nil {
		return nil, fmt.Errorf("model input %q: %w", inputs[0].Name, err)
	}
	outDims, classes, err := outputDims(outputs[0].Dimensions)
	if err != nil {
		return nil, fmt.Errorf("model output %q: %w", outputs[0].Name, err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(shape.Dims()...))
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(outDims...))
	if err != nil {
		_ = inputTensor.Destroy()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		_ = inputTensor.Destroy()
		_ = outputTensor.Destroy()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNXEngine{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
		shape:   shape,
		classes: classes,
	}, nil
}

func (e *ONNXEngine) InputShape() imaging.Shape { return e.shape }

func (e *ONNXEngine) NumClasses() int { return e.classes }

// Predict copies input into the bound tensor, runs the session and returns a
// copy of the output vector.
func (e *ONNXEngine) Predict(ctx context.Context, input []float32) ([]float32, error) {
	if len(input) != e.shape.Len() {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrInputSize, len(input), e.shape.Len())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.input.GetData(), input)
	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := e.output.GetData()
	probs := make([]float32, e.classes)
	copy(probs, out[len(out)-e.classes:])
	return probs, nil
}

// Close destroys the session, its tensors and the runtime environment.
func (e *ONNXEngine) Close() error {
	if e.input != nil {
		_ = e.input.Destroy()
	}
	if e.output != nil {
		_ = e.output.Destroy()
	}
	if e.session != nil {
		_ = e.session.Destroy()
	}
	return ort.DestroyEnvironment()
}

// outputDims makes a declared output shape concrete for a batch of one and
// returns the class count (the last dimension).
func outputDims(dims []int64) ([]int64, int, error) {
	if len(dims) == 0 {
		return nil, 0, fmt.Errorf("scalar output")
	}
	classes := dims[len(dims)-1]
	if classes <= 0 {
		return nil, 0, fmt.Errorf("dynamic class dimension in %v", dims)
	}
	out := make([]int64, len(dims))
	for i, d := range dims {
		if d <= 0 || i == 0 {
			d = 1
		}
		out[i] = d
	}
	out[len(out)-1] = classes
	return out, int(classes), nil
}
