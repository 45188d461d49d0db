package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

type Server struct {
	session      *ort.AdvancedSession
	metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	// The tensors are shared between calls.
	mu sync.Mutex
}

func LoadMetadata(path string) (Metadata, error) {
	var metadata Metadata

	metaFile, err := os.ReadFile(path)
	if err != nil {
		return metadata, fmt.Errorf("failed to read metadata: %w", err)
	}
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return metadata, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return metadata, fmt.Errorf("metadata lists no classes")
	}
	if metadata.ImageSize <= 0 {
		return metadata, fmt.Errorf("metadata image_size must be positive, got %d", metadata.ImageSize)
	}
	return metadata, nil
}

func NewServer(modelPath, metadataPath string) (*Server, error) {
	metadata, err := LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Server{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (s *Server) Metadata() Metadata {
	return s.metadata
}

func (s *Server) Predict(inputData []float32) (*Result, error) {
	if len(inputData) != s.metadata.InputSize() {
		return nil, fmt.Errorf("expected %d values, got %d", s.metadata.InputSize(), len(inputData))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.inputTensor.GetData(), inputData)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	return BestClass(s.outputTensor.GetData(), s.metadata.Classes)
}

// BestClass picks the highest scoring class. Scores past the last class
// name are ignored.
func BestClass(scores []float32, classes []string) (*Result, error) {
	if len(scores) == 0 || len(classes) == 0 {
		return nil, fmt.Errorf("no scores to rank")
	}

	maxIdx := 0
	maxVal := scores[0]
	predictions := make(map[string]float32)

	for i, val := range scores {
		if i >= len(classes) {
			break
		}
		predictions[classes[i]] = val
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}

	return &Result{
		Name:        classes[maxIdx],
		Confidence:  maxVal,
		Predictions: predictions,
	}, nil
}

func (s *Server) Close() {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	ort.DestroyEnvironment()
}
