package model

type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// Channels is the channel count of an NCHW input shape. Shapes without a
// channel axis are treated as single channel.
func (m Metadata) Channels() int {
	if len(m.InputShape) == 4 {
		return int(m.InputShape[1])
	}
	return 1
}

// InputSize is the number of values one input tensor holds.
func (m Metadata) InputSize() int {
	if len(m.InputShape) == 0 {
		return 0
	}
	size := 1
	for _, dim := range m.InputShape {
		size *= int(dim)
	}
	return size
}

type PredictionRequest struct {
	Image []float32 `json:"image"`
}

// Result is the outcome of one inference: the best scoring class and all scores.
type Result struct {
	Name        string
	Confidence  float32
	Predictions map[string]float32
}
