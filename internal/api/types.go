package api

import "fmt"

const (
	FormFieldImage  = "image"
	RequestIDHeader = "X-Request-ID"
)

// PredictionResponse is the JSON body answered by the prediction service.
type PredictionResponse struct {
	PredictedName string             `json:"predicted_name"`
	Confidence    float32            `json:"confidence,omitempty"`
	Predictions   map[string]float32 `json:"predictions,omitempty"`
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("prediction service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("prediction service returned status %d: %s", e.StatusCode, e.Body)
}
