package handlers

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/Brownie44l1/facerec/internal/api"
	"github.com/Brownie44l1/facerec/internal/logger"
	"github.com/Brownie44l1/facerec/internal/model"
	"github.com/Brownie44l1/facerec/internal/thumbnail"
)

const maxUploadSize = 10 << 20

type Predictor interface {
	Predict(input []float32) (*model.Result, error)
	Metadata() model.Metadata
}

type Handler struct {
	predictor Predictor
}

func NewHandler(predictor Predictor) *Handler {
	return &Handler{
		predictor: predictor,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req model.PredictionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	expectedSize := h.predictor.Metadata().InputSize()
	if len(req.Image) != expectedSize {
		http.Error(w, fmt.Sprintf("Expected %d values, got %d", expectedSize, len(req.Image)),
			http.StatusBadRequest)
		return
	}

	h.respond(w, requestID(w, r), req.Image)
}

// preprocessImage turns an upload into the model's NCHW input: the
// grayscale thumbnail scaled to [0, 1], repeated for every channel.
func (h *Handler) preprocessImage(img image.Image) ([]float32, error) {
	metadata := h.predictor.Metadata()

	gray, err := thumbnail.Prepare(img, thumbnail.Square(metadata.ImageSize))
	if err != nil {
		return nil, err
	}

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height
	channels := metadata.Channels()

	inputData := make([]float32, channels*plane)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			value := float32(gray.NRGBAAt(x, y).R) / 255.0
			pixelIndex := y*width + x
			for c := 0; c < channels; c++ {
				inputData[c*plane+pixelIndex] = value
			}
		}
	}

	logger.Debug.Printf("Preprocessed image: %d values (%d channels × %d × %d)", len(inputData), channels, width, height)
	return inputData, nil
}

func (h *Handler) PredictFromImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := requestID(w, r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile(api.FormFieldImage)
	if err != nil {
		http.Error(w, "No image file provided. Use 'image' as the form field name", http.StatusBadRequest)
		return
	}
	defer file.Close()

	logger.Info.Printf("[%s] Received file: %s, size: %d bytes", id, header.Filename, header.Size)

	img, err := thumbnail.Load(file)
	if err != nil {
		http.Error(w, "Invalid image format. Supported: JPEG, PNG", http.StatusBadRequest)
		return
	}

	inputData, err := h.preprocessImage(img)
	if err != nil {
		logger.Error.Printf("[%s] Preprocessing error: %v", id, err)
		http.Error(w, "Failed to preprocess image", http.StatusInternalServerError)
		return
	}

	h.respond(w, id, inputData)
}

func (h *Handler) respond(w http.ResponseWriter, id string, inputData []float32) {
	result, err := h.predictor.Predict(inputData)
	if err != nil {
		logger.Error.Printf("[%s] Prediction error: %v", id, err)
		http.Error(w, "Prediction failed", http.StatusInternalServerError)
		return
	}

	logger.Info.Printf("[%s] Predicted %s (%.3f)", id, result.Name, result.Confidence)
	writeJSON(w, api.PredictionResponse{
		PredictedName: result.Name,
		Confidence:    result.Confidence,
		Predictions:   result.Predictions,
	})
}

// requestID returns the caller's request id, or a new one, and echoes it back.
func requestID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(api.RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(api.RequestIDHeader, id)
	return id
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to write response: %v", err)
	}
}
