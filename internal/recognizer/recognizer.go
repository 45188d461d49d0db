package recognizer

import (
	"context"
	"image"
	"sync"

	"github.com/Brownie44l1/facerec/internal/api"
	"github.com/Brownie44l1/facerec/internal/logger"
	"github.com/Brownie44l1/facerec/internal/thumbnail"
)

const PredictionPrefix = "Predicted name: "

type Predictor interface {
	Predict(ctx context.Context, path string) (*api.PredictionResponse, error)
}

// Recognizer turns an acquired photo into a thumbnail, sends it for
// prediction and reports the result on a Display.
type Recognizer struct {
	predictor Predictor
	display   Display
	size      thumbnail.Size

	wg sync.WaitGroup
}

func New(predictor Predictor, display Display, size thumbnail.Size) *Recognizer {
	return &Recognizer{
		predictor: predictor,
		display:   display,
		size:      size,
	}
}

// Process prepares the thumbnail, shows it, hides any previous
// prediction and starts the upload. It returns once the request is in
// flight; use Wait to block until it completes.
func (s *Recognizer) Process(ctx context.Context, img image.Image) error {
	thumb, err := thumbnail.Prepare(img, s.size)
	if err != nil {
		return err
	}

	s.display.ShowImage(thumb)
	s.display.HidePrediction()

	path, cleanup, err := thumbnail.WriteTemp(thumb)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cleanup()
		s.send(ctx, path)
	}()
	return nil
}

func (s *Recognizer) send(ctx context.Context, path string) {
	result, err := s.predictor.Predict(ctx, path)
	if err != nil {
		logger.Error.Printf("Prediction API request failed: %v", err)
		return
	}

	text := PredictionPrefix + result.PredictedName
	logger.Debug.Print(text)
	s.display.ShowPrediction(text)
}

func (s *Recognizer) Wait() {
	s.wg.Wait()
}
