package recognizer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/facerec/internal/api"
	"github.com/Brownie44l1/facerec/internal/thumbnail"
)

type fakePredictor struct {
	mu       sync.Mutex
	response *api.PredictionResponse
	err      error
	paths    []string
	existed  bool
	bounds   image.Rectangle
}

func (s *fakePredictor) Predict(ctx context.Context, path string) (*api.PredictionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	if img, err := thumbnail.LoadFile(path); err == nil {
		s.existed = true
		s.bounds = img.Bounds()
	}
	return s.response, s.err
}

type recordingDisplay struct {
	Label
	images []image.Image
}

func (s *recordingDisplay) ShowImage(img image.Image) { s.images = append(s.images, img) }
func (s *recordingDisplay) ShowPrediction(text string) { s.Label.Set(text) }
func (s *recordingDisplay) HidePrediction() { s.Label.Hide() }

func colorful(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func TestProcess_Success(t *testing.T) {
	a := assert.New(t)
	predictor := &fakePredictor{response: &api.PredictionResponse{PredictedName: "Bob"}}
	display := &recordingDisplay{}
	r := New(predictor, display, thumbnail.Square(100))

	require.NoError(t, r.Process(context.Background(), colorful(320, 240)))
	r.Wait()

	a.True(display.Visible())
	a.Equal("Predicted name: Bob", display.Text())
	require.Len(t, display.images, 1)
	a.Equal(image.Rect(0, 0, 100, 100), display.images[0].Bounds())
	require.Len(t, predictor.paths, 1)
	a.True(predictor.existed)
	a.Equal(image.Rect(0, 0, 100, 100), predictor.bounds)

	_, err := os.Stat(predictor.paths[0])
	a.True(os.IsNotExist(err), "temp file should be removed")
}

func TestProcess_FailureKeepsLabelHidden(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "status", err: &api.StatusError{StatusCode: 500}},
		{name: "transport", err: errors.New("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)
			display := &recordingDisplay{}
			display.Set("Predicted name: previous")
			r := New(&fakePredictor{err: tt.err}, display, thumbnail.Square(50))

			require.NoError(t, r.Process(context.Background(), colorful(60, 60)))
			r.Wait()

			a.False(display.Visible())
			a.Len(display.images, 1)
		})
	}
}

func TestProcess_NonJSONSuccessKeepsLabelHidden(t *testing.T) {
	a := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>You are about to visit this site</body></html>"))
	}))
	defer server.Close()

	display := &recordingDisplay{}
	r := New(api.NewClient(server.URL, "predict/image", time.Second), display, thumbnail.Square(100))

	require.NoError(t, r.Process(context.Background(), colorful(120, 80)))
	r.Wait()

	a.False(display.Visible())
	a.Empty(display.Text())
	a.Len(display.images, 1)
}

func TestProcess_InvalidImage(t *testing.T) {
	predictor := &fakePredictor{}
	display := &recordingDisplay{}
	r := New(predictor, display, thumbnail.Square(100))

	err := r.Process(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)))
	r.Wait()

	assert.Error(t, err)
	assert.Empty(t, predictor.paths)
	assert.Empty(t, display.images)
}

func TestTerminalDisplay(t *testing.T) {
	a := assert.New(t)
	out := &bytes.Buffer{}
	preview := filepath.Join(t.TempDir(), "preview.png")
	display := NewTerminalDisplay(out, preview)

	display.ShowImage(colorful(10, 10))
	display.HidePrediction()
	a.Empty(out.String())
	a.False(display.Visible())

	display.ShowPrediction("Predicted name: Carol")
	a.Equal("Predicted name: Carol\n", out.String())
	a.True(display.Visible())

	saved, err := thumbnail.LoadFile(preview)
	require.NoError(t, err)
	a.Equal(image.Rect(0, 0, 10, 10), saved.Bounds())
}
