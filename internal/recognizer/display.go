package recognizer

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/Brownie44l1/facerec/internal/logger"
	"github.com/Brownie44l1/facerec/internal/thumbnail"
)

type Display interface {
	ShowImage(img image.Image)
	ShowPrediction(text string)
	HidePrediction()
}

// Label is the prediction text and whether it is shown.
type Label struct {
	mu      sync.Mutex
	text    string
	visible bool
}

func (s *Label) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.visible = true
}

func (s *Label) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

func (s *Label) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *Label) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// TerminalDisplay prints the prediction and optionally saves the shown
// thumbnail as a preview PNG.
type TerminalDisplay struct {
	Label

	out         io.Writer
	previewPath string
}

func NewTerminalDisplay(out io.Writer, previewPath string) *TerminalDisplay {
	return &TerminalDisplay{
		out:         out,
		previewPath: previewPath,
	}
}

func (s *TerminalDisplay) ShowImage(img image.Image) {
	if s.previewPath == "" {
		return
	}
	if err := thumbnail.SavePNG(s.previewPath, img); err != nil {
		logger.Error.Printf("Could not save preview: %v", err)
		return
	}
	logger.Info.Printf("Preview saved to %s", s.previewPath)
}

func (s *TerminalDisplay) ShowPrediction(text string) {
	s.Label.Set(text)
	fmt.Fprintln(s.out, text)
}

func (s *TerminalDisplay) HidePrediction() {
	s.Label.Hide()
}
