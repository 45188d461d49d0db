package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Brownie44l1/facerec/internal/api"
	"github.com/Brownie44l1/facerec/internal/config"
	"github.com/Brownie44l1/facerec/internal/logger"
	"github.com/Brownie44l1/facerec/internal/recognizer"
	"github.com/Brownie44l1/facerec/internal/thumbnail"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	imagePath := flag.String("image", "", "Photo to recognize, or - to read it from stdin")
	serverFlag := flag.String("server", "", "Override prediction service base URL")
	endpointFlag := flag.String("endpoint", "", "Override prediction endpoint path")
	sizeFlag := flag.Int("size", 0, "Override thumbnail side length in pixels")
	timeoutFlag := flag.Duration("timeout", 0, "Override request timeout")
	logLevelFlag := flag.String("log-level", "", "error|warn|info|debug|trace")
	previewPath := flag.String("preview", "", "Write the grayscale thumbnail to this PNG file")
	check := flag.Bool("check", false, "Only check that the prediction service is reachable")
	flag.Parse()

	cfg, err := config.NewLoader().WithFile(*configPath).LoadClient()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}
	if *endpointFlag != "" {
		cfg.Endpoint = *endpointFlag
	}
	if *sizeFlag != 0 {
		cfg.ImageSize = *sizeFlag
	}
	if *timeoutFlag != 0 {
		cfg.Timeout = *timeoutFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	initLogging(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := api.NewClient(cfg.ServerURL, cfg.Endpoint, cfg.Timeout)

	if *check {
		if err := client.Health(ctx); err != nil {
			logger.Error.Printf("Prediction service is not healthy: %v", err)
			os.Exit(1)
		}
		fmt.Println("Prediction service is healthy")
		return
	}

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "-image is required")
		flag.Usage()
		os.Exit(2)
	}

	img, err := acquire(*imagePath)
	if err != nil {
		logger.Error.Printf("Could not read image: %v", err)
		os.Exit(1)
	}

	display := recognizer.NewTerminalDisplay(os.Stdout, *previewPath)
	r := recognizer.New(client, display, thumbnail.Square(cfg.ImageSize))

	start := time.Now()
	if err := r.Process(ctx, img); err != nil {
		logger.Error.Printf("Could not process image: %v", err)
		os.Exit(1)
	}
	r.Wait()
	logger.Debug.Printf("Done in %s", time.Since(start))

	if !display.Visible() {
		os.Exit(1)
	}
}

// initLogging sends every log level to w so that stdout carries only the
// prediction text.
func initLogging(level string, w io.Writer) {
	logger.InitializeWithWriters(logger.StringToLogLevel(level), w, w)
}

func acquire(path string) (image.Image, error) {
	if path == "-" {
		return thumbnail.Load(os.Stdin)
	}
	return thumbnail.LoadFile(path)
}
