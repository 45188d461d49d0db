package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Brownie44l1/facerec/internal/config"
	"github.com/Brownie44l1/facerec/internal/handlers"
	"github.com/Brownie44l1/facerec/internal/logger"
	"github.com/Brownie44l1/facerec/internal/model"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := config.NewLoader().WithFile(*configPath).LoadServer()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	logger.Initialize(logger.StringToLogLevel(cfg.LogLevel))

	modelPath, err := resolve(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to resolve model path: %v", err)
	}
	metadataPath, err := resolve(cfg.MetadataPath)
	if err != nil {
		log.Fatalf("Failed to resolve metadata path: %v", err)
	}

	logger.Info.Printf("Loading model from: %s", modelPath)

	modelServer, err := model.NewServer(modelPath, metadataPath)
	if err != nil {
		log.Fatalf("Failed to initialize model server: %v", err)
	}
	defer modelServer.Close()

	router := handlers.NewRouter(handlers.NewHandler(modelServer))

	logger.Info.Printf("Server starting on port %s", cfg.Port)
	logger.Info.Printf("Classes: %v", modelServer.Metadata().Classes)
	logger.Info.Println("Endpoints:")
	logger.Info.Println("  GET  /health        - Health check")
	logger.Info.Println("  POST /predict       - Raw array prediction")
	logger.Info.Println("  POST /predict/image - Predict from image upload")
	logger.Info.Printf("Upload test: curl -X POST -F \"image=@face.png\" http://localhost:%s/predict/image", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error.Printf("Server failed: %v", err)
		modelServer.Close()
		os.Exit(1)
	}
}

// resolve makes a relative path relative to the project root, which is
// two levels up when started from cmd/server. Absolute paths are kept.
func resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if filepath.Base(root) == "server" && filepath.Base(filepath.Dir(root)) == "cmd" {
		root = filepath.Join(root, "..", "..")
	}
	return filepath.Join(root, path), nil
}
