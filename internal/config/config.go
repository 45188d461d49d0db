package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultServerURL = "https://b663-34-147-42-224.ngrok-free.app/"
	DefaultEndpoint  = "predict/image"
	DefaultImageSize = 100
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"

	DefaultPort         = "8080"
	DefaultModelPath    = "models/model_embedded.onnx"
	DefaultMetadataPath = "models/model_metadata.json"
)

// Client holds settings for the prediction client.
type Client struct {
	ServerURL string        `yaml:"server_url"`
	Endpoint  string        `yaml:"endpoint"`
	ImageSize int           `yaml:"image_size"`
	Timeout   time.Duration `yaml:"timeout"`
	LogLevel  string        `yaml:"log_level"`
}

// Server holds settings for the prediction service.
type Server struct {
	Port         string `yaml:"port"`
	ModelPath    string `yaml:"model_path"`
	MetadataPath string `yaml:"metadata_path"`
	LogLevel     string `yaml:"log_level"`
}

// File is the layout of the optional YAML config file. Both binaries
// read the same file and pick their own section.
type File struct {
	Client Client `yaml:"client"`
	Server Server `yaml:"server"`
}

func DefaultClient() Client {
	return Client{
		ServerURL: DefaultServerURL,
		Endpoint:  DefaultEndpoint,
		ImageSize: DefaultImageSize,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
	}
}

func DefaultServer() Server {
	return Server{
		Port:         DefaultPort,
		ModelPath:    DefaultModelPath,
		MetadataPath: DefaultMetadataPath,
		LogLevel:     DefaultLogLevel,
	}
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server url is empty")
	}
	if c.ImageSize <= 0 {
		return fmt.Errorf("image size must be positive, got %d", c.ImageSize)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func (s Server) Validate() error {
	if strings.TrimSpace(s.Port) == "" {
		return fmt.Errorf("port is empty")
	}
	if s.ModelPath == "" || s.MetadataPath == "" {
		return fmt.Errorf("model and metadata paths are required")
	}
	return nil
}
