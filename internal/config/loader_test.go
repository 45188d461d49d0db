package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadClient_Defaults(t *testing.T) {
	a := assert.New(t)

	cfg, err := NewLoader().WithDotEnv(false).WithEnv(envOf(nil)).LoadClient()

	require.NoError(t, err)
	a.Equal(DefaultClient(), *cfg)
	a.NoError(cfg.Validate())
}

func TestLoadClient_FileThenEnv(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "facerec.yaml")
	content := `
client:
  server_url: http://localhost:9000/
  image_size: 64
  timeout: 5s
server:
  port: "9000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().
		WithDotEnv(false).
		WithFile(path).
		WithEnv(envOf(map[string]string{"FACEREC_IMAGE_SIZE": "48"})).
		LoadClient()

	require.NoError(t, err)
	a.Equal("http://localhost:9000/", cfg.ServerURL)
	a.Equal(DefaultEndpoint, cfg.Endpoint)
	a.Equal(48, cfg.ImageSize)
	a.Equal(5*time.Second, cfg.Timeout)
}

func TestLoadClient_InvalidEnv(t *testing.T) {
	_, err := NewLoader().
		WithDotEnv(false).
		WithEnv(envOf(map[string]string{"FACEREC_TIMEOUT": "soon"})).
		LoadClient()

	assert.Error(t, err)
}

func TestLoadClient_MissingFile(t *testing.T) {
	_, err := NewLoader().
		WithDotEnv(false).
		WithFile(filepath.Join(t.TempDir(), "missing.yaml")).
		LoadClient()

	assert.Error(t, err)
}

func TestLoadServer_Env(t *testing.T) {
	a := assert.New(t)

	cfg, err := NewLoader().
		WithDotEnv(false).
		WithEnv(envOf(map[string]string{"PORT": "9090", "FACEREC_MODEL_PATH": "/tmp/m.onnx"})).
		LoadServer()

	require.NoError(t, err)
	a.Equal("9090", cfg.Port)
	a.Equal("/tmp/m.onnx", cfg.ModelPath)
	a.Equal(DefaultMetadataPath, cfg.MetadataPath)
	a.NoError(cfg.Validate())
}

func TestClientValidate(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		name    string
		modify  func(c *Client)
		wantErr bool
	}{
		{name: "defaults", modify: func(c *Client) {}},
		{name: "empty url", modify: func(c *Client) { c.ServerURL = " " }, wantErr: true},
		{name: "zero size", modify: func(c *Client) { c.ImageSize = 0 }, wantErr: true},
		{name: "negative timeout", modify: func(c *Client) { c.Timeout = -time.Second }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultClient()
			tt.modify(&c)
			if tt.wantErr {
				a.Error(c.Validate())
			} else {
				a.NoError(c.Validate())
			}
		})
	}
}
