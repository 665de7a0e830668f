package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the application.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the data directory (sqlite database location)
	Data string
	// Driver is the vector store driver (sqlite or postgres)
	Driver string
	// DSN points to where voxnote stores its notes
	DSN string
	// Version is the current version of the application
	Version string

	// Provider configuration
	OpenAIAPIKey  string // VOXNOTE_OPENAI_API_KEY
	OpenAIBaseURL string // VOXNOTE_OPENAI_BASE_URL (default: https://api.openai.com/v1)

	// TranscribeModel is the speech-to-text model (default: whisper-1)
	TranscribeModel string
	// EmbeddingModel is the text embedding model (default: text-embedding-3-large)
	EmbeddingModel string
	// EmbeddingDim is the embedding vector dimension (default: 3072)
	EmbeddingDim int
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// HasProviderKey reports whether the speech/embedding provider credential is
// configured. Without it the UI blocks on an interactive key prompt.
func (p *Profile) HasProviderKey() bool {
	return p.OpenAIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from VOXNOTE_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("VOXNOTE_MODE", "dev")
	p.Data = os.Getenv("VOXNOTE_DATA")
	p.Driver = getEnvOrDefault("VOXNOTE_DRIVER", "sqlite")
	p.DSN = os.Getenv("VOXNOTE_DSN")

	p.OpenAIAPIKey = os.Getenv("VOXNOTE_OPENAI_API_KEY")
	p.OpenAIBaseURL = getEnvOrDefault("VOXNOTE_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.TranscribeModel = getEnvOrDefault("VOXNOTE_TRANSCRIBE_MODEL", "whisper-1")
	p.EmbeddingModel = getEnvOrDefault("VOXNOTE_EMBEDDING_MODEL", "text-embedding-3-large")

	p.EmbeddingDim = 3072
	if dim := os.Getenv("VOXNOTE_EMBEDDING_DIM"); dim != "" {
		if n, err := strconv.Atoi(dim); err == nil && n > 0 {
			p.EmbeddingDim = n
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unknown driver %q (supported: sqlite, postgres)", p.Driver)
	}

	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires VOXNOTE_DSN")
	}

	if p.Driver == "sqlite" {
		if p.Data == "" {
			p.Data = "."
		}
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("voxnote_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	}

	if p.EmbeddingDim <= 0 {
		p.EmbeddingDim = 3072
	}

	return nil
}
