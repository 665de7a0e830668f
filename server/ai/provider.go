// Package ai wraps the remote speech-to-text and embedding provider.
package ai

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	apperr "github.com/voxnote/voxnote/internal/errors"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL         string
	APIKey          string
	TranscribeModel string
	EmbeddingModel  string
	EmbeddingDim    int
	Timeout         time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://api.openai.com/v1",
		APIKey:          "",
		TranscribeModel: openai.Whisper1,
		EmbeddingModel:  "text-embedding-3-large",
		EmbeddingDim:    3072,
		Timeout:         60 * time.Second,
	}
}

// Provider provides speech-to-text and embedding via the remote service.
// Calls are synchronous and are not retried: every failure is terminal for
// the interaction that issued it, and the user retries manually.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a new AI provider. The API key is required; without it
// the application blocks on the interactive key prompt instead of calling
// this.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, apperr.Configuration("provider API key is required")
	}

	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = openai.Whisper1
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-large"
	}
	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = 3072
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if httpClient, ok := clientConfig.HTTPClient.(*http.Client); ok {
		httpClient.Timeout = cfg.Timeout
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Dimensions returns the configured embedding dimension.
func (p *Provider) Dimensions() int {
	return p.config.EmbeddingDim
}

// Embedding generates an embedding vector for the given text. The text must
// be non-empty; callers guard against empty input before committing or
// searching.
func (p *Provider) Embedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, apperr.InvalidArgument("cannot embed empty text")
	}

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(p.config.EmbeddingModel),
		Dimensions: p.config.EmbeddingDim,
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, apperr.Embedding("embedding request failed", err)
	}
	if len(resp.Data) == 0 {
		return nil, apperr.Embedding("empty embedding response", nil)
	}

	return resp.Data[0].Embedding, nil
}

// Transcribe submits an audio buffer for speech-to-text and returns the
// recognized text. The result may be empty if the service detects no speech.
func (p *Provider) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", apperr.InvalidArgument("cannot transcribe empty audio")
	}

	req := openai.AudioRequest{
		Model:    p.config.TranscribeModel,
		FilePath: audioFileName(audio),
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", apperr.Transcription("transcription request failed", err)
	}

	return resp.Text, nil
}

// audioFileName picks the upload name the provider uses to sniff the codec.
// Recordings from the microphone are WAV; anything else is assumed mp3.
func audioFileName(audio []byte) string {
	if bytes.HasPrefix(audio, []byte("RIFF")) {
		return "audio.wav"
	}
	return "audio.mp3"
}
