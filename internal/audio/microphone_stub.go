//go:build !portaudio
// +build !portaudio

package audio

import (
	"fmt"
	"log/slog"
)

// Microphone stub when portaudio is not available.
type Microphone struct {
	logger *slog.Logger
}

func NewMicrophone(sampleRate int, logger *slog.Logger) *Microphone {
	return &Microphone{logger: logger}
}

func (m *Microphone) Name() string {
	return "microphone"
}

func (m *Microphone) Start() error {
	return fmt.Errorf("microphone not available: rebuild with -tags portaudio or use a drop directory")
}

func (m *Microphone) Stop() ([]byte, error) {
	return nil, fmt.Errorf("microphone not available")
}
