//go:build portaudio
// +build portaudio

package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// Microphone records from the default input device via portaudio.
type Microphone struct {
	sampleRate int
	logger     *slog.Logger

	mu      sync.Mutex
	stream  *portaudio.Stream
	frame   []int16
	samples []int16
}

func NewMicrophone(sampleRate int, logger *slog.Logger) *Microphone {
	return &Microphone{
		sampleRate: sampleRate,
		logger:     logger,
	}
}

func (m *Microphone) Name() string {
	return "microphone"
}

func (m *Microphone) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream != nil {
		return fmt.Errorf("already recording")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	m.frame = make([]int16, framesPerBuffer)
	m.samples = m.samples[:0]

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.frame)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting stream: %w", err)
	}

	m.stream = stream
	m.logger.Info("microphone started", "sampleRate", m.sampleRate)

	go m.capture(stream)
	return nil
}

// capture pulls frames until the stream is stopped.
func (m *Microphone) capture(stream *portaudio.Stream) {
	for {
		if err := stream.Read(); err != nil {
			return
		}
		m.mu.Lock()
		if m.stream != stream {
			m.mu.Unlock()
			return
		}
		m.samples = append(m.samples, m.frame...)
		m.mu.Unlock()
	}
}

func (m *Microphone) Stop() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream == nil {
		return nil, fmt.Errorf("not recording")
	}

	m.stream.Stop()
	m.stream.Close()
	m.stream = nil
	portaudio.Terminate()

	if len(m.samples) == 0 {
		return nil, fmt.Errorf("no audio captured")
	}

	data := EncodeWAV(m.samples, m.sampleRate)
	m.logger.Info("microphone stopped", "samples", len(m.samples), "bytes", len(data))
	return data, nil
}
