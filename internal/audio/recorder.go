// Package audio provides audio capture sources for note recording.
package audio

// Recorder captures audio between Start and Stop and returns the encoded
// buffer of the whole take.
type Recorder interface {
	Name() string
	// Start begins capturing. Returns an error if the capture device is not
	// available.
	Start() error
	// Stop ends capturing and returns the recording as encoded audio bytes.
	Stop() ([]byte, error)
}
