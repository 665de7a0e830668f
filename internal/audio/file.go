package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DropDir is a Recorder backed by a directory: Start snapshots what is
// already there, Stop picks up the audio file dropped in since. It lets the
// app run without a capture device: record with anything and drop the file.
type DropDir struct {
	dir string

	mu   sync.Mutex
	seen map[string]bool
}

func NewDropDir(dir string) *DropDir {
	return &DropDir{
		dir:  dir,
		seen: make(map[string]bool),
	}
}

func (d *DropDir) Name() string {
	return "dropdir"
}

func (d *DropDir) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}

	paths, err := d.audioFiles()
	if err != nil {
		return err
	}
	for _, p := range paths {
		d.seen[p] = true
	}
	return nil
}

func (d *DropDir) Stop() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	paths, err := d.audioFiles()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if d.seen[path] {
			continue
		}
		d.seen[path] = true

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", path, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no new audio file in %s", d.dir)
}

func (d *DropDir) audioFiles() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("reading dir: %w", err)
	}

	paths := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".wav", ".mp3", ".m4a", ".webm":
			paths = append(paths, filepath.Join(d.dir, entry.Name()))
		}
	}
	return paths, nil
}
