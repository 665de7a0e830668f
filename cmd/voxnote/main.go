package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/voxnote/voxnote/internal/audio"
	"github.com/voxnote/voxnote/internal/observability"
	"github.com/voxnote/voxnote/internal/profile"
	"github.com/voxnote/voxnote/internal/tui"
	"github.com/voxnote/voxnote/store"
	"github.com/voxnote/voxnote/store/db/postgres"
	"github.com/voxnote/voxnote/store/db/sqlite"
)

var version = "0.1.0"

const micSampleRate = 16000

func main() {
	var (
		mode    string
		driver  string
		dsn     string
		data    string
		dropDir string
	)

	rootCmd := &cobra.Command{
		Use:          "voxnote",
		Short:        "Record, transcribe and semantically search voice notes",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &profile.Profile{Version: version}
			p.FromEnv()
			if mode != "" {
				p.Mode = mode
			}
			if driver != "" {
				p.Driver = driver
			}
			if dsn != "" {
				p.DSN = dsn
			}
			if data != "" {
				p.Data = data
			}
			if err := p.Validate(); err != nil {
				return err
			}
			return run(p, dropDir)
		},
	}

	rootCmd.Flags().StringVar(&mode, "mode", "", `mode of the application ("prod" or "dev")`)
	rootCmd.Flags().StringVar(&driver, "driver", "", `vector store driver ("sqlite" or "postgres")`)
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	rootCmd.Flags().StringVar(&data, "data", "", "data directory")
	rootCmd.Flags().StringVar(&dropDir, "drop-dir", "", "record by dropping audio files into this directory instead of using the microphone")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(p *profile.Profile, dropDir string) error {
	// The TUI owns the terminal, so logs go to a file next to the data.
	logPath := filepath.Join(p.Data, "voxnote.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logFile = nil
	} else {
		defer logFile.Close()
	}
	logger := observability.SetupLogger(p.Mode, logFile)

	var drv store.Driver
	switch p.Driver {
	case "postgres":
		drv, err = postgres.NewDB(p)
	default:
		drv, err = sqlite.NewDB(p)
	}
	if err != nil {
		return fmt.Errorf("failed to create store driver: %w", err)
	}

	s := store.New(drv, p)
	defer s.Close()

	ctx := context.Background()
	if err := s.EnsureCollection(ctx, p.EmbeddingDim); err != nil {
		return fmt.Errorf("failed to ensure note collection: %w", err)
	}

	var recorder audio.Recorder
	if dropDir != "" {
		recorder = audio.NewDropDir(dropDir)
	} else {
		recorder = audio.NewMicrophone(micSampleRate, logger)
	}

	logger.Info("voxnote starting",
		"version", p.Version,
		"mode", p.Mode,
		"driver", p.Driver,
		"recorder", recorder.Name())

	model := tui.New(tui.Deps{
		Profile:  p,
		Store:    s,
		Recorder: recorder,
		Logger:   logger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}
