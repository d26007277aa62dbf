// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command cinematch-tui is the terminal front end. It drives the same
// controller as the web server directly against the recommendation engine,
// without a session layer in between.
//
// The terminal belongs to the program while it runs, so logs go to the file
// named by CINEMATCH_TUI_LOG and are discarded when it is unset.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommendapi"
	"github.com/tomtom215/cinematch/internal/tui"
	"github.com/tomtom215/cinematch/internal/view"
)

const logFileEnv = "CINEMATCH_TUI_LOG"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cinematch-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var out io.Writer = io.Discard
	if path := os.Getenv(logFileEnv); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    out,
	})

	upstream, err := recommendapi.NewStack(cfg)
	if err != nil {
		return fmt.Errorf("create recommendation engine client: %w", err)
	}
	defer upstream.Close()

	model := tui.New(tui.Options{
		Controller:  controller.New(controller.OptionsFromConfig(cfg.UI)),
		Client:      upstream.Client,
		View:        view.OptionsFromConfig(cfg.UI),
		CallTimeout: cfg.Upstream.Timeout,
	})

	logging.Info().Str("upstream", cfg.Upstream.BaseURL).Msg("Starting terminal front end")
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
