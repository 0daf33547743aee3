// ollamachat - A terminal interface for chatting with a local Ollama server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ollamachat/internal/cli"
	"github.com/jeranaias/ollamachat/internal/config"
	"github.com/jeranaias/ollamachat/internal/ui/chat"
	"github.com/jeranaias/ollamachat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// ENTRY POINT
// =============================================================================

func main() {
	var (
		flagURL     = flag.String("url", "", "Ollama server URL (overrides config)")
		flagModel   = flag.String("model", "", "default model (overrides config)")
		flagTheme   = flag.String("theme", "", "color theme: dark, light, or auto")
		flagPlain   = flag.Bool("plain", false, "use the line-based prompt instead of the TUI")
		flagVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Printf("ollamachat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override both the file and the environment.
	if *flagURL != "" {
		cfg.Server.URL = *flagURL
	}
	if *flagModel != "" {
		cfg.Chat.DefaultModel = *flagModel
	}
	if *flagTheme != "" {
		cfg.UI.Theme = *flagTheme
	}
	if *flagPlain {
		cfg.UI.Plain = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	if cfg.UI.Plain {
		if err := cli.Run(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runTUI(cfg)
}

// =============================================================================
// TUI
// =============================================================================

// runTUI starts the full-screen interface and blocks until exit.
func runTUI(cfg *config.Config) {
	theme := styles.NewThemeWithPreference(cfg.UI.Theme)

	app := appModel{chat: chat.New(cfg, theme)}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	// Reload the config when the file changes on disk. The watcher only
	// notifies; the running model keeps its session state.
	if watcher, err := config.NewWatcher(); err == nil {
		watcher.OnReload(func(c *config.Config) {
			config.SetGlobal(c)
			p.Send(chat.ConfigReloadedMsg{})
		})
		watcher.Start()
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running ollamachat: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appModel adapts the chat component to the tea.Model interface.
type appModel struct {
	chat chat.Model
}

func (a appModel) Init() tea.Cmd {
	return a.chat.Init()
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

func (a appModel) View() string {
	return a.chat.View()
}
