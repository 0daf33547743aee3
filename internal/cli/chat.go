// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain-mode interactive chat for ollamachat.
//
// USABILITY: Markdown rendering and input history for the line REPL
//
// This is the fallback for terminals where the full TUI is unwanted
// (ui.plain = true, OLLAMACHAT_PLAIN, or --plain). It keeps the same
// semantics as the TUI: one request in flight, a trailing context
// window per request, and error replies rendered inline.
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Start a fresh conversation
//   /model [name]       Show or switch model
//   /models             List chat-capable models
//   /save               Save the transcript to the history directory
//   /export [format]    Export transcript (markdown, html, json)
//   /list               List saved transcripts
//   /history            Show the conversation so far
//   /status, /s         Show session status
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/jeranaias/ollamachat/internal/config"
	"github.com/jeranaias/ollamachat/internal/export"
	"github.com/jeranaias/ollamachat/internal/model"
	"github.com/jeranaias/ollamachat/internal/ollama"
	"github.com/jeranaias/ollamachat/internal/sanitize"
	"github.com/jeranaias/ollamachat/internal/session"
	"github.com/jeranaias/ollamachat/internal/storage"
	"github.com/jeranaias/ollamachat/internal/util"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for assistant replies.
// USABILITY: Renders markdown with syntax highlighting on a TTY.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TerminalWidth()),
	)
	if err != nil {
		// Fall back to plain text when the renderer cannot start.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content when rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil || !IsStdoutTTY() {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "input_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for a plain-mode chat session.
type ChatSession struct {
	Config  *config.Config
	Client  *ollama.Client
	Manager *session.Manager

	// Store is nil when history is disabled.
	Store *storage.TranscriptStore

	// Input history handler
	InputCLI *ChatCLI
}

// NewChatSession creates a plain-mode session from the loaded config.
func NewChatSession(cfg *config.Config) *ChatSession {
	mgr := session.NewManager(cfg.Server.URL)
	mgr.SetModel(cfg.Chat.DefaultModel)

	var store *storage.TranscriptStore
	if cfg.History.Enabled {
		if dir, err := cfg.HistoryDir(); err == nil {
			if s, err := storage.NewTranscriptStoreWithDir(dir); err == nil {
				s.MaxTranscripts = cfg.History.MaxTranscripts
				store = s
			}
		}
	}

	return &ChatSession{
		Config:  cfg,
		Client:  ollama.NewClient(cfg.Server.URL),
		Manager: mgr,
		Store:   store,
	}
}

// requestTimeout converts the configured per-request timeout.
func (s *ChatSession) requestTimeout() time.Duration {
	secs := s.Config.Server.TimeoutSecs
	if secs <= 0 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// Run starts the plain-mode REPL and blocks until the user exits.
func Run(cfg *config.Config) error {
	s := NewChatSession(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := s.Client.CheckRunning(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("Ollama is not reachable at %s. Start it with: ollama serve", cfg.Server.URL)
	}

	// Pick a model up front: the configured default when the server
	// offers it, the first listed model otherwise.
	listCtx, listCancel := context.WithTimeout(context.Background(), 10*time.Second)
	names := s.Client.ChatModelNames(listCtx)
	listCancel()
	if len(names) == 0 {
		return errors.New("no chat models available. Try: ollama pull llama3.2")
	}
	s.Manager.SetModel(pickModel(names, cfg.Chat.DefaultModel))

	printWelcome(s)

	s.InputCLI = NewChatCLI()
	defer s.InputCLI.Close()

	for {
		input, err := s.InputCLI.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C aborts the prompt, Ctrl+D closes it. Either way,
			// leave gracefully.
			fmt.Println()
			printExitSummary(s)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			keepGoing, err := handleSlashCommand(input, s)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !keepGoing {
				printExitSummary(s)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(s)
			return nil
		}

		if err := s.processMessage(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// pickModel chooses the starting model: the preferred name when the
// server offers it, otherwise the first available.
func pickModel(names []string, preferred string) string {
	for _, name := range names {
		if name == preferred {
			return name
		}
	}
	return names[0]
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends one chat turn and prints the rendered reply.
func (s *ChatSession) processMessage(input string) error {
	if err := s.Manager.Begin(); err != nil {
		return err
	}
	defer s.Manager.Finish()

	tr := s.Manager.Transcript()
	tr.AppendUser(input)

	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout())
	defer cancel()

	result := s.Client.SendChat(ctx, s.Manager.Model(), tr.RequestWindow())
	tr.AppendResult(result)

	fmt.Println()
	if result.IsError() {
		fmt.Println(errorStyle.Render(sanitize.StripMarkup(result.Content)))
		fmt.Println()
		return nil
	}

	content := result.Content
	if s.Config.Chat.StripThinking {
		content = sanitize.StripThinking(content)
	}
	fmt.Println(renderMarkdown(strings.TrimSpace(content)))
	fmt.Println()
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (keepGoing, error) where keepGoing=false means exit.
func handleSlashCommand(cmd string, s *ChatSession) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printHelp()
		return true, nil

	case "/clear", "/c":
		s.Manager.ResetTranscript()
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
		return true, nil

	case "/model", "/m":
		return handleModelCommand(s, args)

	case "/models":
		return handleModelsCommand(s)

	case "/save":
		return handleSaveCommand(s)

	case "/export":
		return handleExportCommand(s, args)

	case "/list":
		return handleListCommand(s)

	case "/history":
		printHistory(s)
		return true, nil

	case "/status", "/s":
		printStatus(s)
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// handleModelCommand shows or switches the active model.
func handleModelCommand(s *ChatSession, args []string) (bool, error) {
	if len(args) == 0 {
		fmt.Printf("%s Current model: %s\n",
			infoStyle.Render("[Model]"),
			commandStyle.Render(s.Manager.Model()))
		return true, nil
	}

	newModel := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	names := s.Client.ChatModelNames(ctx)
	cancel()

	found := false
	for _, name := range names {
		if name == newModel {
			found = true
			break
		}
	}
	if !found {
		fmt.Fprintf(os.Stderr, "%s Model '%s' not in the server's list, using it anyway\n",
			warningStyle.Render("[Warning]"), newModel)
	}

	s.Manager.SetModel(newModel)
	fmt.Printf("%s Switched to model: %s\n", commandStyle.Render("[OK]"), newModel)
	return true, nil
}

// handleModelsCommand lists the chat-capable models.
func handleModelsCommand(s *ChatSession) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	names := s.Client.ChatModelNames(ctx)
	cancel()

	if len(names) == 0 {
		fmt.Println(warningStyle.Render("[No chat models available]"))
		return true, nil
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Available Models"))
	current := s.Manager.Model()
	for _, name := range names {
		marker := "  "
		if name == current {
			marker = commandStyle.Render("* ")
		}
		fmt.Printf("%s%s\n", marker, name)
	}
	fmt.Println()
	return true, nil
}

// handleSaveCommand saves the transcript to the history directory.
func handleSaveCommand(s *ChatSession) (bool, error) {
	if s.Store == nil {
		return true, errors.New("history is disabled in the config")
	}
	tr := s.Manager.Transcript()
	if tr.IsEmpty() {
		return true, errors.New("nothing to save yet")
	}

	id, err := s.Store.Save(tr)
	if err != nil {
		return true, err
	}
	fmt.Printf("%s Saved transcript %s\n", commandStyle.Render("[OK]"), id)
	return true, nil
}

// handleExportCommand exports the transcript in the given format.
func handleExportCommand(s *ChatSession, args []string) (bool, error) {
	tr := s.Manager.Transcript()
	if tr.IsEmpty() {
		return true, errors.New("nothing to export yet")
	}

	format := "markdown"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}

	path, err := export.ExportTranscript(tr, format, nil)
	if err != nil {
		return true, err
	}
	fmt.Printf("%s Exported to %s\n", commandStyle.Render("[OK]"), path)
	return true, nil
}

// handleListCommand lists saved transcripts.
func handleListCommand(s *ChatSession) (bool, error) {
	if s.Store == nil {
		return true, errors.New("history is disabled in the config")
	}

	metas, err := s.Store.List()
	if err != nil {
		return true, err
	}
	fmt.Println(storage.FormatTranscriptList(metas))
	return true, nil
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(s *ChatSession) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("ollamachat"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 30)))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Server:"),
		commandStyle.Render(s.Config.Server.URL))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(s.Manager.Model()))
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printHelp prints available commands.
func printHelp() {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Start a fresh conversation"},
		{"/model [name]", "Show or switch model"},
		{"/models", "List chat-capable models"},
		{"/save", "Save the transcript"},
		{"/export [format]", "Export transcript (markdown, html, json)"},
		{"/list", "List saved transcripts"},
		{"/history", "Show the conversation so far"},
		{"/status, /s", "Show session status"},
		{"/quit, /q", "Exit chat"},
	}

	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-17s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

// printStatus prints session status.
func printStatus(s *ChatSession) {
	status := s.Manager.GetStatus()

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Session Status"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 20)))
	fmt.Println()
	fmt.Printf("  %s %s\n", infoStyle.Render("Session:"), status.SessionID)
	fmt.Printf("  %s %s\n", infoStyle.Render("Server:"), status.Endpoint)
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(status.Model))
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Duration:"),
		session.FormatDuration(status.Duration))
	fmt.Printf("  %s %d messages\n",
		infoStyle.Render("History:"),
		status.MessageCount)
	fmt.Println()
}

// printHistory prints the conversation so far, one line per message.
func printHistory(s *ChatSession) {
	tr := s.Manager.Transcript()
	if tr.IsEmpty() {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 25)))
	fmt.Println()

	for i, msg := range tr.Messages {
		label := msg.Role.DisplayName()
		switch msg.Role {
		case model.RoleUser:
			label = promptStyle.Render(label)
		case model.RoleAssistant:
			label = welcomeStyle.Render(label)
		case model.RoleError:
			label = errorStyle.Render(label)
		}

		preview := strings.ReplaceAll(msg.Preview(100), "\n", " ")
		fmt.Printf("  %d. %s: %s\n", i+1, label, preview)
	}
	fmt.Println()
}

// printExitSummary prints the session summary on exit.
func printExitSummary(s *ChatSession) {
	status := s.Manager.GetStatus()
	if status.MessageCount == 0 {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Session Summary"))
	fmt.Println(infoStyle.Render(strings.Repeat("-", 15)))
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Messages:"),
		util.IntToString(status.MessageCount))
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Model:"),
		status.Model)
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Duration:"),
		session.FormatDuration(status.Duration))
	fmt.Println()
	fmt.Println(infoStyle.Render("Goodbye!"))
}
