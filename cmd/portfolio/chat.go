package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the assistant chat widget",
	Long: `Open the chat widget. ctrl+o or a click on the Chat button toggles the
panel; clicking outside it closes it. Enter sends, tab cycles the suggested
questions, ctrl+c quits.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	session := assistant.NewSession()
	defer session.Close()

	ctrl := assistant.NewController(session, assistant.NewHTTPClient(serverURL))
	model := tui.New(ctrl, serverURL+"/api/cv")

	// Keep stray log lines off the alternate screen.
	log.SetOutput(io.Discard)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
