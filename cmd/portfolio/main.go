package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Terminal client for the portfolio site",
	Long: `Talk to Ryan's AI assistant and send him a message from the terminal.
Both commands go through the portfolio backend.`,
	Example: `  # Open the chat widget
  $ portfolio chat

  # Send a message through the contact form
  $ portfolio contact --name Ada --email ada@example.com --message "Let's talk"`,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	defaultURL := os.Getenv("PORTFOLIO_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultURL, "portfolio backend URL")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(contactCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
