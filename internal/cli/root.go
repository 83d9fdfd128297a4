// Package cli wires configuration, the summarization pipeline and the
// command-line surfaces together.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "go_summarize",
	Short: "Summarize a YouTube video or a web page with a hosted LLM",
	Long: `go_summarize extracts the transcript of a YouTube video (three extraction
methods tried in order) or the readable text of a web page, splits it into
chunks and asks a hosted language model for a 300-word summary.

Without a subcommand it serves the MCP tools over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadEnvFiles()
	},
	RunE: runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
