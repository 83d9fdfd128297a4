package cli

import (
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_summarize/internal/engine"
	"github.com/anatolykoptev/go_summarize/internal/sumserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the summarize_url and extract_content MCP tools",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	s := loadSettings()
	p, err := buildPipeline(s)
	if err != nil {
		return err
	}

	slog.Info("starting go_summarize", slog.String("port", s.MCPPort))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_summarize",
		Version: version,
	}, nil)

	sumserver.RegisterTools(server, p)
	slog.Info("tools registered", slog.Int("count", sumserver.ToolCount))

	return mcpserver.Run(server, mcpserver.Config{
		Name:         "go_summarize",
		Version:      version,
		Port:         s.MCPPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	})
}
