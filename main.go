// go_summarize: YouTube and web page summarizer.
//
// Serves two MCP tools (summarize_url, extract_content) over HTTP, or
// summarizes a single URL from the command line.
package main

import (
	"os"

	"github.com/anatolykoptev/go_summarize/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
