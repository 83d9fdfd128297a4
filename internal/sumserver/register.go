// Package sumserver exposes the summarization pipeline as MCP tools.
package sumserver

import (
	"context"

	"github.com/anatolykoptev/go_summarize/internal/engine"
	"github.com/anatolykoptev/go_summarize/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 2

// RegisterTools registers the summarization tools on the given MCP server:
// summarize_url, extract_content.
func RegisterTools(server *mcp.Server, p *engine.Pipeline) {
	registerSummarizeURL(server, p)
	registerExtractContent(server, p)
}

func registerSummarizeURL(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_url",
		Description: "Summarize a YouTube video (from its captions) or a web page in about 300 words. Video transcripts are tried through three extraction methods in order; web pages are reduced to their main article text. Returns the summary with the title, the extraction method used and the number of chunks sent to the model.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SummarizeInput) (*mcp.CallToolResult, engine.Result, error) {
		out, err := p.Summarize(ctx, input)
		if err != nil {
			return nil, engine.Result{}, toolutil.PublicError("summarize_url", input.URL, err)
		}
		return nil, *out, nil
	})
}
