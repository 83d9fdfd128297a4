package sumserver

import (
	"context"

	"github.com/anatolykoptev/go_summarize/internal/engine"
	"github.com/anatolykoptev/go_summarize/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerExtractContent(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_content",
		Description: "Extract the transcript of a YouTube video or the readable text of a web page without summarizing it. No API key needed. Returns the documents with metadata (title, author, length for videos).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ExtractInput) (*mcp.CallToolResult, engine.Extraction, error) {
		out, err := p.Extract(ctx, input.URL)
		if err != nil {
			return nil, engine.Extraction{}, toolutil.PublicError("extract_content", input.URL, err)
		}
		return nil, *out, nil
	})
}
