package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anatolykoptev/go_summarize/internal/engine"
	"github.com/anatolykoptev/go_summarize/internal/toolutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	summarizeAPIKey string
	summarizeJSON   bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Summarize one YouTube video or web page and print the result",
	Long: `Summarize fetches the transcript or page text behind <url>, asks the
configured model for a 300-word summary and prints it.

The API key is taken from --api-key, then GROQ_API_KEY. When neither is set
and stdin is a terminal, the key is read with a masked prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeAPIKey, "api-key", "", "LLM provider API key (overrides GROQ_API_KEY)")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	s := loadSettings()
	key := summarizeAPIKey
	if key == "" && s.Engine.DefaultAPIKey == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		k, err := readPassword(cmd, "Groq API key: ")
		if err != nil {
			return fmt.Errorf("read api key: %w", err)
		}
		key = k
	}

	p, err := buildPipeline(s)
	if err != nil {
		return err
	}

	in := engine.SummarizeInput{URL: args[0], APIKey: key}
	res, err := p.Summarize(cmd.Context(), in)
	if err != nil {
		return toolutil.PublicError("summarize", in.URL, err)
	}
	return printResult(cmd, res, summarizeJSON)
}

func printResult(cmd *cobra.Command, res *engine.Result, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if res.Title != "" {
		fmt.Fprintf(out, "%s\n\n", res.Title)
	}
	fmt.Fprintln(out, res.Summary)
	return nil
}

// readPassword prompts on stderr and reads a line without echo.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
