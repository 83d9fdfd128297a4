package engine

// LLM prompt templates. Data only, no logic.

// summaryPrompt asks for a 300-word summary of the stuffed chunk text.
// Args: content.
const summaryPrompt = `
Provide a summary of the following content in 300 words:
Content: %s
`

// chunkSeparator joins chunks when they are stuffed into one prompt.
const chunkSeparator = "\n\n"
