package agent

import "encoding/json"

// ToolOutput is the dual-channel tool response:
// - Text: what we return to the LLM transcript
// - Result: the structured result document the REPL renders as a card
type ToolOutput struct {
	Text   string          `json:"text"`
	Result json.RawMessage `json:"result,omitempty"`
}
