package llm

import (
	"context"
	"encoding/json"
)

// Tool is a callable tool exposed to the model.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolResult is the agent's answer to one tool call.
type ToolResult struct {
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
	IsError   bool   `json:"is_error"`
}

// ToolHandler executes one tool call.
type ToolHandler func(ctx context.Context, input json.RawMessage) (string, error)

func objSchema(props string) json.RawMessage {
	return json.RawMessage(props)
}

// AssistantTools returns the research-assistant tool set. Every tool's
// output is a StructuredResult JSON document tagged with result_type.
func AssistantTools() []Tool {
	return []Tool{
		{
			Name:        "search_web",
			Description: "Search the web. Returns organic results, and an answer box or knowledge graph when available.",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Search query"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "search_products",
			Description: "Search shopping results for a product query",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Product search query"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "get_weather",
			Description: "Get current weather and a short forecast for a location",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"location": {"type": "string", "description": "City or place name"},
					"days": {"type": "integer", "description": "Forecast days (default 3)"}
				},
				"required": ["location"]
			}`),
		},
		{
			Name:        "find_recipes",
			Description: "Search for recipes matching a query",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Dish or ingredient to search for"},
					"limit": {"type": "integer", "description": "Max results (default 5)"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "get_news",
			Description: "Get recent news headlines for a topic",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"topic": {"type": "string", "description": "News topic or keyword"}
				},
				"required": ["topic"]
			}`),
		},
		{
			Name:        "get_reddit_feed",
			Description: "Get top posts from a subreddit",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"subreddit": {"type": "string", "description": "Subreddit name without the r/ prefix"},
					"limit": {"type": "integer", "description": "Max posts (default 10)"}
				},
				"required": ["subreddit"]
			}`),
		},
		{
			Name:        "get_hackernews_feed",
			Description: "Get the current Hacker News front page",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"limit": {"type": "integer", "description": "Max stories (default 10)"}
				}
			}`),
		},
		{
			Name:        "search_photos",
			Description: "Search stock photos",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Photo search query"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "search_videos",
			Description: "Search videos on YouTube or TikTok",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"query": {"type": "string", "description": "Video search query"},
					"platform": {"type": "string", "enum": ["youtube", "tiktok"], "description": "Platform to search (default youtube)"}
				},
				"required": ["query"]
			}`),
		},
		{
			Name:        "get_video_insights",
			Description: "Analyze a video: stats, chapters, and detected topics",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"url": {"type": "string", "description": "Video URL"}
				},
				"required": ["url"]
			}`),
		},
		{
			Name:        "create_payment_link",
			Description: "Create a Stripe payment link for a product",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"product": {"type": "string", "description": "Product name"},
					"amount": {"type": "string", "description": "Price, e.g. 19.99 USD"}
				},
				"required": ["product", "amount"]
			}`),
		},
		{
			Name:        "find_leads",
			Description: "Find sales leads for an industry and region",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"industry": {"type": "string", "description": "Target industry"},
					"region": {"type": "string", "description": "Geographic region"}
				},
				"required": ["industry"]
			}`),
		},
		{
			Name:        "list_reminders",
			Description: "List the user's reminders",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {}
			}`),
		},
		{
			Name:        "create_reminder",
			Description: "Create a reminder",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"text": {"type": "string", "description": "What to remind about"},
					"due": {"type": "string", "description": "Due time, RFC3339 or natural language"}
				},
				"required": ["text"]
			}`),
		},
		{
			Name:        "complete_reminder",
			Description: "Mark a reminder as done",
			InputSchema: objSchema(`{
				"type": "object",
				"properties": {
					"id": {"type": "integer", "description": "Reminder ID"}
				},
				"required": ["id"]
			}`),
		},
	}
}
