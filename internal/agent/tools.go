package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/minatolabs/minato/internal/feeds"
	"github.com/minatolabs/minato/internal/llm"
	"github.com/minatolabs/minato/internal/remind"
)

// ToolRegistry maps tool names to handlers. Handlers delegate to the feed
// clients and the reminder store; each returns a dual-channel ToolOutput.
type ToolRegistry struct {
	tools     []llm.Tool
	handlers  map[string]toolHandler
	feeds     *feeds.Client
	reminders *remind.Store
}

type toolHandler func(ctx context.Context, input json.RawMessage) (*ToolOutput, error)

// NewToolRegistry wires the assistant tool set to its backends. The
// reminder store may be nil; reminder tools then report an error result.
func NewToolRegistry(client *feeds.Client, store *remind.Store) *ToolRegistry {
	tr := &ToolRegistry{
		tools:     llm.AssistantTools(),
		handlers:  make(map[string]toolHandler),
		feeds:     client,
		reminders: store,
	}

	tr.handlers["search_web"] = tr.handleSearchWeb
	tr.handlers["search_products"] = tr.handleSearchProducts
	tr.handlers["get_weather"] = tr.handleGetWeather
	tr.handlers["find_recipes"] = tr.handleFindRecipes
	tr.handlers["get_news"] = tr.handleGetNews
	tr.handlers["get_reddit_feed"] = tr.handleGetRedditFeed
	tr.handlers["get_hackernews_feed"] = tr.handleGetHackerNewsFeed
	tr.handlers["search_photos"] = tr.handleSearchPhotos
	tr.handlers["search_videos"] = tr.handleSearchVideos
	tr.handlers["get_video_insights"] = tr.handleGetVideoInsights
	tr.handlers["create_payment_link"] = tr.handleCreatePaymentLink
	tr.handlers["find_leads"] = tr.handleFindLeads
	tr.handlers["list_reminders"] = tr.handleListReminders
	tr.handlers["create_reminder"] = tr.handleCreateReminder
	tr.handlers["complete_reminder"] = tr.handleCompleteReminder

	return tr
}

// GetTools returns all registered tool definitions.
func (tr *ToolRegistry) GetTools() []llm.Tool {
	return tr.tools
}

// ExecuteTool executes a tool by name with the given input.
func (tr *ToolRegistry) ExecuteTool(ctx context.Context, name string, input json.RawMessage) (*ToolOutput, error) {
	handler, ok := tr.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return handler(ctx, input)
}

// Close releases registry resources.
func (tr *ToolRegistry) Close() {
	if tr.reminders != nil {
		_ = tr.reminders.Close()
	}
}

// fromResult wraps a structured result document. The JSON itself is the
// LLM-facing text; the UI renders the structured channel.
func fromResult(doc json.RawMessage) *ToolOutput {
	return &ToolOutput{Text: string(doc), Result: doc}
}

// Tool handler implementations

type queryInput struct {
	Query string `json:"query"`
}

func (tr *ToolRegistry) handleSearchWeb(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params queryInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return fromResult(tr.feeds.SearchWeb(ctx, params.Query)), nil
}

func (tr *ToolRegistry) handleSearchProducts(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params queryInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return fromResult(tr.feeds.SearchProducts(ctx, params.Query)), nil
}

func (tr *ToolRegistry) handleGetWeather(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Location string `json:"location"`
		Days     int    `json:"days"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Location == "" {
		return nil, fmt.Errorf("location is required")
	}
	return fromResult(tr.feeds.GetWeather(ctx, params.Location, params.Days)), nil
}

func (tr *ToolRegistry) handleFindRecipes(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return fromResult(tr.feeds.FindRecipes(ctx, params.Query, params.Limit)), nil
}

func (tr *ToolRegistry) handleGetNews(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Topic string `json:"topic"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	return fromResult(tr.feeds.GetNews(ctx, params.Topic)), nil
}

func (tr *ToolRegistry) handleGetRedditFeed(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Subreddit string `json:"subreddit"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Subreddit == "" {
		return nil, fmt.Errorf("subreddit is required")
	}
	return fromResult(tr.feeds.GetRedditFeed(ctx, params.Subreddit, params.Limit)), nil
}

func (tr *ToolRegistry) handleGetHackerNewsFeed(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	return fromResult(tr.feeds.GetHackerNewsFeed(ctx, params.Limit)), nil
}

func (tr *ToolRegistry) handleSearchPhotos(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params queryInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return fromResult(tr.feeds.SearchPhotos(ctx, params.Query)), nil
}

func (tr *ToolRegistry) handleSearchVideos(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Query    string `json:"query"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return fromResult(tr.feeds.SearchVideos(ctx, params.Query, params.Platform)), nil
}

func (tr *ToolRegistry) handleGetVideoInsights(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	return fromResult(tr.feeds.GetVideoInsights(ctx, params.URL)), nil
}

func (tr *ToolRegistry) handleCreatePaymentLink(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Product string `json:"product"`
		Amount  string `json:"amount"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Product == "" || params.Amount == "" {
		return nil, fmt.Errorf("product and amount are required")
	}
	return fromResult(tr.feeds.CreatePaymentLink(ctx, params.Product, params.Amount)), nil
}

func (tr *ToolRegistry) handleFindLeads(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	var params struct {
		Industry string `json:"industry"`
		Region   string `json:"region"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.Industry == "" {
		return nil, fmt.Errorf("industry is required")
	}
	return fromResult(tr.feeds.FindLeads(ctx, params.Industry, params.Region)), nil
}

// remindersResult builds the reminders structured result from store rows.
func remindersResult(reminders []remind.Reminder) json.RawMessage {
	items := make([]map[string]any, 0, len(reminders))
	for _, r := range reminders {
		item := map[string]any{
			"id":   r.ID,
			"text": r.Text,
			"done": r.Done,
		}
		if !r.Due.IsZero() {
			item["due"] = r.Due.Local().Format("Mon Jan 2 15:04")
		}
		items = append(items, item)
	}
	doc, _ := json.Marshal(map[string]any{
		"result_type": "reminders",
		"reminders":   items,
	})
	return doc
}

func (tr *ToolRegistry) handleListReminders(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	if tr.reminders == nil {
		return nil, fmt.Errorf("reminder store not available")
	}
	reminders, err := tr.reminders.List()
	if err != nil {
		return nil, err
	}
	return fromResult(remindersResult(reminders)), nil
}

func (tr *ToolRegistry) handleCreateReminder(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	if tr.reminders == nil {
		return nil, fmt.Errorf("reminder store not available")
	}

	var params struct {
		Text string `json:"text"`
		Due  string `json:"due"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	due, err := parseDue(params.Due, time.Now())
	if err != nil {
		return nil, err
	}
	if _, err := tr.reminders.Create(params.Text, due); err != nil {
		return nil, err
	}

	reminders, err := tr.reminders.List()
	if err != nil {
		return nil, err
	}
	return fromResult(remindersResult(reminders)), nil
}

func (tr *ToolRegistry) handleCompleteReminder(ctx context.Context, input json.RawMessage) (*ToolOutput, error) {
	if tr.reminders == nil {
		return nil, fmt.Errorf("reminder store not available")
	}

	var params struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if err := tr.reminders.Complete(params.ID); err != nil {
		return nil, err
	}

	reminders, err := tr.reminders.List()
	if err != nil {
		return nil, err
	}
	return fromResult(remindersResult(reminders)), nil
}

// parseDue accepts RFC3339, "2006-01-02 15:04", "tomorrow", and
// "in N minutes|hours|days". Empty means no due time.
func parseDue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, now.Location()); err == nil {
		return t, nil
	}

	s = strings.ToLower(s)
	if s == "tomorrow" {
		return now.Add(24 * time.Hour), nil
	}

	if rest, ok := strings.CutPrefix(s, "in "); ok {
		fields := strings.Fields(rest)
		if len(fields) == 2 {
			var n int
			if _, err := fmt.Sscanf(fields[0], "%d", &n); err == nil && n > 0 {
				switch strings.TrimSuffix(fields[1], "s") {
				case "minute", "min":
					return now.Add(time.Duration(n) * time.Minute), nil
				case "hour":
					return now.Add(time.Duration(n) * time.Hour), nil
				case "day":
					return now.Add(time.Duration(n) * 24 * time.Hour), nil
				}
			}
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse due time: %q", s)
}
