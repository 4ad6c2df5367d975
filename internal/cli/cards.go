package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minatolabs/minato/internal/render"
)

var cardsCmd = &cobra.Command{
	Use:   "cards [kind...]",
	Short: "Preview result cards with sample data",
	Long: `Render sample payloads through the card dispatcher.

Useful for checking how each result kind looks in the current terminal.
With no arguments every card is shown; pass kinds to preview a subset.`,
	RunE: runCards,
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}

var samplePayloads = map[string]string{
	"weather": `{
		"result_type": "weather",
		"location": "Lisbon, Portugal",
		"current": {"conditions": "Mostly clear", "temp_c": 24, "feels_like_c": 25, "humidity": 48, "wind": "14 km/h"},
		"forecast": [
			{"day": "Tue Sep 1", "conditions": "Sunny", "high_c": 27, "low_c": 18},
			{"day": "Wed Sep 2", "conditions": "Light rain", "high_c": 23, "low_c": 17}
		]
	}`,
	"news_list": `{
		"result_type": "news_list",
		"articles": [
			{"title": "Go 1.24 released", "source": "The Go Blog", "date": "2 hours ago", "url": "https://go.dev/blog"},
			{"title": "SQLite turns 26", "source": "Hacker Newsletter", "date": "yesterday", "url": "https://sqlite.org"}
		]
	}`,
	"recipe": `{
		"result_type": "recipe",
		"recipe": {
			"title": "Caldo Verde",
			"cuisine": "Portuguese",
			"ingredients": ["4 potatoes", "1 bunch collard greens", "chouriço", "olive oil"],
			"steps": ["Boil and mash the potatoes", "Add shredded greens", "Simmer with sliced chouriço"]
		}
	}`,
	"reddit_list": `{
		"result_type": "reddit_list",
		"subreddit": "golang",
		"posts": [
			{"title": "Show and tell: my TUI framework", "author": "gopher42", "score": 312, "comments": 57, "url": "https://reddit.com/r/golang/1"}
		]
	}`,
	"hackernews_list": `{
		"result_type": "hackernews_list",
		"stories": [
			{"title": "Show HN: terminal assistant in Go", "by": "pg", "score": 210, "comments": 89, "url": "https://news.ycombinator.com"}
		]
	}`,
	"reminders": `{
		"result_type": "reminders",
		"reminders": [
			{"id": 1, "text": "Call the dentist", "due": "Tue Sep 1 09:00", "done": false},
			{"id": 2, "text": "Water the plants", "done": true}
		]
	}`,
	"calendar_events": `{
		"result_type": "calendar_events",
		"events": [
			{"title": "Standup", "start": "09:30", "location": "Meet"},
			{"title": "Design review", "start": "14:00"}
		]
	}`,
	"email_list": `{
		"result_type": "email_list",
		"messages": [
			{"subject": "Invoice #1042", "from": "billing@example.com", "date": "today"}
		]
	}`,
	"lead_list": `{
		"result_type": "lead_list",
		"leads": [
			{"company": "Acme Plumbing", "contact": "Av. Liberdade 1", "email": "https://acme.example", "score": 92}
		]
	}`,
	"payment_link": `{
		"result_type": "payment_link",
		"product": "Consulting hour",
		"amount": "150.00 EUR",
		"url": "https://buy.stripe.com/test_abc123",
		"status": "active"
	}`,
	"image_list": `{
		"result_type": "image_list",
		"source_api": "pexels_photo",
		"images": [
			{"alt": "Sunset over the Tagus", "photographer": "A. Silva", "url": "https://pexels.com/photo/1"}
		]
	}`,
	"video_list": `{
		"result_type": "video_list",
		"source_api": "youtube",
		"videos": [
			{"title": "Concurrency in Go", "channel": "GopherCon", "duration": "28:41", "url": "https://youtube.com/watch?v=abc"}
		]
	}`,
	"tiktok_list": `{
		"result_type": "video_list",
		"source_api": "serper_tiktok",
		"videos": [
			{"title": "60-second pasta", "author": "@cookfast", "url": "https://tiktok.com/@cookfast/video/1"}
		]
	}`,
	"product_list": `{
		"result_type": "product_list",
		"products": [
			{"title": "Mechanical keyboard", "price": "$89", "rating": "4.6", "seller": "KeebShop"}
		]
	}`,
	"web_snippet": `{
		"result_type": "web_snippet",
		"results": [
			{"title": "Go (programming language)", "snippet": "Go is a statically typed language...", "url": "https://en.wikipedia.org/wiki/Go"}
		]
	}`,
	"answerbox": `{
		"result_type": "answerbox",
		"answer": "1,083 km",
		"snippet": "Driving distance from Porto to Madrid",
		"source_url": "https://maps.example"
	}`,
	"knowledgegraph": `{
		"result_type": "knowledgegraph",
		"title": "Ada Lovelace",
		"entity_type": "Mathematician",
		"description": "English mathematician and writer.",
		"website": "https://example.org/ada",
		"attributes": [{"label": "Born", "value": "1815"}]
	}`,
	"video_insights": `{
		"result_type": "video_insights",
		"title": "Concurrency in Go",
		"channel": "GopherCon",
		"topics": ["goroutines", "channels", "select"]
	}`,
	"generic": `{
		"result_type": "surf_report",
		"spot": "Carcavelos",
		"wave_height_m": 1.4,
		"tide": "rising"
	}`,
}

func runCards(cmd *cobra.Command, args []string) error {
	dispatcher := render.New(render.WithPaymentLinks(paymentsEnabled()))

	kinds := args
	if len(kinds) == 0 {
		kinds = make([]string, 0, len(samplePayloads))
		for kind := range samplePayloads {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
	}

	for _, kind := range kinds {
		payload, ok := samplePayloads[strings.ToLower(kind)]
		if !ok {
			return fmt.Errorf("unknown card kind: %s (run 'minato cards' to see all)", kind)
		}
		card := dispatcher.DispatchJSON(payload)
		if card == nil {
			continue
		}
		fmt.Println(card.Body)
		fmt.Println()
	}

	return nil
}
