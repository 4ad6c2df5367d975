package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is the rendered output unit: exactly one per dispatched payload.
// Kind identifies which renderer produced it (routing decisions are
// observable through it), Body is the terminal-ready content.
type Card struct {
	Kind  string
	Title string
	Body  string
}

// Routed kinds. Card.Kind is always one of these.
const (
	KindWeather         = "weather"
	KindNews            = "news_list"
	KindRecipe          = "recipe"
	KindRecipeList      = "recipe_list"
	KindReddit          = "reddit_list"
	KindHackerNews      = "hackernews_list"
	KindReminders       = "reminders"
	KindCalendar        = "calendar_events"
	KindEmail           = "email_list"
	KindLeads           = "lead_list"
	KindPayment         = "payment_link"
	KindPaymentDisabled = "payment_link_disabled"
	KindPhotoGallery    = "photo_gallery"
	KindYouTubeGallery  = "youtube_gallery"
	KindTikTokGallery   = "tiktok_gallery"
	KindProductList     = "product_list"
	KindWebSnippet      = "web_snippet"
	KindAnswerBox       = "answerbox"
	KindKnowledgeGraph  = "knowledgegraph"
	KindVideoInsights   = "video_insights"
	KindGeneric         = "generic"
	KindText            = "text"
	KindParseError      = "parse_error"
)

var (
	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	cardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	cardAccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))
)

// errorLine surfaces an upstream tool failure inside a card. Cards still
// render their frame around it so the user sees which tool failed.
func errorLine(r Result) string {
	if r.Err() == "" {
		return ""
	}
	return cardErrorStyle.Render("✗ " + r.Err())
}

// kvLines renders aligned key/value rows, skipping empty values.
func kvLines(pairs [][2]string) string {
	maxKey := 0
	for _, p := range pairs {
		if p[1] != "" && len(p[0]) > maxKey {
			maxKey = len(p[0])
		}
	}
	if maxKey > 24 {
		maxKey = 24
	}

	var b strings.Builder
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		key := p[0]
		if len(key) > maxKey {
			key = key[:maxKey]
		}
		b.WriteString(cardLabelStyle.Render(fmt.Sprintf("%-*s", maxKey, key)))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// tableLines renders a compact aligned table, clamped to width.
func tableLines(headers []string, rows [][]string, width int) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	colW := make([]int, cols)
	for c := 0; c < cols; c++ {
		colW[c] = len(headers[c])
	}
	for _, row := range rows {
		for c := 0; c < cols && c < len(row); c++ {
			if l := len(row[c]); l > colW[c] {
				colW[c] = l
			}
		}
	}

	// Shrink last columns first until the table fits.
	sep := 3
	avail := width
	if avail < 20 {
		avail = 20
	}
	for totalWidth(colW, sep) > avail {
		shrunk := false
		for c := cols - 1; c >= 0; c-- {
			if colW[c] > 6 {
				colW[c]--
				shrunk = true
				break
			}
		}
		if !shrunk {
			break
		}
	}

	var b strings.Builder
	b.WriteString(cardLabelStyle.Render(tableRow(headers, colW)))
	b.WriteString("\n")
	b.WriteString(cardDimStyle.Render(tableSep(colW, sep)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(tableRow(row, colW))
	}
	return b.String()
}

func totalWidth(colW []int, sep int) int {
	total := 0
	for _, w := range colW {
		total += w
	}
	return total + sep*(len(colW)-1)
}

func tableSep(colW []int, sep int) string {
	var b strings.Builder
	for c, w := range colW {
		if c > 0 {
			b.WriteString(strings.Repeat("-", sep))
		}
		b.WriteString(strings.Repeat("-", w))
	}
	return b.String()
}

func tableRow(cells []string, colW []int) string {
	var b strings.Builder
	for c, w := range colW {
		if c > 0 {
			b.WriteString(" | ")
		}
		val := ""
		if c < len(cells) {
			val = cells[c]
		}
		b.WriteString(padRight(truncate(val, w), w))
	}
	return b.String()
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func truncate(s string, w int) string {
	if w <= 0 || len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-3] + "..."
}

// joinSections stacks non-empty card sections with blank lines between.
func joinSections(sections ...string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// orPlaceholder substitutes the standard empty-data line.
func orPlaceholder(body string) string {
	if strings.TrimSpace(body) == "" {
		return cardDimStyle.Render("No data available")
	}
	return body
}
