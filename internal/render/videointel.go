package render

import (
	"fmt"
	"strings"
)

// renderVideoInsights draws the video-intelligence dashboard: headline
// stats, chapter list, and detected topics.
func renderVideoInsights(r Result) Card {
	title := "Video Insights"
	if t := r.Str("title"); t != "" {
		title = "Video Insights · " + t
	}

	stats := kvLines([][2]string{
		{"Duration", r.Str("duration")},
		{"Views", numStr(r, "views")},
		{"Likes", numStr(r, "likes")},
		{"Sentiment", r.Str("sentiment")},
	})

	var chapters string
	if list := r.List("chapters"); len(list) > 0 {
		var b strings.Builder
		b.WriteString(cardLabelStyle.Render("Chapters"))
		for _, ch := range list {
			b.WriteString("\n  ")
			if ts := ch.Str("start"); ts != "" {
				b.WriteString(cardDimStyle.Render(ts) + "  ")
			}
			b.WriteString(ch.Str("title"))
		}
		chapters = b.String()
	}

	var topics string
	if list := r.Strings("topics"); len(list) > 0 {
		topics = cardLabelStyle.Render("Topics") + "  " + strings.Join(list, ", ")
	}

	return Card{
		Kind:  KindVideoInsights,
		Title: title,
		Body:  joinSections(errorLine(r), stats, chapters, topics),
	}
}

func numStr(r Result, key string) string {
	if n, ok := r.Num(key); ok {
		return fmt.Sprintf("%.0f", n)
	}
	return ""
}
