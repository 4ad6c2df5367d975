package render

import (
	"fmt"
	"strings"
)

// renderWeather draws current conditions plus a short forecast table.
func renderWeather(r Result) Card {
	title := "Weather"
	if loc := r.Str("location"); loc != "" {
		title = "Weather · " + loc
	}

	var current string
	if cur := r.Sub("current"); cur.Len() > 0 {
		pairs := [][2]string{
			{"Conditions", cur.Str("conditions")},
			{"Temperature", formatTemp(cur, "temp_c")},
			{"Feels like", formatTemp(cur, "feels_like_c")},
			{"Humidity", formatPct(cur, "humidity")},
			{"Wind", cur.Str("wind")},
		}
		current = kvLines(pairs)
	}

	var forecast string
	if days := r.List("forecast"); len(days) > 0 {
		rows := make([][]string, 0, len(days))
		for _, day := range days {
			rows = append(rows, []string{
				day.Str("day"),
				day.Str("conditions"),
				formatTemp(day, "high_c"),
				formatTemp(day, "low_c"),
			})
		}
		forecast = tableLines([]string{"Day", "Conditions", "High", "Low"}, rows, 72)
	}

	return Card{
		Kind:  KindWeather,
		Title: title,
		Body:  joinSections(errorLine(r), current, forecast),
	}
}

func formatTemp(r Result, key string) string {
	if n, ok := r.Num(key); ok {
		return fmt.Sprintf("%.0f°C", n)
	}
	return ""
}

func formatPct(r Result, key string) string {
	if n, ok := r.Num(key); ok {
		return fmt.Sprintf("%.0f%%", n)
	}
	return ""
}

// bulletList renders title/subtitle rows as a compact feed.
func bulletList(items []Result, line func(Result) (string, string)) string {
	var b strings.Builder
	for _, it := range items {
		head, sub := line(it)
		if head == "" {
			continue
		}
		b.WriteString(cardAccentStyle.Render("● "))
		b.WriteString(head)
		b.WriteString("\n")
		if sub != "" {
			b.WriteString(cardDimStyle.Render("  " + sub))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
