package render

import "strings"

// Reminders, calendar, and inbox cards: the personal-agenda family.

func renderReminders(r Result) Card {
	var b strings.Builder
	for _, it := range r.List("reminders") {
		mark := "☐"
		if it.Bool("done") {
			mark = "☑"
		}
		b.WriteString(cardAccentStyle.Render(mark + " "))
		b.WriteString(it.Str("text"))
		if due := it.Str("due"); due != "" {
			b.WriteString(cardDimStyle.Render(" · " + due))
		}
		b.WriteString("\n")
	}

	return Card{
		Kind:  KindReminders,
		Title: "Reminders",
		Body:  joinSections(errorLine(r), strings.TrimRight(b.String(), "\n")),
	}
}

func renderCalendar(r Result) Card {
	body := bulletList(r.List("events"), func(it Result) (string, string) {
		head := it.Str("title")
		meta := make([]string, 0, 3)
		if t := it.Str("start"); t != "" {
			meta = append(meta, t)
		}
		if loc := it.Str("location"); loc != "" {
			meta = append(meta, loc)
		}
		return head, strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindCalendar,
		Title: "Upcoming Events",
		Body:  joinSections(errorLine(r), body),
	}
}

func renderEmail(r Result) Card {
	body := bulletList(r.List("messages"), func(it Result) (string, string) {
		head := it.Str("subject")
		meta := make([]string, 0, 2)
		if from := it.Str("from"); from != "" {
			meta = append(meta, from)
		}
		if d := it.Str("date"); d != "" {
			meta = append(meta, d)
		}
		return head, strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindEmail,
		Title: "Inbox",
		Body:  joinSections(errorLine(r), body),
	}
}
