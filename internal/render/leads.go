package render

import "fmt"

func renderLeads(r Result) Card {
	leads := r.List("leads")
	rows := make([][]string, 0, len(leads))
	for _, lead := range leads {
		score := ""
		if n, ok := lead.Num("score"); ok {
			score = fmt.Sprintf("%.0f", n)
		}
		rows = append(rows, []string{
			lead.Str("company"),
			lead.Str("contact"),
			lead.Str("email"),
			score,
		})
	}

	var body string
	if len(rows) > 0 {
		body = tableLines([]string{"Company", "Contact", "Email", "Score"}, rows, 72)
	}

	return Card{
		Kind:  KindLeads,
		Title: "Leads",
		Body:  joinSections(errorLine(r), body),
	}
}
