package render

import "strings"

func renderNews(r Result) Card {
	items := r.List("articles")
	if len(items) == 0 {
		items = r.List("items")
	}

	body := bulletList(items, func(it Result) (string, string) {
		head := it.Str("title")
		meta := make([]string, 0, 3)
		if s := it.Str("source"); s != "" {
			meta = append(meta, s)
		}
		if d := it.Str("date"); d != "" {
			meta = append(meta, d)
		}
		if u := it.Str("url"); u != "" {
			meta = append(meta, u)
		}
		return head, strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindNews,
		Title: "News",
		Body:  joinSections(errorLine(r), body),
	}
}
