package render

import "strings"

// Web-search family: four result kinds produced by the search backend.

func renderProducts(r Result) Card {
	products := r.List("products")
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Str("title"),
			p.Str("price"),
			p.Str("rating"),
			p.Str("seller"),
		})
	}

	var body string
	if len(rows) > 0 {
		body = tableLines([]string{"Product", "Price", "Rating", "Seller"}, rows, 72)
	}

	return Card{
		Kind:  KindProductList,
		Title: "Products",
		Body:  joinSections(errorLine(r), body),
	}
}

func renderWebSnippet(r Result) Card {
	body := bulletList(r.List("results"), func(it Result) (string, string) {
		head := it.Str("title")
		meta := make([]string, 0, 2)
		if s := it.Str("snippet"); s != "" {
			meta = append(meta, s)
		}
		if u := it.Str("url"); u != "" {
			meta = append(meta, u)
		}
		return head, strings.Join(meta, "\n  ")
	})

	return Card{
		Kind:  KindWebSnippet,
		Title: "Web Results",
		Body:  joinSections(errorLine(r), body),
	}
}

func renderAnswerBox(r Result) Card {
	var sections []string
	sections = append(sections, errorLine(r))
	if a := r.Str("answer"); a != "" {
		sections = append(sections, a)
	}
	if s := r.Str("snippet"); s != "" {
		sections = append(sections, cardDimStyle.Render(s))
	}
	if u := r.Str("source_url"); u != "" {
		sections = append(sections, cardDimStyle.Render("Source: "+u))
	}

	return Card{
		Kind:  KindAnswerBox,
		Title: "Answer",
		Body:  joinSections(sections...),
	}
}

func renderKnowledgeGraph(r Result) Card {
	title := "Knowledge Graph"
	if t := r.Str("title"); t != "" {
		title = t
	}

	pairs := [][2]string{
		{"Type", r.Str("entity_type")},
		{"Description", r.Str("description")},
		{"Website", r.Str("website")},
	}
	for _, attr := range r.List("attributes") {
		pairs = append(pairs, [2]string{attr.Str("label"), attr.Str("value")})
	}

	return Card{
		Kind:  KindKnowledgeGraph,
		Title: title,
		Body:  joinSections(errorLine(r), kvLines(pairs)),
	}
}
