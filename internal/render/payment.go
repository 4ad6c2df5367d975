package render

func renderPayment(r Result) Card {
	pairs := [][2]string{
		{"Product", r.Str("product")},
		{"Amount", r.Str("amount")},
		{"Link", r.Str("url")},
		{"Status", r.Str("status")},
	}

	return Card{
		Kind:  KindPayment,
		Title: "Payment Link",
		Body:  joinSections(errorLine(r), kvLines(pairs)),
	}
}
