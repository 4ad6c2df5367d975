package render

import (
	"fmt"
	"strings"
)

// Reddit and Hacker News cards share the score/comments feed layout.

func renderReddit(r Result) Card {
	title := "Reddit"
	if sub := r.Str("subreddit"); sub != "" {
		title = "Reddit · r/" + strings.TrimPrefix(sub, "r/")
	}

	body := bulletList(r.List("posts"), func(it Result) (string, string) {
		return it.Str("title"), feedMeta(it, "u/"+it.Str("author"))
	})

	return Card{
		Kind:  KindReddit,
		Title: title,
		Body:  joinSections(errorLine(r), body),
	}
}

func renderHackerNews(r Result) Card {
	body := bulletList(r.List("stories"), func(it Result) (string, string) {
		return it.Str("title"), feedMeta(it, it.Str("by"))
	})

	return Card{
		Kind:  KindHackerNews,
		Title: "Hacker News",
		Body:  joinSections(errorLine(r), body),
	}
}

func feedMeta(it Result, author string) string {
	meta := make([]string, 0, 4)
	if pts, ok := it.Num("score"); ok {
		meta = append(meta, fmt.Sprintf("%.0f points", pts))
	}
	if n, ok := it.Num("comments"); ok {
		meta = append(meta, fmt.Sprintf("%.0f comments", n))
	}
	if author != "" && author != "u/" {
		meta = append(meta, author)
	}
	if u := it.Str("url"); u != "" {
		meta = append(meta, u)
	}
	return strings.Join(meta, " · ")
}
