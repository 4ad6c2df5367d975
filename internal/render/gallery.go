package render

import (
	"fmt"
	"strings"
)

// Gallery cards for the overloaded image_list / video_list kinds. Terminal
// output can't show the media itself, so galleries render title + link rows
// with per-source metadata.

func renderPhotoGallery(r Result) Card {
	body := bulletList(r.List("images"), func(it Result) (string, string) {
		head := it.Str("alt")
		if head == "" {
			head = it.Str("photographer")
		}
		meta := make([]string, 0, 2)
		if p := it.Str("photographer"); p != "" && p != head {
			meta = append(meta, "by "+p)
		}
		if u := it.Str("url"); u != "" {
			meta = append(meta, u)
		}
		return head, strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindPhotoGallery,
		Title: "Photos",
		Body:  joinSections(errorLine(r), body),
	}
}

func renderYouTubeGallery(r Result) Card {
	body := bulletList(r.List("videos"), func(it Result) (string, string) {
		meta := make([]string, 0, 4)
		if ch := it.Str("channel"); ch != "" {
			meta = append(meta, ch)
		}
		if d := it.Str("duration"); d != "" {
			meta = append(meta, d)
		}
		if v, ok := it.Num("views"); ok {
			meta = append(meta, fmt.Sprintf("%.0f views", v))
		}
		if u := it.Str("url"); u != "" {
			meta = append(meta, u)
		}
		return it.Str("title"), strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindYouTubeGallery,
		Title: "YouTube",
		Body:  joinSections(errorLine(r), body),
	}
}

func renderTikTokGallery(r Result) Card {
	body := bulletList(r.List("videos"), func(it Result) (string, string) {
		meta := make([]string, 0, 3)
		if a := it.Str("author"); a != "" {
			meta = append(meta, "@"+strings.TrimPrefix(a, "@"))
		}
		if l, ok := it.Num("likes"); ok {
			meta = append(meta, fmt.Sprintf("%.0f likes", l))
		}
		if u := it.Str("url"); u != "" {
			meta = append(meta, u)
		}
		return it.Str("title"), strings.Join(meta, " · ")
	})

	return Card{
		Kind:  KindTikTokGallery,
		Title: "TikTok",
		Body:  joinSections(errorLine(r), body),
	}
}
