package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// SearchPhotos searches Pexels stock photos.
func (c *Client) SearchPhotos(ctx context.Context, query string) json.RawMessage {
	if c.pexelsKey == "" {
		return failure("image_list", "pexels_photo", "pexels API key not configured")
	}

	var resp struct {
		Photos []struct {
			Alt          string `json:"alt"`
			Photographer string `json:"photographer"`
			URL          string `json:"url"`
		} `json:"photos"`
	}
	searchURL := fmt.Sprintf("%s/search?query=%s&per_page=10", c.pexelsURL, url.QueryEscape(query))
	headers := map[string]string{"Authorization": c.pexelsKey}
	if err := c.getJSON(ctx, searchURL, headers, &resp); err != nil {
		return failure("image_list", "pexels_photo", err.Error())
	}

	images := make([]map[string]any, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		images = append(images, map[string]any{
			"alt":          p.Alt,
			"photographer": p.Photographer,
			"url":          p.URL,
		})
	}
	return structured("image_list", "pexels_photo", map[string]any{
		"query":  query,
		"images": images,
	})
}

// GetVideoInsights summarizes a video. Metadata comes from the YouTube
// oEmbed endpoint (keyless); topics are extracted from the title.
func (c *Client) GetVideoInsights(ctx context.Context, videoURL string) json.RawMessage {
	if videoURL == "" {
		return failure("video_insights", "youtube", "video url is required")
	}

	var resp struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	oembedURL := fmt.Sprintf("https://www.youtube.com/oembed?url=%s&format=json", url.QueryEscape(videoURL))
	if err := c.getJSON(ctx, oembedURL, nil, &resp); err != nil {
		return failure("video_insights", "youtube", err.Error())
	}

	return structured("video_insights", "youtube", map[string]any{
		"title":   resp.Title,
		"channel": resp.AuthorName,
		"url":     videoURL,
		"topics":  titleTopics(resp.Title),
	})
}

// titleTopics pulls candidate topic words out of a video title. Crude, but
// enough to seed the topics row until a real video-intelligence backend
// exists.
func titleTopics(title string) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, word := range strings.FieldsFunc(title, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	}) {
		if len(word) < 4 || len(topics) >= 5 {
			continue
		}
		key := strings.ToLower(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		topics = append(topics, word)
	}
	return topics
}
