package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// serper.dev wraps Google SERP endpoints behind a single key. The web
// search response is polymorphic: answer box and knowledge graph beat the
// organic list when present, so one query can yield three result kinds.

type serperSearchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
	AnswerBox *struct {
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
		Title   string `json:"title"`
		Link    string `json:"link"`
	} `json:"answerBox"`
	KnowledgeGraph *struct {
		Title       string            `json:"title"`
		Type        string            `json:"type"`
		Description string            `json:"description"`
		Website     string            `json:"website"`
		Attributes  map[string]string `json:"attributes"`
	} `json:"knowledgeGraph"`
}

func (c *Client) serperHeaders() map[string]string {
	return map[string]string{"X-API-KEY": c.serperKey}
}

// SearchWeb runs a web search. Answer box and knowledge graph results take
// precedence over the organic list.
func (c *Client) SearchWeb(ctx context.Context, query string) json.RawMessage {
	if c.serperKey == "" {
		return failure("web_snippet", "serper", "serper API key not configured")
	}

	var resp serperSearchResponse
	err := c.postJSON(ctx, c.serperURL+"/search", c.serperHeaders(), map[string]any{"q": query}, &resp)
	if err != nil {
		return failure("web_snippet", "serper", err.Error())
	}

	if ab := resp.AnswerBox; ab != nil && (ab.Answer != "" || ab.Snippet != "") {
		return structured("answerbox", "serper", map[string]any{
			"query":      query,
			"answer":     ab.Answer,
			"snippet":    ab.Snippet,
			"source_url": ab.Link,
		})
	}
	if kg := resp.KnowledgeGraph; kg != nil && kg.Title != "" {
		attrs := make([]map[string]any, 0, len(kg.Attributes))
		for label, value := range kg.Attributes {
			attrs = append(attrs, map[string]any{"label": label, "value": value})
		}
		return structured("knowledgegraph", "serper", map[string]any{
			"query":       query,
			"title":       kg.Title,
			"entity_type": kg.Type,
			"description": kg.Description,
			"website":     kg.Website,
			"attributes":  attrs,
		})
	}

	results := make([]map[string]any, 0, len(resp.Organic))
	for _, o := range resp.Organic {
		results = append(results, map[string]any{
			"title":   o.Title,
			"url":     o.Link,
			"snippet": o.Snippet,
		})
	}
	return structured("web_snippet", "serper", map[string]any{
		"query":   query,
		"results": results,
	})
}

// GetNews fetches recent headlines for a topic.
func (c *Client) GetNews(ctx context.Context, topic string) json.RawMessage {
	if c.serperKey == "" {
		return failure("news_list", "serper", "serper API key not configured")
	}

	var resp struct {
		News []struct {
			Title  string `json:"title"`
			Link   string `json:"link"`
			Source string `json:"source"`
			Date   string `json:"date"`
		} `json:"news"`
	}
	err := c.postJSON(ctx, c.serperURL+"/news", c.serperHeaders(), map[string]any{"q": topic}, &resp)
	if err != nil {
		return failure("news_list", "serper", err.Error())
	}

	articles := make([]map[string]any, 0, len(resp.News))
	for _, n := range resp.News {
		articles = append(articles, map[string]any{
			"title":  n.Title,
			"url":    n.Link,
			"source": n.Source,
			"date":   n.Date,
		})
	}
	return structured("news_list", "serper", map[string]any{
		"topic":    topic,
		"articles": articles,
	})
}

// SearchProducts fetches shopping results.
func (c *Client) SearchProducts(ctx context.Context, query string) json.RawMessage {
	if c.serperKey == "" {
		return failure("product_list", "serper", "serper API key not configured")
	}

	var resp struct {
		Shopping []struct {
			Title  string  `json:"title"`
			Link   string  `json:"link"`
			Price  string  `json:"price"`
			Rating float64 `json:"rating"`
			Source string  `json:"source"`
		} `json:"shopping"`
	}
	err := c.postJSON(ctx, c.serperURL+"/shopping", c.serperHeaders(), map[string]any{"q": query}, &resp)
	if err != nil {
		return failure("product_list", "serper", err.Error())
	}

	products := make([]map[string]any, 0, len(resp.Shopping))
	for _, p := range resp.Shopping {
		rating := ""
		if p.Rating > 0 {
			rating = fmt.Sprintf("%.1f", p.Rating)
		}
		products = append(products, map[string]any{
			"title":  p.Title,
			"url":    p.Link,
			"price":  p.Price,
			"rating": rating,
			"seller": p.Source,
		})
	}
	return structured("product_list", "serper", map[string]any{
		"query":    query,
		"products": products,
	})
}

type serperVideosResponse struct {
	Videos []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Channel  string `json:"channel"`
		Duration string `json:"duration"`
	} `json:"videos"`
}

// SearchVideos searches videos on youtube or tiktok. Both run through the
// video SERP; TikTok is a site-restricted query tagged with its own source
// so the UI can pick the right gallery.
func (c *Client) SearchVideos(ctx context.Context, query, platform string) json.RawMessage {
	if platform == "" {
		platform = "youtube"
	}
	source := "youtube"
	q := query
	if platform == "tiktok" {
		source = "serper_tiktok"
		q = "site:tiktok.com " + query
	}

	if c.serperKey == "" {
		return failure("video_list", source, "serper API key not configured")
	}

	var resp serperVideosResponse
	err := c.postJSON(ctx, c.serperURL+"/videos", c.serperHeaders(), map[string]any{"q": q}, &resp)
	if err != nil {
		return failure("video_list", source, err.Error())
	}

	videos := make([]map[string]any, 0, len(resp.Videos))
	for _, v := range resp.Videos {
		entry := map[string]any{
			"title": v.Title,
			"url":   v.Link,
		}
		if source == "serper_tiktok" {
			entry["author"] = tiktokAuthor(v.Link, v.Channel)
		} else {
			entry["channel"] = v.Channel
			entry["duration"] = v.Duration
		}
		videos = append(videos, entry)
	}
	return structured("video_list", source, map[string]any{
		"query":  query,
		"videos": videos,
	})
}

// tiktokAuthor extracts the @handle from a tiktok.com video URL, falling
// back to the channel string.
func tiktokAuthor(link, fallback string) string {
	if i := strings.Index(link, "/@"); i >= 0 {
		rest := link[i+2:]
		if j := strings.IndexByte(rest, '/'); j > 0 {
			return rest[:j]
		}
		return rest
	}
	return fallback
}

// FindLeads looks up businesses by industry and region via the places SERP
// and scores them by listing quality.
func (c *Client) FindLeads(ctx context.Context, industry, region string) json.RawMessage {
	if c.serperKey == "" {
		return failure("lead_list", "serper", "serper API key not configured")
	}

	q := industry
	if region != "" {
		q = industry + " in " + region
	}

	var resp struct {
		Places []struct {
			Title       string  `json:"title"`
			Address     string  `json:"address"`
			PhoneNumber string  `json:"phoneNumber"`
			Website     string  `json:"website"`
			Rating      float64 `json:"rating"`
			RatingCount int     `json:"ratingCount"`
		} `json:"places"`
	}
	err := c.postJSON(ctx, c.serperURL+"/places", c.serperHeaders(), map[string]any{"q": q}, &resp)
	if err != nil {
		return failure("lead_list", "serper", err.Error())
	}

	leads := make([]map[string]any, 0, len(resp.Places))
	for _, p := range resp.Places {
		contact := p.PhoneNumber
		if contact == "" {
			contact = p.Address
		}
		leads = append(leads, map[string]any{
			"company": p.Title,
			"contact": contact,
			"email":   p.Website,
			"score":   leadScore(p.Rating, p.RatingCount),
		})
	}
	return structured("lead_list", "serper", map[string]any{
		"industry": industry,
		"region":   region,
		"leads":    leads,
	})
}

// leadScore folds rating and review volume into a 0-100 score.
func leadScore(rating float64, count int) int {
	score := rating * 16
	if count > 100 {
		count = 100
	}
	score += float64(count) / 5
	if score > 100 {
		score = 100
	}
	return int(score)
}
