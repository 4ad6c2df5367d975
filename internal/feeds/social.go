package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Reddit's public JSON listing and the Hacker News Firebase API are both
// keyless read-only feeds.

// GetRedditFeed fetches top posts from a subreddit.
func (c *Client) GetRedditFeed(ctx context.Context, subreddit string, limit int) json.RawMessage {
	subreddit = strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	if subreddit == "" {
		return failure("reddit_list", "reddit", "subreddit is required")
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	var resp struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string  `json:"title"`
					Author      string  `json:"author"`
					Score       float64 `json:"score"`
					NumComments float64 `json:"num_comments"`
					Permalink   string  `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	feedURL := fmt.Sprintf("%s/r/%s/top.json?limit=%d&t=day", c.redditURL, subreddit, limit)
	if err := c.getJSON(ctx, feedURL, nil, &resp); err != nil {
		return failure("reddit_list", "reddit", err.Error())
	}

	posts := make([]map[string]any, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		p := child.Data
		posts = append(posts, map[string]any{
			"title":    p.Title,
			"author":   p.Author,
			"score":    p.Score,
			"comments": p.NumComments,
			"url":      "https://reddit.com" + p.Permalink,
		})
	}
	return structured("reddit_list", "reddit", map[string]any{
		"subreddit": subreddit,
		"posts":     posts,
	})
}

type hnItem struct {
	Title       string `json:"title"`
	By          string `json:"by"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	URL         string `json:"url"`
}

// GetHackerNewsFeed fetches the current front page. Story items are
// fetched concurrently; order follows the front-page ranking.
func (c *Client) GetHackerNewsFeed(ctx context.Context, limit int) json.RawMessage {
	if limit <= 0 || limit > 30 {
		limit = 10
	}

	var ids []int
	if err := c.getJSON(ctx, c.hnURL+"/topstories.json", nil, &ids); err != nil {
		return failure("hackernews_list", "hackernews", err.Error())
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	items := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, id := range ids {
		g.Go(func() error {
			var item hnItem
			itemURL := fmt.Sprintf("%s/item/%d.json", c.hnURL, id)
			if err := c.getJSON(gctx, itemURL, nil, &item); err != nil {
				return err
			}
			items[i] = &item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return failure("hackernews_list", "hackernews", err.Error())
	}

	stories := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if item == nil || item.Title == "" {
			continue
		}
		stories = append(stories, map[string]any{
			"title":    item.Title,
			"by":       item.By,
			"score":    item.Score,
			"comments": item.Descendants,
			"url":      item.URL,
		})
	}
	return structured("hackernews_list", "hackernews", map[string]any{
		"stories": stories,
	})
}
