package feeds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func jsonHandler(t *testing.T, routes map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestSearchWebMissingKey(t *testing.T) {
	c := NewClient(Config{})

	doc := decode(t, c.SearchWeb(context.Background(), "golang"))

	assert.Equal(t, "web_snippet", doc["result_type"])
	assert.Contains(t, doc["error"], "not configured")
}

func TestSearchWebAnswerBoxWins(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search": `{
			"answerBox": {"answer": "42", "snippet": "the answer", "link": "https://example.com"},
			"organic": [{"title": "ignored", "link": "x", "snippet": "y"}]
		}`,
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "k"})
	c.serperURL = srv.URL

	doc := decode(t, c.SearchWeb(context.Background(), "meaning of life"))

	assert.Equal(t, "answerbox", doc["result_type"])
	assert.Equal(t, "42", doc["answer"])
	assert.Equal(t, "https://example.com", doc["source_url"])
}

func TestSearchWebOrganicFallback(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search": `{"organic": [
			{"title": "Go", "link": "https://go.dev", "snippet": "The Go language"},
			{"title": "Go wiki", "link": "https://wiki", "snippet": "docs"}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "k"})
	c.serperURL = srv.URL

	doc := decode(t, c.SearchWeb(context.Background(), "golang"))

	assert.Equal(t, "web_snippet", doc["result_type"])
	results, ok := doc["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	first := results[0].(map[string]any)
	assert.Equal(t, "Go", first["title"])
	assert.Equal(t, "https://go.dev", first["url"])
}

func TestSearchWebUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "bad"})
	c.serperURL = srv.URL

	doc := decode(t, c.SearchWeb(context.Background(), "golang"))

	assert.Equal(t, "web_snippet", doc["result_type"])
	assert.Contains(t, doc["error"], "403")
}

func TestSearchVideosTikTok(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/videos": `{"videos": [
			{"title": "dance", "link": "https://www.tiktok.com/@someone/video/123", "channel": "someone"}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "k"})
	c.serperURL = srv.URL

	doc := decode(t, c.SearchVideos(context.Background(), "dance", "tiktok"))

	assert.Equal(t, "video_list", doc["result_type"])
	assert.Equal(t, "serper_tiktok", doc["source_api"])
	videos := doc["videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "someone", videos[0].(map[string]any)["author"])
}

func TestSearchVideosYouTubeDefault(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/videos": `{"videos": [
			{"title": "talk", "link": "https://youtube.com/watch?v=1", "channel": "GopherCon", "duration": "45:00"}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "k"})
	c.serperURL = srv.URL

	doc := decode(t, c.SearchVideos(context.Background(), "go talks", ""))

	assert.Equal(t, "youtube", doc["source_api"])
	videos := doc["videos"].([]any)
	require.Len(t, videos, 1)
	assert.Equal(t, "GopherCon", videos[0].(map[string]any)["channel"])
}

func TestGetWeather(t *testing.T) {
	geo := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search": `{"results": [{"name": "Lisbon", "country": "Portugal", "latitude": 38.7, "longitude": -9.1}]}`,
	}))
	defer geo.Close()

	meteo := httptest.NewServer(jsonHandler(t, map[string]string{
		"/forecast": `{
			"current": {"temperature_2m": 24.3, "apparent_temperature": 25.1, "relative_humidity_2m": 60, "wind_speed_10m": 12, "weather_code": 1},
			"daily": {
				"time": ["2026-08-31", "2026-09-01"],
				"weather_code": [1, 61],
				"temperature_2m_max": [26.0, 22.5],
				"temperature_2m_min": [18.0, 16.0]
			}
		}`,
	}))
	defer meteo.Close()

	c := NewClient(Config{})
	c.geocodeURL = geo.URL
	c.meteoURL = meteo.URL

	doc := decode(t, c.GetWeather(context.Background(), "lisbon", 2))

	assert.Equal(t, "weather", doc["result_type"])
	assert.Equal(t, "Lisbon, Portugal", doc["location"])
	current := doc["current"].(map[string]any)
	assert.Equal(t, "Mostly clear", current["conditions"])
	assert.Equal(t, 24.3, current["temp_c"])
	forecast := doc["forecast"].([]any)
	require.Len(t, forecast, 2)
	assert.Equal(t, "Light rain", forecast[1].(map[string]any)["conditions"])
}

func TestGetWeatherUnknownLocation(t *testing.T) {
	geo := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search": `{"results": []}`,
	}))
	defer geo.Close()

	c := NewClient(Config{})
	c.geocodeURL = geo.URL

	doc := decode(t, c.GetWeather(context.Background(), "nowhereville", 3))

	assert.Equal(t, "weather", doc["result_type"])
	assert.Contains(t, doc["error"], "location not found")
}

func TestFindRecipesSingleMatch(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search.php": `{"meals": [{
			"strMeal": "Caldo Verde",
			"strArea": "Portuguese",
			"strInstructions": "Boil potatoes.\r\nAdd kale.",
			"strIngredient1": "Potatoes", "strMeasure1": "4",
			"strIngredient2": "Kale", "strMeasure2": "200g",
			"strIngredient3": "", "strMeasure3": ""
		}]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{})
	c.mealURL = srv.URL

	doc := decode(t, c.FindRecipes(context.Background(), "caldo verde", 5))

	assert.Equal(t, "recipe", doc["result_type"])
	recipe := doc["recipe"].(map[string]any)
	assert.Equal(t, "Caldo Verde", recipe["title"])
	assert.Equal(t, []any{"4 Potatoes", "200g Kale"}, recipe["ingredients"])
	assert.Equal(t, []any{"Boil potatoes.", "Add kale."}, recipe["steps"])
}

func TestFindRecipesMultipleMatches(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search.php": `{"meals": [
			{"strMeal": "Chicken Curry", "strArea": "Indian", "strCategory": "Chicken"},
			{"strMeal": "Chicken Pie", "strArea": "British", "strCategory": "Chicken"},
			{"strMeal": "Chicken Soup", "strArea": "Jewish", "strCategory": "Chicken"}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{})
	c.mealURL = srv.URL

	doc := decode(t, c.FindRecipes(context.Background(), "chicken", 2))

	assert.Equal(t, "recipe_list", doc["result_type"])
	recipes := doc["recipes"].([]any)
	assert.Len(t, recipes, 2)
}

func TestGetRedditFeed(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/r/golang/top.json": `{"data": {"children": [
			{"data": {"title": "Go 1.25 released", "author": "gopher", "score": 900, "num_comments": 120, "permalink": "/r/golang/comments/1"}}
		]}}`,
	}))
	defer srv.Close()

	c := NewClient(Config{})
	c.redditURL = srv.URL

	doc := decode(t, c.GetRedditFeed(context.Background(), "r/golang", 10))

	assert.Equal(t, "reddit_list", doc["result_type"])
	assert.Equal(t, "golang", doc["subreddit"])
	posts := doc["posts"].([]any)
	require.Len(t, posts, 1)
	post := posts[0].(map[string]any)
	assert.Equal(t, "Go 1.25 released", post["title"])
	assert.Equal(t, "https://reddit.com/r/golang/comments/1", post["url"])
}

func TestGetHackerNewsFeed(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/topstories.json": `[101, 102]`,
		"/item/101.json":   `{"title": "Show HN: minato", "by": "alice", "score": 250, "descendants": 80, "url": "https://example.com"}`,
		"/item/102.json":   `{"title": "Postgres tips", "by": "bob", "score": 150, "descendants": 30, "url": "https://blog"}`,
	}))
	defer srv.Close()

	c := NewClient(Config{})
	c.hnURL = srv.URL

	doc := decode(t, c.GetHackerNewsFeed(context.Background(), 2))

	assert.Equal(t, "hackernews_list", doc["result_type"])
	stories := doc["stories"].([]any)
	require.Len(t, stories, 2)
	// Front-page order is preserved despite concurrent fetches.
	assert.Equal(t, "Show HN: minato", stories[0].(map[string]any)["title"])
	assert.Equal(t, "Postgres tips", stories[1].(map[string]any)["title"])
}

func TestSearchPhotos(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/search": `{"photos": [
			{"alt": "A red fox", "photographer": "Jane", "url": "https://pexels.com/photo/1"}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{PexelsKey: "pk"})
	c.pexelsURL = srv.URL

	doc := decode(t, c.SearchPhotos(context.Background(), "fox"))

	assert.Equal(t, "image_list", doc["result_type"])
	assert.Equal(t, "pexels_photo", doc["source_api"])
	images := doc["images"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, "A red fox", images[0].(map[string]any)["alt"])
}

func TestCreatePaymentLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/prices":
			assert.Equal(t, "1999", r.Form.Get("unit_amount"))
			assert.Equal(t, "usd", r.Form.Get("currency"))
			assert.Equal(t, "T-shirt", r.Form.Get("product_data[name]"))
			_, _ = w.Write([]byte(`{"id": "price_123"}`))
		case "/payment_links":
			assert.Equal(t, "price_123", r.Form.Get("line_items[0][price]"))
			_, _ = w.Write([]byte(`{"url": "https://buy.stripe.com/abc", "active": true}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{StripeKey: "sk_test"})
	c.stripeURL = srv.URL

	doc := decode(t, c.CreatePaymentLink(context.Background(), "T-shirt", "19.99"))

	assert.Equal(t, "payment_link", doc["result_type"])
	assert.Equal(t, "https://buy.stripe.com/abc", doc["url"])
	assert.Equal(t, "19.99 USD", doc["amount"])
	assert.Equal(t, "active", doc["status"])
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		cents    int64
		currency string
		wantErr  bool
	}{
		{"19.99", 1999, "usd", false},
		{"$5", 500, "usd", false},
		{"12.50 EUR", 1250, "eur", false},
		{"", 0, "", true},
		{"free", 0, "", true},
		{"-3", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cents, currency, err := parseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, cents)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestFindLeads(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, map[string]string{
		"/places": `{"places": [
			{"title": "Acme Plumbing", "phoneNumber": "+1 555 0100", "website": "https://acme.example", "rating": 4.5, "ratingCount": 210}
		]}`,
	}))
	defer srv.Close()

	c := NewClient(Config{SerperKey: "k"})
	c.serperURL = srv.URL

	doc := decode(t, c.FindLeads(context.Background(), "plumbers", "Austin"))

	assert.Equal(t, "lead_list", doc["result_type"])
	leads := doc["leads"].([]any)
	require.Len(t, leads, 1)
	lead := leads[0].(map[string]any)
	assert.Equal(t, "Acme Plumbing", lead["company"])
	assert.Equal(t, "+1 555 0100", lead["contact"])
	assert.Equal(t, float64(92), lead["score"])
}

func TestTiktokAuthor(t *testing.T) {
	assert.Equal(t, "cook", tiktokAuthor("https://www.tiktok.com/@cook/video/9", "fallback"))
	assert.Equal(t, "cook", tiktokAuthor("https://www.tiktok.com/@cook", "fallback"))
	assert.Equal(t, "fallback", tiktokAuthor("https://example.com/video", "fallback"))
}
