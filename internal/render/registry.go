package render

// RenderFunc turns a validated payload of one kind into a card. Renderers
// must not panic for their kind, even with every optional field missing, and
// must surface the payload's error field rather than swallow it.
type RenderFunc func(Result) Card

type sourceKey struct {
	kind   string
	source string
}

// Registry maps normalized discriminators to renderers. Overloaded kinds
// (the same result_type produced by different upstream APIs) get
// source-scoped entries; everything unmatched lands on the catch-all.
//
// New kinds are added by registering an entry, not by touching dispatcher
// control flow.
type Registry struct {
	kinds    map[string]RenderFunc
	sources  map[sourceKey]RenderFunc
	catchAll RenderFunc
}

// NewRegistry returns an empty registry whose catch-all is the generic card.
func NewRegistry() *Registry {
	return &Registry{
		kinds:    make(map[string]RenderFunc),
		sources:  make(map[sourceKey]RenderFunc),
		catchAll: renderGeneric,
	}
}

// Register installs (or replaces) the renderer for a kind.
func (reg *Registry) Register(kind string, fn RenderFunc) {
	reg.kinds[NormalizeKind(kind)] = fn
}

// RegisterSource installs a renderer for a (kind, source_api) pair.
// Source-scoped entries take precedence over kind entries.
func (reg *Registry) RegisterSource(kind, source string, fn RenderFunc) {
	reg.sources[sourceKey{NormalizeKind(kind), NormalizeKind(source)}] = fn
}

// SetCatchAll replaces the catch-all renderer.
func (reg *Registry) SetCatchAll(fn RenderFunc) {
	reg.catchAll = fn
}

// CatchAll returns the catch-all renderer.
func (reg *Registry) CatchAll() RenderFunc {
	return reg.catchAll
}

// Lookup resolves a renderer for the normalized discriminator pair.
// Precedence: source-scoped entry, then kind entry. The second return is
// false when only the catch-all would apply.
func (reg *Registry) Lookup(kind, source string) (RenderFunc, bool) {
	if fn, ok := reg.sources[sourceKey{kind, source}]; ok {
		return fn, true
	}
	if fn, ok := reg.kinds[kind]; ok {
		return fn, true
	}
	return reg.catchAll, false
}

// DefaultRegistry ships every card minato knows how to draw.
//
// image_list and video_list are deliberately registered per source only:
// an unrecognized source falls through to the generic card rather than
// guessing a gallery layout for a feed we have never seen.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	reg.Register("weather", renderWeather)
	reg.Register("news_list", renderNews)
	reg.Register("recipe", renderRecipe)
	reg.Register("recipe_list", renderRecipeList)
	reg.Register("reddit_list", renderReddit)
	reg.Register("hackernews_list", renderHackerNews)
	reg.Register("reminders", renderReminders)
	reg.Register("calendar_events", renderCalendar)
	reg.Register("email_list", renderEmail)
	reg.Register("lead_list", renderLeads)
	reg.Register("payment_link", renderPayment)
	reg.Register("video_insights", renderVideoInsights)

	// Web-search family.
	reg.Register("product_list", renderProducts)
	reg.Register("web_snippet", renderWebSnippet)
	reg.Register("answerbox", renderAnswerBox)
	reg.Register("knowledgegraph", renderKnowledgeGraph)

	// Overloaded kinds, disambiguated by source_api.
	reg.RegisterSource("image_list", "pexels_photo", renderPhotoGallery)
	reg.RegisterSource("video_list", "youtube", renderYouTubeGallery)
	reg.RegisterSource("video_list", "serper_tiktok", renderTikTokGallery)

	return reg
}
