package render

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Dispatcher routes tool payloads to cards. It is stateless per call, never
// mutates a payload, and converts every input irregularity into a display
// state instead of an error: callers above it never see a failure caused by
// malformed tool output.
type Dispatcher struct {
	registry *Registry
	log      *zap.Logger
	width    int
	payments bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRegistry injects a renderer registry. Defaults to DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(d *Dispatcher) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// WithLogger injects the advisory logging sink. Defaults to a no-op logger;
// logging failures never affect dispatch outcome.
func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithWidth sets the card envelope width.
func WithWidth(width int) Option {
	return func(d *Dispatcher) {
		if width > 0 {
			d.width = width
		}
	}
}

// WithPaymentLinks toggles payment-link results. When disabled, a
// payment_link payload short-circuits to a fixed notice instead of a card.
func WithPaymentLinks(enabled bool) Option {
	return func(d *Dispatcher) {
		d.payments = enabled
	}
}

// New creates a dispatcher with the default registry, a no-op logger, and
// payment links enabled.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: DefaultRegistry(),
		log:      zap.NewNop(),
		width:    76,
		payments: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch resolves input to at most one card.
//
// A string that parses as JSON but fails shape validation is returned
// verbatim as prose (tools legitimately answer in free text); a string that
// is not JSON at all yields a parse-error card; an object that fails
// validation yields nothing. A validated payload always yields exactly one
// card: a specific renderer if the discriminators match, the catch-all
// otherwise.
func (d *Dispatcher) Dispatch(in Input) *Card {
	if in.Empty() {
		return nil
	}

	fields := in.value
	if in.isRaw {
		trimmed := strings.TrimSpace(in.raw)
		if trimmed == "" {
			return nil
		}
		if !looksLikeJSON(trimmed) {
			// Free-text tool reply; not worth a parse attempt.
			return &Card{Kind: KindText, Body: in.raw}
		}
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return d.parseError(err)
		}
		// Non-object JSON (arrays, bare strings) can never validate; it
		// falls through to the prose path below.
		fields, _ = parsed.(map[string]any)
	}

	if !IsStructuredResult(fields) {
		if in.isRaw {
			// Valid JSON without the result shape is still prose, e.g. a
			// model quoting a JSON fragment. Preserve the original string.
			return &Card{Kind: KindText, Body: in.raw}
		}
		return nil
	}

	r := NewResult(fields)
	kind, source := r.Type(), r.Source()

	// Cross-cutting short-circuits that outrank normal routing.
	if kind == "payment_link" && (!d.payments || r.Bool("payments_disabled")) {
		return d.envelope(paymentsDisabledCard())
	}

	fn, matched := d.registry.Lookup(kind, source)
	if !matched {
		// Advisory only: a future registry entry, not a failure.
		d.log.Info("unmatched result kind, using catch-all",
			zap.String("result_type", kind),
			zap.String("source_api", source),
		)
	}

	card := fn(r)
	return d.envelope(card)
}

// DispatchJSON is a convenience for raw tool transport output.
func (d *Dispatcher) DispatchJSON(raw string) *Card {
	return d.Dispatch(Text(raw))
}

func (d *Dispatcher) parseError(err error) *Card {
	d.log.Warn("tool result is not valid JSON", zap.Error(err))
	body := cardErrorStyle.Render("✗ Could not read tool result") + "\n" +
		cardDimStyle.Render("The tool returned malformed data. Try the request again.")
	return d.envelope(Card{Kind: KindParseError, Title: "Tool Error", Body: body})
}

var envelopeStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("241")).
	Padding(0, 1)

// envelope wraps renderer output in the uniform card container. It is the
// single choke-point every card passes through; prose output skips it.
func (d *Dispatcher) envelope(card Card) *Card {
	body := orPlaceholder(card.Body)
	if card.Title != "" {
		body = cardTitleStyle.Render(card.Title) + "\n" + body
	}
	card.Body = envelopeStyle.Width(d.width).Render(body)
	return &card
}

func paymentsDisabledCard() Card {
	return Card{
		Kind:  KindPaymentDisabled,
		Title: "Payment Links",
		Body: cardDimStyle.Render("Payment links are disabled in this workspace.") + "\n" +
			cardDimStyle.Render("Ask an administrator to enable payments.enabled in the config."),
	}
}

// looksLikeJSON is a cheap pre-filter so ordinary prose never pays for a
// failed parse. Anything that plausibly opens a JSON document goes through
// the real parser, which stays the source of truth.
func looksLikeJSON(s string) bool {
	switch s[0] {
	case '{', '[', '"':
		return true
	}
	return false
}
