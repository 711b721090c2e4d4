package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"counsellor/internal/dataset"
	"counsellor/internal/domain"
	"counsellor/internal/recommend"
)

// Fixed replies.
const (
	NoResourcesReply = "Sorry, I don't have specific resources for that career yet."
	NoMatchReply     = "I couldn't detect any specific interest. Try rephrasing?"
	ResourceOffer    = "Would you like learning resources?"
)

var confirmations = map[string]struct{}{
	"yes":        {},
	"yeah":       {},
	"sure":       {},
	"ok":         {},
	"give links": {},
}

// Enricher renders the market-data sentence for a career, or "" when there
// is nothing to say.
type Enricher interface {
	Describe(ctx context.Context, career string) string
}

// Counsellor routes each message either to the resource list of the last
// recommendation or to a fresh recommendation.
type Counsellor struct {
	normalizer       domain.Normalizer
	categories       []domain.CareerCategory
	traits           map[string]struct{}
	resources        domain.ResourceCatalog
	enricher         Enricher
	translator       domain.Translator
	sourceLang       string
	targetLang       string
	translateTimeout time.Duration
	traitWeight      float64
	log              *log.Logger
}

// Option customises a Counsellor.
type Option func(*Counsellor)

// WithTranslator translates every message to target before it is handled.
func WithTranslator(t domain.Translator, source, target string, timeout time.Duration) Option {
	return func(c *Counsellor) {
		c.translator = t
		c.sourceLang = source
		c.targetLang = target
		c.translateTimeout = timeout
	}
}

// WithTraitLearning adds weight to a trait each time the user mentions it.
// Zero disables learning.
func WithTraitLearning(weight float64) Option {
	return func(c *Counsellor) { c.traitWeight = weight }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Counsellor) { c.log = l }
}

// NewCounsellor wires the recommendation core. enricher may be nil.
func NewCounsellor(normalizer domain.Normalizer, categories []domain.CareerCategory, resources domain.ResourceCatalog, enricher Enricher, opts ...Option) *Counsellor {
	c := &Counsellor{
		normalizer:       normalizer,
		categories:       categories,
		resources:        resources,
		enricher:         enricher,
		sourceLang:       "auto",
		targetLang:       "en",
		translateTimeout: 5 * time.Second,
		log:              log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.traits = dataset.Traits(categories)
	return c
}

// Respond handles one user message, updates state and returns the reply.
// The user message and the reply are appended to the transcript whatever
// branch is taken.
func (c *Counsellor) Respond(ctx context.Context, state *domain.SessionState, message string) string {
	text := c.translate(ctx, message)

	var reply string
	if IsConfirmation(text) {
		reply = c.resourcesReply(state)
	} else {
		reply = c.recommendReply(ctx, state, text)
	}

	state.Append(domain.RoleUser, message)
	state.Append(domain.RoleAssistant, reply)
	return reply
}

// IsConfirmation reports whether text asks for the resources of the last
// recommendation.
func IsConfirmation(text string) bool {
	_, ok := confirmations[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

func (c *Counsellor) translate(ctx context.Context, message string) string {
	if c.translator == nil {
		return message
	}
	tctx, cancel := context.WithTimeout(ctx, c.translateTimeout)
	defer cancel()
	out, err := c.translator.Translate(tctx, message, c.sourceLang, c.targetLang)
	if err != nil {
		c.log.Warn("translation failed, using input verbatim", "translator", c.translator.Name(), "err", err)
		return message
	}
	return out
}

func (c *Counsellor) resourcesReply(state *domain.SessionState) string {
	if !state.HasRecommendation() || c.resources == nil {
		return NoResourcesReply
	}
	links, ok := c.resources.Resources(state.LastRecommendation)
	if !ok {
		return NoResourcesReply
	}
	return fmt.Sprintf("Here are great resources to begin your **%s** journey:\n\n%s",
		state.LastRecommendation, strings.Join(links, "\n"))
}

func (c *Counsellor) recommendReply(ctx context.Context, state *domain.SessionState, text string) string {
	tokens := c.normalizer.Normalize(text)
	c.learnTraits(state, tokens)

	res, ok := recommend.Score(tokens, c.categories, state.Personality)
	if !ok {
		c.log.Debug("no interest detected", "session", state.ID, "tokens", tokens)
		return NoMatchReply
	}
	main := res.Primary()
	state.LastRecommendation = main
	c.log.Debug("recommendation", "session", state.ID, "interest", res.Interest, "career", main, "score", res.Score)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your input, a great career would be **%s**! 🎯", main)
	if others := res.Alternates(); len(others) > 0 {
		b.WriteString("\n\nOther roles: ")
		b.WriteString(strings.Join(others, ", "))
	}
	if c.enricher != nil {
		if phrase := c.enricher.Describe(ctx, main); phrase != "" {
			b.WriteString("\n\n")
			b.WriteString(phrase)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(ResourceOffer)
	return b.String()
}

func (c *Counsellor) learnTraits(state *domain.SessionState, tokens []string) {
	if c.traitWeight == 0 {
		return
	}
	if state.Personality == nil {
		state.Personality = domain.PersonalityScore{}
	}
	for _, tok := range tokens {
		if _, ok := c.traits[tok]; ok {
			state.Personality.Add(tok, c.traitWeight)
		}
	}
}
