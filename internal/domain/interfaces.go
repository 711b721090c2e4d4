package domain

import "context"

// CareerCategory is a labeled interest group with the careers it leads to.
// Keywords and PersonalityTraits hold normalized tokens.
type CareerCategory struct {
	Interest          string
	Keywords          map[string]struct{}
	Careers           []string
	PersonalityTraits []string
}

// HasKeyword reports whether tok is one of the category keywords.
func (c CareerCategory) HasKeyword(tok string) bool {
	_, ok := c.Keywords[tok]
	return ok
}

// PersonalityScore maps a trait name to its accumulated weight.
type PersonalityScore map[string]float64

// Bonus sums the weights of the given traits. Unknown traits weigh zero.
func (p PersonalityScore) Bonus(traits []string) float64 {
	sum := 0.0
	for _, t := range traits {
		sum += p[t]
	}
	return sum
}

// Add increases the weight of a trait.
func (p PersonalityScore) Add(trait string, weight float64) {
	p[trait] += weight
}

// RecommendationResult is the best-scoring category of a single turn.
// Careers is never empty; Careers[0] is the primary career.
type RecommendationResult struct {
	Interest string
	Score    float64
	Careers  []string
}

// Primary returns the first career of the result.
func (r RecommendationResult) Primary() string { return r.Careers[0] }

// Alternates returns every career but the primary one.
func (r RecommendationResult) Alternates() []string { return r.Careers[1:] }

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry.
type Message struct {
	Role Role
	Text string
}

// Listing is one job posting as returned by a job-market service.
// Salary bounds are nil when absent or not numeric.
type Listing struct {
	SalaryMin *float64
	SalaryMax *float64
}

// MarketData summarises live demand for a career.
type MarketData struct {
	JobCount  int
	AvgSalary *float64
}

// Normalizer turns free text into canonical tokens.
type Normalizer interface {
	Normalize(text string) []string
}

// Translator converts text between languages.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// JobMarket queries a job-search service for a career title.
type JobMarket interface {
	Name() string
	Search(ctx context.Context, career string) (count int, listings []Listing, err error)
}

// ResourceCatalog maps a career name to display-formatted learning links.
type ResourceCatalog interface {
	Resources(career string) ([]string, bool)
}

// SalaryTable holds static salary estimates per career.
type SalaryTable interface {
	FallbackSalary(career string) (int64, bool)
	Currency() string
}

// CounsellorService defines the operations exposed by the application core.
type CounsellorService interface {
	Respond(ctx context.Context, state *SessionState, message string) string
}

// SessionState is the memory of one conversation. It is owned by the caller
// and must not be shared between conversations.
type SessionState struct {
	ID                 string
	History            []Message
	LastRecommendation string
	Personality        PersonalityScore
}

// HasRecommendation reports whether a career was recommended in this session.
func (s *SessionState) HasRecommendation() bool { return s.LastRecommendation != "" }

// Append records a transcript entry.
func (s *SessionState) Append(role Role, text string) {
	s.History = append(s.History, Message{Role: role, Text: text})
}
