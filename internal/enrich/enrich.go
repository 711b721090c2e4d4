// Package enrich augments a recommended career with job-market statistics.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"counsellor/internal/domain"
	"counsellor/internal/marketcache"
)

// Adapter wraps a JobMarket so that every failure degrades to "no data".
type Adapter struct {
	market   domain.JobMarket
	salaries domain.SalaryTable
	cache    marketcache.Storage
	country  string
	timeout  time.Duration
	log      *log.Logger
	printer  *message.Printer
}

// Option customises an Adapter.
type Option func(*Adapter)

// WithCache stores successful lookups in s, keyed by country and career.
func WithCache(s marketcache.Storage, country string) Option {
	return func(a *Adapter) {
		a.cache = s
		a.country = country
	}
}

// WithTimeout bounds each lookup. Expiry counts as a failed lookup.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New creates an Adapter. A nil market disables live lookups.
func New(market domain.JobMarket, salaries domain.SalaryTable, opts ...Option) *Adapter {
	a := &Adapter{
		market:   market,
		salaries: salaries,
		timeout:  5 * time.Second,
		log:      log.Default(),
		printer:  message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Enrich returns live market data for career. It never fails: transport,
// decoding and timeout errors are logged and yield a zero MarketData.
func (a *Adapter) Enrich(ctx context.Context, career string) domain.MarketData {
	if a.market == nil {
		return domain.MarketData{}
	}
	key := marketcache.Key(a.country, career)
	if a.cache != nil {
		data, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			a.log.Warn("market cache read failed", "career", career, "err", err)
		} else if ok {
			a.log.Debug("market cache hit", "career", career)
			return data
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	count, listings, err := a.market.Search(lookupCtx, career)
	if err != nil {
		a.log.Warn("job market lookup failed", "provider", a.market.Name(), "career", career, "err", err)
		return domain.MarketData{}
	}
	data := domain.MarketData{JobCount: count, AvgSalary: AverageSalary(listings)}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, data); err != nil {
			a.log.Warn("market cache write failed", "career", career, "err", err)
		}
	}
	return data
}

// Describe looks up career and renders the market sentence for a reply.
// It returns "" when no postings were found.
func (a *Adapter) Describe(ctx context.Context, career string) string {
	return a.Phrase(career, a.Enrich(ctx, career))
}

// Phrase renders data for career. With no postings it returns "". Otherwise it
// states the count followed by the live average salary, the static estimate
// for career, or a note that salary data is unavailable, in that order of
// preference. A zero average counts as missing.
func (a *Adapter) Phrase(career string, data domain.MarketData) string {
	if data.JobCount <= 0 {
		return ""
	}
	s := fmt.Sprintf("📈 Currently, there are about **%d** jobs for **%s**.", data.JobCount, career)
	currency := ""
	if a.salaries != nil {
		currency = a.salaries.Currency()
	}
	switch {
	case data.AvgSalary != nil && *data.AvgSalary > 0:
		s += fmt.Sprintf(" Average salary: **%s%s**.", currency, a.printer.Sprintf("%d", int64(*data.AvgSalary)))
	case a.salaries != nil:
		if est, ok := a.salaries.FallbackSalary(career); ok {
			s += fmt.Sprintf(" Estimated average salary: **%s%s**.", currency, a.printer.Sprintf("%d", est))
		} else {
			s += " Salary data not available currently."
		}
	default:
		s += " Salary data not available currently."
	}
	return s
}

// AverageSalary averages the midpoints of listings whose bounds are both
// present. It returns nil when no listing qualifies.
func AverageSalary(listings []domain.Listing) *float64 {
	sum, n := 0.0, 0
	for _, l := range listings {
		if l.SalaryMin == nil || l.SalaryMax == nil {
			continue
		}
		sum += (*l.SalaryMin + *l.SalaryMax) / 2
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
