package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsellor/internal/domain"
	"counsellor/internal/logging"
	"counsellor/internal/marketcache/memory"
)

type fakeMarket struct {
	count    int
	listings []domain.Listing
	err      error
	block    bool
	calls    int
}

func (f *fakeMarket) Name() string { return "fake" }

func (f *fakeMarket) Search(ctx context.Context, career string) (int, []domain.Listing, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return 0, nil, ctx.Err()
	}
	return f.count, f.listings, f.err
}

type salaries map[string]int64

func (s salaries) FallbackSalary(career string) (int64, bool) {
	v, ok := s[career]
	return v, ok
}

func (s salaries) Currency() string { return "₹" }

func f64(v float64) *float64 { return &v }

func newAdapter(m domain.JobMarket, opts ...Option) *Adapter {
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	return New(m, salaries{"Software Developer": 700000}, opts...)
}

func TestAverageSalary(t *testing.T) {
	avg := AverageSalary([]domain.Listing{
		{SalaryMin: f64(400000), SalaryMax: f64(600000)},
		{SalaryMin: f64(800000), SalaryMax: f64(1000000)},
		{SalaryMin: f64(1), SalaryMax: nil},
		{},
	})
	require.NotNil(t, avg)
	assert.Equal(t, 700000.0, *avg)

	assert.Nil(t, AverageSalary(nil))
	assert.Nil(t, AverageSalary([]domain.Listing{{SalaryMax: f64(3)}}))
}

func TestDescribe_LiveAverage(t *testing.T) {
	m := &fakeMarket{count: 1234, listings: []domain.Listing{{SalaryMin: f64(600000), SalaryMax: f64(700001)}}}

	got := newAdapter(m).Describe(context.Background(), "Software Developer")

	assert.Equal(t, "📈 Currently, there are about **1234** jobs for **Software Developer**. Average salary: **₹650,000**.", got)
}

func TestDescribe_ZeroCountOmitsPhrase(t *testing.T) {
	m := &fakeMarket{count: 0, listings: []domain.Listing{{SalaryMin: f64(1), SalaryMax: f64(2)}}}

	assert.Empty(t, newAdapter(m).Describe(context.Background(), "Software Developer"))
}

func TestDescribe_FallbackEstimate(t *testing.T) {
	m := &fakeMarket{count: 5, listings: []domain.Listing{{}, {SalaryMin: f64(10)}}}

	got := newAdapter(m).Describe(context.Background(), "Software Developer")

	assert.Equal(t, "📈 Currently, there are about **5** jobs for **Software Developer**. Estimated average salary: **₹700,000**.", got)
}

func TestPhrase_ZeroAverageUsesEstimate(t *testing.T) {
	a := newAdapter(nil)

	got := a.Phrase("Software Developer", domain.MarketData{JobCount: 5, AvgSalary: f64(0)})

	assert.Equal(t, "📈 Currently, there are about **5** jobs for **Software Developer**. Estimated average salary: **₹700,000**.", got)
	assert.Equal(t, "📈 Currently, there are about **5** jobs for **Astronaut**. Salary data not available currently.",
		a.Phrase("Astronaut", domain.MarketData{JobCount: 5, AvgSalary: f64(0)}))
}

func TestDescribe_SalaryUnavailable(t *testing.T) {
	m := &fakeMarket{count: 2}

	got := newAdapter(m).Describe(context.Background(), "Astronaut")

	assert.Equal(t, "📈 Currently, there are about **2** jobs for **Astronaut**. Salary data not available currently.", got)
}

func TestEnrich_FailureIsSwallowed(t *testing.T) {
	m := &fakeMarket{err: errors.New("connection refused")}

	data := newAdapter(m).Enrich(context.Background(), "Doctor")

	assert.Equal(t, domain.MarketData{}, data)
}

func TestEnrich_TimeoutIsFailure(t *testing.T) {
	m := &fakeMarket{block: true}
	start := time.Now()

	data := newAdapter(m, WithTimeout(50*time.Millisecond)).Enrich(context.Background(), "Doctor")

	assert.Zero(t, data.JobCount)
	assert.Nil(t, data.AvgSalary)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEnrich_NilMarket(t *testing.T) {
	assert.Empty(t, newAdapter(nil).Describe(context.Background(), "Doctor"))
}

func TestEnrich_CachesSuccessOnly(t *testing.T) {
	cache := memory.NewStorage(time.Hour)
	m := &fakeMarket{err: errors.New("boom")}
	a := newAdapter(m, WithCache(cache, "in"))
	ctx := context.Background()

	a.Enrich(ctx, "Lawyer")
	m.err = nil
	m.count = 9
	first := a.Enrich(ctx, "Lawyer")
	m.count = 100
	second := a.Enrich(ctx, "Lawyer")

	assert.Equal(t, 9, first.JobCount)
	assert.Equal(t, 9, second.JobCount)
	assert.Equal(t, 2, m.calls)
}
