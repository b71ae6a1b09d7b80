// internal/prospects/generator.go
package prospects

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"prospect-dashboard/internal/models"
)

const (
	DefaultCount = 75
	MaxCount     = 10000

	BaseFitScore = 50
	GeoBonus     = 20
	SectorBonus  = 15
	// Jitter is IntN(JitterSpan) + JitterMin, i.e. uniform over [-5, +15).
	JitterMin  = -5
	JitterSpan = 20
	// MinFitScore is the clamp floor of the canonical generator revision.
	MinFitScore      = 30
	MaxFitScore      = 100
	HighFitThreshold = 80

	MinPortfolio = 3
	MaxPortfolio = 10

	maxSectorDraws = 3
	maxStageDraws  = 2
	maxSourceID    = 5

	createdWindow   = 90 * 24 * time.Hour
	updatedWindow   = 30 * 24 * time.Hour
	enrichedWindow  = 7 * 24 * time.Hour
	contactedWindow = 14 * 24 * time.Hour

	defaultCountry = "US"
)

var (
	ErrInvalidCount = errors.New("invalid prospect count")
	ErrUnknownMode  = errors.New("unknown generation mode")
)

// Generator builds prospect collections from injected pools.
// It is safe for concurrent use.
type Generator struct {
	pools *Pools
	now   Clock

	mu  sync.Mutex
	rng Rand
}

type Option func(*Generator)

// WithRand replaces the random source.
func WithRand(r Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithClock replaces the clock used for timestamps.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.now = c }
}

// NewGenerator returns a generator over pools.
func NewGenerator(pools *Pools, opts ...Option) (*Generator, error) {
	if pools == nil {
		return nil, fmt.Errorf("%w: pools are nil", ErrInvalidPools)
	}
	g := &Generator{
		pools: pools,
		now:   time.Now,
		rng:   NewTimeSeededRand(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Pools returns the pools the generator draws from.
func (g *Generator) Pools() *Pools {
	return g.pools
}

// Generate produces a collection in the given mode. count is only used by
// synthetic mode; zero means DefaultCount.
func (g *Generator) Generate(mode models.GenerationMode, count int) ([]models.Prospect, error) {
	switch mode {
	case models.ModeSynthetic, "":
		return g.Synthetic(count)
	case models.ModeSeed:
		return g.FromSeeds()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Synthetic produces count random prospects sorted by fit score, highest first.
func (g *Generator) Synthetic(count int) ([]models.Prospect, error) {
	if count == 0 {
		count = DefaultCount
	}
	if count < 0 || count > MaxCount {
		return nil, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidCount, count, MaxCount)
	}
	if err := g.pools.ValidateSynthetic(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	states := g.pools.States()
	out := make([]models.Prospect, 0, count)
	for i := 0; i < count; i++ {
		first := pick(g.rng, g.pools.FirstNames)
		last := pick(g.rng, g.pools.LastNames)
		org := pick(g.rng, g.pools.Organizations)
		state := pick(g.rng, states)
		city := pick(g.rng, g.pools.Cities[state])

		sectors := g.drawDistinct(g.pools.Sectors, maxSectorDraws)
		stages := g.drawDistinct(g.pools.Stages, maxStageDraws)

		p := models.Prospect{
			ID:               i + 1,
			Name:             first + " " + last,
			FirstName:        first,
			LastName:         last,
			Org:              org,
			Location:         models.Location{City: city, State: state, Country: defaultCountry},
			Sectors:          sectors,
			StagePreferences: stages,
		}
		g.fill(&p, "", now)
		out = append(out, p)
	}

	SortByFitScore(out)
	return out, nil
}

// FromSeeds produces one prospect per seed profile, sorted by fit score.
func (g *Generator) FromSeeds() ([]models.Prospect, error) {
	if err := g.pools.ValidateSeeds(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	out := make([]models.Prospect, 0, len(g.pools.Seeds))
	for i, seed := range g.pools.Seeds {
		first, last := splitName(seed.Name)
		country := seed.Country
		if country == "" {
			country = defaultCountry
		}
		p := models.Prospect{
			ID:               i + 1,
			Name:             strings.TrimSpace(seed.Name),
			FirstName:        first,
			LastName:         last,
			Org:              seed.Org,
			Location:         models.Location{City: seed.City, State: seed.State, Country: country},
			Sectors:          appendUnique(nil, seed.Sectors...),
			StagePreferences: appendUnique(nil, seed.StagePreferences...),
			Email:            seed.Email,
			LinkedIn:         seed.LinkedIn,
			Website:          seed.Website,
			Phone:            seed.Phone,
			Notes:            seed.Notes,
		}
		g.fill(&p, models.Status(seed.Status), now)
		out = append(out, p)
	}

	SortByFitScore(out)
	return out, nil
}

// fill derives every field that does not come from identity data. The draw
// order is fixed so that a scripted Rand produces a predictable record.
func (g *Generator) fill(p *models.Prospect, status models.Status, now time.Time) {
	p.CheckSize = CheckSizeFor(p.StagePreferences)
	p.FitScore = g.fitScore(p.Location, p.Sectors)

	if !status.Valid() {
		status = g.pools.Statuses[g.rng.IntN(len(g.pools.Statuses))]
	}
	p.Status = status
	p.WhySummary = g.whySummary(p)
	p.Portfolio = g.portfolio(p.Sectors)

	slug := orgSlug(p.Org)
	if p.Email == "" {
		p.Email = fmt.Sprintf("%s.%s@%s.com", strings.ToLower(p.FirstName), strings.ToLower(p.LastName), slug)
	}
	if p.LinkedIn == "" {
		p.LinkedIn = "linkedin.com/in/" + strings.ToLower(p.FirstName+p.LastName)
	}
	if p.Website == "" {
		p.Website = "https://www." + slug + ".com"
	}
	if p.Phone == "" {
		p.Phone = g.phone(p.Location.State)
	}

	p.Tags = []string{}
	p.CreatedAt = g.pastTime(now, createdWindow)
	p.UpdatedAt = g.pastTime(now, updatedWindow)
	p.LastEnrichedAt = g.pastTime(now, enrichedWindow)
	if p.Status != models.StatusNew {
		contacted := g.pastTime(now, contactedWindow)
		p.LastContactedAt = &contacted
	}
	p.SourceID = g.rng.IntN(maxSourceID) + 1
}

// CheckSizeFor derives the check size range from stage preferences. Rules are
// evaluated in priority order and the first match wins regardless of the
// order of stages.
func CheckSizeFor(stages []string) models.CheckSize {
	if contains(stages, "Pre-Seed") {
		return models.CheckSize{Min: 50_000, Max: 250_000}
	}
	if contains(stages, "Seed") {
		return models.CheckSize{Min: 250_000, Max: 1_500_000}
	}
	if contains(stages, "Series A") {
		return models.CheckSize{Min: 1_000_000, Max: 5_000_000}
	}
	return models.CheckSize{Min: 500_000, Max: 3_000_000}
}

// BaseFitScoreFor returns the deterministic part of the fit score.
func (g *Generator) BaseFitScoreFor(loc models.Location, sectors []string) int {
	score := BaseFitScore
	if contains(g.pools.TargetStates, loc.State) {
		score += GeoBonus
	}
	for _, s := range sectors {
		if contains(g.pools.PreferredSectors, s) {
			score += SectorBonus
			break
		}
	}
	return score
}

func (g *Generator) fitScore(loc models.Location, sectors []string) int {
	score := g.BaseFitScoreFor(loc, sectors) + g.rng.IntN(JitterSpan) + JitterMin
	return ClampFitScore(score)
}

// ClampFitScore bounds a raw score to [MinFitScore, MaxFitScore].
func ClampFitScore(score int) int {
	if score > MaxFitScore {
		return MaxFitScore
	}
	if score < MinFitScore {
		return MinFitScore
	}
	return score
}

func (g *Generator) drawDistinct(pool []string, maxDraws int) []string {
	n := g.rng.IntN(maxDraws) + 1
	out := make([]string, 0, n)
	for j := 0; j < n; j++ {
		out = appendUnique(out, pick(g.rng, pool))
	}
	return out
}

func (g *Generator) portfolio(sectors []string) []string {
	var candidates []string
	for _, s := range sectors {
		candidates = appendUnique(candidates, g.pools.SectorPortfolios[s]...)
	}
	if len(candidates) == 0 {
		candidates = append(candidates, g.pools.FallbackPortfolio...)
	}

	shuffle(g.rng, candidates)
	n := g.rng.IntN(MaxPortfolio-MinPortfolio+1) + MinPortfolio
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

func (g *Generator) phone(state string) string {
	var area string
	if codes := g.pools.AreaCodes[state]; len(codes) > 0 {
		area = pick(g.rng, codes)
	} else {
		area = fmt.Sprintf("%d", g.rng.IntN(900)+100)
	}
	exchange := g.rng.IntN(900) + 100
	subscriber := g.rng.IntN(9000) + 1000
	return fmt.Sprintf("(%s) %d-%d", area, exchange, subscriber)
}

func (g *Generator) pastTime(now time.Time, window time.Duration) time.Time {
	offset := time.Duration(g.rng.Float64() * float64(window))
	return now.Add(-offset).Truncate(time.Millisecond)
}

func (g *Generator) whySummary(p *models.Prospect) string {
	primary := p.Sectors[0]
	switch g.rng.IntN(5) {
	case 0:
		return fmt.Sprintf("%s at %s has strong focus on %s with recent investments in the %s area. Geographic proximity and investment thesis align perfectly with your portfolio.",
			p.FirstName, p.Org, primary, p.Location.State)
	case 1:
		return fmt.Sprintf("Excellent fit based on %s's portfolio concentration in %s. %s actively seeks early-stage opportunities and has a track record of hands-on mentorship.",
			p.Org, strings.Join(p.Sectors, " and "), p.FirstName)
	case 2:
		return fmt.Sprintf("%s recently closed a new fund focused on %s investments. %s is known for quick decision-making and bringing strategic value beyond capital.",
			p.Org, primary, p.FirstName)
	case 3:
		return fmt.Sprintf("%s has been actively investing in the %s startup ecosystem. %s offers strong network connections and operational expertise.",
			p.FirstName, p.Location.State, p.Org)
	default:
		return fmt.Sprintf("Perfect stage alignment with %s's sweet spot. %s has made %d investments in %s over the past 3 years.",
			p.Org, p.FirstName, g.rng.IntN(15)+5, primary)
	}
}

// SortByFitScore orders prospects by fit score, highest first. Ties keep
// their insertion order.
func SortByFitScore(prospects []models.Prospect) {
	sort.SliceStable(prospects, func(i, j int) bool {
		return prospects[i].FitScore > prospects[j].FitScore
	})
}

func orgSlug(org string) string {
	return strings.Join(strings.Fields(strings.ToLower(org)), "")
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}
