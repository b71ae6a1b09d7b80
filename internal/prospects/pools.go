// internal/prospects/pools.go
package prospects

import (
	"errors"
	"fmt"
	"sort"

	"prospect-dashboard/internal/models"
)

var ErrInvalidPools = errors.New("invalid generator pools")

// SeedProfile is a curated investor profile used by seed mode. Contact fields
// left empty are synthesized from the organization and location.
type SeedProfile struct {
	Name             string   `json:"name" yaml:"name"`
	Org              string   `json:"org" yaml:"org"`
	City             string   `json:"city" yaml:"city"`
	State            string   `json:"state" yaml:"state"`
	Country          string   `json:"country,omitempty" yaml:"country,omitempty"`
	Sectors          []string `json:"sectors" yaml:"sectors"`
	StagePreferences []string `json:"stagePreferences" yaml:"stagePreferences"`
	Status           string   `json:"status,omitempty" yaml:"status,omitempty"`
	Email            string   `json:"email,omitempty" yaml:"email,omitempty"`
	LinkedIn         string   `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website          string   `json:"website,omitempty" yaml:"website,omitempty"`
	Phone            string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Notes            string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Pools is the read-only data the generator draws from.
type Pools struct {
	FirstNames        []string            `yaml:"firstNames"`
	LastNames         []string            `yaml:"lastNames"`
	Organizations     []string            `yaml:"organizations"`
	Cities            map[string][]string `yaml:"cities"`
	Sectors           []string            `yaml:"sectors"`
	Stages            []string            `yaml:"stages"`
	Statuses          []models.Status     `yaml:"statuses"`
	TargetStates      []string            `yaml:"targetStates"`
	PreferredSectors  []string            `yaml:"preferredSectors"`
	SectorPortfolios  map[string][]string `yaml:"sectorPortfolios"`
	FallbackPortfolio []string            `yaml:"fallbackPortfolio"`
	AreaCodes         map[string][]string `yaml:"areaCodes"`
	Seeds             []SeedProfile       `yaml:"seeds"`
}

// States returns the state codes that have cities, sorted.
func (p *Pools) States() []string {
	states := make([]string, 0, len(p.Cities))
	for state, cities := range p.Cities {
		if len(cities) > 0 {
			states = append(states, state)
		}
	}
	sort.Strings(states)
	return states
}

// ValidateSynthetic checks that every pool synthetic mode draws from is populated.
func (p *Pools) ValidateSynthetic() error {
	switch {
	case len(p.FirstNames) == 0:
		return fmt.Errorf("%w: firstNames is empty", ErrInvalidPools)
	case len(p.LastNames) == 0:
		return fmt.Errorf("%w: lastNames is empty", ErrInvalidPools)
	case len(p.Organizations) == 0:
		return fmt.Errorf("%w: organizations is empty", ErrInvalidPools)
	case len(p.States()) == 0:
		return fmt.Errorf("%w: cities is empty", ErrInvalidPools)
	case len(p.Sectors) == 0:
		return fmt.Errorf("%w: sectors is empty", ErrInvalidPools)
	case len(p.Stages) == 0:
		return fmt.Errorf("%w: stages is empty", ErrInvalidPools)
	case len(p.Statuses) == 0:
		return fmt.Errorf("%w: statuses is empty", ErrInvalidPools)
	}
	return nil
}

// ValidateSeeds checks that seed mode can produce records satisfying the
// non-empty sector and stage invariants.
func (p *Pools) ValidateSeeds() error {
	if len(p.Seeds) == 0 {
		return fmt.Errorf("%w: seeds is empty", ErrInvalidPools)
	}
	if len(p.Statuses) == 0 {
		return fmt.Errorf("%w: statuses is empty", ErrInvalidPools)
	}
	for i, s := range p.Seeds {
		if s.Name == "" || s.Org == "" {
			return fmt.Errorf("%w: seed %d requires name and org", ErrInvalidPools, i)
		}
		if s.State == "" {
			return fmt.Errorf("%w: seed %d (%s) requires state", ErrInvalidPools, i, s.Name)
		}
		if len(s.Sectors) == 0 || len(s.StagePreferences) == 0 {
			return fmt.Errorf("%w: seed %d (%s) requires sectors and stagePreferences", ErrInvalidPools, i, s.Name)
		}
	}
	return nil
}

// WithPennsylvania returns a copy of the pools with PA added to the city pool
// and to the target geography.
func (p *Pools) WithPennsylvania() *Pools {
	out := *p
	out.Cities = make(map[string][]string, len(p.Cities)+1)
	for k, v := range p.Cities {
		out.Cities[k] = v
	}
	if _, ok := out.Cities["PA"]; !ok {
		out.Cities["PA"] = pennsylvaniaCities
	}
	out.TargetStates = appendUnique(append([]string{}, p.TargetStates...), "PA")
	return &out
}

var pennsylvaniaCities = []string{
	"Philadelphia", "Pittsburgh", "King of Prussia", "Radnor", "Conshohocken", "Malvern",
}

// DefaultPools returns the built-in tri-state pools.
func DefaultPools() *Pools {
	return &Pools{
		FirstNames: []string{
			"Sarah", "Michael", "Jennifer", "David", "Emily", "Robert", "Lisa", "James",
			"Amanda", "John", "Rachel", "William", "Jessica", "Daniel", "Michelle",
			"Christopher", "Laura", "Matthew", "Ashley", "Andrew", "Stephanie", "Kevin",
			"Nicole", "Brian", "Elizabeth", "Thomas", "Rebecca", "Ryan", "Maria", "Jason",
		},
		LastNames: []string{
			"Chen", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson", "Moore",
			"Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin",
			"Thompson", "Garcia", "Martinez", "Robinson", "Clark", "Rodriguez", "Lewis",
			"Lee", "Walker", "Hall", "Allen", "Young", "King", "Wright", "Lopez",
		},
		Organizations: []string{
			"TechVentures Capital", "Summit Partners", "Elevation Capital", "Insight Ventures",
			"Accel Partners", "FirstMark Capital", "Union Square Ventures", "Greycroft Partners",
			"RRE Ventures", "Lerer Hippeau", "Primary Venture Partners", "Work-Bench",
			"Tiger Global", "General Catalyst", "Bessemer Venture Partners", "Matrix Partners",
			"Sequoia Capital", "Lightspeed Venture", "Andreessen Horowitz", "Kleiner Perkins",
			"Battery Ventures", "Spark Capital", "Foundry Group", "True Ventures",
			"CrossLink Capital", "Upfront Ventures", "Mayfield Fund", "NEA",
			"Index Ventures", "Greylock Partners", "Benchmark Capital", "New Enterprise Associates",
			"Bain Capital Ventures", "CRV", "Canaan Partners", "Highland Capital",
			"Polaris Partners", "Atlas Venture", "Trinity Ventures", "Menlo Ventures",
		},
		Cities: map[string][]string{
			"NY": {"New York", "Brooklyn", "White Plains", "Yonkers", "New Rochelle", "Scarsdale", "Manhattan", "Queens", "Westchester", "Long Island"},
			"NJ": {"Jersey City", "Hoboken", "Princeton", "Newark", "Montclair", "Fort Lee", "Morristown", "Paramus"},
			"CT": {"Stamford", "Greenwich", "New Haven", "Hartford", "Westport", "Norwalk", "Danbury", "Bridgeport"},
		},
		Sectors: []string{
			"FinTech", "SaaS", "HealthTech", "EdTech", "E-commerce",
			"Enterprise Software", "Consumer", "Cybersecurity", "AI/ML",
			"IoT", "CleanTech", "FoodTech", "PropTech", "LegalTech",
		},
		Stages:           []string{"Pre-Seed", "Seed", "Series A", "Series B"},
		Statuses:         append([]models.Status{}, models.AllStatuses...),
		TargetStates:     []string{"NY", "NJ", "CT"},
		PreferredSectors: []string{"FinTech", "SaaS", "HealthTech", "Enterprise Software"},
		SectorPortfolios: map[string][]string{
			"FinTech":             {"Stripe", "Coinbase", "Robinhood", "Plaid", "Chime", "Brex", "Affirm"},
			"SaaS":                {"Slack", "Zoom", "Asana", "Notion", "Figma", "Airtable", "Dropbox"},
			"Enterprise Software": {"Asana", "Airtable", "Dropbox", "Datadog", "MongoDB", "UiPath"},
			"HealthTech":          {"Oscar Health", "Ro", "Hims", "One Medical", "Devoted Health", "Cityblock"},
			"EdTech":              {"Coursera", "Udemy", "Duolingo", "Masterclass", "Guild Education"},
			"E-commerce":          {"Shopify", "Instacart", "DoorDash", "Faire", "Warby Parker"},
			"Consumer":            {"Warby Parker", "Glossier", "Allbirds", "Peloton", "Sweetgreen"},
			"Cybersecurity":       {"CrowdStrike", "Snyk", "Abnormal Security", "Wiz", "1Password"},
			"AI/ML":               {"Hugging Face", "Scale AI", "Runway", "Weights & Biases", "Cohere"},
			"IoT":                 {"Samsara", "Particle", "Latch", "Ring"},
			"CleanTech":           {"Arcadia", "Palmetto", "Span", "Redwood Materials"},
			"FoodTech":            {"Sweetgreen", "Instacart", "DoorDash", "Daily Harvest"},
			"PropTech":            {"Compass", "Latch", "Divvy Homes", "Pacaso"},
			"LegalTech":           {"Clio", "Ironclad", "Everlaw", "LegalZoom"},
		},
		FallbackPortfolio: []string{
			"Stripe", "Coinbase", "Robinhood", "Plaid", "Chime", "Brex", "Affirm",
			"Slack", "Zoom", "Asana", "Notion", "Figma", "Airtable", "Dropbox",
			"Oscar Health", "Ro", "Hims", "One Medical", "Devoted Health", "Cityblock",
			"Coursera", "Udemy", "Duolingo", "Masterclass", "Guild Education",
			"Shopify", "Instacart", "DoorDash", "Faire", "Warby Parker",
		},
		AreaCodes: map[string][]string{
			"NY": {"212", "646", "718", "917", "914", "516", "631"},
			"NJ": {"201", "973", "732", "908", "609", "856"},
			"CT": {"203", "860", "475"},
			"PA": {"215", "267", "412", "484", "610", "717"},
		},
		Seeds: defaultSeeds(),
	}
}

func defaultSeeds() []SeedProfile {
	return []SeedProfile{
		{Name: "Sarah Chen", Org: "TechVentures Capital", City: "New York", State: "NY", Sectors: []string{"FinTech", "SaaS"}, StagePreferences: []string{"Seed", "Series A"}, Notes: "Met at NYC FinTech week."},
		{Name: "Michael Johnson", Org: "Union Square Ventures", City: "Manhattan", State: "NY", Sectors: []string{"Consumer", "AI/ML"}, StagePreferences: []string{"Series A"}, Email: "mjohnson@usv.example.com"},
		{Name: "Jennifer Williams", Org: "Lerer Hippeau", City: "Brooklyn", State: "NY", Sectors: []string{"E-commerce", "Consumer"}, StagePreferences: []string{"Pre-Seed", "Seed"}},
		{Name: "David Brown", Org: "Work-Bench", City: "New York", State: "NY", Sectors: []string{"Enterprise Software", "Cybersecurity"}, StagePreferences: []string{"Seed"}, Website: "https://www.work-bench.example.com"},
		{Name: "Emily Davis", Org: "Primary Venture Partners", City: "Hoboken", State: "NJ", Sectors: []string{"SaaS"}, StagePreferences: []string{"Pre-Seed"}},
		{Name: "Robert Miller", Org: "Greycroft Partners", City: "Princeton", State: "NJ", Sectors: []string{"HealthTech", "EdTech"}, StagePreferences: []string{"Series A", "Series B"}, Phone: "(609) 555-0142"},
		{Name: "Lisa Wilson", Org: "Elevation Capital", City: "Jersey City", State: "NJ", Sectors: []string{"PropTech"}, StagePreferences: []string{"Series B"}},
		{Name: "James Moore", Org: "Atlas Venture", City: "Stamford", State: "CT", Sectors: []string{"HealthTech"}, StagePreferences: []string{"Seed", "Series A"}, LinkedIn: "linkedin.com/in/jamesmoore-vc"},
		{Name: "Amanda Taylor", Org: "Highland Capital", City: "Greenwich", State: "CT", Sectors: []string{"CleanTech", "IoT"}, StagePreferences: []string{"Series A"}},
		{Name: "John Anderson", Org: "FirstMark Capital", City: "New Haven", State: "CT", Sectors: []string{"LegalTech", "SaaS"}, StagePreferences: []string{"Seed"}},
		{Name: "Rachel Thomas", Org: "RRE Ventures", City: "White Plains", State: "NY", Sectors: []string{"FoodTech", "Consumer"}, StagePreferences: []string{"Pre-Seed"}, Status: string(models.StatusContacted)},
		{Name: "William Jackson", Org: "Bessemer Venture Partners", City: "Westport", State: "CT", Sectors: []string{"Cybersecurity", "AI/ML"}, StagePreferences: []string{"Series B"}},
	}
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
