// internal/prospects/fixtures_test.go
package prospects

import (
	"time"

	"prospect-dashboard/internal/models"
)

// scriptedRand replays fixed sequences. Values are reduced modulo n so a
// script never produces an out-of-range index; exhausted scripts return 0.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func tinyPools() *Pools {
	return &Pools{
		FirstNames:    []string{"Sarah"},
		LastNames:     []string{"Chen"},
		Organizations: []string{"TechVentures Capital"},
		Cities:        map[string][]string{"NY": {"New York"}},
		Sectors:       []string{"FinTech", "SaaS"},
		Stages:        []string{"Seed"},
		Statuses:      append([]models.Status{}, models.AllStatuses...),
		TargetStates:  []string{"NY"},
		PreferredSectors: []string{
			"FinTech",
		},
		SectorPortfolios: map[string][]string{
			"FinTech": {"Stripe", "Plaid", "Brex"},
			"SaaS":    {"Notion"},
		},
		FallbackPortfolio: []string{"Acme"},
		AreaCodes:         map[string][]string{"NY": {"212"}},
	}
}

func prospect(id int, name, org, email, state string, sectors []string, status models.Status, score int) models.Prospect {
	return models.Prospect{
		ID:       id,
		Name:     name,
		Org:      org,
		Email:    email,
		Location: models.Location{City: "City" + state, State: state, Country: "US"},
		Sectors:  sectors,
		Status:   status,
		FitScore: score,
	}
}

func sampleProspects() []models.Prospect {
	return []models.Prospect{
		prospect(1, "Sarah Chen", "TechVentures Capital", "sarah.chen@techventurescapital.com", "NY", []string{"FinTech", "SaaS"}, models.StatusNew, 95),
		prospect(2, "Michael Johnson", "Summit Partners", "michael.johnson@summitpartners.com", "NJ", []string{"HealthTech"}, models.StatusContacted, 72),
		prospect(3, "Emily Davis", "Lerer Hippeau", "emily.davis@lererhippeau.com", "CT", []string{"SaaS", "AI/ML"}, models.StatusInterested, 95),
		prospect(4, "David Brown", "Work-Bench", "david.brown@work-bench.com", "NY", []string{"Cybersecurity"}, models.StatusPassed, 58),
		prospect(5, "Lisa Wilson", "Chenango Partners", "lisa@chenango.com", "NJ", []string{"PropTech"}, models.StatusMeetingScheduled, 83),
	}
}

func ids(prospects []models.Prospect) []int {
	out := make([]int, len(prospects))
	for i, p := range prospects {
		out[i] = p.ID
	}
	return out
}
