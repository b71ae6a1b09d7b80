// internal/prospects/filter.go
package prospects

import (
	"strings"

	"prospect-dashboard/internal/models"
)

// Filter returns the prospects matching every active criterion, in input
// order. The input slice is never modified.
func Filter(prospects []models.Prospect, criteria models.FilterCriteria) []models.Prospect {
	m := newMatcher(criteria)
	out := make([]models.Prospect, 0, len(prospects))
	for _, p := range prospects {
		if m.match(&p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a single prospect satisfies criteria.
func Matches(p *models.Prospect, criteria models.FilterCriteria) bool {
	return newMatcher(criteria).match(p)
}

type matcher struct {
	search   string
	sectors  map[string]struct{}
	states   map[string]struct{}
	statuses map[models.Status]struct{}
	min, max int
}

func newMatcher(c models.FilterCriteria) matcher {
	m := matcher{search: strings.ToLower(c.Search)}
	m.min, m.max = c.ScoreRange.Bounds()
	if len(c.Sectors) > 0 {
		m.sectors = toSet(c.Sectors)
	}
	if len(c.States) > 0 {
		m.states = toSet(c.States)
	}
	if len(c.Statuses) > 0 {
		m.statuses = make(map[models.Status]struct{}, len(c.Statuses))
		for _, s := range c.Statuses {
			m.statuses[s] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(p *models.Prospect) bool {
	if m.search != "" &&
		!strings.Contains(strings.ToLower(p.Name), m.search) &&
		!strings.Contains(strings.ToLower(p.Org), m.search) &&
		!strings.Contains(strings.ToLower(p.Email), m.search) {
		return false
	}

	if m.sectors != nil {
		hit := false
		for _, s := range p.Sectors {
			if _, ok := m.sectors[s]; ok {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if m.states != nil {
		if _, ok := m.states[p.Location.State]; !ok {
			return false
		}
	}

	if m.statuses != nil {
		if _, ok := m.statuses[p.Status]; !ok {
			return false
		}
	}

	return p.FitScore >= m.min && p.FitScore <= m.max
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
