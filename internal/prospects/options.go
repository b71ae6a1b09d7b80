// internal/prospects/options.go
package prospects

import (
	"sort"

	"prospect-dashboard/internal/models"
)

// Options returns the sorted distinct sectors, states and statuses in a collection.
func Options(prospects []models.Prospect) models.FilterOptions {
	sectors := map[string]struct{}{}
	states := map[string]struct{}{}
	statuses := map[string]struct{}{}
	for _, p := range prospects {
		for _, s := range p.Sectors {
			sectors[s] = struct{}{}
		}
		states[p.Location.State] = struct{}{}
		statuses[string(p.Status)] = struct{}{}
	}
	return models.FilterOptions{
		Sectors:  sortedKeys(sectors),
		States:   sortedKeys(states),
		Statuses: sortedKeys(statuses),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
