// internal/prospects/sort.go
package prospects

import (
	"fmt"
	"sort"
	"strings"

	"prospect-dashboard/internal/models"
)

// SortField names a sortable prospect column.
type SortField string

const (
	SortByName     SortField = "name"
	SortByOrg      SortField = "org"
	SortByLocation SortField = "location"
	SortBySectors  SortField = "sectors"
	SortByScore    SortField = "fitScore"
	SortByStatus   SortField = "status"
)

var sortFields = []SortField{SortByName, SortByOrg, SortByLocation, SortBySectors, SortByScore, SortByStatus}

// PageSizes are the accepted page sizes.
var PageSizes = []int{10, 25, 50, 100}

const DefaultPageSize = 25

// ParseSortField validates a column name.
func ParseSortField(s string) (SortField, error) {
	for _, f := range sortFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q (one of %v)", s, sortFields)
}

// Sort orders prospects in place by field. Location compares as "City, ST"
// and sectors as the comma joined list. Equal keys keep their order in
// both directions.
func Sort(list []models.Prospect, field SortField, desc bool) {
	cmp := compareBy(field)
	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(&list[i], &list[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(field SortField) func(a, b *models.Prospect) int {
	switch field {
	case SortByName:
		return func(a, b *models.Prospect) int { return strings.Compare(a.Name, b.Name) }
	case SortByOrg:
		return func(a, b *models.Prospect) int { return strings.Compare(a.Org, b.Org) }
	case SortByLocation:
		return func(a, b *models.Prospect) int { return strings.Compare(locationKey(a), locationKey(b)) }
	case SortBySectors:
		return func(a, b *models.Prospect) int {
			return strings.Compare(strings.Join(a.Sectors, ", "), strings.Join(b.Sectors, ", "))
		}
	case SortByStatus:
		return func(a, b *models.Prospect) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return func(a, b *models.Prospect) int { return a.FitScore - b.FitScore }
	}
}

func locationKey(p *models.Prospect) string {
	return p.Location.City + ", " + p.Location.State
}

// Page returns the zero based page of list. A page past the end is empty.
func Page(list []models.Prospect, page, size int) []models.Prospect {
	start := page * size
	if page < 0 || size <= 0 || start >= len(list) {
		return []models.Prospect{}
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
