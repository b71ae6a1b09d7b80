// internal/prospects/sort_test.go
package prospects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/models"
)

// ==========================
// Sort Tests
// ==========================

func TestSort(t *testing.T) {
	tests := []struct {
		name    string
		field   SortField
		desc    bool
		wantIDs []int
	}{
		{"name ascending", SortByName, false, []int{4, 3, 5, 2, 1}},
		{"name descending", SortByName, true, []int{1, 2, 5, 3, 4}},
		{"org ascending", SortByOrg, false, []int{5, 3, 2, 1, 4}},
		// CityCT, CityNJ, CityNY
		{"location ascending keeps ties in order", SortByLocation, false, []int{3, 2, 5, 1, 4}},
		{"location descending keeps ties in order", SortByLocation, true, []int{1, 4, 2, 5, 3}},
		// "Cybersecurity" < "FinTech, SaaS" < "HealthTech" < "PropTech" < "SaaS, AI/ML"
		{"sectors compare as joined list", SortBySectors, false, []int{4, 1, 2, 5, 3}},
		{"fit score descending is stable", SortByScore, true, []int{1, 3, 5, 2, 4}},
		{"fit score ascending", SortByScore, false, []int{4, 2, 5, 1, 3}},
		{"status ascending", SortByStatus, false, []int{2, 3, 5, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := sampleProspects()
			Sort(list, tt.field, tt.desc)
			assert.Equal(t, tt.wantIDs, ids(list))
		})
	}
}

func TestSort_FilteredViewLeavesSourceUntouched(t *testing.T) {
	source := sampleProspects()
	before := ids(source)

	view := Filter(source, models.DefaultFilterCriteria())
	Sort(view, SortByName, false)

	assert.Equal(t, before, ids(source))
	assert.NotEqual(t, before, ids(view))
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("location")
	require.NoError(t, err)
	assert.Equal(t, SortByLocation, f)

	_, err = ParseSortField("email")
	assert.Error(t, err)
}

// ==========================
// Pagination Tests
// ==========================

func TestPage(t *testing.T) {
	list := sampleProspects()

	assert.Equal(t, []int{1, 2}, ids(Page(list, 0, 2)))
	assert.Equal(t, []int{3, 4}, ids(Page(list, 1, 2)))
	assert.Equal(t, []int{5}, ids(Page(list, 2, 2)))
	assert.Empty(t, Page(list, 3, 2))
	assert.NotNil(t, Page(list, 3, 2))
	assert.Empty(t, Page(list, -1, 2))
	assert.Empty(t, Page(nil, 0, 10))
}

func TestValidPageSize(t *testing.T) {
	for _, size := range []int{10, 25, 50, 100} {
		assert.True(t, ValidPageSize(size), size)
	}
	assert.False(t, ValidPageSize(0))
	assert.False(t, ValidPageSize(20))
}
