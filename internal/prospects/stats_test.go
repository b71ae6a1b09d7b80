// internal/prospects/stats_test.go
package prospects

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/models"
)

func zeroBuckets() []models.ScoreBucket {
	return []models.ScoreBucket{
		{Range: "90-100"}, {Range: "80-89"}, {Range: "70-79"}, {Range: "60-69"}, {Range: "0-59"},
	}
}

func TestSummarize_Empty(t *testing.T) {
	want := models.StatsSummary{
		ByStatus:          map[string]int{},
		BySector:          map[string]int{},
		ByState:           map[string]int{},
		ScoreDistribution: zeroBuckets(),
	}

	for _, input := range [][]models.Prospect{nil, {}} {
		if diff := cmp.Diff(want, Summarize(input)); diff != "" {
			t.Errorf("Summarize(empty) mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSummarize_ThreeRecords(t *testing.T) {
	input := []models.Prospect{
		prospect(1, "A", "OrgA", "a@a.com", "NY", []string{"FinTech", "SaaS"}, models.StatusNew, 95),
		prospect(2, "B", "OrgB", "b@b.com", "NJ", []string{"SaaS"}, models.StatusContacted, 72),
		prospect(3, "C", "OrgC", "c@c.com", "NY", []string{"HealthTech"}, models.StatusInterested, 95),
	}

	want := models.StatsSummary{
		TotalProspects: 3,
		AvgFitScore:    87,
		Contacted:      2,
		HighFit:        2,
		ByStatus:       map[string]int{"new": 1, "contacted": 1, "interested": 1},
		BySector:       map[string]int{"FinTech": 1, "SaaS": 2, "HealthTech": 1},
		ByState:        map[string]int{"NY": 2, "NJ": 1},
		ScoreDistribution: []models.ScoreBucket{
			{Range: "90-100", Count: 2},
			{Range: "80-89"},
			{Range: "70-79", Count: 1},
			{Range: "60-69"},
			{Range: "0-59"},
		},
	}

	if diff := cmp.Diff(want, Summarize(input)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_BucketBoundaries(t *testing.T) {
	scores := []int{100, 90, 89, 80, 79, 70, 69, 60, 59, 30, 0}
	input := make([]models.Prospect, len(scores))
	for i, s := range scores {
		input[i] = prospect(i+1, "P", "O", "e", "NY", []string{"SaaS"}, models.StatusNew, s)
	}

	got := Summarize(input)
	counts := make([]int, len(got.ScoreDistribution))
	for i, b := range got.ScoreDistribution {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{2, 2, 2, 2, 3}, counts)
	assert.Equal(t, 4, got.HighFit)
	assert.Equal(t, 0, got.Contacted)
}

func TestSummarize_RoundHalfUp(t *testing.T) {
	tests := []struct {
		scores []int
		want   int
	}{
		{[]int{80, 81}, 81},     // 80.5
		{[]int{80, 80, 81}, 80}, // 80.33
		{[]int{80, 81, 81}, 81}, // 80.67
		{[]int{57}, 57},
	}

	for _, tt := range tests {
		input := make([]models.Prospect, len(tt.scores))
		for i, s := range tt.scores {
			input[i] = prospect(i+1, "P", "O", "e", "NY", []string{"SaaS"}, models.StatusNew, s)
		}
		assert.Equal(t, tt.want, Summarize(input).AvgFitScore, "scores %v", tt.scores)
	}
}

func TestSummarize_GeneratedCollection(t *testing.T) {
	all, err := newTestGenerator(t, DefaultPools(), NewRand(12)).Synthetic(200)
	require.NoError(t, err)

	got := Summarize(all)
	assert.Equal(t, 200, got.TotalProspects)

	bucketTotal, statusTotal, stateTotal, sectorTotal := 0, 0, 0, 0
	for _, b := range got.ScoreDistribution {
		bucketTotal += b.Count
	}
	for _, c := range got.ByStatus {
		statusTotal += c
	}
	for _, c := range got.ByState {
		stateTotal += c
	}
	for _, c := range got.BySector {
		sectorTotal += c
	}
	wantSectors := 0
	for _, p := range all {
		wantSectors += len(p.Sectors)
	}

	assert.Equal(t, 200, bucketTotal)
	assert.Equal(t, 200, statusTotal)
	assert.Equal(t, 200, stateTotal)
	assert.Equal(t, wantSectors, sectorTotal)
	assert.Equal(t, 200-got.ByStatus["new"], got.Contacted)
}

func TestOptions(t *testing.T) {
	got := Options(sampleProspects())

	want := models.FilterOptions{
		Sectors:  []string{"AI/ML", "Cybersecurity", "FinTech", "HealthTech", "PropTech", "SaaS"},
		States:   []string{"CT", "NJ", "NY"},
		Statuses: []string{"contacted", "interested", "meeting_scheduled", "new", "passed"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Options() mismatch (-want +got):\n%s", diff)
	}

	empty := Options(nil)
	assert.Empty(t, empty.Sectors)
	assert.NotNil(t, empty.Sectors)
}
