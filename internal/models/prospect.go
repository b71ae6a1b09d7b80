// internal/models/prospect.go
package models

import "time"

// Status is the outreach state of a prospect.
type Status string

const (
	StatusNew              Status = "new"
	StatusContacted        Status = "contacted"
	StatusInterested       Status = "interested"
	StatusMeetingScheduled Status = "meeting_scheduled"
	StatusPassed           Status = "passed"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusNew,
	StatusContacted,
	StatusInterested,
	StatusMeetingScheduled,
	StatusPassed,
}

// StatusLabels maps a status to its human readable label.
var StatusLabels = map[Status]string{
	StatusNew:              "New",
	StatusContacted:        "Contacted",
	StatusInterested:       "Interested",
	StatusMeetingScheduled: "Meeting Scheduled",
	StatusPassed:           "Passed",
}

// Label returns the display label, falling back to the raw value.
func (s Status) Label() string {
	if label, ok := StatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := StatusLabels[s]
	return ok
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type CheckSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Prospect is a single investor record.
type Prospect struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Org              string     `json:"org"`
	Location         Location   `json:"location"`
	Sectors          []string   `json:"sectors"`
	StagePreferences []string   `json:"stagePreferences"`
	CheckSize        CheckSize  `json:"checkSize"`
	FitScore         int        `json:"fitScore"`
	WhySummary       string     `json:"whySummary"`
	Email            string     `json:"email"`
	LinkedIn         string     `json:"linkedin"`
	Website          string     `json:"website"`
	Phone            string     `json:"phone"`
	Status           Status     `json:"status"`
	Portfolio        []string   `json:"portfolio"`
	Tags             []string   `json:"tags"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	LastEnrichedAt   time.Time  `json:"lastEnrichedAt"`
	LastContactedAt  *time.Time `json:"lastContactedAt"`
	SourceID         int        `json:"sourceId"`
}

// ScoreRange is an inclusive fit score bound. A nil Min means 0 and a nil
// Max means 100, so the zero value spans every score.
type ScoreRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// NewScoreRange returns a range with both bounds set.
func NewScoreRange(lo, hi int) ScoreRange {
	return ScoreRange{Min: &lo, Max: &hi}
}

// Bounds resolves the range to concrete inclusive limits.
func (r ScoreRange) Bounds() (int, int) {
	lo, hi := 0, 100
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// FilterCriteria selects a subset of prospects. Empty slices, an empty
// search term and unset score bounds do not restrict.
type FilterCriteria struct {
	Search     string     `json:"search"`
	Sectors    []string   `json:"sectors"`
	States     []string   `json:"states"`
	Statuses   []Status   `json:"statuses"`
	ScoreRange ScoreRange `json:"scoreRange"`
}

// DefaultFilterCriteria returns criteria that match every prospect.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Sectors:    []string{},
		States:     []string{},
		Statuses:   []Status{},
	}
}

// IsDefault reports whether the criteria leave every dimension unrestricted.
func (c FilterCriteria) IsDefault() bool {
	lo, hi := c.ScoreRange.Bounds()
	return c.Search == "" &&
		len(c.Sectors) == 0 &&
		len(c.States) == 0 &&
		len(c.Statuses) == 0 &&
		lo <= 0 && hi >= 100
}

type ScoreBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// StatsSummary is the aggregate view of a prospect collection.
type StatsSummary struct {
	TotalProspects    int            `json:"totalProspects"`
	AvgFitScore       int            `json:"avgFitScore"`
	Contacted         int            `json:"contacted"`
	HighFit           int            `json:"highFit"`
	ByStatus          map[string]int `json:"byStatus"`
	BySector          map[string]int `json:"bySector"`
	ByState           map[string]int `json:"byState"`
	ScoreDistribution []ScoreBucket  `json:"scoreDistribution"`
}

// FilterOptions holds the distinct values available for the multi-select filters.
type FilterOptions struct {
	Sectors  []string `json:"sectors"`
	States   []string `json:"states"`
	Statuses []string `json:"statuses"`
}
