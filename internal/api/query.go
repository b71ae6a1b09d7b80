// internal/api/query.go
package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/models"
	"prospect-dashboard/internal/prospects"
)

// parseCriteria reads filter criteria from query parameters. List parameters
// accept comma separated values, repeated keys, or both.
func parseCriteria(q url.Values) (models.FilterCriteria, error) {
	c := models.DefaultFilterCriteria()
	c.Search = strings.TrimSpace(q.Get("search"))
	c.Sectors = listParam(q, "sectors")
	c.States = listParam(q, "states")
	for _, s := range listParam(q, "statuses") {
		c.Statuses = append(c.Statuses, models.Status(s))
	}

	lo, hi := c.ScoreRange.Bounds()
	lo, err := intParam(q, "minScore", lo)
	if err != nil {
		return c, err
	}
	if hi, err = intParam(q, "maxScore", hi); err != nil {
		return c, err
	}
	c.ScoreRange = models.NewScoreRange(lo, hi)
	return c, nil
}

// listView is the ordering and paging of a prospect list. paged is false when
// neither page nor pageSize was given, and the whole view is returned.
type listView struct {
	sort     prospects.SortField
	desc     bool
	page     int
	pageSize int
	paged    bool
}

// parseListView reads sort, order, page and pageSize. Without sort the list
// keeps its fit score order; an explicit sort defaults to ascending.
func parseListView(q url.Values) (listView, error) {
	v := listView{sort: prospects.SortByScore, desc: true, pageSize: prospects.DefaultPageSize}

	if raw := strings.TrimSpace(q.Get("sort")); raw != "" {
		field, err := prospects.ParseSortField(raw)
		if err != nil {
			return v, errors.NewInvalidFilterCriteriaError(err.Error())
		}
		v.sort, v.desc = field, false
	}
	switch order := strings.ToLower(strings.TrimSpace(q.Get("order"))); order {
	case "":
	case "asc":
		v.desc = false
	case "desc":
		v.desc = true
	default:
		return v, errors.NewInvalidFilterCriteriaError(fmt.Sprintf("order must be asc or desc, got %q", order))
	}

	var err error
	v.paged = q.Has("page") || q.Has("pageSize")
	if v.page, err = intParam(q, "page", 0); err != nil {
		return v, err
	}
	if v.page < 0 {
		return v, errors.NewInvalidFilterCriteriaError(fmt.Sprintf("page must not be negative, got %d", v.page))
	}
	if v.pageSize, err = intParam(q, "pageSize", v.pageSize); err != nil {
		return v, err
	}
	if !prospects.ValidPageSize(v.pageSize) {
		return v, errors.NewInvalidFilterCriteriaError(fmt.Sprintf("pageSize must be one of %v, got %d", prospects.PageSizes, v.pageSize))
	}
	return v, nil
}

func listParam(q url.Values, key string) []string {
	out := []string{}
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidFilterCriteriaError(fmt.Sprintf("%s must be an integer, got %q", key, raw))
	}
	return n, nil
}
