package character

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize clamps Page to at least 1 and falls back to DefaultPageSize for a
// non-positive PageSize. Query is left as given.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	return r
}

// Query filters collection by a case-insensitive substring of the name and
// returns the requested page. The collection is never modified and the
// returned items do not alias it.
func Query(collection []Character, req PageRequest) PageResult {
	req = req.Normalize()

	// Casers keep state between calls; one per query keeps this goroutine safe.
	lower := cases.Lower(language.Und)
	q := lower.String(strings.TrimSpace(req.Query))

	matches := collection
	if q != "" {
		matches = make([]Character, 0, len(collection))
		for _, c := range collection {
			if strings.Contains(lower.String(c.Name), q) {
				matches = append(matches, c)
			}
		}
	}

	total := len(matches)
	res := PageResult{
		Query:       req.Query,
		Total:       total,
		Page:        req.Page,
		PageSize:    req.PageSize,
		TotalPages:  total / req.PageSize,
		HasPrevious: req.Page > 1,
	}

	if total%req.PageSize != 0 {
		res.TotalPages++
	}

	// start = (page-1)*size, computed without overflowing for huge pages.
	start := total
	if req.Page-1 <= total/req.PageSize {
		start = min((req.Page-1)*req.PageSize, total)
	}
	end := total
	if req.PageSize < total-start {
		end = start + req.PageSize
	}

	res.Items = make([]Character, end-start)
	copy(res.Items, matches[start:end])
	res.HasNext = end < total

	if res.HasPrevious {
		res.PreviousPage = req.Page - 1
	}
	if res.HasNext {
		res.NextPage = req.Page + 1
	}
	return res
}
