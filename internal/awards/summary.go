package awards

import (
	"sort"
	"strings"
	"time"

	"lechatnoir.dev/internal/models"
)

// Summary holds the statistics shown above the awards grid
type Summary struct {
	Total      int    `json:"totalAwards"`
	Categories int    `json:"totalCategories"`
	Latest     string `json:"latestAward"`
}

var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseDate parses an award date in any of the layouts found in awards
// data files
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDate orders awards newest first. Awards whose date does not parse
// keep their relative order after every dated one.
func SortByDate(awards []models.Award) []models.Award {
	sorted := make([]models.Award, len(awards))
	copy(sorted, awards)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := ParseDate(sorted[i].Date)
		tj, okj := ParseDate(sorted[j].Date)
		switch {
		case oki && okj:
			return ti.After(tj)
		case oki:
			return true
		default:
			return false
		}
	})
	return sorted
}

// Summarize counts awards and distinct categories and picks the latest date
func Summarize(awards []models.Award) Summary {
	s := Summary{Total: len(awards)}

	seen := make(map[string]bool)
	for _, a := range awards {
		if !seen[a.Category] {
			seen[a.Category] = true
			s.Categories++
		}
	}

	if len(awards) > 0 {
		s.Latest = SortByDate(awards)[0].Date
	}
	return s
}
