package catalog

import (
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// AllCategories is the category filter value that matches every activity.
const AllCategories = "all"

// Filter narrows a list of activities by free-text query and category.
// The query matches name, description or location, case-insensitively.
// An empty category or AllCategories matches everything.
func Filter(activities []domain.Activity, query, category string) []domain.Activity {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.Activity{}
	for _, a := range activities {
		if category != "" && category != AllCategories && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Description), q) &&
			!strings.Contains(strings.ToLower(a.Location), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Categories returns the distinct categories of activities in order of first appearance.
func Categories(activities []domain.Activity) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, a := range activities {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	return out
}
