package awards

import "lechatnoir.dev/internal/models"

// FilterState is the selected category of one awards view
type FilterState struct {
	Category string
}

// NewFilterState returns the initial state, showing every category
func NewFilterState() FilterState {
	return FilterState{Category: models.AllCategories}
}

// ParseFilter turns a query value into a state. Empty means all.
func ParseFilter(category string) FilterState {
	if category == "" {
		return NewFilterState()
	}
	return FilterState{Category: category}
}

// All reports whether the state shows every category
func (s FilterState) All() bool {
	return s.Category == "" || s.Category == models.AllCategories
}

// Filter returns the awards visible under state, keeping order
func Filter(awards []models.Award, state FilterState) []models.Award {
	if state.All() {
		return awards
	}
	var out []models.Award
	for _, a := range awards {
		if a.Category == state.Category {
			out = append(out, a)
		}
	}
	return out
}

// Select switches to category and returns the toast announcing it
func Select(category string) (FilterState, models.Notification) {
	state := ParseFilter(category)
	label := state.Category
	if state.All() {
		label = "all categories"
	}
	return state, models.Notification{Message: "Showing awards from " + label, Level: models.LevelInfo}
}

// CategoryButton is one entry of the category filter bar
type CategoryButton struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// CategoryButtons returns "All Categories" followed by one button per
// category, with the button matching state marked active.
func CategoryButtons(categories []string, state FilterState) []CategoryButton {
	buttons := make([]CategoryButton, 0, len(categories)+1)
	buttons = append(buttons, CategoryButton{Value: models.AllCategories, Label: "All Categories", Active: state.All()})
	for _, c := range categories {
		buttons = append(buttons, CategoryButton{Value: c, Label: c, Active: !state.All() && c == state.Category})
	}
	return buttons
}
