package models

// Award represents a single entry on the awards page
type Award struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Organization string `json:"organization"`
	Image        string `json:"image,omitempty"`
	Category     string `json:"category"`
	Badge        string `json:"badge"`
}

// AwardsDocument mirrors awards-data.json
type AwardsDocument struct {
	Awards     []Award  `json:"awards"`
	Categories []string `json:"categories"`
}

// AllCategories is the filter value that matches every award
const AllCategories = "all"
