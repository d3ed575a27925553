package config

import "lechatnoir.dev/internal/models"

// DefaultNav is the shared navigation used when none is configured
var DefaultNav = []models.NavLink{
	{Href: "/career-objective/index.html", Label: "Career Objective", Group: models.GroupProfile},
	{Href: "/personal-management/index.html", Label: "Personal Management", Group: models.GroupProfile},
	{Href: "/personal-interests/index.html", Label: "Personal Interests", Group: models.GroupProfile},
	{Href: "/work-history/index.html", Label: "Work History", Group: models.GroupExperience},
	{Href: "/career-skills/index.html", Label: "Career Skills", Group: models.GroupExperience},
	{Href: "/awards-achievements/index.html", Label: "Awards & Achievements", Group: models.GroupRecognition},
	{Href: "/references/index.html", Label: "References", Group: models.GroupRecognition},
	{Href: "/portfolio/index.html", Label: "Portfolio", Group: models.GroupDocuments},
}

// DefaultBuildExcludes keeps page sources and editor leftovers out of the export
var DefaultBuildExcludes = []string{
	"**/*.md",
	"**/index.html",
	"components/**",
	"**/.DS_Store",
	"**/*.swp",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		ContentDir: "content",
		Site: SiteConfig{
			Title:     "Le Chat Noir",
			Tagline:   "Portfolio",
			Logo:      "logo-test.png",
			Copyright: "© 2024 Le Chat Noir. All rights reserved.",
		},
		Awards: AwardsConfig{
			Path: "awards-achievements/awards-data.json",
		},
		Nav: DefaultNav,
		Build: BuildConfig{
			Output:  "dist",
			Include: []string{"**"},
			Exclude: DefaultBuildExcludes,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
