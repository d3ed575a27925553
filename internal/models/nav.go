package models

import "fmt"

// NavGroup is one of the top-level navigation groups
type NavGroup string

const (
	GroupProfile     NavGroup = "Profile"
	GroupExperience  NavGroup = "Experience"
	GroupRecognition NavGroup = "Recognition"
	GroupDocuments   NavGroup = "Documents"
)

// NavGroups lists the groups in display order
var NavGroups = []NavGroup{GroupProfile, GroupExperience, GroupRecognition, GroupDocuments}

// SectionHome is the mobile bottom-nav section of the site root
const SectionHome = "home"

// Section returns the mobile bottom-nav data-section value for the group
func (g NavGroup) Section() string {
	switch g {
	case GroupProfile:
		return "profile"
	case GroupExperience:
		return "experience"
	case GroupRecognition:
		return "recognition"
	case GroupDocuments:
		return "documents"
	}
	return ""
}

// Valid reports whether g is a known group
func (g NavGroup) Valid() bool {
	return g.Section() != ""
}

// ParseNavGroup converts a configured group name into a NavGroup
func ParseNavGroup(s string) (NavGroup, error) {
	g := NavGroup(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown nav group %q", s)
	}
	return g, nil
}

// NavLink is a single entry of the shared navigation
type NavLink struct {
	Href  string   `json:"href" yaml:"href" koanf:"href"`
	Label string   `json:"label" yaml:"label" koanf:"label"`
	Group NavGroup `json:"group" yaml:"group" koanf:"group"`
}

// NavMenu is a group together with its links, in configured order
type NavMenu struct {
	Group   NavGroup  `json:"group"`
	Section string    `json:"section"`
	Links   []NavLink `json:"links"`
}

// GroupLinks arranges links into menus, skipping empty groups
func GroupLinks(links []NavLink) []NavMenu {
	var menus []NavMenu
	for _, g := range NavGroups {
		menu := NavMenu{Group: g, Section: g.Section()}
		for _, l := range links {
			if l.Group == g {
				menu.Links = append(menu.Links, l)
			}
		}
		if len(menu.Links) > 0 {
			menus = append(menus, menu)
		}
	}
	return menus
}
