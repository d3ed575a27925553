package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLinks(t *testing.T) {
	links := []NavLink{
		{Href: "/work-history/index.html", Label: "Work History", Group: GroupExperience},
		{Href: "/career-objective/index.html", Label: "Career Objective", Group: GroupProfile},
		{Href: "/career-skills/index.html", Label: "Career Skills", Group: GroupExperience},
	}

	menus := GroupLinks(links)
	require.Len(t, menus, 2)
	assert.Equal(t, GroupProfile, menus[0].Group)
	assert.Equal(t, "profile", menus[0].Section)
	assert.Equal(t, GroupExperience, menus[1].Group)
	assert.Equal(t, []string{"Work History", "Career Skills"}, []string{menus[1].Links[0].Label, menus[1].Links[1].Label})
}

func TestParseNavGroup(t *testing.T) {
	g, err := ParseNavGroup("Recognition")
	require.NoError(t, err)
	assert.Equal(t, "recognition", g.Section())

	_, err = ParseNavGroup("Hobbies")
	assert.Error(t, err)
}

func TestSlugFromHref(t *testing.T) {
	assert.Equal(t, "career-objective", SlugFromHref("/career-objective/index.html"))
	assert.Equal(t, "career-objective", SlugFromHref("career-objective/"))
	assert.Equal(t, "", SlugFromHref("/"))
	assert.Equal(t, "", SlugFromHref("/index.html"))
}

func TestPagePath(t *testing.T) {
	assert.Equal(t, "/", Page{}.Path())
	assert.Equal(t, "/references/index.html", Page{Slug: "references"}.Path())
}
