package awards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lechatnoir.dev/internal/fetch"
	"lechatnoir.dev/internal/models"
)

const sampleJSON = `{
  "awards": [
    {"id": 1, "title": "Dean's List", "description": "Top of class", "date": "May 2023", "organization": "State University", "image": "deans-list.png", "category": "Academic", "badge": "🎓"},
    {"id": 2, "title": "Hackathon Winner", "description": "First place", "date": "2024-03-10", "organization": "HackState", "category": "Technical", "badge": "💻"},
    {"id": 3, "title": "Volunteer of the Year", "description": "Community work", "date": "sometime", "organization": "Food Bank", "category": "Community", "badge": "🤝"}
  ],
  "categories": ["Academic", "Technical", "Community"]
}`

func TestLoadFromSource(t *testing.T) {
	src := &fetch.FSSource{FS: fstest.MapFS{"awards-data.json": {Data: []byte(sampleJSON)}}}
	res := NewLoader(src, "awards-data.json", nil).Load(context.Background())

	assert.False(t, res.Fallback)
	assert.Empty(t, res.Notifications)
	require.Len(t, res.Awards(), 3)
	assert.Equal(t, "Hackathon Winner", res.Awards()[1].Title)
	assert.Equal(t, []string{"Academic", "Technical", "Community"}, res.Categories())
}

func TestLoadNotFoundFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src, err := fetch.NewHTTPSource(srv.URL+"/awards-achievements", srv.Client())
	require.NoError(t, err)

	res := NewLoader(src, "awards-data.json", nil).Load(context.Background())

	assert.True(t, res.Fallback)
	require.Len(t, res.Awards(), 1)
	assert.Equal(t, "Sample Award", res.Awards()[0].Title)
	assert.Empty(t, res.Categories())
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, models.LevelError, res.Notifications[0].Level)
	assert.Equal(t, LoadFailedMessage, res.Notifications[0].Message)
}

func TestLoadInvalidFallsBack(t *testing.T) {
	tests := map[string]string{
		"malformed":      `{"awards": [`,
		"missing title":  `{"awards": [{"id": 1}]}`,
		"string id":      `{"awards": [{"id": "one", "title": "x"}]}`,
		"awards object":  `{"awards": {"id": 1}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			src := &fetch.FSSource{FS: fstest.MapFS{"awards-data.json": {Data: []byte(body)}}}
			res := NewLoader(src, "awards-data.json", nil).Load(context.Background())
			assert.True(t, res.Fallback)
			assert.Len(t, res.Notifications, 1)
		})
	}
}

func TestLoadMissingListsAreEmpty(t *testing.T) {
	tests := map[string]string{
		"awards missing":     `{"categories": ["A"]}`,
		"categories missing": `{"awards": []}`,
		"empty object":       `{}`,
		"null lists":         `{"awards": null, "categories": null}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			src := &fetch.FSSource{FS: fstest.MapFS{"awards-data.json": {Data: []byte(body)}}}
			res := NewLoader(src, "awards-data.json", nil).Load(context.Background())
			assert.False(t, res.Fallback)
			assert.Empty(t, res.Notifications)
			assert.NotNil(t, res.Awards())
			assert.Empty(t, res.Awards())
			assert.NotNil(t, res.Categories())
		})
	}
}

func TestLoadNilSource(t *testing.T) {
	res := NewLoader(nil, "awards-data.json", nil).Load(context.Background())
	assert.True(t, res.Fallback)
}

func TestValidateReportsErrors(t *testing.T) {
	err := Validate([]byte(`{"awards": [{"id": 1, "title": ""}]}`))
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)

	assert.NoError(t, Validate([]byte(sampleJSON)))
}

func TestDecodeKeepsUnknownCategories(t *testing.T) {
	doc, err := Decode([]byte(`{"awards": [{"id": 7, "title": "Odd", "category": "Elsewhere"}], "categories": ["A"]}`))
	require.NoError(t, err)
	require.Len(t, doc.Awards, 1)
	assert.Equal(t, "Elsewhere", doc.Awards[0].Category)
}
