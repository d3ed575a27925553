// Package awards loads awards-data.json and derives everything the awards
// page shows from it: the filtered grid, category buttons, summary
// statistics and toast notifications.
package awards

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"lechatnoir.dev/internal/fetch"
	"lechatnoir.dev/internal/models"
)

// LoadFailedMessage is shown when the awards JSON cannot be used
const LoadFailedMessage = "Failed to load awards data. Please check the JSON file."

// Result is one load of the awards data. Notifications are toasts to show
// alongside it.
type Result struct {
	Document      models.AwardsDocument
	Notifications []models.Notification
	Fallback      bool
}

// Awards returns the loaded awards
func (r *Result) Awards() []models.Award {
	return r.Document.Awards
}

// Categories returns the categories in document order
func (r *Result) Categories() []string {
	return r.Document.Categories
}

// FallbackAward is the placeholder shown when loading fails
func FallbackAward() models.Award {
	return models.Award{
		ID:           1,
		Title:        "Sample Award",
		Description:  "This is a sample award. Please check your awards-data.json file.",
		Date:         "Sample Date",
		Organization: "Sample Organization",
		Category:     "Sample",
		Badge:        "🏆",
	}
}

// Fallback returns the result used for any load failure
func Fallback() *Result {
	return &Result{
		Document: models.AwardsDocument{Awards: []models.Award{FallbackAward()}},
		Notifications: []models.Notification{
			{Message: LoadFailedMessage, Level: models.LevelError},
		},
		Fallback: true,
	}
}

// Loader reads the awards JSON from a source
type Loader struct {
	source fetch.Source
	name   string
	logger *zap.Logger
}

// NewLoader creates a loader fetching name from source
func NewLoader(source fetch.Source, name string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, name: name, logger: logger.With(zap.String("component", "awards"))}
}

// Load fetches, validates and decodes the awards. It never fails; any
// problem is logged and the fallback result returned.
func (l *Loader) Load(ctx context.Context) *Result {
	doc, err := l.load(ctx)
	if err != nil {
		l.logger.Error("loading awards data failed", zap.String("file", l.name), zap.Error(err))
		return Fallback()
	}

	l.warnUnknownCategories(doc)
	l.logger.Debug("awards data loaded", zap.Int("awards", len(doc.Awards)), zap.Int("categories", len(doc.Categories)))
	return &Result{Document: *doc}
}

func (l *Loader) load(ctx context.Context) (*models.AwardsDocument, error) {
	if l.source == nil {
		return nil, fmt.Errorf("no awards source configured")
	}
	data, err := l.source.Fetch(ctx, l.name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode validates and decodes raw awards JSON. Missing or null lists
// decode as empty.
func Decode(data []byte) (*models.AwardsDocument, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc models.AwardsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding awards JSON: %w", err)
	}
	if doc.Awards == nil {
		doc.Awards = []models.Award{}
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	return &doc, nil
}

// Categories declared in the document are the known filter values. Awards
// outside them stay visible under "all" only.
func (l *Loader) warnUnknownCategories(doc *models.AwardsDocument) {
	known := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		known[c] = true
	}
	for _, a := range doc.Awards {
		if !known[a.Category] {
			l.logger.Warn("award category is not a declared category",
				zap.Int("id", a.ID), zap.String("category", a.Category))
		}
	}
}
