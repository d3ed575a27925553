package awards

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"golang.org/x/net/html"

	"lechatnoir.dev/internal/dom"
	"lechatnoir.dev/internal/models"
)

// Element ids filled on the awards page
const (
	GridID            = "awardsGrid"
	CategoryButtonsID = "categoryButtons"
	TotalAwardsID     = "totalAwards"
	TotalCategoriesID = "totalCategories"
	LatestAwardID     = "latestAward"
)

// View is everything the awards page renders for one filter state
type View struct {
	State         FilterState           `json:"state"`
	Awards        []models.Award        `json:"awards"`
	Buttons       []CategoryButton      `json:"buttons"`
	Summary       Summary               `json:"summary"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	Fallback      bool                  `json:"fallback"`
}

// NewView filters res by state. The summary always covers every award.
func NewView(res *Result, state FilterState) View {
	v := View{
		State:    state,
		Awards:   Filter(res.Awards(), state),
		Buttons:  CategoryButtons(res.Categories(), state),
		Summary:  Summarize(res.Awards()),
		Fallback: res.Fallback,
	}
	v.Notifications = append(v.Notifications, res.Notifications...)
	return v
}

const cardsTemplate = `{{define "grid"}}
{{- if .}}
{{- range $i, $a := .}}
<div class="award-card" data-award="{{$a.ID}}" data-category="{{$a.Category}}" style="animation-delay: {{delay $i}}s">
  <div class="award-image-container">
    {{- if $a.Image}}
    <img src="images/{{$a.Image}}" alt="{{$a.Title}}" class="award-image">
    {{- else}}
    <div class="no-image-placeholder"><div class="placeholder-icon">🏆</div><p>No Image</p></div>
    {{- end}}
    <div class="award-overlay"><div class="award-badge">{{$a.Badge}}</div></div>
  </div>
  <div class="award-content">
    <h3 class="award-title">{{$a.Title}}</h3>
    <div class="award-description"><p>{{$a.Description}}</p></div>
    <div class="award-meta">
      <span class="award-date">Date: {{$a.Date}}</span>
      <span class="award-organization">Organization: {{$a.Organization}}</span>
    </div>
    <div class="award-category">{{$a.Category}}</div>
  </div>
</div>
{{- end}}
{{- else}}
<div class="no-awards-message">
  <h3>No awards found for this category</h3>
  <p>Try selecting a different category or check your JSON data file.</p>
</div>
{{- end}}
{{- end}}

{{define "buttons"}}
<form class="category-filter" method="get">
{{- range .}}
  <button type="submit" name="category" value="{{.Value}}" class="category-btn{{if .Active}} active{{end}}" data-category="{{.Value}}">{{.Label}}</button>
{{- end}}
</form>
{{- end}}

{{define "toasts"}}
{{- range .}}
<div class="notification notification-{{.Level}}" role="status">
  <div class="notification-content">
    <span class="notification-message">{{.Message}}</span>
    <button type="button" class="notification-close">&times;</button>
  </div>
</div>
{{- end}}
{{- end}}`

var tmpl = template.Must(template.New("awards").Funcs(template.FuncMap{
	"delay": func(i int) string { return strconv.FormatFloat(float64(i+1)*0.1, 'f', 1, 64) },
}).Parse(cardsTemplate))

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering awards %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderGrid renders award cards, or the empty-category message
func RenderGrid(awards []models.Award) (string, error) {
	return execute("grid", awards)
}

// RenderButtons renders the category filter bar
func RenderButtons(buttons []CategoryButton) (string, error) {
	return execute("buttons", buttons)
}

// RenderToasts renders notifications as toasts
func RenderToasts(notifications []models.Notification) (string, error) {
	return execute("toasts", notifications)
}

// Fill writes v into the awards page elements that exist in doc and
// appends toasts to <body>. It returns how many elements were filled.
func Fill(doc *html.Node, v View) (int, error) {
	filled := 0

	fragments := []struct {
		id     string
		render func() (string, error)
	}{
		{GridID, func() (string, error) { return RenderGrid(v.Awards) }},
		{CategoryButtonsID, func() (string, error) { return RenderButtons(v.Buttons) }},
	}
	for _, f := range fragments {
		target := dom.FindFirst(doc, dom.ByID(f.id))
		if target == nil {
			continue
		}
		markup, err := f.render()
		if err != nil {
			return filled, err
		}
		nodes, err := dom.ParseFragment(markup)
		if err != nil {
			return filled, fmt.Errorf("parsing awards %s: %w", f.id, err)
		}
		dom.ReplaceChildren(target, nodes...)
		filled++
	}

	texts := map[string]string{
		TotalAwardsID:     strconv.Itoa(v.Summary.Total),
		TotalCategoriesID: strconv.Itoa(v.Summary.Categories),
	}
	if v.Summary.Latest != "" {
		texts[LatestAwardID] = v.Summary.Latest
	}
	for id, text := range texts {
		if target := dom.FindFirst(doc, dom.ByID(id)); target != nil {
			dom.ReplaceChildren(target, dom.Text(text))
			filled++
		}
	}

	if body := dom.Body(doc); body != nil && len(v.Notifications) > 0 {
		markup, err := RenderToasts(v.Notifications)
		if err != nil {
			return filled, err
		}
		nodes, err := dom.ParseFragment(markup)
		if err != nil {
			return filled, fmt.Errorf("parsing awards toasts: %w", err)
		}
		for _, n := range nodes {
			body.AppendChild(n)
		}
	}

	return filled, nil
}
