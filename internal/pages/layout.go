package pages

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="styles.css">
</head>
<body data-page-section="{{.Page.Section}}" class="page page-{{if .Page.Slug}}{{.Page.Slug}}{{else}}home{{end}}">
  <div id="navbar-placeholder"></div>
  <main class="page-content">
{{.Content}}
  </main>
  <div id="footer-placeholder"></div>
</body>
</html>
`
