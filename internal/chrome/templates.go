package chrome

// URLs in these templates are site-root relative; the injector rewrites
// them for the page they land on.

const navbarTemplate = `<nav class="navbar" id="navbar">
  <div class="nav-container">
    <div class="logo">
      <a href="/" class="logo-link"><img src="{{.Site.Logo}}" alt="{{.Site.Title}} Logo" class="logo-image"></a>
    </div>
    <div class="nav-links">
      {{- range .Menus}}
      <div class="nav-group">
        <button type="button" class="group-title">{{.Group}}</button>
        <div class="dropdown">
          {{- range .Links}}
          <a href="{{.Href}}" class="nav-link">{{.Label}}</a>
          {{- end}}
        </div>
      </div>
      {{- end}}
    </div>
    <button type="button" class="mobile-menu-toggle" id="mobile-menu-toggle" aria-label="Open menu"><span></span><span></span><span></span></button>
  </div>
  <div class="mobile-menu-overlay" id="mobile-menu-overlay">
    <div class="mobile-menu">
      <button type="button" class="mobile-menu-close" id="mobile-menu-close" aria-label="Close menu">&times;</button>
      {{- range .Menus}}
      <div class="mobile-nav-group">
        <button type="button" class="mobile-group-title">{{.Group}}</button>
        <div class="mobile-nav-links-container">
          {{- range .Links}}
          <a href="{{.Href}}" class="mobile-nav-link">{{.Label}}</a>
          {{- end}}
        </div>
      </div>
      {{- end}}
    </div>
  </div>
  <div class="mobile-bottom-nav" id="mobile-bottom-nav">
    <a href="/" class="mobile-nav-item" data-section="home"><span class="mobile-nav-label">Home</span></a>
    {{- range .Menus}}
    <div class="mobile-nav-item" data-section="{{.Section}}">
      <span class="mobile-nav-label">{{.Group}}</span>
      <div class="submenu-bubble" id="{{.Section}}-submenu">
        {{- range .Links}}
        <a href="{{.Href}}" class="submenu-bubble-item">{{.Label}}</a>
        {{- end}}
      </div>
    </div>
    {{- end}}
  </div>
</nav>`

const footerTemplate = `<footer class="footer">
  <div class="footer-content">
    <div class="footer-section">
      <div class="footer-logo">
        <img src="{{.Site.Logo}}" alt="{{.Site.Title}} Logo" class="footer-logo-image">
        <h3>{{.Site.Title}}</h3>
        <p class="footer-tagline">{{.Site.Tagline}}</p>
      </div>
    </div>
    <div class="footer-section">
      <h4>Quick Links</h4>
      <ul class="footer-links">
        <li><a href="/">Home</a></li>
        {{- range .Links}}
        <li><a href="{{.Href}}">{{.Label}}</a></li>
        {{- end}}
      </ul>
    </div>
  </div>
  <div class="footer-bottom">
    <div class="footer-bottom-content">
      <p class="copyright">{{.Site.Copyright}}</p>
      <div class="footer-bottom-links"><a href="#top">Back to top</a></div>
    </div>
  </div>
</footer>`
