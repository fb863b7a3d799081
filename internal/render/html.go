package render

import (
	"embed"
	"html/template"
	"poi-distance-service/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

const IndexTemplate = "index.html"

// Data for the map page.
type Page struct {
	APIKey string
	Scene  view.Scene
}

func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
