package rendering

import (
	_ "embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

// TargetID is the id of the element that holds the printable CV.
const TargetID = "cv-content"

//go:embed templates/preview.html
var previewTemplateText string

var loadPreviewTemplate = sync.OnceValues(func() (*template.Template, error) {
	return parseTemplate("preview", previewTemplateText)
})

// parseTemplate parses an HTML template with the preview helpers installed
func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"photo": photoURL,
	}).Parse(text)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// photoURL marks an image data URL as safe for an img src. Anything else becomes empty.
func photoURL(s string) template.URL {
	if !IsImageDataURL(s) {
		return ""
	}
	return template.URL(s) //nolint:gosec // restricted to data:image/ URLs above
}

// RenderHTML renders a Preview as a standalone HTML page whose printable root is #cv-content.
func RenderHTML(p Preview) (string, error) {
	tmpl, err := loadPreviewTemplate()
	if err != nil {
		return "", err
	}
	return execute(tmpl, p)
}

// RenderDocument is BuildPreview followed by RenderHTML.
func RenderDocument(doc types.Document) (string, error) {
	return RenderHTML(BuildPreview(doc))
}

func execute(tmpl *template.Template, p Preview) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, p); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}
