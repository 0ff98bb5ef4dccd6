package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// FormTemplate is the entry template name.
const FormTemplate = "form.tmpl"

// TemplatesFS exposes the embedded template bundle for callers that want to
// start from the built-in markup.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
