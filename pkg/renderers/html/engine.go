package html

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine wraps a pongo2 template set and caches compiled templates.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS, baseDir string) (*engine, error) {
	var loaders []pongo2.TemplateLoader
	if baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
		if err != nil {
			return nil, fmt.Errorf("html: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(files))
	}
	if len(loaders) == 0 {
		return nil, ErrNoTemplates
	}
	return &engine{
		set:       pongo2.NewSet("formflow", loaders...),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) render(name string, data pongo2.Context) ([]byte, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("html: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}
