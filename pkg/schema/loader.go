package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds form definitions keyed by id.
type Store struct {
	forms map[string]Form
}

// NewStore builds a store from already constructed forms, checking each one.
func NewStore(forms ...Form) (*Store, error) {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		if err := store.add(form, "<memory>"); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks the provided filesystem and parses JSON/YAML form definition
// files. When fsys is nil or no definition files are present, the returned
// store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for id, form := range doc.Forms {
			form.ID = strings.TrimSpace(id)
			if form.ID == "" {
				return fmt.Errorf("schema: file %s defines an empty form id", path)
			}
			if err := store.add(form, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the registered form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) add(form Form, source string) error {
	if _, exists := s.forms[form.ID]; exists {
		return fmt.Errorf("schema: duplicate form %q (file %s)", form.ID, source)
	}
	if err := form.Check(); err != nil {
		return fmt.Errorf("schema: %s: %w", source, err)
	}
	fields := make([]Field, len(form.Fields))
	for idx, field := range form.Fields {
		field.Kind = field.Kind.Resolved()
		fields[idx] = field
	}
	form.Fields = fields
	s.forms[form.ID] = form
	return nil
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("schema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
