package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML UI schema files.
// When fsys is nil or no schema files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Operation)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for opID, raw := range doc.Operations {
			id := strings.TrimSpace(opID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty operation id", path)
			}
			if _, exists := store.operations[id]; exists {
				return fmt.Errorf("uischema: duplicate operation %q (file %s)", id, path)
			}
			op, err := normaliseOperation(raw, id, path)
			if err != nil {
				return err
			}
			store.operations[id] = op
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Operation returns the configuration for the supplied operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Form     FormConfig             `json:"form" yaml:"form"`
	Sections []SectionConfig        `json:"sections" yaml:"sections"`
	Fields   map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseOperation(raw operationFile, id, source string) (Operation, error) {
	op := Operation{
		ID:       id,
		Source:   source,
		Form:     raw.Form,
		Sections: append([]SectionConfig(nil), raw.Sections...),
		Fields:   make(map[string]FieldConfig, len(raw.Fields)),
	}

	sections := make(map[string]struct{}, len(raw.Sections))
	for _, section := range raw.Sections {
		sectionID := strings.TrimSpace(section.ID)
		if sectionID == "" {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines a section without id", id, source)
		}
		if _, exists := sections[sectionID]; exists {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines duplicate section id %q", id, source, sectionID)
		}
		sections[sectionID] = struct{}{}
	}

	for key, cfg := range raw.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines an empty field key", id, source)
		}
		if _, exists := op.Fields[name]; exists {
			return Operation{}, fmt.Errorf("uischema: operation %q (file %s) defines duplicate field %q", id, source, name)
		}
		if cfg.Section != "" {
			if _, ok := sections[cfg.Section]; !ok {
				return Operation{}, fmt.Errorf("uischema: operation %q (file %s) field %q references unknown section %q", id, source, name, cfg.Section)
			}
		}
		op.Fields[name] = cloneFieldConfig(cfg)
	}
	return op, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	out.UIHints = cloneStringMap(cfg.UIHints)
	out.Metadata = cloneStringMap(cfg.Metadata)
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
