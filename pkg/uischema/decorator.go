package uischema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	pkgmodel "github.com/goliatone/go-stationreg/pkg/model"
)

const (
	layoutSectionKey   = "layout.section"
	layoutSectionsKey  = "layout.sections"
	actionsMetadataKey = "actions"
)

// Decorator applies UI schema metadata to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

var _ pkgmodel.Decorator = (*Decorator)(nil)

// Decorate augments the supplied form model with UI schema metadata. When no
// matching operation is found the form is left untouched.
func (d *Decorator) Decorate(form *pkgmodel.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	op, ok := d.store.Operation(form.OperationID)
	if !ok {
		return nil
	}
	if err := applyFormConfig(form, op); err != nil {
		return err
	}
	return applyFieldConfig(form, op)
}

func applyFormConfig(form *pkgmodel.FormModel, op Operation) error {
	cfg := op.Form
	form.Metadata = mergeStringMap(form.Metadata, cfg.Metadata)
	form.UIHints = mergeStringMap(form.UIHints, cfg.UIHints)

	hints := map[string]string{
		"layout.title":        cfg.Title,
		"layout.subtitle":     cfg.Subtitle,
		"brand.name":          cfg.Brand.Name,
		"brand.tagline":       cfg.Brand.Tagline,
		"brand.icon":          sanitizeIconMarkup(cfg.Brand.Icon),
		"location.label":      cfg.Location.Label,
		"location.prompt":     cfg.Location.Prompt,
		"location.helpText":   cfg.Location.HelpText,
		"location.markedText": cfg.Location.MarkedText,
		"location.clearLabel": cfg.Location.ClearLabel,
		"location.icon":       sanitizeIconMarkup(cfg.Location.Icon),
		"footer.text":         cfg.Footer.Text,
		"footer.email":        cfg.Footer.Email,
	}
	if cfg.Progress.Steps > 0 {
		hints["progress.step"] = strconv.Itoa(cfg.Progress.Step)
		hints["progress.steps"] = strconv.Itoa(cfg.Progress.Steps)
	}
	for key, value := range hints {
		if value == "" {
			continue
		}
		form.UIHints = ensureMap(form.UIHints)
		form.UIHints[key] = value
	}

	if len(cfg.Actions) > 0 {
		actions := make([]ActionConfig, len(cfg.Actions))
		for i, action := range cfg.Actions {
			action.Icon = sanitizeIconMarkup(action.Icon)
			actions[i] = action
		}
		payload, err := json.Marshal(actions)
		if err != nil {
			return fmt.Errorf("uischema: marshal actions for operation %q: %w", op.ID, err)
		}
		form.Metadata = ensureMap(form.Metadata)
		form.Metadata[actionsMetadataKey] = string(payload)
	}

	if len(op.Sections) > 0 {
		sections := make([]SectionConfig, len(op.Sections))
		for idx, section := range op.Sections {
			if section.Order == nil {
				order := idx
				section.Order = &order
			}
			sections[idx] = section
		}
		sort.SliceStable(sections, func(i, j int) bool {
			return *sections[i].Order < *sections[j].Order
		})
		payload, err := json.Marshal(sections)
		if err != nil {
			return fmt.Errorf("uischema: marshal sections for operation %q: %w", op.ID, err)
		}
		form.Metadata = ensureMap(form.Metadata)
		form.Metadata[layoutSectionsKey] = string(payload)
	}
	return nil
}

func applyFieldConfig(form *pkgmodel.FormModel, op Operation) error {
	index := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		index[field.Name] = i
	}

	orders := make(map[string]int, len(form.Fields))
	for i, field := range form.Fields {
		orders[field.Name] = i
	}

	for name, cfg := range op.Fields {
		pos, ok := index[name]
		if !ok {
			return fmt.Errorf("uischema: operation %q (file %s) references unknown field %q", op.ID, op.Source, name)
		}
		field := &form.Fields[pos]
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Placeholder != "" {
			field.Placeholder = cfg.Placeholder
		}
		field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)
		field.Metadata = mergeStringMap(field.Metadata, cfg.Metadata)
		for key, value := range map[string]string{
			"helpText": cfg.HelpText,
			"widget":   cfg.Widget,
			"cssClass": cfg.CSSClass,
			"icon":     sanitizeIconMarkup(cfg.Icon),
		} {
			if value == "" {
				continue
			}
			field.UIHints = ensureMap(field.UIHints)
			field.UIHints[key] = value
		}
		if cfg.Section != "" {
			field.Metadata = ensureMap(field.Metadata)
			field.Metadata[layoutSectionKey] = cfg.Section
		}
		if cfg.Order != nil {
			orders[name] = *cfg.Order
		}
	}

	sort.SliceStable(form.Fields, func(i, j int) bool {
		return orders[form.Fields[i].Name] < orders[form.Fields[j].Name]
	})
	return nil
}

// Actions decodes the action buttons stored on a decorated form.
func Actions(form pkgmodel.FormModel) ([]ActionConfig, error) {
	raw, ok := form.Metadata[actionsMetadataKey]
	if !ok || raw == "" {
		return nil, nil
	}
	var actions []ActionConfig
	if err := json.Unmarshal([]byte(raw), &actions); err != nil {
		return nil, fmt.Errorf("uischema: decode actions: %w", err)
	}
	return actions, nil
}

// Sections decodes the ordered sections stored on a decorated form.
func Sections(form pkgmodel.FormModel) ([]SectionConfig, error) {
	raw, ok := form.Metadata[layoutSectionsKey]
	if !ok || raw == "" {
		return nil, nil
	}
	var sections []SectionConfig
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("uischema: decode sections: %w", err)
	}
	return sections, nil
}

// FieldSection returns the section a decorated field was assigned to.
func FieldSection(field pkgmodel.Field) string {
	return field.Metadata[layoutSectionKey]
}

func ensureMap(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return m
}

func mergeStringMap(target, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	target = ensureMap(target)
	for k, v := range updates {
		target[k] = v
	}
	return target
}
