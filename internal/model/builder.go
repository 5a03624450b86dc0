package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
)

const extensionNamespace = "x-formgen"

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Only flat request
// bodies are accepted; fields come back ordered by their x-formgen order hint,
// then by name.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		ContentType: op.ContentType,
		Summary:     op.Summary,
		Description: op.Description,
	}

	opExt := metadataFromExtensions(op.Extensions)
	bodyExt := metadataFromExtensions(op.RequestBody.Extensions)
	form.Metadata = mergeStrings(form.Metadata, opExt)
	form.Metadata = mergeStrings(form.Metadata, bodyExt)
	form.UIHints = mergeStrings(form.UIHints, filterUIHints(opExt))
	form.UIHints = mergeStrings(form.UIHints, filterUIHints(bodyExt))

	body := op.RequestBody
	fields := make([]Field, 0, len(body.Properties))
	for name, property := range body.Properties {
		field, err := b.fieldFromPrimitive(name, property, body.IsRequired(name))
		if err != nil {
			return FormModel{}, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		left, right := fields[i], fields[j]
		if left.Order != right.Order {
			return orderKey(left.Order) < orderKey(right.Order)
		}
		return left.Name < right.Name
	})
	form.Fields = fields

	return form, nil
}

// orderKey puts fields without an order hint after ordered ones.
func orderKey(order int) int {
	if order <= 0 {
		return int(^uint(0) >> 1)
	}
	return order
}

func (b *Builder) fieldFromPrimitive(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Default:     schema.Default,
	}
	if schema.Title != "" {
		field.Label = schema.Title
	}
	for _, value := range schema.Enum {
		option, ok := value.(string)
		if !ok {
			return Field{}, fmt.Errorf("model builder: field %q: enum values must be strings, got %T", name, value)
		}
		field.Enum = append(field.Enum, option)
	}

	metadata := metadataFromExtensions(schema.Extensions)
	if raw, ok := metadata["order"]; ok {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return Field{}, fmt.Errorf("model builder: field %q: invalid order %q: %w", name, raw, err)
		}
		field.Order = order
		delete(metadata, "order")
	}
	field.UIHints = filterUIHints(metadata)
	if label := field.UIHints["label"]; label != "" {
		field.Label = label
	}
	field.Placeholder = field.UIHints["placeholder"]
	if len(metadata) > 0 {
		field.Metadata = metadata
	}

	applyValidations(&field, schema)
	return field, nil
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	if field.Required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	if schema.MinLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MinLength)},
		})
	}
	if schema.MaxLength != nil {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(*schema.MaxLength)},
		})
	}
	if schema.Pattern != "" {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	if len(field.Enum) > 0 {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleEnum,
			Params: map[string]string{"count": strconv.Itoa(len(field.Enum))},
		})
	}
}

func metadataFromExtensions(ext map[string]any) map[string]string {
	if len(ext) == 0 {
		return nil
	}
	var result map[string]string
	set := func(key string, value any) {
		str, ok := CanonicalizeExtensionValue(value)
		if !ok {
			return
		}
		if result == nil {
			result = make(map[string]string)
		}
		result[key] = str
	}

	for key, value := range ext {
		if key == extensionNamespace {
			nested, ok := value.(map[string]any)
			if !ok {
				continue
			}
			for nestedKey, nestedValue := range nested {
				set(nestedKey, nestedValue)
			}
			continue
		}
		if strings.HasPrefix(key, extensionNamespace+"-") {
			set(strings.TrimPrefix(key, extensionNamespace+"-"), value)
		}
	}
	return result
}
