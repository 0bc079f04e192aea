package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// widgetExtensionKey lets API authors pick a widget explicitly, overriding
// the type-based mapping.
const widgetExtensionKey = "x-widget"

// textareaLengthThreshold is the maxLength at which a free string field stops
// being a single-line input.
const textareaLengthThreshold = 255

// FormFromData loads an OpenAPI 3 document and converts the JSON request body
// of the operation identified by operationID into a form schema.
func FormFromData(ctx context.Context, doc []byte, operationID string) (*schema.FormSchema, error) {
	if len(doc) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return nil, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	return FormFromOperation(operation, operationID)
}

// FormFromOperation converts a single resolved operation's request body into
// a form schema. The operation's summary becomes the form title; fields are
// emitted in sorted property order with required flags taken from the body
// schema's required list.
func FormFromOperation(operation *openapi3.Operation, operationID string) (*schema.FormSchema, error) {
	if operation == nil {
		return nil, errors.New("openapi: operation is required")
	}

	body := requestBodySchema(operation.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no JSON request body schema", operationID)
	}

	title := strings.TrimSpace(operation.Summary)
	if title == "" {
		title = operationID
	}

	form := &schema.FormSchema{
		Title:       title,
		Description: operation.Description,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value, required[name])
		if !ok {
			continue
		}
		form.Fields = append(form.Fields, field)
	}

	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("openapi: operation %q request body has no convertible properties", operationID)
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	mediaType, ok := requestBody.Value.Content["application/json"]
	if !ok || mediaType.Schema == nil || mediaType.Schema.Value == nil {
		return nil
	}
	return mediaType.Schema.Value
}

// convertProperty maps one body property onto a field. Object and array
// properties have no flat-form equivalent and are skipped.
func convertProperty(name string, src *openapi3.Schema, required bool) (schema.Field, bool) {
	fieldType, ok := resolveFieldType(src)
	if !ok {
		return schema.Field{}, false
	}

	field := schema.Field{
		ID:       name,
		Type:     fieldType,
		Label:    labelFor(name, src),
		Required: required,
	}

	if fieldType.HasOptions() {
		field.Options = optionsFromEnum(src.Enum)
	}
	field.Validation = validationFrom(src)
	return field, true
}

func resolveFieldType(src *openapi3.Schema) (schema.FieldType, bool) {
	if widget := widgetOverride(src); widget != "" {
		if widget.Known() {
			return widget, true
		}
	}

	switch firstType(src.Type) {
	case "string":
		if len(src.Enum) > 0 {
			return schema.FieldTypeSelect, true
		}
		if src.Format == "email" {
			return schema.FieldTypeEmail, true
		}
		if src.MaxLength != nil && *src.MaxLength > textareaLengthThreshold {
			return schema.FieldTypeTextarea, true
		}
		return schema.FieldTypeText, true
	case "integer", "number":
		return schema.FieldTypeNumber, true
	default:
		return "", false
	}
}

func widgetOverride(src *openapi3.Schema) schema.FieldType {
	raw, ok := src.Extensions[widgetExtensionKey]
	if !ok {
		return ""
	}
	widget, ok := raw.(string)
	if !ok {
		return ""
	}
	return schema.FieldType(strings.TrimSpace(widget))
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func labelFor(name string, src *openapi3.Schema) string {
	if title := strings.TrimSpace(src.Title); title != "" {
		return title
	}
	return name
}

func optionsFromEnum(enum []any) []schema.Option {
	options := make([]schema.Option, 0, len(enum))
	for _, entry := range enum {
		value := fmt.Sprint(entry)
		options = append(options, schema.Option{Value: value, Label: value})
	}
	return options
}

func validationFrom(src *openapi3.Schema) *schema.Validation {
	validation := &schema.Validation{}
	populated := false

	if src.Pattern != "" {
		validation.Pattern = src.Pattern
		populated = true
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		validation.MinLength = &value
		populated = true
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		validation.MaxLength = &value
		populated = true
	}
	if src.Min != nil {
		value := *src.Min
		validation.Min = &value
		populated = true
	}
	if src.Max != nil {
		value := *src.Max
		validation.Max = &value
		populated = true
	}

	if !populated {
		return nil
	}
	return validation
}
