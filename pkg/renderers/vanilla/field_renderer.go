package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// buildFieldMarkup assembles the wrapper, label, control, and error line for a
// single field. Control markup is produced per field type; everything
// user-supplied is escaped.
func buildFieldMarkup(field schema.Field, value, errorMessage string) string {
	control := buildControlMarkup(field, value)

	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`    <div class="sf-field" data-field-type="`)
	builder.WriteString(html.EscapeString(string(field.Type)))
	builder.WriteString("\">\n")

	builder.WriteString(`      <label for="`)
	builder.WriteString(controlID(field.ID))
	builder.WriteString(`" class="sf-field-label">`)
	builder.WriteString(html.EscapeString(field.DisplayLabel()))
	if field.Required {
		builder.WriteString(` <span class="sf-required">*</span>`)
	}
	builder.WriteString("</label>\n")

	builder.WriteString("      ")
	builder.WriteString(control)
	builder.WriteString("\n")

	if errorMessage != "" {
		builder.WriteString(`      <p class="sf-field-error">`)
		builder.WriteString(html.EscapeString(errorMessage))
		builder.WriteString("</p>\n")
	}

	builder.WriteString("    </div>")
	return builder.String()
}

func buildControlMarkup(field schema.Field, value string) string {
	switch field.Type {
	case schema.FieldTypeSelect:
		return buildSelectMarkup(field, value)
	case schema.FieldTypeRadio:
		return buildRadioMarkup(field, value)
	case schema.FieldTypeTextarea:
		return buildTextareaMarkup(field, value)
	default:
		// Unknown types degrade to a plain text input.
		return buildInputMarkup(field, value)
	}
}

func buildInputMarkup(field schema.Field, value string) string {
	var builder strings.Builder

	builder.WriteString(`<input type="`)
	builder.WriteString(inputType(field.Type))
	builder.WriteString(`" id="`)
	builder.WriteString(controlID(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="sf-input"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	return builder.String()
}

func buildSelectMarkup(field schema.Field, value string) string {
	var builder strings.Builder

	builder.WriteString(`<select id="`)
	builder.WriteString(controlID(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="sf-select"`)
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(">\n")

	builder.WriteString(`        <option value="">Choose an option</option>` + "\n")
	for _, option := range field.Options {
		builder.WriteString(`        <option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if option.Value != "" && option.Value == value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.DisplayLabel()))
		builder.WriteString("</option>\n")
	}

	builder.WriteString("      </select>")
	return builder.String()
}

func buildRadioMarkup(field schema.Field, value string) string {
	var builder strings.Builder

	builder.WriteString(`<div class="sf-radio-group" role="radiogroup">` + "\n")
	for i, option := range field.Options {
		optionID := fmt.Sprintf("%s-%d", controlID(field.ID), i)

		builder.WriteString(`        <label class="sf-radio" for="`)
		builder.WriteString(optionID)
		builder.WriteString(`"><input type="radio" id="`)
		builder.WriteString(optionID)
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if option.Value != "" && option.Value == value {
			builder.WriteString(` checked`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option.DisplayLabel()))
		builder.WriteString("</label>\n")
	}
	builder.WriteString("      </div>")
	return builder.String()
}

func buildTextareaMarkup(field schema.Field, value string) string {
	var builder strings.Builder

	builder.WriteString(`<textarea id="`)
	builder.WriteString(controlID(field.ID))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.ID))
	builder.WriteString(`" class="sf-textarea" rows="4"`)
	if field.Placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(field.Placeholder))
		builder.WriteString(`"`)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

func inputType(fieldType schema.FieldType) string {
	switch fieldType {
	case schema.FieldTypeNumber:
		return "number"
	case schema.FieldTypeEmail:
		return "email"
	default:
		return "text"
	}
}

func controlID(fieldID string) string {
	return "sf-" + html.EscapeString(fieldID)
}

func hiddenInputMarkup(name, value string) string {
	var builder strings.Builder
	builder.WriteString(`<input type="hidden" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" value="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`">`)
	return builder.String()
}
