package schemaform_test

import (
	"context"
	"strings"
	"testing"

	schemaform "github.com/goliatone/go-schemaform"
)

func TestGenerateHTML(t *testing.T) {
	output, err := schemaform.GenerateHTML(context.Background(), `{
		"title": "Feedback",
		"fields": [{"id": "note", "type": "textarea", "label": "Note"}]
	}`, "")
	if err != nil {
		t.Fatalf("generate html: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, `<h2 class="sf-form-title">Feedback</h2>`) {
		t.Fatalf("output missing title\n%s", html)
	}
	if !strings.Contains(html, `<textarea id="sf-note" name="note"`) {
		t.Fatalf("output missing textarea\n%s", html)
	}
}

func TestGenerateHTML_UnknownRenderer(t *testing.T) {
	_, err := schemaform.GenerateHTML(context.Background(), `{"title": "T", "fields": []}`, "nope")
	if err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}
