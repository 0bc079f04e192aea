package form

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validate"
)

const nameSchema = `{"title": "T", "fields": [
	{"id": "n", "type": "text", "label": "Name", "required": true}
]}`

func instantSleep(context.Context, time.Duration) error { return nil }

func newTestController(t *testing.T, options ...Option) (*Controller, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	options = append([]Option{WithSleeper(instantSleep), WithLogger(logger)}, options...)
	return New(options...), &buf
}

func TestController_StatusTransitions(t *testing.T) {
	ctrl, _ := newTestController(t)

	if got := ctrl.Status(); got != StatusEmpty {
		t.Fatalf("initial status: want %s, got %s", StatusEmpty, got)
	}

	if err := ctrl.SetSchemaText("{broken"); err == nil {
		t.Fatal("expected parse error")
	}
	if got := ctrl.Status(); got != StatusInvalid {
		t.Fatalf("after bad text: want %s, got %s", StatusInvalid, got)
	}

	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	if got := ctrl.Status(); got != StatusReady {
		t.Fatalf("after valid text: want %s, got %s", StatusReady, got)
	}

	if err := ctrl.SetSchemaText("   "); err != nil {
		t.Fatalf("blank text: %v", err)
	}
	if got := ctrl.Status(); got != StatusEmpty {
		t.Fatalf("after blank text: want %s, got %s", StatusEmpty, got)
	}
}

func TestController_SchemaErrorSurfaced(t *testing.T) {
	ctrl, _ := newTestController(t)

	err := ctrl.SetSchemaText(`{"fields": []}`)
	if !errors.Is(err, schema.ErrInvalidShape) {
		t.Fatalf("want shape error, got %v", err)
	}
	if ctrl.Schema() != nil {
		t.Fatal("prior form should be discarded on parse failure")
	}
	if ctrl.SchemaError() == nil {
		t.Fatal("schema error should be retained for rendering")
	}
}

func TestController_LiveValidation(t *testing.T) {
	ctrl, _ := newTestController(t)
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}

	ctrl.SetValue("n", "")
	if got := ctrl.FieldError("n"); got != validate.MessageRequired {
		t.Fatalf("want required error, got %q", got)
	}

	ctrl.SetValue("n", "Alice")
	if got := ctrl.FieldError("n"); got != "" {
		t.Fatalf("correcting the value should clear the error, got %q", got)
	}
}

// End-to-end: empty submit blocks with the required error; a valid value
// passes through Submitting to Submitted and logs the collected mapping.
func TestController_SubmitLifecycle(t *testing.T) {
	ctrl, buf := newTestController(t)
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}

	err := ctrl.Submit(context.Background())
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("want ErrValidationFailed, got %v", err)
	}
	if got := ctrl.Status(); got != StatusReady {
		t.Fatalf("blocked submit should return to Ready, got %s", got)
	}
	want := map[string]string{"n": validate.MessageRequired}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if buf.Len() != 0 {
		t.Fatalf("blocked submit must not log, got %q", buf.String())
	}

	ctrl.SetValue("n", "Alice")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := ctrl.Status(); got != StatusSubmitted {
		t.Fatalf("want %s, got %s", StatusSubmitted, got)
	}

	logged := buf.String()
	if !strings.Contains(logged, "form submitted") {
		t.Fatalf("missing submit log: %q", logged)
	}
	if !strings.Contains(logged, "n:Alice") {
		t.Fatalf("missing collected values in log: %q", logged)
	}
}

func TestController_EditsDoNotClearSubmitted(t *testing.T) {
	ctrl, _ := newTestController(t)
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	ctrl.SetValue("n", "Alice")
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	ctrl.SetValue("n", "Bob")
	if got := ctrl.Status(); got != StatusSubmitted {
		t.Fatalf("editing a value should not clear submitted, got %s", got)
	}

	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	if got := ctrl.Status(); got != StatusReady {
		t.Fatalf("schema replacement should reset submitted, got %s", got)
	}
}

func TestController_SchemaChangeClearsStateByDefault(t *testing.T) {
	ctrl, _ := newTestController(t)
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	ctrl.SetValue("n", "")
	if ctrl.FieldError("n") == "" {
		t.Fatal("expected live error before swap")
	}

	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	if got := ctrl.Value("n"); got != "" {
		t.Fatalf("values should clear on swap, got %q", got)
	}
	if got := ctrl.FieldError("n"); got != "" {
		t.Fatalf("errors should clear on swap, got %q", got)
	}
}

func TestController_RetainStateOption(t *testing.T) {
	ctrl, _ := newTestController(t, WithRetainStateOnSchemaChange())
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	ctrl.SetValue("n", "Alice")

	other := `{"title": "Other", "fields": [{"id": "x", "type": "text", "label": "X"}]}`
	if err := ctrl.SetSchemaText(other); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	if got := ctrl.Value("n"); got != "Alice" {
		t.Fatalf("legacy mode keeps stale values, got %q", got)
	}
}

func TestController_SchemaSwapInvalidatesInFlightSubmit(t *testing.T) {
	release := make(chan struct{})
	blocking := func(context.Context, time.Duration) error {
		<-release
		return nil
	}

	ctrl, buf := newTestController(t, WithSleeper(blocking))
	if err := ctrl.SetSchemaText(nameSchema); err != nil {
		t.Fatalf("set schema: %v", err)
	}
	ctrl.SetValue("n", "Alice")

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Submit(context.Background())
	}()

	waitForStatus(t, ctrl, StatusSubmitting)

	if err := ctrl.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("want ErrSubmitInFlight, got %v", err)
	}

	other := `{"title": "Other", "fields": [{"id": "x", "type": "text", "label": "X"}]}`
	if err := ctrl.SetSchemaText(other); err != nil {
		t.Fatalf("swap schema: %v", err)
	}
	close(release)

	if err := <-done; !errors.Is(err, ErrSchemaReplaced) {
		t.Fatalf("want ErrSchemaReplaced, got %v", err)
	}
	if got := ctrl.Status(); got != StatusReady {
		t.Fatalf("new schema should be Ready, got %s", got)
	}
	if len(ctrl.Errors()) != 0 {
		t.Fatalf("stale revalidation leaked into new schema: %v", ctrl.Errors())
	}
	if strings.Contains(buf.String(), "form submitted") {
		t.Fatalf("stale submission must not log: %q", buf.String())
	}
}

func waitForStatus(t *testing.T, ctrl *Controller, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.Status() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for status %s (last %s)", want, ctrl.Status())
}
