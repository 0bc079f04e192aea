package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validate"
)

// Status is the controller lifecycle state.
type Status string

const (
	// StatusEmpty means no schema text has been entered.
	StatusEmpty Status = "empty"
	// StatusInvalid means schema text is present but did not parse.
	StatusInvalid Status = "invalid"
	// StatusReady means a valid schema is loaded and editable.
	StatusReady Status = "ready"
	// StatusSubmitting means a submission is waiting on the simulated delay.
	StatusSubmitting Status = "submitting"
	// StatusSubmitted means the last submission completed.
	StatusSubmitted Status = "submitted"
)

var (
	// ErrNoSchema is returned by Submit when no valid schema is loaded.
	ErrNoSchema = errors.New("form: no schema loaded")
	// ErrSubmitInFlight is returned by Submit while another submission waits
	// on the simulated delay.
	ErrSubmitInFlight = errors.New("form: submission already in progress")
	// ErrSchemaReplaced is returned by Submit when the schema was swapped
	// while the submission was in flight; the stale result is discarded.
	ErrSchemaReplaced = errors.New("form: schema replaced during submission")
	// ErrValidationFailed is returned by Submit when revalidation blocks the
	// submission; the per-field messages are available via Errors.
	ErrValidationFailed = errors.New("form: validation failed")
)

// DefaultSubmitDelay is the fixed simulated network wait.
const DefaultSubmitDelay = time.Second

// Sleeper waits out the simulated submission delay. Tests inject one to make
// the Submitting window deterministic.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides the simulated submission delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithSleeper injects the wait implementation used during Submit.
func WithSleeper(sleep Sleeper) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger sets the diagnostic logger that receives submitted values.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidator injects a configured validator (for example one built with
// validate.WithNumericBounds).
func WithValidator(v *validate.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithRetainStateOnSchemaChange keeps values and errors across schema
// replacement, reproducing the legacy behavior where entries keyed by old
// field ids linger. The default clears state on every successful swap.
func WithRetainStateOnSchemaChange() Option {
	return func(c *Controller) {
		c.retainState = true
	}
}

// Controller owns the schema, the field state, and the submit lifecycle for
// a single form instance. All event entry points (SetSchemaText, SetValue,
// Submit) run to completion under one lock, mirroring single-threaded event
// dispatch; only the simulated submission delay releases it.
type Controller struct {
	mu sync.Mutex

	schema    *schema.FormSchema
	schemaErr error
	state     *State

	validator   *validate.Validator
	logger      *slog.Logger
	delay       time.Duration
	sleep       Sleeper
	retainState bool

	// generation increments on every schema replacement; an in-flight
	// submission compares it after the delay to detect a swap.
	generation uint64
	submitting bool
	submitted  bool
}

// New constructs a Controller in the Empty state.
func New(options ...Option) *Controller {
	c := &Controller{
		state:     NewState(),
		validator: validate.New(),
		delay:     DefaultSubmitDelay,
		sleep:     defaultSleep,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Status reports the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.schemaErr != nil:
		return StatusInvalid
	case c.schema == nil:
		return StatusEmpty
	case c.submitting:
		return StatusSubmitting
	case c.submitted:
		return StatusSubmitted
	default:
		return StatusReady
	}
}

// SetSchemaText reparses the raw editor text and replaces the active schema
// wholesale. A parse or shape failure discards the prior form and surfaces
// the error; empty text returns the controller to Empty. Every replacement
// invalidates any submission still waiting on its delay.
func (c *Controller) SetSchemaText(raw string) error {
	parsed, err := schema.Parse(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.submitting = false
	c.submitted = false

	if err != nil {
		c.schema = nil
		c.schemaErr = err
		if !c.retainState {
			c.state.Reset()
		}
		return err
	}

	c.schema = parsed
	c.schemaErr = nil
	if !c.retainState {
		c.state.Reset()
	}
	return nil
}

// SetValue stores a field value and reruns live validation for that field.
// Values for ids the schema does not declare are stored untouched, which
// matters only in retain-state mode. Setting a value does not clear the
// submitted flag.
func (c *Controller) SetValue(id, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetValue(id, value)
	if c.schema == nil {
		return
	}
	if field, ok := c.schema.FieldByID(id); ok {
		c.state.SetError(id, c.validator.Field(field, value))
	}
}

// Submit revalidates every declared field and, when clean, performs the
// simulated submission: wait out the configured delay, then mark the form
// submitted and write the collected values to the diagnostic log. A failed
// revalidation populates the per-field errors and returns
// ErrValidationFailed without consuming the delay.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.schema == nil {
		err := c.schemaErr
		c.mu.Unlock()
		if err != nil {
			return err
		}
		return ErrNoSchema
	}

	errs := c.validator.Form(c.schema, c.state.values)
	c.state.ReplaceErrors(errs)
	if len(errs) > 0 {
		c.submitted = false
		c.mu.Unlock()
		return ErrValidationFailed
	}

	c.submitting = true
	gen := c.generation
	title := c.schema.Title
	payload := c.collectPayload()
	sleep, delay, logger := c.sleep, c.delay, c.logger
	c.mu.Unlock()

	waitErr := sleep(ctx, delay)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// The schema was replaced mid-flight. The new form's state must not
		// see this submission's outcome.
		return ErrSchemaReplaced
	}
	c.submitting = false
	if waitErr != nil {
		return fmt.Errorf("form: submission wait: %w", waitErr)
	}

	c.submitted = true
	logger.Info("form submitted",
		slog.String("form", title),
		slog.Any("values", payload),
	)
	return nil
}

// collectPayload snapshots the values for the declared fields only. Caller
// holds the lock.
func (c *Controller) collectPayload() map[string]string {
	payload := make(map[string]string, len(c.schema.Fields))
	for _, field := range c.schema.Fields {
		payload[field.ID] = c.state.Value(field.ID)
	}
	return payload
}

// Schema returns the active schema, nil when Empty or Invalid.
func (c *Controller) Schema() *schema.FormSchema {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema
}

// SchemaError returns the parse or shape error for the current text.
func (c *Controller) SchemaError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schemaErr
}

// Value returns the current value for a field id.
func (c *Controller) Value(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Value(id)
}

// Values returns a copy of all stored values.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Values()
}

// FieldError returns the current error message for a field id.
func (c *Controller) FieldError(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Error(id)
}

// Errors returns a copy of all current field errors.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Errors()
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
