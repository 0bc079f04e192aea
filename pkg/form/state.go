package form

// State tracks collected values and validation errors keyed by field id.
// It is intentionally small; lifecycle orchestration lives in Controller.
type State struct {
	values map[string]string
	errors map[string]string
}

// NewState returns an empty state store.
func NewState() *State {
	return &State{
		values: make(map[string]string),
		errors: make(map[string]string),
	}
}

// Value returns the current value for a field id.
func (s *State) Value(id string) string {
	if s == nil {
		return ""
	}
	return s.values[id]
}

// SetValue stores a field value.
func (s *State) SetValue(id, value string) {
	if s == nil {
		return
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[id] = value
}

// Values returns a copy of the value map.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	return cloneMap(s.values)
}

// Error returns the current error message for a field id, "" when valid.
func (s *State) Error(id string) string {
	if s == nil {
		return ""
	}
	return s.errors[id]
}

// SetError stores a field error; an empty message clears it.
func (s *State) SetError(id, message string) {
	if s == nil {
		return
	}
	if message == "" {
		delete(s.errors, id)
		return
	}
	if s.errors == nil {
		s.errors = make(map[string]string)
	}
	s.errors[id] = message
}

// Errors returns a copy of the error map.
func (s *State) Errors() map[string]string {
	if s == nil {
		return nil
	}
	return cloneMap(s.errors)
}

// HasErrors reports whether any field currently has an error.
func (s *State) HasErrors() bool {
	return s != nil && len(s.errors) > 0
}

// ReplaceErrors swaps the whole error map, as submit-time revalidation does.
func (s *State) ReplaceErrors(errs map[string]string) {
	if s == nil {
		return
	}
	s.errors = cloneMap(errs)
	if s.errors == nil {
		s.errors = make(map[string]string)
	}
}

// Reset drops all values and errors.
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.values = make(map[string]string)
	s.errors = make(map[string]string)
}

func cloneMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
