package form

import "context"

// SubmitFunc receives the form values once every field passes.
type SubmitFunc func(ctx context.Context, values Values) error

// Form holds the state of one form instance: values, the errors from the
// last evaluation, and which fields the user has touched. Touched only
// decides whether an error is shown; it never affects validation.
type Form struct {
	schema  Schema
	checks  map[string][]check
	values  Values
	errors  map[string]string
	touched map[string]bool
}

// New returns an empty form for schema.
func New(schema Schema) *Form {
	f := &Form{
		schema:  schema,
		checks:  make(map[string][]check, len(schema)),
		values:  make(Values, len(schema)),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
	for _, field := range schema {
		f.checks[field.Name] = field.Rule.checks()
	}
	return f
}

// Schema returns the field list the form was built from.
func (f *Form) Schema() Schema {
	return f.schema
}

// ValidateField returns the first failing rule's message for value, or "".
// Fields outside the schema always pass. Custom checks see the form's
// current values.
func (f *Form) ValidateField(name, value string) string {
	checks, ok := f.checks[name]
	if !ok {
		return ""
	}
	return run(checks, name, value, f.values)
}

// ValidateAll evaluates every field against the current values and replaces
// the error map wholesale. It reports whether every field passed.
func (f *Form) ValidateAll() bool {
	errs := make(map[string]string)
	for _, field := range f.schema {
		if msg := f.ValidateField(field.Name, f.values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	f.errors = errs
	return len(errs) == 0
}

// HandleChange stores value and drops any existing error for the field
// without re-validating it.
func (f *Form) HandleChange(name, value string) {
	f.values[name] = value
	delete(f.errors, name)
}

// HandleBlur marks the field touched and re-validates only that field.
func (f *Form) HandleBlur(name string) {
	f.touched[name] = true
	if msg := f.ValidateField(name, f.values[name]); msg != "" {
		f.errors[name] = msg
	} else {
		delete(f.errors, name)
	}
}

// HandleSubmit marks every field touched, validates, and calls submit only
// when all fields pass. It reports whether submit ran; submit's error is
// returned as is. Touched and errors are left in place afterwards.
func (f *Form) HandleSubmit(ctx context.Context, submit SubmitFunc) (bool, error) {
	for _, field := range f.schema {
		f.touched[field.Name] = true
	}
	if !f.ValidateAll() {
		return false, nil
	}
	return true, submit(ctx, f.Values())
}

// SetValues replaces all values. Errors and touched state are kept.
func (f *Form) SetValues(values Values) {
	f.values = make(Values, len(values))
	for k, v := range values {
		f.values[k] = v
	}
}

// SetError records msg against name, e.g. a server-side rejection.
func (f *Form) SetError(name, msg string) {
	if msg == "" {
		delete(f.errors, name)
		return
	}
	f.errors[name] = msg
}

// Value returns the current value of name.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Errors returns a copy of the current error map.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the recorded error for name, touched or not.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// Required reports whether the schema marks name as required.
func (f *Form) Required(name string) bool {
	for _, field := range f.schema {
		if field.Name == name {
			return field.Rule.Required
		}
	}
	return false
}

// Touched reports whether name has been blurred or submitted.
func (f *Form) Touched(name string) bool {
	return f.touched[name]
}

// VisibleError is the error a view should display for name: set only when
// the field is touched.
func (f *Form) VisibleError(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}
