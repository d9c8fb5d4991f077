package domain

import "strings"

// RequiredFieldsMessage is shown when a submit is rejected by validation.
const RequiredFieldsMessage = "Please fill in all required fields"

// FieldType is the input type of a form field.
type FieldType string

// Field types.
const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldPassword FieldType = "password"
)

// DatePlaceholder is the hint shown on date fields.
const DatePlaceholder = "YYYY-MM-DD"

// Field is a single form input.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Value    string
	Required bool

	// Invalid marks a field that failed required validation.
	Invalid bool
}

// IsSecret reports whether the field value must never be persisted.
func (f *Field) IsSecret() bool {
	return f.Type == FieldPassword
}

// Blank reports whether the trimmed value is empty.
func (f *Field) Blank() bool {
	return strings.TrimSpace(f.Value) == ""
}

// Form is a set of fields submitted together.
type Form struct {
	// ID identifies the form; autosaved drafts are keyed by it.
	ID string

	// Title is the form heading.
	Title string

	// Fields are the inputs in display order.
	Fields []Field

	// Autosave enables draft persistence for this form.
	Autosave bool
}

// Field returns the field with the given name, or nil.
func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Validate marks every blank required field invalid and clears the mark on
// the rest. It returns the names of the invalid fields.
func (f *Form) Validate() []string {
	var invalid []string
	for i := range f.Fields {
		field := &f.Fields[i]
		if field.Required && field.Blank() {
			field.Invalid = true
			invalid = append(invalid, field.Name)
			continue
		}
		field.Invalid = false
	}
	return invalid
}

// Blur applies validation to a single field when it loses focus.
func (f *Form) Blur(name string) {
	field := f.Field(name)
	if field == nil {
		return
	}
	field.Invalid = field.Required && field.Blank()
}

// Input updates a field's value. An invalid field that becomes non-blank
// has its invalid mark cleared.
func (f *Form) Input(name, value string) {
	field := f.Field(name)
	if field == nil {
		return
	}
	field.Value = value
	if field.Invalid && !field.Blank() {
		field.Invalid = false
	}
}

// Values returns the field values that may be persisted, keyed by name.
// Password fields are excluded.
func (f *Form) Values() map[string]string {
	values := make(map[string]string, len(f.Fields))
	for i := range f.Fields {
		if f.Fields[i].IsSecret() {
			continue
		}
		values[f.Fields[i].Name] = f.Fields[i].Value
	}
	return values
}

// Apply copies values onto matching non-password fields and returns how many were set.
func (f *Form) Apply(values map[string]string) int {
	applied := 0
	for name, value := range values {
		field := f.Field(name)
		if field == nil || field.IsSecret() {
			continue
		}
		field.Value = value
		applied++
	}
	return applied
}

// Reset clears all values and invalid marks.
func (f *Form) Reset() {
	for i := range f.Fields {
		f.Fields[i].Value = ""
		f.Fields[i].Invalid = false
	}
}
