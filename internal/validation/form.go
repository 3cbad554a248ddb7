package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/chrisdamba/foodstore/internal/models"
)

// Rule validates one field. values holds the whole form so that cross-field
// rules, such as password confirmation, can look at their partner.
type Rule func(value string, values map[string]string) string

// Field declares one form input.
type Field struct {
	Name    string
	Initial string
	Rule    Rule
}

// Errors maps field names to the message of their first failing rule.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool {
	var v Errors
	return errors.As(err, &v)
}

// Form tracks values, errors and touched flags for a set of fields.
//
// A field's error is shown once the field has been blurred or the form has
// been submitted; from then on every change re-validates it. In submit-only
// mode blur is ignored, errors appear on submit and typing into a field
// clears its error.
type Form struct {
	fields     []Field
	index      map[string]int
	values     map[string]string
	errors     map[string]string
	touched    map[string]bool
	submitOnly bool
}

func NewForm(submitOnly bool, fields ...Field) *Form {
	f := &Form{
		fields:     fields,
		index:      make(map[string]int, len(fields)),
		submitOnly: submitOnly,
	}
	for i, field := range fields {
		f.index[field.Name] = i
	}
	f.Reset()
	return f
}

// Reset restores initial values and forgets errors and touched flags.
func (f *Form) Reset() {
	f.values = make(map[string]string, len(f.fields))
	f.errors = make(map[string]string)
	f.touched = make(map[string]bool)
	for _, field := range f.fields {
		f.values[field.Name] = field.Initial
	}
}

// Fields lists the field names in declaration order.
func (f *Form) Fields() []string {
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.Name
	}
	return names
}

func (f *Form) Has(field string) bool {
	_, ok := f.index[field]
	return ok
}

func (f *Form) Value(field string) string {
	return f.values[field]
}

func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// Error returns the message currently shown for field.
func (f *Form) Error(field string) string {
	if !f.submitOnly && !f.touched[field] {
		return ""
	}
	return f.errors[field]
}

// VisibleErrors returns every message currently shown.
func (f *Form) VisibleErrors() Errors {
	out := Errors{}
	for _, field := range f.fields {
		if msg := f.Error(field.Name); msg != "" {
			out[field.Name] = msg
		}
	}
	return out
}

// Change records a keystroke.
func (f *Form) Change(field, value string) error {
	if !f.Has(field) {
		return fmt.Errorf("unknown field %q", field)
	}
	f.values[field] = value
	switch {
	case f.submitOnly:
		delete(f.errors, field)
	case f.touched[field]:
		f.setError(field, f.validate(field))
	}
	return nil
}

// Blur marks field touched and validates it.
func (f *Form) Blur(field string) error {
	if !f.Has(field) {
		return fmt.Errorf("unknown field %q", field)
	}
	if f.submitOnly {
		return nil
	}
	f.touched[field] = true
	f.setError(field, f.validate(field))
	return nil
}

// Submit marks every field touched and validates the whole form. It returns
// Errors when any field fails.
func (f *Form) Submit() error {
	f.errors = make(map[string]string)
	for _, field := range f.fields {
		f.touched[field.Name] = true
		f.setError(field.Name, f.validate(field.Name))
	}
	if len(f.errors) == 0 {
		return nil
	}
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) validate(name string) string {
	field := f.fields[f.index[name]]
	if field.Rule == nil {
		return ""
	}
	return field.Rule(f.values[name], f.values)
}

func (f *Form) setError(field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

func single(fn func(string) string) Rule {
	return func(value string, _ map[string]string) string {
		return fn(value)
	}
}

func confirmRule(value string, values map[string]string) string {
	return ValidateConfirmPassword(value, values[FieldPassword])
}

// NewLoginForm validates only on submit.
func NewLoginForm() *Form {
	return NewForm(true,
		Field{Name: FieldEmail, Rule: single(ValidateEmail)},
		Field{Name: FieldPassword, Rule: single(ValidatePassword)},
	)
}

func NewRegisterForm() *Form {
	return NewForm(false,
		Field{Name: FieldName, Rule: single(ValidateName)},
		Field{Name: FieldEmail, Rule: single(ValidateEmail)},
		Field{Name: FieldPassword, Rule: single(ValidatePassword)},
		Field{Name: FieldConfirmPassword, Rule: confirmRule},
	)
}

// NewCheckoutForm preselects card payment.
func NewCheckoutForm() *Form {
	return NewForm(false,
		Field{Name: FieldAddress, Rule: single(ValidateAddress)},
		Field{Name: FieldCity, Rule: single(ValidateCity)},
		Field{Name: FieldZipCode, Rule: single(ValidateZipCode)},
		Field{Name: FieldPhone, Rule: single(ValidatePhone)},
		Field{Name: FieldPaymentMethod, Initial: models.PaymentCard, Rule: single(ValidatePaymentMethod)},
	)
}

// DeliveryDetails reads a checkout form's values.
func DeliveryDetails(f *Form) models.DeliveryDetails {
	return models.DeliveryDetails{
		Address:       f.Value(FieldAddress),
		City:          f.Value(FieldCity),
		ZipCode:       f.Value(FieldZipCode),
		Phone:         f.Value(FieldPhone),
		PaymentMethod: f.Value(FieldPaymentMethod),
	}
}
