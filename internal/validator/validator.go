package validator

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Validator accumulates validation failures so a form can be checked as a
// whole before any request is made.
type Validator struct {
	Errors      []string
	FieldErrors map[string]string
}

func (v *Validator) HasErrors() bool {
	return len(v.Errors) != 0 || len(v.FieldErrors) != 0
}

func (v *Validator) AddError(message string) {
	if v.Errors == nil {
		v.Errors = []string{}
	}

	v.Errors = append(v.Errors, message)
}

func (v *Validator) AddFieldError(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = map[string]string{}
	}

	if _, exists := v.FieldErrors[field]; !exists {
		v.FieldErrors[field] = message
	}
}

func (v *Validator) Check(ok bool, message string) {
	if !ok {
		v.AddError(message)
	}
}

func (v *Validator) CheckField(ok bool, field, message string) {
	if !ok {
		v.AddFieldError(field, message)
	}
}

// Summary flattens every accumulated failure into a single notice line.
// Field failures are ordered by field name.
func (v *Validator) Summary() string {
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(v.Errors)+len(fields))
	messages = append(messages, v.Errors...)
	for _, field := range fields {
		messages = append(messages, field+": "+v.FieldErrors[field])
	}
	return strings.Join(messages, "; ")
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MaxRunes(value string, limit int) bool {
	return utf8.RuneCountInString(value) <= limit
}

func In(value string, safelist ...string) bool {
	for i := range safelist {
		if value == safelist[i] {
			return true
		}
	}
	return false
}
