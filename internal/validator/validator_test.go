package validator

import (
	"strings"
	"testing"
)

func TestNotBlank(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"value", true},
		{" padded ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := NotBlank(tt.value); got != tt.want {
			t.Errorf("NotBlank(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIn(t *testing.T) {
	if !In("b", "a", "b", "c") {
		t.Error("expected b to be in the safelist")
	}
	if In("d", "a", "b", "c") {
		t.Error("expected d to be rejected")
	}
}

func TestValidator_Accumulates(t *testing.T) {
	var v Validator

	v.Check(true, "never recorded")
	if v.HasErrors() {
		t.Fatal("passing check must not record an error")
	}

	v.Check(false, "general failure")
	v.CheckField(false, "name", "cannot be blank")
	v.CheckField(false, "name", "second message is dropped")

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if len(v.Errors) != 1 {
		t.Errorf("got %v", v.Errors)
	}
	if v.FieldErrors["name"] != "cannot be blank" {
		t.Errorf("first field message must win, got %q", v.FieldErrors["name"])
	}
}

func TestValidator_Summary(t *testing.T) {
	var v Validator
	v.CheckField(false, "name", "cannot be blank")

	if got := v.Summary(); !strings.Contains(got, "name: cannot be blank") {
		t.Errorf("got summary %q", got)
	}
}

func TestValidator_SummaryOrdersFields(t *testing.T) {
	want := "general failure; date: cannot be blank; employee: cannot be blank; status: cannot be blank"

	// The same summary regardless of map iteration order.
	for i := 0; i < 20; i++ {
		var v Validator
		v.Check(false, "general failure")
		v.CheckField(false, "status", "cannot be blank")
		v.CheckField(false, "employee", "cannot be blank")
		v.CheckField(false, "date", "cannot be blank")

		if got := v.Summary(); got != want {
			t.Fatalf("got summary %q, want %q", got, want)
		}
	}
}
