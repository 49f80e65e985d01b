package form

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func registerSchema() Schema {
	return Schema{
		{Name: "name", Rule: Rule{Required: true, MinLength: 2, Message: "Name must be at least 2 characters"}},
		{Name: "email", Rule: Rule{Required: true, Pattern: emailPattern, Message: "Please enter a valid email address"}},
		{Name: "password", Rule: Rule{Required: true, MinLength: 6, Message: "Password must be at least 6 characters"}},
		{Name: "confirmPassword", Rule: Rule{Required: true, Custom: func(value string, all Values) string {
			if value != all["password"] {
				return "Passwords do not match"
			}
			return ""
		}}},
	}
}

func TestValidateField_RequiredBlank(t *testing.T) {
	f := New(Schema{{Name: "email", Rule: Rule{Required: true, Pattern: emailPattern}}})

	for _, v := range []string{"", "   ", "\t\n"} {
		if msg := f.ValidateField("email", v); msg != "email is required" {
			t.Fatalf("value %q: expected required message, got %q", v, msg)
		}
	}
}

func TestValidateField_MinLengthBoundary(t *testing.T) {
	f := New(Schema{{Name: "password", Rule: Rule{MinLength: 6}}})

	if msg := f.ValidateField("password", "12345"); msg != "password must be at least 6 characters" {
		t.Fatalf("expected min length failure, got %q", msg)
	}
	if msg := f.ValidateField("password", "123456"); msg != "" {
		t.Fatalf("expected pass at boundary, got %q", msg)
	}
}

func TestValidateField_MinLengthCountsRunes(t *testing.T) {
	f := New(Schema{{Name: "name", Rule: Rule{MinLength: 4}}})

	if msg := f.ValidateField("name", "Zoë"); msg == "" {
		t.Fatalf("expected three runes to fail a four character minimum")
	}
}

func TestValidateField_MaxLength(t *testing.T) {
	f := New(Schema{{Name: "subject", Rule: Rule{MaxLength: 5}}})

	if msg := f.ValidateField("subject", "abcdef"); msg != "subject must be no more than 5 characters" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := f.ValidateField("subject", "abcde"); msg != "" {
		t.Fatalf("expected pass, got %q", msg)
	}
}

func TestValidateField_PatternAndCustomMessage(t *testing.T) {
	f := New(Schema{
		{Name: "email", Rule: Rule{Pattern: emailPattern}},
		{Name: "work", Rule: Rule{Pattern: emailPattern, Message: "Please enter a valid email address"}},
	})

	if msg := f.ValidateField("email", "not-an-email"); msg != "email format is invalid" {
		t.Fatalf("unexpected default message %q", msg)
	}
	if msg := f.ValidateField("work", "a@b"); msg != "Please enter a valid email address" {
		t.Fatalf("unexpected override message %q", msg)
	}
	if msg := f.ValidateField("work", "a@b.co"); msg != "" {
		t.Fatalf("expected valid email to pass, got %q", msg)
	}
}

func TestValidateField_OptionalBlankSkipsOtherChecks(t *testing.T) {
	called := false
	f := New(Schema{{Name: "nick", Rule: Rule{
		MinLength: 4,
		Pattern:   regexp.MustCompile(`^x`),
		Custom: func(string, Values) string {
			called = true
			return "never"
		},
	}}})

	if msg := f.ValidateField("nick", "  "); msg != "" {
		t.Fatalf("expected blank optional value to pass, got %q", msg)
	}
	if called {
		t.Fatalf("custom check ran on a blank value")
	}
}

func TestValidateField_FirstFailureWins(t *testing.T) {
	f := New(Schema{{Name: "code", Rule: Rule{MinLength: 4, Pattern: regexp.MustCompile(`^\d+$`)}}})

	if msg := f.ValidateField("code", "ab"); msg != "code must be at least 4 characters" {
		t.Fatalf("expected min length to win, got %q", msg)
	}
}

func TestValidateField_UnknownFieldPasses(t *testing.T) {
	f := New(registerSchema())

	if msg := f.ValidateField("nickname", ""); msg != "" {
		t.Fatalf("expected unknown field to pass, got %q", msg)
	}
}

func TestValidateAll_ErrorKeysMatchFailingFields(t *testing.T) {
	f := New(registerSchema())
	f.SetValues(Values{
		"name":            "Al",
		"email":           "bad",
		"password":        "123",
		"confirmPassword": "123",
	})

	if f.ValidateAll() {
		t.Fatalf("expected validation to fail")
	}
	errs := f.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs["email"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email error %q", errs["email"])
	}
	if errs["password"] != "Password must be at least 6 characters" {
		t.Fatalf("unexpected password error %q", errs["password"])
	}
}

func TestValidateAll_ReplacesPreviousErrors(t *testing.T) {
	f := New(registerSchema())
	f.SetError("name", "stale")
	f.SetValues(Values{
		"name":            "Alice",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})

	if !f.ValidateAll() {
		t.Fatalf("expected validation to pass, got %v", f.Errors())
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected errors to be cleared, got %v", f.Errors())
	}
}

func TestHandleChange_ClearsErrorWithoutValidating(t *testing.T) {
	f := New(registerSchema())
	f.ValidateAll()
	if f.Error("name") == "" {
		t.Fatalf("expected name error before change")
	}

	f.HandleChange("name", "A")

	if f.Error("name") != "" {
		t.Fatalf("expected error cleared on change, got %q", f.Error("name"))
	}
	if f.Value("name") != "A" {
		t.Fatalf("value not stored")
	}
}

func TestHandleBlur_TouchesAndRevalidates(t *testing.T) {
	f := New(registerSchema())
	f.HandleChange("password", "123")

	if f.VisibleError("password") != "" {
		t.Fatalf("untouched field should not show an error")
	}
	f.HandleBlur("password")
	if !f.Touched("password") {
		t.Fatalf("expected field to be touched")
	}
	if f.VisibleError("password") != "Password must be at least 6 characters" {
		t.Fatalf("unexpected visible error %q", f.VisibleError("password"))
	}
	if f.Touched("email") {
		t.Fatalf("blur touched an unrelated field")
	}

	f.HandleChange("password", "1234567")
	f.HandleBlur("password")
	if _, ok := f.Errors()["password"]; ok {
		t.Fatalf("expected valid field to have no error entry")
	}
}

func TestHandleSubmit_MismatchBlocksSubmit(t *testing.T) {
	f := New(registerSchema())
	f.SetValues(Values{
		"name":            "Alice",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret2",
	})

	called := false
	ran, err := f.HandleSubmit(context.Background(), func(context.Context, Values) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran || called {
		t.Fatalf("submit must not run with invalid values")
	}
	if f.VisibleError("confirmPassword") != "Passwords do not match" {
		t.Fatalf("unexpected confirm error %q", f.VisibleError("confirmPassword"))
	}
	for _, field := range f.Schema() {
		if !f.Touched(field.Name) {
			t.Fatalf("expected %s touched after submit", field.Name)
		}
	}
}

func TestHandleSubmit_ValidCallsSubmitOnce(t *testing.T) {
	f := New(registerSchema())
	f.SetValues(Values{
		"name":            "Alice",
		"email":           "alice@example.com",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})

	calls := 0
	var got Values
	ran, err := f.HandleSubmit(context.Background(), func(_ context.Context, v Values) error {
		calls++
		got = v
		return nil
	})
	if err != nil || !ran {
		t.Fatalf("expected submit to run, ran=%v err=%v", ran, err)
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if got["email"] != "alice@example.com" {
		t.Fatalf("submit received wrong values: %v", got)
	}
}

func TestHandleSubmit_PropagatesSubmitError(t *testing.T) {
	f := New(Schema{{Name: "q", Rule: Rule{Required: true}}})
	f.HandleChange("q", "hello")

	boom := errors.New("boom")
	ran, err := f.HandleSubmit(context.Background(), func(context.Context, Values) error { return boom })
	if !ran {
		t.Fatalf("expected submit to run")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected submit error, got %v", err)
	}
}
