package handler

import (
	"net/url"
	"regexp"

	"github.com/lawbot360/web/internal/form"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	formLogin    = "login"
	formRegister = "register"
	formContact  = "contact"
)

func loginSchema() form.Schema {
	return form.Schema{
		{Name: "email", Rule: form.Rule{Required: true, Pattern: emailPattern, Message: "Please enter a valid email address"}},
		{Name: "password", Rule: form.Rule{Required: true, Message: "Password is required"}},
	}
}

func registerSchema() form.Schema {
	return form.Schema{
		{Name: "name", Rule: form.Rule{Required: true, MinLength: 2, Message: "Name must be at least 2 characters"}},
		{Name: "email", Rule: form.Rule{Required: true, Pattern: emailPattern, Message: "Please enter a valid email address"}},
		{Name: "password", Rule: form.Rule{Required: true, MinLength: 6, Message: "Password must be at least 6 characters"}},
		{Name: "confirmPassword", Rule: form.Rule{Required: true, Custom: passwordsMatch}},
	}
}

func contactSchema() form.Schema {
	return form.Schema{
		{Name: "name", Rule: form.Rule{Required: true, MinLength: 2, MaxLength: 100, Message: "Please enter your name"}},
		{Name: "email", Rule: form.Rule{Required: true, Pattern: emailPattern, Message: "Please enter a valid email address"}},
		{Name: "subject", Rule: form.Rule{Required: true, MaxLength: 150}},
		{Name: "message", Rule: form.Rule{Required: true, MinLength: 10, MaxLength: 5000}},
	}
}

func passwordsMatch(value string, all form.Values) string {
	if value != all["password"] {
		return "Passwords do not match"
	}
	return ""
}

// schemas is the registry used by the blur endpoint.
var schemas = map[string]func() form.Schema{
	formLogin:    loginSchema,
	formRegister: registerSchema,
	formContact:  contactSchema,
}

// fillForm builds a form for schema and feeds every schema field from
// params through HandleChange.
func fillForm(schema form.Schema, params url.Values) *form.Form {
	f := form.New(schema)
	for _, field := range schema {
		f.HandleChange(field.Name, params.Get(field.Name))
	}
	return f
}
