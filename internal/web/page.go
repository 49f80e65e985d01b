package web

import (
	"html/template"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/form"
)

// FlashKind selects the notice style.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notice rendered at the top of a page.
type Flash struct {
	Kind FlashKind
	Text string
}

// Page is the view-model every template receives.
type Page struct {
	Title           string
	CurrentPath     string
	Nav             []NavItem
	IsAuthenticated bool
	User            *domain.User
	Flash           *Flash
	Form            *form.Form
	Data            any
}

// Document is a static page rendered from embedded markdown.
type Document struct {
	Name string
	HTML template.HTML
}

// WithFlash returns p carrying a notice.
func (p Page) WithFlash(kind FlashKind, text string) Page {
	if text == "" {
		return p
	}
	p.Flash = &Flash{Kind: kind, Text: text}
	return p
}

// FieldView is what the "field" partial renders: one labelled input with
// its current value and visible error.
type FieldView struct {
	Form     string
	Name     string
	Label    string
	Type     string
	Value    string
	Error    string
	Required bool
}
