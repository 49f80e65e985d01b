// Package web holds the server-rendered views: templates, static assets,
// the sidebar definition and the page view-model shared by all handlers.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates content static nav.yaml
var assets embed.FS

// Static returns the embedded static assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// DefaultNavigation parses the embedded sidebar definition.
func DefaultNavigation() (*Navigation, error) {
	raw, err := assets.ReadFile("nav.yaml")
	if err != nil {
		return nil, err
	}
	return ParseNavigation(raw)
}

// Content returns the embedded markdown document name (without extension)
// rendered to HTML.
func Content(name string) (Document, error) {
	raw, err := assets.ReadFile("content/" + name + ".md")
	if err != nil {
		return Document{}, err
	}
	html, err := Markdown(string(raw))
	if err != nil {
		return Document{}, err
	}
	return Document{Name: name, HTML: html}, nil
}
