package web

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Label     string `yaml:"label"`
	Path      string `yaml:"path"`
	Icon      string `yaml:"icon"`
	Protected bool   `yaml:"protected"`
	Anonymous bool   `yaml:"anonymous"`
}

// Navigation is the parsed sidebar definition.
type Navigation struct {
	items []NavItem
}

// ParseNavigation decodes a YAML list of NavItem.
func ParseNavigation(raw []byte) (*Navigation, error) {
	var items []NavItem
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse navigation: %w", err)
	}
	for i, it := range items {
		if it.Path == "" || it.Label == "" {
			return nil, fmt.Errorf("parse navigation: item %d needs label and path", i)
		}
		if it.Protected && it.Anonymous {
			return nil, fmt.Errorf("parse navigation: %s cannot be both protected and anonymous", it.Path)
		}
	}
	return &Navigation{items: items}, nil
}

// For returns the items visible to a visitor.
func (n *Navigation) For(authenticated bool) []NavItem {
	out := make([]NavItem, 0, len(n.items))
	for _, it := range n.items {
		if it.Protected && !authenticated {
			continue
		}
		if it.Anonymous && authenticated {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Protected reports whether path is marked protected in the sidebar.
func (n *Navigation) Protected(path string) bool {
	for _, it := range n.items {
		if it.Path == path {
			return it.Protected
		}
	}
	return false
}
