package input

import (
	"modgrip/internal/domain"
	"modgrip/internal/search"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Modules       []domain.Module
	SelectedIndex int
	Capabilities  domain.Capabilities
	Search        search.State
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.SelectedIndex
}

// TotalItems returns the number of visible modules
func (c *ModelContext) TotalItems() int {
	return len(c.Modules)
}

// CurrentModule returns the module under the cursor
func (c *ModelContext) CurrentModule() (domain.Module, bool) {
	if c.SelectedIndex < 0 || c.SelectedIndex >= len(c.Modules) {
		return domain.Module{}, false
	}
	return c.Modules[c.SelectedIndex], true
}

// Privileged reports whether the viewer may edit and delete
func (c *ModelContext) Privileged() bool {
	return c.Capabilities.IsPrivileged
}

// FreeText returns the free text part of the search field
func (c *ModelContext) FreeText() string {
	return c.Search.FreeText
}

// Filter returns the active filter
func (c *ModelContext) Filter() domain.FilterMode {
	return c.Search.Filter
}

// VisibleFilters returns the filters the picker shows to this viewer
func (c *ModelContext) VisibleFilters() []domain.FilterMode {
	var visible []domain.FilterMode
	for _, f := range domain.FilterModes {
		if f.VisibleTo(c.Capabilities) {
			visible = append(visible, f)
		}
	}
	return visible
}
