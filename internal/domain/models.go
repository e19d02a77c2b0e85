package domain

import (
	"fmt"
	"strings"
	"time"
)

// Module represents a catalog entry for an installable unit
type Module struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"` // markdown
	Tags        []string  `json:"tags"`
	Trusted     bool      `json:"trusted"`
	Flagged     bool      `json:"flagged"`
	Author      string    `json:"author"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User is the currently signed-in operator
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Capabilities describes what the current viewer may see and do
type Capabilities struct {
	IsPrivileged bool
}

// Capabilities derives the viewer capabilities from the user record
func (u User) Capabilities() Capabilities {
	return Capabilities{IsPrivileged: u.IsAdmin}
}

// FilterMode selects which slice of the catalog the listing shows
type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterTrusted FilterMode = "trusted"
	FilterUser    FilterMode = "user"
	FilterFlagged FilterMode = "flagged"
)

// FilterModes lists every filter in display order
var FilterModes = []FilterMode{FilterAll, FilterTrusted, FilterUser, FilterFlagged}

// ParseFilterMode converts a config or flag value into a FilterMode
func ParseFilterMode(s string) (FilterMode, error) {
	f := FilterMode(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown filter mode %q", s)
	}
	return f, nil
}

// Valid reports whether f is one of the known filters
func (f FilterMode) Valid() bool {
	switch f {
	case FilterAll, FilterTrusted, FilterUser, FilterFlagged:
		return true
	}
	return false
}

// Selectable reports whether f can be chosen as the active filter.
// "user" is listed but permanently disabled.
func (f FilterMode) Selectable() bool {
	return f.Valid() && f != FilterUser
}

// VisibleTo reports whether the filter option is shown to a viewer
func (f FilterMode) VisibleTo(caps Capabilities) bool {
	if f == FilterFlagged {
		return caps.IsPrivileged
	}
	return f.Valid()
}

// Label returns the human-readable filter name
func (f FilterMode) Label() string {
	switch f {
	case FilterAll:
		return "All Modules"
	case FilterTrusted:
		return "Trusted Modules"
	case FilterUser:
		return "My Modules"
	case FilterFlagged:
		return "Flagged Modules"
	}
	return string(f)
}

// ModuleQuery is the request shape sent to the remote listing
type ModuleQuery struct {
	FreeText string
	Tags     []string
	Filter   FilterMode
	PageSize int
}

// Key returns a stable identifier for the query, used as a cache key
func (q ModuleQuery) Key() string {
	return fmt.Sprintf("%s|%s|%s|%d", q.Filter, strings.Join(q.Tags, ","), q.FreeText, q.PageSize)
}
