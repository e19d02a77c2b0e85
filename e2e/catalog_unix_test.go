//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type catalogModule struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Trusted     bool     `json:"trusted"`
	Flagged     bool     `json:"flagged"`
}

// FakeCatalog serves the module listing API from memory and records
// every listing request it receives
type FakeCatalog struct {
	server *httptest.Server

	mu       sync.Mutex
	modules  []catalogModule
	admin    bool
	searches []string // raw query strings of listing requests
}

// NewFakeCatalog starts a catalog holding modules
func NewFakeCatalog(t *testing.T, modules ...catalogModule) *FakeCatalog {
	t.Helper()
	c := &FakeCatalog{modules: modules}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /modules", c.list)
	mux.HandleFunc("DELETE /modules/{id}", c.delete)
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		admin := c.admin
		c.mu.Unlock()
		writeJSON(w, map[string]any{"id": 1, "username": "tester", "is_admin": admin})
	})

	c.server = httptest.NewServer(mux)
	t.Cleanup(c.server.Close)
	return c
}

// URL returns the API endpoint
func (c *FakeCatalog) URL() string {
	return c.server.URL
}

// SetAdmin makes the current user privileged
func (c *FakeCatalog) SetAdmin(admin bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.admin = admin
}

// Searches returns the listing requests seen so far
func (c *FakeCatalog) Searches() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.searches...)
}

// SearchesFor counts listing requests whose search parameter equals text
func (c *FakeCatalog) SearchesFor(text string) int {
	n := 0
	for _, raw := range c.Searches() {
		if q, err := url.ParseQuery(raw); err == nil && q.Get("search") == text {
			n++
		}
	}
	return n
}

func (c *FakeCatalog) list(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searches = append(c.searches, r.URL.RawQuery)

	q := r.URL.Query()
	text := q.Get("search")
	var tags []string
	if raw := q.Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	out := []catalogModule{}
	for _, m := range c.modules {
		if text != "" && !strings.Contains(m.Name, text) {
			continue
		}
		if !hasTags(m, tags) {
			continue
		}
		if q.Get("filter") == "trusted" && !m.Trusted {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	writeJSON(w, map[string]any{"modules": out})
}

func (c *FakeCatalog) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.modules {
		if m.ID == id {
			c.modules = append(c.modules[:i], c.modules[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.NotFound(w, r)
}

func hasTags(m catalogModule, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range m.Tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// containsParam reports whether the raw query string sets key to value
func containsParam(raw, key, value string) bool {
	q, err := url.ParseQuery(raw)
	return err == nil && q.Get(key) == value
}
