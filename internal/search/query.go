package search

import "slices"

// Query is the merged state of the search field
type Query struct {
	Raw      string
	Tags     []string
	FreeText string
}

// ParseQuery builds a Query from raw field text
func ParseQuery(raw string) Query {
	tags, free := Tokenize(raw)
	return Query{Raw: raw, Tags: tags, FreeText: free}
}

// WithFreeText merges new free text with the existing tags. Tag tokens typed
// into the free text are lifted into Tags, and Raw is rebuilt from the
// deduplicated result.
func (q Query) WithFreeText(freeText string) Query {
	tags, free := Tokenize(Compose(q.Tags, freeText))
	return Query{Raw: Compose(tags, free), Tags: tags, FreeText: free}
}

// WithoutLastTag drops the most recently added tag
func (q Query) WithoutLastTag() Query {
	if len(q.Tags) == 0 {
		return q
	}
	tags := slices.Clone(q.Tags[:len(q.Tags)-1])
	return Query{Raw: Compose(tags, q.FreeText), Tags: tags, FreeText: q.FreeText}
}

// Empty reports whether the query has neither tags nor free text
func (q Query) Empty() bool {
	return len(q.Tags) == 0 && q.FreeText == ""
}
