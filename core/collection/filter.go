package collection

import (
	"sort"
	"strconv"
	"strings"
)

// All is the sentinel filter value imposing no constraint on its dimension.
const All = "all"

type (
	// Dimension is one categorical field an entity can be filtered on.
	Dimension[T any] struct {
		Name    string
		Options []string // selectable values, without the All sentinel
		// OptionsFunc, when set, is called instead of reading Options (for options owned by another view).
		OptionsFunc func() []string
		Value       func(T) string
	}

	// Spec designates the searchable text fields and the filter dimensions of an entity type.
	Spec[T any] struct {
		Search     func(T) []string
		Dimensions []Dimension[T]
	}

	// Query is the current search & filter state of a view.
	// Filters maps a dimension name to its selected value.
	Query struct {
		Search  string
		Filters map[string]string
	}

	// DimensionOptions describes a Dimension for rendering a filter dropdown.
	DimensionOptions struct {
		Name    string   `json:"name"`
		Default string   `json:"default"`
		Options []string `json:"options"`
	}
)

// Clean drops unconstrained filters. The search term is kept as typed.
// Filters is replaced, never mutated.
func (q *Query) Clean() {
	filters := make(map[string]string, len(q.Filters))
	for name, val := range q.Filters {
		if !isUnconstrained(val) {
			filters[name] = val
		}
	}
	q.Filters = filters
}

// Key identifies the query; equal queries have equal keys.
// Every part is quoted so that no search term or filter value can forge another query's key.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(strings.ToLower(q.Search)))

	names := make([]string, 0, len(q.Filters))
	for name, val := range q.Filters {
		if !isUnconstrained(val) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(name))
		b.WriteString("=")
		b.WriteString(strconv.Quote(q.Filters[name]))
	}
	return b.String()
}

func isUnconstrained(val string) bool {
	return val == "" || val == All
}

// Match reports whether e satisfies q:
// (no search term OR any search field contains it, case-insensitively) AND every constrained dimension equals its value.
// A non-empty term is matched literally, whitespace included.
func (s Spec[T]) Match(e T, q Query) bool {
	if term := strings.ToLower(q.Search); term != "" && s.Search != nil {
		var found bool
		for _, fld := range s.Search(e) {
			if strings.Contains(strings.ToLower(fld), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, dim := range s.Dimensions {
		val := q.Filters[dim.Name]
		if isUnconstrained(val) {
			continue
		}
		if dim.Value(e) != val {
			return false
		}
	}
	return true
}

// Options lists the filter dimensions of the spec.
func (s Spec[T]) Options() []DimensionOptions {
	opts := make([]DimensionOptions, 0, len(s.Dimensions))
	for _, dim := range s.Dimensions {
		options := dim.Options
		if dim.OptionsFunc != nil {
			options = dim.OptionsFunc()
		}
		if options == nil {
			options = []string{}
		}
		opts = append(opts, DimensionOptions{Name: dim.Name, Default: All, Options: options})
	}
	return opts
}

// Filter returns the entities of items matching q, preserving their order.
func Filter[T any](items []T, spec Spec[T], q Query) []T {
	filtered := make([]T, 0, len(items))
	for _, e := range items {
		if spec.Match(e, q) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
