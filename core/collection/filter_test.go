package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	items := seedRecords()

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{name: "empty query", wantIDs: []string{"1", "2", "3"}},
		{name: "all sentinels", query: Query{Filters: map[string]string{"status": All, "department": All}}, wantIDs: []string{"1", "2", "3"}},
		{name: "search (unknown)", query: Query{Search: "lol"}, wantIDs: []string{}},
		{name: "search name, case insensitive", query: Query{Search: "MICHAEL"}, wantIDs: []string{"2"}},
		{name: "search any field", query: Query{Search: "davis@"}, wantIDs: []string{"3"}},
		{name: "search substring of several", query: Query{Search: "school.com"}, wantIDs: []string{"1", "2", "3"}},
		{name: "search is literal", query: Query{Search: "  sarah  "}, wantIDs: []string{}},
		{name: "status=active", query: Query{Filters: map[string]string{"status": "active"}}, wantIDs: []string{"1", "2"}},
		{name: "status (unknown)", query: Query{Filters: map[string]string{"status": "lol"}}, wantIDs: []string{}},
		{name: "status is exact", query: Query{Filters: map[string]string{"status": "Active"}}, wantIDs: []string{}},
		{
			name:    "dimensions AND",
			query:   Query{Filters: map[string]string{"status": "active", "department": "Academic"}},
			wantIDs: []string{"1"},
		},
		{
			name:    "search AND dimension",
			query:   Query{Search: "a", Filters: map[string]string{"department": "Academic"}},
			wantIDs: []string{"1", "3"},
		},
		{name: "unknown dimension ignored", query: Query{Filters: map[string]string{"colour": "red"}}, wantIDs: []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIDs, ids(Filter(items, recordSpec, tt.query)))
		})
	}
}

func TestFilter_scenario(t *testing.T) {
	items := []record{{ID: "1", Status: "active"}, {ID: "2", Status: "inactive"}}

	got := Filter(items, recordSpec, Query{Filters: map[string]string{"status": "active"}})

	require.Len(t, got, 1)
	assert.Equal(t, items[0], got[0])
}

func TestFilter_whitespaceTerm(t *testing.T) {
	items := []record{{ID: "1", Name: "Jo Doe"}, {ID: "2", Name: "Ann"}}

	assert.Equal(t, []string{"1"}, ids(Filter(items, recordSpec, Query{Search: " "})))
}

// the result must be an order-preserving subsequence whose every element matches.
func TestFilter_subsequence(t *testing.T) {
	items := append(seedRecords(), seedRecords()...)
	for i := range items {
		items[i].ID = string(rune('a' + i))
	}
	queries := []Query{
		{},
		{Search: "a"},
		{Search: "o", Filters: map[string]string{"status": "active"}},
		{Filters: map[string]string{"department": "Administration"}},
	}
	for _, q := range queries {
		got := Filter(items, recordSpec, q)

		pos := 0
		for _, e := range got {
			assert.True(t, recordSpec.Match(e, q))
			for pos < len(items) && items[pos].ID != e.ID {
				pos++
			}
			if pos == len(items) {
				t.Fatalf("%v is not a subsequence of the collection for %+v", ids(got), q)
			}
			pos++
		}
	}
}

func TestQuery_Key(t *testing.T) {
	tests := []struct {
		name      string
		q1, q2    Query
		wantEqual bool
	}{
		{
			name:      "case & unconstrained filters",
			q1:        Query{Search: "Sarah", Filters: map[string]string{"status": "active", "department": All}},
			q2:        Query{Search: "sarah", Filters: map[string]string{"status": "active"}},
			wantEqual: true,
		},
		{
			name: "filter value",
			q1:   Query{Search: "sarah", Filters: map[string]string{"status": "active"}},
			q2:   Query{Search: "sarah", Filters: map[string]string{"status": "inactive"}},
		},
		{
			name: "surrounding whitespace",
			q1:   Query{Search: " sarah"},
			q2:   Query{Search: "sarah"},
		},
		{
			name: "term spelling out a filter",
			q1:   Query{Search: "a", Filters: map[string]string{"status": "active"}},
			q2:   Query{Search: "a\x00status=active"},
		},
		{
			name: "term spelling out a quoted filter",
			q1:   Query{Search: "a", Filters: map[string]string{"status": "active"}},
			q2:   Query{Search: `a" "status"="active`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q1.Key() == tt.q2.Key(); got != tt.wantEqual {
				t.Errorf("failed! keys %q and %q equal = %v; want %v", tt.q1.Key(), tt.q2.Key(), got, tt.wantEqual)
			}
		})
	}
}

func TestQuery_Clean(t *testing.T) {
	q := Query{Search: "  x ", Filters: map[string]string{"status": All, "department": "", "class": "1"}}
	q.Clean()

	assert.Equal(t, "  x ", q.Search)
	assert.Equal(t, map[string]string{"class": "1"}, q.Filters)
}

func TestViewCache(t *testing.T) {
	c, err := NewViewCache[[]record](2)
	require.NoError(t, err)

	q := Query{Search: "x"}
	c.Add(1, q, []record{{ID: "1"}})

	got, ok := c.Get(1, Query{Search: "X"})
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, ids(got))

	_, ok = c.Get(2, q)
	assert.False(t, ok, "a new store version must miss")
}

func TestSpec_Options(t *testing.T) {
	spec := recordSpec
	spec.Dimensions = append(spec.Dimensions, Dimension[record]{
		Name:        "tag",
		OptionsFunc: func() []string { return []string{"x", "y"} },
		Value:       func(r record) string { return "" },
	}, Dimension[record]{Name: "none", Value: func(r record) string { return "" }})

	assert.Equal(t, []DimensionOptions{
		{Name: "status", Default: All, Options: []string{"active", "inactive"}},
		{Name: "department", Default: All, Options: []string{"Academic", "Administration"}},
		{Name: "tag", Default: All, Options: []string{"x", "y"}},
		{Name: "none", Default: All, Options: []string{}},
	}, spec.Options())
}
