package queryproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
)

func TestBuildFiltersEmptyEntities(t *testing.T) {
	require.Empty(t, BuildFilters(model.QueryEntities{}))
}

func TestBuildFiltersOnePerEntity(t *testing.T) {
	filters := BuildFilters(model.QueryEntities{
		Year:     2020,
		Creator:  "budi santoso",
		Language: "id",
		DocType:  model.DocumentTypeJournal,
	})
	require.Len(t, filters, 4)
	fields := make(map[string]FilterOp)
	for _, f := range filters {
		fields[f.Field] = f.Op
	}
	require.Equal(t, OpYear, fields["date"])
	require.Equal(t, OpContains, fields["creator"])
	require.Equal(t, OpContains, fields["language"])
	require.Equal(t, OpEquals, fields["type"])
}

func TestFilterMatch(t *testing.T) {
	doc := &model.Document{
		Title:       "Produktivitas Padi",
		Creator:     "Budi Santoso",
		Contributor: "Siti Aminah",
		Publisher:   "Gramedia",
		Language:    "id",
		Date:        "2020-06-15",
		Type:        model.DocumentTypeJournal,
		Coverage:    "Blitar, Jawa Timur",
		DOI:         "10.1234/jurnal.v5.678",
	}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"year from date prefix", Filter{Field: "date", Op: OpYear, Value: "2020"}, true},
		{"year mismatch", Filter{Field: "date", Op: OpYear, Value: "2019"}, false},
		{"creator substring case-insensitive", Filter{Field: "creator", Op: OpContains, Value: "budi"}, true},
		{"creator matches contributor", Filter{Field: "creator", Op: OpContains, Value: "siti"}, true},
		{"creator absent", Filter{Field: "creator", Op: OpContains, Value: "andi"}, false},
		{"coverage substring", Filter{Field: "coverage", Op: OpContains, Value: "blitar"}, true},
		{"doi exact", Filter{Field: "doi", Op: OpEquals, Value: "10.1234/jurnal.v5.678"}, true},
		{"type exact", Filter{Field: "type", Op: OpEquals, Value: "journal"}, true},
		{"type mismatch", Filter{Field: "type", Op: OpEquals, Value: "thesis"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.Match(doc))
		})
	}
}

func TestFilterMatchNilDocument(t *testing.T) {
	f := Filter{Field: "creator", Op: OpContains, Value: "budi"}
	require.False(t, f.Match(nil))
}

func TestMatchAll(t *testing.T) {
	doc := &model.Document{Creator: "Budi Santoso", Date: "2020-01-01"}
	year := Filter{Field: "date", Op: OpYear, Value: "2020"}
	creator := Filter{Field: "creator", Op: OpContains, Value: "budi"}
	wrong := Filter{Field: "creator", Op: OpContains, Value: "siti"}

	require.True(t, MatchAll([]Filter{year, creator}, doc))
	require.False(t, MatchAll([]Filter{year, wrong}, doc))
	require.False(t, MatchAll(nil, doc))
}

func TestFilterSQL(t *testing.T) {
	cond, args := Filter{Field: "date", Op: OpYear, Value: "2020"}.SQL()
	require.Equal(t, "substring(d.date from 1 for 4) = ?", cond)
	require.Equal(t, []interface{}{"2020"}, args)

	cond, args = Filter{Field: "creator", Op: OpContains, Value: "budi"}.SQL()
	require.Equal(t, "(d.creator ILIKE ? OR d.contributor ILIKE ?)", cond)
	require.Equal(t, []interface{}{"%budi%", "%budi%"}, args)

	cond, args = Filter{Field: "type", Op: OpEquals, Value: "journal"}.SQL()
	require.Equal(t, "lower(d.type) = lower(?)", cond)
	require.Equal(t, []interface{}{"journal"}, args)
}
