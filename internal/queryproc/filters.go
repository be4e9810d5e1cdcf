package queryproc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pustaka-ai/pustaka/internal/model"
)

// FilterOp selects how a predicate compares its value to the field.
type FilterOp string

const (
	OpYear     FilterOp = "year"     // 4-digit year extracted from the date field
	OpContains FilterOp = "contains" // case-insensitive substring
	OpEquals   FilterOp = "equals"   // exact match
)

// Filter is one advisory predicate over a single document metadata field.
// It can both translate itself to SQL for candidate fetching and evaluate
// itself in memory for the ranker's metadata-match boost.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// BuildFilters maps detected query entities to catalog predicates. An
// empty result means "no filtering", never "match nothing".
func BuildFilters(entities model.QueryEntities) []Filter {
	var filters []Filter
	if entities.Year != 0 {
		filters = append(filters, Filter{Field: "date", Op: OpYear, Value: strconv.Itoa(entities.Year)})
	}
	if entities.Creator != "" {
		filters = append(filters, Filter{Field: "creator", Op: OpContains, Value: entities.Creator})
	}
	if entities.Language != "" {
		filters = append(filters, Filter{Field: "language", Op: OpContains, Value: entities.Language})
	}
	if entities.Publisher != "" {
		filters = append(filters, Filter{Field: "publisher", Op: OpContains, Value: entities.Publisher})
	}
	if entities.Location != "" {
		filters = append(filters, Filter{Field: "coverage", Op: OpContains, Value: entities.Location})
	}
	if entities.Source != "" {
		filters = append(filters, Filter{Field: "source", Op: OpContains, Value: entities.Source})
	}
	if entities.DOI != "" {
		filters = append(filters, Filter{Field: "doi", Op: OpEquals, Value: entities.DOI})
	}
	if entities.DocType != "" {
		filters = append(filters, Filter{Field: "type", Op: OpEquals, Value: string(entities.DocType)})
	}
	return filters
}

// Match evaluates the predicate against a catalog record in memory.
func (f Filter) Match(doc *model.Document) bool {
	if doc == nil {
		return false
	}
	switch f.Op {
	case OpYear:
		return len(doc.Date) >= 4 && doc.Date[:4] == f.Value
	case OpEquals:
		return strings.EqualFold(fieldValue(doc, f.Field), f.Value)
	case OpContains:
		if f.Field == "creator" {
			// An author may appear in either creator or contributor.
			return containsFold(doc.Creator, f.Value) || containsFold(doc.Contributor, f.Value)
		}
		return containsFold(fieldValue(doc, f.Field), f.Value)
	default:
		return false
	}
}

// SQL renders the predicate as a condition over the documents table
// (alias d) with positional arguments.
func (f Filter) SQL() (cond string, args []interface{}) {
	switch f.Op {
	case OpYear:
		return "substring(d.date from 1 for 4) = ?", []interface{}{f.Value}
	case OpEquals:
		return fmt.Sprintf("lower(d.%s) = lower(?)", f.Field), []interface{}{f.Value}
	default:
		like := "%" + f.Value + "%"
		if f.Field == "creator" {
			return "(d.creator ILIKE ? OR d.contributor ILIKE ?)", []interface{}{like, like}
		}
		return fmt.Sprintf("d.%s ILIKE ?", f.Field), []interface{}{like}
	}
}

// MatchAll reports whether every filter accepts the document. With no
// filters it reports false: the boost only applies when an active filter
// actually matched.
func MatchAll(filters []Filter, doc *model.Document) bool {
	if len(filters) == 0 {
		return false
	}
	for _, f := range filters {
		if !f.Match(doc) {
			return false
		}
	}
	return true
}

func fieldValue(doc *model.Document, field string) string {
	switch field {
	case "language":
		return doc.Language
	case "publisher":
		return doc.Publisher
	case "coverage":
		return doc.Coverage
	case "source":
		return doc.Source
	case "doi":
		return doc.DOI
	case "type":
		return string(doc.Type)
	case "creator":
		return doc.Creator
	case "date":
		return doc.Date
	default:
		return ""
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
