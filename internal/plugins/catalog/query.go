package catalog

import (
	"strings"
)

// predicateKind tags the variants a Predicate can take.
type predicateKind int

const (
	// textMatch: case-insensitive substring over any of several columns.
	textMatch predicateKind = iota + 1
	// exactMatch: column equals value.
	exactMatch
	// substringMatch: case-insensitive substring over one column.
	substringMatch
)

// Predicate is one filter condition. Construct it with TextMatch,
// ExactMatch or SubstringMatch.
type Predicate struct {
	kind    predicateKind
	columns []string
	value   any
}

// TextMatch matches rows where any of columns contains term, ignoring case.
func TextMatch(term string, columns ...string) Predicate {
	return Predicate{kind: textMatch, columns: columns, value: term}
}

// ExactMatch matches rows where column equals value. Pass a LOWER(...)
// column with a lower-cased value for a case-insensitive match.
func ExactMatch(column string, value any) Predicate {
	return Predicate{kind: exactMatch, columns: []string{column}, value: value}
}

// SubstringMatch matches rows where column contains term, ignoring case.
func SubstringMatch(column, term string) Predicate {
	return Predicate{kind: substringMatch, columns: []string{column}, value: term}
}

// sql renders a single predicate and its arguments.
func (p Predicate) sql() (string, []any) {
	switch p.kind {
	case textMatch:
		pattern := containsPattern(p.value.(string))
		parts := make([]string, len(p.columns))
		args := make([]any, len(p.columns))
		for i, col := range p.columns {
			parts[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return "(" + strings.Join(parts, " OR ") + ")", args
	case exactMatch:
		return p.columns[0] + " = ?", []any{p.value}
	case substringMatch:
		return "LOWER(" + p.columns[0] + ") LIKE ?", []any{containsPattern(p.value.(string))}
	default:
		panic("catalog: zero Predicate")
	}
}

// Predicates accumulates conditions that are combined with AND.
type Predicates []Predicate

// Add appends p.
func (ps *Predicates) Add(p Predicate) {
	*ps = append(*ps, p)
}

// SQL folds the predicates into a WHERE clause (with leading space) and
// its positional arguments. No predicates yields an empty clause, which
// selects every row.
func (ps Predicates) SQL() (string, []any) {
	if len(ps) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(ps))
	var args []any
	for _, p := range ps {
		clause, a := p.sql()
		clauses = append(clauses, clause)
		args = append(args, a...)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Column references used by the discovery query. See classSelect.
const (
	colTitle       = "c.title"
	colSubject     = "c.subject"
	colDescription = "c.description"
	colTeacherName = "a.name"
	colModality    = "LOWER(c.modality)"
	colTeacherID   = "c.teacher_id"
	colCity        = "p.city"
)

// FilterPredicates translates a Filter into predicates, skipping criteria
// that are empty after trimming. An unrecognized modality is kept as-is so
// it matches nothing rather than being widened.
func FilterPredicates(f Filter) Predicates {
	var ps Predicates
	if q := strings.TrimSpace(f.Query); q != "" {
		ps.Add(TextMatch(q, colTitle, colSubject, colDescription, colTeacherName))
	}
	if m := strings.TrimSpace(f.Modality); m != "" {
		ps.Add(ExactMatch(colModality, strings.ToLower(m)))
	}
	if city := strings.TrimSpace(f.City); city != "" {
		ps.Add(SubstringMatch(colCity, city))
	}
	if f.TeacherID > 0 {
		ps.Add(ExactMatch(colTeacherID, f.TeacherID))
	}
	return ps
}

// likeEscaper escapes LIKE metacharacters with MySQL's default escape
// character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
