package postgres

import (
	"strconv"
	"strings"

	"github.com/tmorrell/taskboard-api/internal/store"
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, title, description, priority, due_date, completed, created_at, updated_at"

// taskQueryBuilder accumulates WHERE predicates and their bound arguments in
// a fixed order, then renders a page-selecting query and a count query from
// the same sequence. Predicates use `?` markers; positional `$n` placeholders
// are assigned at render time, so each rendered query numbers its own
// parameters from 1 and there is no counter to keep in sync by hand.
type taskQueryBuilder struct {
	predicates []string
	args       []any
}

// newTaskQueryBuilder builds the predicate sequence for a filter.
// Filter order is fixed: priority, completed, search. Absent filters
// contribute nothing, so a zero filter selects every row.
func newTaskQueryBuilder(filter store.TaskFilter) *taskQueryBuilder {
	b := &taskQueryBuilder{}

	if filter.Priority != nil {
		b.where("priority = ?", string(*filter.Priority))
	}
	if filter.Completed != nil {
		b.where("completed = ?", *filter.Completed)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLikePattern(filter.Search) + "%"
		b.where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	return b
}

// where appends a conjunctive predicate. The predicate must contain one `?`
// marker per argument; values are always bound, never interpolated.
func (b *taskQueryBuilder) where(predicate string, args ...any) {
	b.predicates = append(b.predicates, predicate)
	b.args = append(b.args, args...)
}

// whereClause joins the accumulated predicates, or returns "" when there are none.
func (b *taskQueryBuilder) whereClause() string {
	if len(b.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.predicates, " AND ")
}

// SelectQuery renders the data query for one page of results, ordered by
// creation time descending. LIMIT and OFFSET are appended as the final two
// parameters.
func (b *taskQueryBuilder) SelectQuery(limit, offset int) (string, []any) {
	query := "SELECT " + taskColumns + " FROM tasks" + b.whereClause() +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"

	args := make([]any, 0, len(b.args)+2)
	args = append(args, b.args...)
	args = append(args, limit, offset)

	return numberPlaceholders(query), args
}

// CountQuery renders the total-count query over the same predicates, with its
// own parameter numbering starting at 1.
func (b *taskQueryBuilder) CountQuery() (string, []any) {
	query := "SELECT COUNT(*) FROM tasks" + b.whereClause()

	args := make([]any, len(b.args))
	copy(args, b.args)

	return numberPlaceholders(query), args
}

// numberPlaceholders replaces each `?` marker with the next `$n` placeholder,
// numbering by position from 1.
func numberPlaceholders(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// escapeLikePattern escapes the LIKE metacharacters in a user-supplied search
// string so it matches literally inside the surrounding wildcards.
func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
