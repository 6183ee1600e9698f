package sqlite

import (
	"database/sql"
	"strings"

	"github.com/fwojciec/texdex"
)

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// likeEscaper escapes LIKE wildcards so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching any string containing term.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// scanRecords reads all rows of an id, title, url, source projection.
func scanRecords(rows *sql.Rows) ([]*texdex.Record, error) {
	defer rows.Close()

	records := []*texdex.Record{}
	for rows.Next() {
		var r texdex.Record
		if err := rows.Scan(&r.ID, &r.Title, &r.URL, &r.Source); err != nil {
			return nil, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to read records")
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, texdex.WrapError(texdex.EUNAVAILABLE, err, "failed to read records")
	}
	return records, nil
}
