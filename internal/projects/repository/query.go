package repository

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/devcatalog/projects-api/internal/projects/domain"
)

const projectColumns = "p.id, p.name, p.description, p.repository_url, p.language, p.rating, p.created_at, p.updated_at"

// listStatements holds the COUNT and SELECT statements for a list query.
// Both are built from the same WHERE fragment and argument slice, so the
// reported total always matches the filtered set the page is drawn from.
type listStatements struct {
	countSQL   string
	countArgs  []any
	selectSQL  string
	selectArgs []any
}

// buildListStatements translates the optional filter/sort/page parameters
// into parameterized statements. Every user-supplied value is bound through a
// placeholder; the only interpolated pieces are the allow-listed sort field
// and order.
func buildListStatements(q domain.ListQuery) listStatements {
	var where strings.Builder
	args := make([]any, 0, 8)

	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	where.WriteString(" WHERE 1=1")

	if s := q.Search; s != "" {
		ph := bind("%" + s + "%")
		fmt.Fprintf(&where, " AND (p.name ILIKE %s OR p.description ILIKE %s)", ph, ph)
	}

	if t := q.TechnologyFilter(); t != "" {
		ph := bind("%" + t + "%")
		fmt.Fprintf(&where,
			" AND EXISTS (SELECT 1 FROM project_technologies pt JOIN technologies t ON pt.technology_id = t.id WHERE pt.project_id = p.id AND t.name ILIKE %s)",
			ph)
	}

	if q.UserID != "" {
		if userID, err := uuid.Parse(q.UserID); err == nil {
			ph := bind(userID.String())
			fmt.Fprintf(&where,
				" AND EXISTS (SELECT 1 FROM project_users pu WHERE pu.project_id = p.id AND pu.user_id = %s)",
				ph)
		} else {
			// A malformed user id matches nothing instead of erroring.
			where.WriteString(" AND false")
		}
	}

	if q.MinRating != nil {
		fmt.Fprintf(&where, " AND p.rating >= %s", bind(*q.MinRating))
	}

	if q.MaxRating != nil {
		fmt.Fprintf(&where, " AND p.rating <= %s", bind(*q.MaxRating))
	}

	if l := q.Language; l != "" {
		fmt.Fprintf(&where, " AND p.language ILIKE %s", bind("%"+l+"%"))
	}

	countSQL := "SELECT COUNT(*) FROM projects p" + where.String()

	selectSQL := fmt.Sprintf(
		"SELECT %s FROM projects p%s ORDER BY p.%s %s LIMIT $%d OFFSET $%d",
		projectColumns, where.String(), q.SortField(), q.SortOrder(), len(args)+1, len(args)+2,
	)
	selectArgs := append(slices.Clone(args), q.EffectivePageSize(), q.Offset())

	return listStatements{
		countSQL:   countSQL,
		countArgs:  args,
		selectSQL:  selectSQL,
		selectArgs: selectArgs,
	}
}
