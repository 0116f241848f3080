package persistence

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// likeEscape is the escape character declared on every LIKE so that user
// input containing % or _ matches literally on both engines
const likeEscape = `\`

// foldCase lower-cases s rune by rune for every lookup that compares against
// lower(column). Context-sensitive rules such as the final sigma are not
// applied since SQL lower() does not apply them either.
func foldCase(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsPattern builds a LIKE pattern matching term anywhere, ignoring case
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(foldCase(term)) + "%"
}

// paginate applies LIMIT/OFFSET when the filter asks for a page
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		return query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
