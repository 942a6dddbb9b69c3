package ticketing

import (
	"strconv"
	"strings"
)

// BuildFilterQuery renders the helpdesk filter expression, e.g.
// org_unit_id:42 AND status:2 AND priority:4.
func BuildFilterQuery(req PageRequest) string {
	var b strings.Builder
	b.WriteString("org_unit_id:")
	b.WriteString(strings.TrimSpace(req.OrgUnitID))
	if req.Status != nil {
		b.WriteString(" AND status:")
		b.WriteString(strconv.Itoa(int(*req.Status)))
	}
	if req.Priority != nil {
		b.WriteString(" AND priority:")
		b.WriteString(strconv.Itoa(int(*req.Priority)))
	}
	return b.String()
}
