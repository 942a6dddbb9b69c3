package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// Sort keys accepted by SortPage.
const (
	SortKeyID            = "id"
	SortKeyStatus        = "status"
	SortKeyPriority      = "priority"
	SortKeyCreatedAt     = "created_at"
	SortKeyUpdatedAt     = "updated_at"
	SortKeyDueBy         = "due_by"
	SortKeySubject       = "subject"
	SortKeyRequesterName = "requester_name"
	SortKeyType          = "type"
	SortKeyCategory      = "category"
)

var sortKeys = map[string]struct{}{
	SortKeyID: {}, SortKeyStatus: {}, SortKeyPriority: {},
	SortKeyCreatedAt: {}, SortKeyUpdatedAt: {}, SortKeyDueBy: {},
	SortKeySubject: {}, SortKeyRequesterName: {}, SortKeyType: {}, SortKeyCategory: {},
}

// ValidSortKey reports whether key names a sortable column.
func ValidSortKey(key string) bool {
	_, ok := sortKeys[key]
	return ok
}

// SortPage returns a stably sorted copy. Dates compare as timestamps (zero
// dates as epoch 0), id/priority/status numerically, everything else as
// case-insensitive strings. Equal elements keep their input order in both
// directions.
func SortPage(tickets []domain.Ticket, key string, direction domain.SortDirection) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)
	if key == "" {
		return out
	}

	cmp := comparator(key)
	desc := direction == domain.SortDescending
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(key string) func(a, b domain.Ticket) int {
	switch key {
	case SortKeyID:
		return func(a, b domain.Ticket) int { return compareInt(a.ID, b.ID) }
	case SortKeyStatus:
		return func(a, b domain.Ticket) int { return compareInt(int64(a.Status), int64(b.Status)) }
	case SortKeyPriority:
		return func(a, b domain.Ticket) int { return compareInt(int64(a.Priority), int64(b.Priority)) }
	case SortKeyCreatedAt:
		return func(a, b domain.Ticket) int { return compareInt(epoch(a.CreatedAt), epoch(b.CreatedAt)) }
	case SortKeyUpdatedAt:
		return func(a, b domain.Ticket) int { return compareInt(epoch(a.UpdatedAt), epoch(b.UpdatedAt)) }
	case SortKeyDueBy:
		return func(a, b domain.Ticket) int { return compareInt(epoch(a.DueBy), epoch(b.DueBy)) }
	default:
		return func(a, b domain.Ticket) int {
			return strings.Compare(strings.ToLower(stringField(a, key)), strings.ToLower(stringField(b, key)))
		}
	}
}

func stringField(t domain.Ticket, key string) string {
	switch key {
	case SortKeySubject:
		return t.Subject
	case SortKeyRequesterName:
		return t.RequesterName
	case SortKeyType:
		return string(t.Type)
	case SortKeyCategory:
		return t.Category
	default:
		return ""
	}
}

func epoch(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
