package insights

import (
	"fmt"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// maxPlainPages is the largest page count rendered without ellipses.
const maxPlainPages = 7

// EstimateTotal derives the total count for a page. When the API reported a
// total it is used as is; otherwise a full page implies at least one more.
func EstimateTotal(page, pageSize, returned int, total *int) (count int, known bool) {
	if total != nil {
		return *total, true
	}
	if page < 1 {
		page = 1
	}
	seen := (page-1)*pageSize + returned
	if returned >= pageSize && pageSize > 0 {
		// One phantom item keeps the next page reachable.
		return seen + 1, false
	}
	return seen, false
}

// Paginate computes the footer range and the windowed page control.
func Paginate(currentPage, pageSize, totalCount int, totalKnown bool) domain.Pagination {
	if pageSize <= 0 {
		pageSize = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	from, to := 0, 0
	if totalCount > 0 {
		from = (currentPage-1)*pageSize + 1
		to = currentPage * pageSize
		if to > totalCount {
			to = totalCount
		}
		if from > totalCount {
			from, to = 0, 0
		}
	}

	p := domain.Pagination{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		From:        from,
		To:          to,
		HasMore:     currentPage < totalPages,
		Items:       PageWindow(currentPage, totalPages),
	}
	p.Summary = summary(p, totalKnown)
	return p
}

func summary(p domain.Pagination, totalKnown bool) string {
	if p.From == 0 {
		return "No tickets"
	}
	if !totalKnown && p.HasMore {
		return fmt.Sprintf("Showing %d to %d of %d+", p.From, p.To, p.To)
	}
	return fmt.Sprintf("Showing %d to %d of %d", p.From, p.To, p.TotalCount)
}

// PageWindow lists every page when there are at most seven; otherwise the
// first page, a window around the current page, and the last page, with
// ellipses marking the gaps.
func PageWindow(current, totalPages int) []domain.PageItem {
	if totalPages <= 0 {
		return []domain.PageItem{}
	}
	if current > totalPages {
		current = totalPages
	}
	page := func(n int) domain.PageItem {
		return domain.PageItem{Page: n, Current: n == current}
	}

	items := make([]domain.PageItem, 0, maxPlainPages)
	if totalPages <= maxPlainPages {
		for n := 1; n <= totalPages; n++ {
			items = append(items, page(n))
		}
		return items
	}

	var start, end int
	switch {
	case current <= 4:
		start, end = 2, 5
	case current >= totalPages-3:
		start, end = totalPages-4, totalPages-1
	default:
		start, end = current-1, current+1
	}

	items = append(items, page(1))
	if start > 2 {
		items = append(items, domain.PageItem{Ellipsis: true})
	}
	for n := start; n <= end; n++ {
		items = append(items, page(n))
	}
	if end < totalPages-1 {
		items = append(items, domain.PageItem{Ellipsis: true})
	}
	items = append(items, page(totalPages))
	return items
}
