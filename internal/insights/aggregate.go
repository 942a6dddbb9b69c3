package insights

import (
	"sort"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

// AggregateByStatus counts tickets per status label, ordered by status code.
func AggregateByStatus(tickets []domain.Ticket) []domain.Bucket {
	counts := make(map[domain.TicketStatus]int)
	for _, t := range tickets {
		counts[t.Status]++
	}
	codes := make([]domain.TicketStatus, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	buckets := make([]domain.Bucket, 0, len(codes))
	for _, code := range codes {
		buckets = append(buckets, domain.Bucket{Label: StatusLabel(code), Count: counts[code]})
	}
	return buckets
}

// AggregateByPriority fills the four fixed priority buckets. Tickets with a
// priority code outside 1-4 are not counted.
func AggregateByPriority(tickets []domain.Ticket) domain.PriorityCounts {
	var counts domain.PriorityCounts
	for _, t := range tickets {
		switch t.Priority {
		case domain.TicketPriorityUrgent:
			counts.Urgent++
		case domain.TicketPriorityHigh:
			counts.High++
		case domain.TicketPriorityMedium:
			counts.Medium++
		case domain.TicketPriorityLow:
			counts.Low++
		}
	}
	return counts
}

// AggregateByDay counts tickets per UTC creation day in ascending date order.
// Tickets without a parseable creation time are skipped.
func AggregateByDay(tickets []domain.Ticket) []domain.Bucket {
	counts := make(map[string]int)
	for _, t := range tickets {
		created := t.CreatedAt
		if created.IsZero() {
			created = ParseTimestamp(t.RawCreatedAt)
		}
		if created.IsZero() {
			continue
		}
		counts[created.UTC().Format("2006-01-02")]++
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]domain.Bucket, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, domain.Bucket{Label: day, Count: counts[day]})
	}
	return buckets
}

// Aggregate computes all chart aggregates for one ticket set.
func Aggregate(tickets []domain.Ticket) domain.Aggregates {
	return domain.Aggregates{
		ByStatus:   AggregateByStatus(tickets),
		ByPriority: AggregateByPriority(tickets),
		ByDay:      AggregateByDay(tickets),
	}
}

// Cards computes the headline counters. Resolved includes closed tickets;
// pending includes both waiting-on states.
func Cards(tickets []domain.Ticket) domain.StatCards {
	cards := domain.StatCards{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			cards.Open++
		case domain.TicketStatusPending, domain.TicketStatusWaitingOnCustomer, domain.TicketStatusWaitingOnThirdParty:
			cards.Pending++
		case domain.TicketStatusResolved, domain.TicketStatusClosed:
			cards.Resolved++
		}
		if t.Priority == domain.TicketPriorityUrgent {
			cards.Urgent++
		}
	}
	return cards
}
