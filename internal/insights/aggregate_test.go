package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

func TestAggregateByStatusConservesCount(t *testing.T) {
	tickets := append(sampleTickets(), Normalize(domain.RawTicket{ID: 9, Status: 42, Priority: 2}))

	buckets := AggregateByStatus(tickets)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, len(tickets), total)
	assert.Equal(t, "Open", buckets[0].Label)
	assert.Equal(t, "Unknown (42)", buckets[len(buckets)-1].Label)
}

func TestAggregateByPriority(t *testing.T) {
	tickets := sampleTickets()
	counts := AggregateByPriority(tickets)

	assert.Equal(t, domain.PriorityCounts{Urgent: 1, High: 1, Medium: 1, Low: 1}, counts)
	assert.Equal(t, len(tickets), counts.Total())
	assert.Equal(t, domain.PriorityCounts{}, AggregateByPriority(nil))
}

func TestAggregateSingleUrgentTicket(t *testing.T) {
	ticket := Normalize(domain.RawTicket{ID: 1, Status: 2, Priority: 4, CreatedAt: "2024-01-01T10:00:00Z", Subject: "VPN down"})

	assert.Equal(t, "Open", ticket.StatusLabel)
	assert.Equal(t, "Urgent", ticket.PriorityLabel)
	assert.Equal(t, domain.PriorityCounts{Urgent: 1}, AggregateByPriority([]domain.Ticket{ticket}))
}

func TestAggregateByDaySameDayMerges(t *testing.T) {
	tickets := []domain.Ticket{
		Normalize(domain.RawTicket{ID: 1, CreatedAt: "2024-01-01T10:00:00Z"}),
		Normalize(domain.RawTicket{ID: 2, CreatedAt: "2024-01-01T23:59:59Z"}),
	}
	assert.Equal(t, []domain.Bucket{{Label: "2024-01-01", Count: 2}}, AggregateByDay(tickets))
}

func TestAggregateByDayAscending(t *testing.T) {
	tickets := []domain.Ticket{
		Normalize(domain.RawTicket{ID: 1, CreatedAt: "2024-02-03T10:00:00Z"}),
		Normalize(domain.RawTicket{ID: 2, CreatedAt: "2023-12-31T22:00:00-05:00"}),
		Normalize(domain.RawTicket{ID: 3, CreatedAt: "2024-01-15T00:00:00Z"}),
		Normalize(domain.RawTicket{ID: 4, CreatedAt: ""}),
	}
	buckets := AggregateByDay(tickets)
	require.Len(t, buckets, 3)
	// 2023-12-31T22:00-05:00 is 2024-01-01 in UTC.
	assert.Equal(t, "2024-01-01", buckets[0].Label)
	for i := 1; i < len(buckets); i++ {
		assert.LessOrEqual(t, buckets[i-1].Label, buckets[i].Label)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	tickets := sampleTickets()
	assert.Equal(t, Aggregate(tickets), Aggregate(tickets))
}

func TestCards(t *testing.T) {
	cards := Cards(sampleTickets())
	assert.Equal(t, domain.StatCards{Total: 4, Open: 1, Pending: 1, Resolved: 2, Urgent: 1}, cards)
}
