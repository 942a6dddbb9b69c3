package ticketing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

func TestDemoSourcePagesAndFilters(t *testing.T) {
	src := NewDemoSource(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	res, err := src.FetchPage(ctx, PageRequest{OrgUnitID: "demo", Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, res.Tickets, 5)
	require.NotNil(t, res.Total)
	assert.Equal(t, 8, *res.Total)

	res, err = src.FetchPage(ctx, PageRequest{OrgUnitID: "demo", Page: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, res.Tickets, 3)

	urgent := domain.TicketPriorityUrgent
	res, err = src.FetchPage(ctx, PageRequest{OrgUnitID: "demo", Priority: &urgent, Page: 1, PageSize: 20})
	require.NoError(t, err)
	for _, tk := range res.Tickets {
		assert.Equal(t, 4, tk.Priority)
	}
	assert.Equal(t, 3, *res.Total)

	res, err = src.FetchPage(ctx, PageRequest{OrgUnitID: "demo", Page: 9, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, res.Tickets)
}

func TestDemoSourceFetchTicket(t *testing.T) {
	src := NewDemoSource(time.Now())
	tk, err := src.FetchTicket(context.Background(), 1003)
	require.NoError(t, err)
	assert.Equal(t, "Incident", tk.Type)

	_, err = src.FetchTicket(context.Background(), 1)
	assert.Error(t, err)
	assert.Equal(t, domain.DataSourceDemo, src.Kind())
}
