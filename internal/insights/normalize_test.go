package insights

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
)

func TestNormalizeNeverFailsOnUnknownCodes(t *testing.T) {
	for code := -3; code <= 12; code++ {
		ticket := Normalize(domain.RawTicket{ID: 1, Status: code, Priority: code})
		if KnownStatus(domain.TicketStatus(code)) {
			assert.NotContains(t, ticket.StatusLabel, "Unknown")
		} else {
			assert.Equal(t, "Unknown ("+itoa(code)+")", ticket.StatusLabel)
		}
		if KnownPriority(domain.TicketPriority(code)) {
			assert.NotContains(t, ticket.PriorityLabel, "Unknown")
		} else {
			assert.Equal(t, "Unknown ("+itoa(code)+")", ticket.PriorityLabel)
		}
	}
}

func TestNormalizeLabelsAndDefaults(t *testing.T) {
	ticket := Normalize(domain.RawTicket{
		ID:        1,
		Status:    2,
		Priority:  4,
		CreatedAt: "2024-01-01T10:00:00Z",
		Subject:   "VPN down",
	})

	assert.Equal(t, "Open", ticket.StatusLabel)
	assert.Equal(t, "Urgent", ticket.PriorityLabel)
	assert.Equal(t, "Unknown", ticket.RequesterName)
	assert.Equal(t, "Jan 1, 2024", ticket.CreatedAtDisplay)
	assert.Equal(t, "", ticket.UpdatedAtDisplay)
	assert.True(t, ticket.UpdatedAt.IsZero())
	assert.NotNil(t, ticket.Tags)
	assert.Equal(t, domain.TicketTypeGeneral, ticket.Type)
}

func TestNormalizerUsesLocationAndLayout(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	n := NewNormalizer("2006-01-02 15:04", loc)

	ticket := n.Normalize(domain.RawTicket{CreatedAt: "2024-03-01T02:30:00Z"})
	assert.Equal(t, "2024-02-29 21:30", ticket.CreatedAtDisplay)
}

func TestNormalizeDescriptionPreviewStripsHTML(t *testing.T) {
	ticket := Normalize(domain.RawTicket{Description: "<div>GuardDuty finding on <b>prod &amp; staging</b></div>"})

	assert.Equal(t, "GuardDuty finding on prod & staging", ticket.DescriptionPreview)
	assert.Contains(t, ticket.Description, "<b>")
}

func TestRawTicketAcceptsFieldVariants(t *testing.T) {
	payload := `[
		{"id":1,"status":2,"priority":4,"createdAt":"2024-01-01T10:00:00Z","subject":"VPN down","requesterName":"Ana"},
		{"id":2,"status":3,"priority":1,"created_at":"2024-01-02T10:00:00Z","requester":{"name":"Bo"},"custom_fields":{"category":"IAM"},"type":"Incident"}
	]`
	var raws []domain.RawTicket
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))
	require.Len(t, raws, 2)

	assert.Equal(t, "2024-01-01T10:00:00Z", raws[0].CreatedAt)
	assert.Equal(t, "Ana", raws[0].RequesterName)
	assert.Equal(t, "Bo", raws[1].RequesterName)
	assert.Equal(t, "IAM", raws[1].Category)
	assert.Equal(t, "Incident", raws[1].Type)
}

func TestParseTimestamp(t *testing.T) {
	assert.True(t, ParseTimestamp("").IsZero())
	assert.True(t, ParseTimestamp("yesterday").IsZero())
	assert.Equal(t, 2024, ParseTimestamp("2024-05-06").Year())
	assert.Equal(t, time.UTC, ParseTimestamp("2024-05-06T10:00:00+02:00").Location())
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
