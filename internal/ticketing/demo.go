package ticketing

import (
	"context"
	"strings"
	"time"

	"github.com/secops-dashboard/dashboard-service/internal/domain"
	apperrors "github.com/secops-dashboard/dashboard-service/pkg/util/errorutil"
)

// DemoSource serves a fixed sample ticket set. It is only selected through
// configuration and is never used as a fallback for a failing live fetch.
type DemoSource struct {
	tickets []domain.RawTicket
}

// NewDemoSource seeds sample tickets relative to now.
func NewDemoSource(now time.Time) *DemoSource {
	return &DemoSource{tickets: demoTickets(now.UTC())}
}

// Kind reports demo data.
func (d *DemoSource) Kind() domain.DataSourceKind {
	return domain.DataSourceDemo
}

// FetchPage filters by status and priority and slices the requested page.
func (d *DemoSource) FetchPage(ctx context.Context, req PageRequest) (PageResult, error) {
	if err := ctx.Err(); err != nil {
		return PageResult{}, err
	}
	if strings.TrimSpace(req.OrgUnitID) == "" {
		return PageResult{}, apperrors.NewValidationError("org_unit_id required", nil)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	matched := make([]domain.RawTicket, 0, len(d.tickets))
	for _, t := range d.tickets {
		if req.Status != nil && domain.TicketStatus(t.Status) != *req.Status {
			continue
		}
		if req.Priority != nil && domain.TicketPriority(t.Priority) != *req.Priority {
			continue
		}
		matched = append(matched, t)
	}

	total := len(matched)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}
	page := make([]domain.RawTicket, end-start)
	copy(page, matched[start:end])
	return PageResult{Tickets: page, Total: &total}, nil
}

// FetchTicket looks a sample ticket up by id.
func (d *DemoSource) FetchTicket(ctx context.Context, id int64) (domain.RawTicket, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTicket{}, err
	}
	for _, t := range d.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.RawTicket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

func demoTickets(now time.Time) []domain.RawTicket {
	at := func(daysAgo, hour int) string {
		day := now.AddDate(0, 0, -daysAgo)
		return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Format(time.RFC3339)
	}
	return []domain.RawTicket{
		{ID: 1001, Subject: "Incident: GuardDuty finding on prod EC2", Status: 2, Priority: 4, CreatedAt: at(0, 9), UpdatedAt: at(0, 11), DueBy: at(-1, 9), RequesterName: "SOC Bot", Description: "<p>UnauthorizedAccess:EC2/SSHBruteForce on i-0abc</p>", Category: "Threat Detection", Tags: []string{"guardduty", "ec2"}},
		{ID: 1002, Subject: "Service request: new IAM role for analytics", Status: 3, Priority: 2, CreatedAt: at(1, 14), UpdatedAt: at(0, 8), DueBy: at(-2, 14), RequesterName: "Priya N.", Description: "Read-only access to the analytics bucket", Category: "IAM", Tags: []string{"iam"}},
		{ID: 1003, Subject: "S3 bucket policy allows public read", Status: 2, Priority: 3, CreatedAt: at(1, 16), UpdatedAt: at(1, 17), DueBy: at(-1, 16), RequesterName: "Config Rules", Description: "s3-bucket-public-read-prohibited is NON_COMPLIANT", Type: "Incident", Category: "Storage", Tags: []string{"s3", "config"}},
		{ID: 1004, Subject: "Change: rotate KMS key for payments", Status: 4, Priority: 2, CreatedAt: at(2, 10), UpdatedAt: at(1, 9), DueBy: at(0, 10), RequesterName: "Marco T.", Category: "KMS", Tags: []string{"kms"}},
		{ID: 1005, Subject: "Problem: recurring CloudTrail delivery failures", Status: 6, Priority: 3, CreatedAt: at(3, 8), UpdatedAt: at(2, 12), DueBy: at(0, 8), RequesterName: "Logging Team", Category: "Logging", Tags: []string{"cloudtrail"}},
		{ID: 1006, Subject: "Security group open to 0.0.0.0/0 on port 22", Status: 5, Priority: 4, CreatedAt: at(3, 19), UpdatedAt: at(3, 22), DueBy: at(2, 19), RequesterName: "Security Hub", Category: "Network", Tags: []string{"securityhub", "vpc"}},
		{ID: 1007, Subject: "MFA not enabled for root account", Status: 7, Priority: 4, CreatedAt: at(4, 7), UpdatedAt: at(1, 15), DueBy: at(3, 7), Category: "IAM", Tags: []string{"iam", "mfa"}},
		{ID: 1008, Subject: "Question about WAF rate limits", Status: 2, Priority: 1, CreatedAt: at(5, 13), UpdatedAt: at(5, 13), DueBy: at(2, 13), RequesterName: "Jules R.", Category: "WAF", Tags: []string{}},
	}
}
