package github

import (
	"context"
	"time"

	"github.com/Afrawles/contribimg/internal/report"
)

type ContributionSource struct {
	Client *Client
}

func NewContributionSource(baseURL string, timeout time.Duration) *ContributionSource {
	return &ContributionSource{
		Client: NewClient(baseURL, timeout),
	}
}

var _ report.ContributionSource = (*ContributionSource)(nil)

func (s *ContributionSource) Name() string {
	return "GitHub"
}

func (s *ContributionSource) FetchContributions(ctx context.Context, username string) (*report.ContributionSet, error) {
	if username == "" {
		return nil, report.ErrUsage
	}

	resp, err := s.Client.FetchContributions(ctx, username)
	if err != nil {
		return nil, err
	}

	days := make([]report.ContributionDay, 0, len(resp.Days))
	for _, d := range resp.Days {
		// dates are informational; a bad one does not invalidate the day
		date, _ := time.Parse("2006-01-02", d.Date)
		days = append(days, report.ContributionDay{
			Date:  date,
			Count: d.Count,
			Level: d.Level,
		})
	}

	return &report.ContributionSet{
		Subject: username,
		Days:    days,
		Total:   resp.Total,
	}, nil
}
