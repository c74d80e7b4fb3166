package report

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUsage is returned when no subject identifier was supplied.
	ErrUsage = errors.New("a username is required")

	// ErrNoContributions is returned when the source answered with an empty contribution list.
	ErrNoContributions = errors.New("no contribution data found")
)

// MaxLevel is the highest activity bucket reported by the source.
const MaxLevel = 4

type ContributionDay struct {
	Date  time.Time
	Count int
	Level int
}

// ContributionSet is the chronologically ordered result of one fetch.
type ContributionSet struct {
	Subject string
	Days    []ContributionDay
	Total   int
}

// Levels returns the activity level of each day, in order.
func (s *ContributionSet) Levels() []int {
	levels := make([]int, len(s.Days))
	for i, d := range s.Days {
		levels[i] = d.Level
	}
	return levels
}

type ContributionSource interface {
	Name() string
	FetchContributions(ctx context.Context, subject string) (*ContributionSet, error)
}
