package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCounter struct {
	value int
	err   error
}

func (s stubCounter) CountAll(ctx context.Context) (int, error)                { return s.value, s.err }
func (s stubCounter) CountByStatus(ctx context.Context, _ string) (int, error) { return s.value, s.err }
func (s stubCounter) CountAlumni(ctx context.Context) (int, error)             { return s.value, s.err }
func (s stubCounter) CountTestimonials(ctx context.Context) (int, error)       { return s.value, s.err }
func (s stubCounter) CountPublished(ctx context.Context) (int, error)          { return s.value, s.err }

func TestDashboardStats(t *testing.T) {
	svc := NewDashboardService(stubCounter{value: 7}, stubCounter{value: 3}, stubCounter{value: 12}, stubCounter{value: 4}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalStudents)
	assert.Equal(t, 7, stats.PendingRegistrations)
	assert.Equal(t, 12, stats.TotalArticles)
	assert.Equal(t, 3, stats.TotalAlumni)
	assert.Equal(t, 3, stats.TotalTestimonials)
	assert.Equal(t, 4, stats.TotalCalendarEvents)
}

func TestDashboardStatsDegradesOnPartialFailure(t *testing.T) {
	svc := NewDashboardService(stubCounter{value: 7}, stubCounter{err: assert.AnError}, stubCounter{value: 12}, stubCounter{value: 4}, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalAlumni)
	assert.Equal(t, 12, stats.TotalArticles)
}

func TestDashboardStatsFailsWhenAllCountersFail(t *testing.T) {
	svc := NewDashboardService(stubCounter{err: assert.AnError}, stubCounter{err: assert.AnError}, stubCounter{err: assert.AnError}, stubCounter{err: assert.AnError}, nil)

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
}
