package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
)

type dashboardCounters interface {
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type contentCounters interface {
	CountAlumni(ctx context.Context) (int, error)
	CountTestimonials(ctx context.Context) (int, error)
}

type articleCounter interface {
	CountPublished(ctx context.Context) (int, error)
}

type eventCounter interface {
	CountPublished(ctx context.Context) (int, error)
}

// DashboardService aggregates the counters shown on the admin dashboard.
type DashboardService struct {
	registrations dashboardCounters
	content       contentCounters
	articles      articleCounter
	events        eventCounter
	logger        *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(registrations dashboardCounters, content contentCounters, articles articleCounter, events eventCounter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{registrations: registrations, content: content, articles: articles, events: events, logger: logger}
}

// Stats returns the dashboard counters. Individual counter failures degrade
// to zero rather than failing the whole payload, except when every source
// errors out.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	failures := 0
	total := 0

	count := func(name string, fn func(context.Context) (int, error), dest *int) {
		total++
		n, err := fn(ctx)
		if err != nil {
			failures++
			s.logger.Warn("dashboard counter failed", zap.String("counter", name), zap.Error(err))
			return
		}
		*dest = n
	}

	count("students", s.registrations.CountAll, &stats.TotalStudents)
	count("pending_registrations", func(ctx context.Context) (int, error) {
		return s.registrations.CountByStatus(ctx, models.RegistrationPending)
	}, &stats.PendingRegistrations)
	count("articles", s.articles.CountPublished, &stats.TotalArticles)
	count("alumni", s.content.CountAlumni, &stats.TotalAlumni)
	count("testimonials", s.content.CountTestimonials, &stats.TotalTestimonials)
	count("calendar_events", s.events.CountPublished, &stats.TotalCalendarEvents)

	if failures == total {
		return nil, appErrors.Clone(appErrors.ErrInternal, "gagal memuat statistik dashboard")
	}
	return stats, nil
}
