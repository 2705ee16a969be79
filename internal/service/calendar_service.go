package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
)

type calendarRepository interface {
	ListPublic(ctx context.Context, filter models.EventFilter) ([]models.AcademicEvent, error)
}

// CalendarConfig tunes caching for the public calendar.
type CalendarConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// CalendarService serves the public academic calendar.
type CalendarService struct {
	repo   calendarRepository
	cache  publicCache
	logger *zap.Logger
	config CalendarConfig
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(repo calendarRepository, cache publicCache, logger *zap.Logger, config CalendarConfig) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 5 * time.Minute
	}
	return &CalendarService{repo: repo, cache: cache, logger: logger, config: config}
}

// PublicEvents returns published calendar events matching the filter.
func (s *CalendarService) PublicEvents(ctx context.Context, filter models.EventFilter) ([]models.AcademicEvent, error) {
	key := fmt.Sprintf("calendar:public:%s:%s:%s:%d:%s",
		filter.AcademicYear, filter.Semester, filter.Type, filter.Month, strings.ToLower(filter.Search))
	if s.cacheUsable() {
		var cached []models.AcademicEvent
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("calendar cache read failed", zap.Error(err))
		}
	}
	events, err := s.repo.ListPublic(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat kalender akademik")
	}
	if s.cacheUsable() {
		if err := s.cache.Set(ctx, key, events, s.config.CacheTTL); err != nil {
			s.logger.Warn("calendar cache write failed", zap.Error(err))
		}
	}
	return events, nil
}

func (s *CalendarService) cacheUsable() bool {
	return s.config.CacheEnabled && s.cache != nil
}
