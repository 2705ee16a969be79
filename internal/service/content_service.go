package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
)

type contentRepository interface {
	ListAlumni(ctx context.Context, limit int) ([]models.Alumni, error)
	ListTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error)
}

// ContentConfig tunes caching for the public showcase endpoints.
type ContentConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ContentService serves the alumni and testimonial showcases.
type ContentService struct {
	repo   contentRepository
	cache  publicCache
	logger *zap.Logger
	config ContentConfig
}

// NewContentService constructs a ContentService.
func NewContentService(repo contentRepository, cache publicCache, logger *zap.Logger, config ContentConfig) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 5 * time.Minute
	}
	return &ContentService{repo: repo, cache: cache, logger: logger, config: config}
}

// Alumni returns the alumni showcase, cached per limit.
func (s *ContentService) Alumni(ctx context.Context, limit int) ([]models.Alumni, error) {
	key := fmt.Sprintf("content:alumni:%d", limit)
	if s.cacheUsable() {
		var cached []models.Alumni
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("alumni cache read failed", zap.Error(err))
		}
	}
	alumni, err := s.repo.ListAlumni(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat data alumni")
	}
	if s.cacheUsable() {
		if err := s.cache.Set(ctx, key, alumni, s.config.CacheTTL); err != nil {
			s.logger.Warn("alumni cache write failed", zap.Error(err))
		}
	}
	return alumni, nil
}

// Testimonials returns the testimonial showcase, cached per limit.
func (s *ContentService) Testimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	key := fmt.Sprintf("content:testimoni:%d", limit)
	if s.cacheUsable() {
		var cached []models.Testimonial
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("testimonial cache read failed", zap.Error(err))
		}
	}
	testimonials, err := s.repo.ListTestimonials(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat data testimoni")
	}
	if s.cacheUsable() {
		if err := s.cache.Set(ctx, key, testimonials, s.config.CacheTTL); err != nil {
			s.logger.Warn("testimonial cache write failed", zap.Error(err))
		}
	}
	return testimonials, nil
}

func (s *ContentService) cacheUsable() bool {
	return s.config.CacheEnabled && s.cache != nil
}
