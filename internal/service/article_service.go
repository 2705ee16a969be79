package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/richtext"
)

// Actor identifies the admin performing a mutation for audit purposes.
type Actor struct {
	UserID    int64
	IP        string
	UserAgent string
}

type articleRepository interface {
	List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	FindByID(ctx context.Context, id int64) (*models.Article, error)
	FindBySlug(ctx context.Context, slug string) (*models.Article, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error)
	IncrementViews(ctx context.Context, id int64) error
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published int) error
	SetFeatured(ctx context.Context, id int64, featured int) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type publicCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type imageStore interface {
	Save(filename string, data []byte) (string, error)
	Delete(filename string) error
}

// ArticleConfig tunes uploads and caching for the article service.
type ArticleConfig struct {
	ImageDir         string
	MaxImageBytes    int64
	CacheEnabled     bool
	CacheTTL         time.Duration
	ExcerptMaxLength int
}

// ArticleService implements the public news feed and the admin article CRUD.
type ArticleService struct {
	repo      articleRepository
	cache     publicCache
	audit     auditRecorder
	store     imageStore
	validator *validator.Validate
	logger    *zap.Logger
	config    ArticleConfig
}

// NewArticleService constructs an ArticleService.
func NewArticleService(repo articleRepository, cache publicCache, audit auditRecorder, store imageStore, validate *validator.Validate, logger *zap.Logger, config ArticleConfig) *ArticleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 5 * time.Minute
	}
	if config.ExcerptMaxLength <= 0 {
		config.ExcerptMaxLength = 160
	}
	if config.ImageDir == "" {
		config.ImageDir = "articles"
	}
	return &ArticleService{repo: repo, cache: cache, audit: audit, store: store, validator: validate, logger: logger, config: config}
}

type cachedArticleList struct {
	Articles   []models.Article   `json:"articles"`
	Pagination *models.Pagination `json:"pagination"`
}

// PublicList returns published articles for the public site, cached per filter.
func (s *ArticleService) PublicList(ctx context.Context, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	filter.PublishedOnly = true
	filter.IsPublished = nil

	key := s.publicListKey(filter)
	if s.cacheUsable() {
		var cached cachedArticleList
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached.Articles, cached.Pagination, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("article cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat artikel")
	}
	pagination := models.NewPagination(filter.Page, filter.Limit, total)

	if s.cacheUsable() {
		if err := s.cache.Set(ctx, key, cachedArticleList{Articles: articles, Pagination: pagination}, s.config.CacheTTL); err != nil {
			s.logger.Warn("article cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return articles, pagination, nil
}

// PublicDetail returns one published article by slug and bumps its view count.
func (s *ArticleService) PublicDetail(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "artikel tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat artikel")
	}
	if err := s.repo.IncrementViews(ctx, article.ID); err != nil {
		s.logger.Warn("failed to increment article views", zap.Int64("article_id", article.ID), zap.Error(err))
	} else {
		article.Views++
	}
	return article, nil
}

// AdminList returns articles for the management screen, drafts included.
func (s *ArticleService) AdminList(ctx context.Context, filter models.ArticleFilter) ([]models.Article, *models.Pagination, error) {
	filter.PublishedOnly = false
	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat artikel")
	}
	return articles, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Detail fetches a single article by ID for the admin editor.
func (s *ArticleService) Detail(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "artikel tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat artikel")
	}
	return article, nil
}

// Create validates and stores a new article.
func (s *ArticleService) Create(ctx context.Context, input models.ArticleInput, featuredImage string, actor Actor) (*models.Article, error) {
	article, err := s.buildArticle(ctx, 0, input, featuredImage)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan artikel")
	}
	s.recordAudit(ctx, actor, models.AuditActionArticleCreate, article.ID, map[string]interface{}{"judul": article.Title})
	s.invalidatePublicCache(ctx)
	return article, nil
}

// Update validates and saves changes to an existing article.
func (s *ArticleService) Update(ctx context.Context, id int64, input models.ArticleInput, featuredImage string, actor Actor) (*models.Article, error) {
	existing, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	article, err := s.buildArticle(ctx, id, input, featuredImage)
	if err != nil {
		return nil, err
	}
	article.ID = id
	article.CreatedAt = existing.CreatedAt
	article.Views = existing.Views
	if article.FeaturedImage == "" {
		article.FeaturedImage = existing.FeaturedImage
	}
	if article.PublishDate == nil {
		article.PublishDate = existing.PublishDate
	}
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memperbarui artikel")
	}
	s.recordAudit(ctx, actor, models.AuditActionArticleUpdate, id, map[string]interface{}{"judul": article.Title})
	s.invalidatePublicCache(ctx)
	return article, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(ctx context.Context, id int64, actor Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "artikel tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menghapus artikel")
	}
	s.recordAudit(ctx, actor, models.AuditActionArticleDelete, id, nil)
	s.invalidatePublicCache(ctx)
	return nil
}

// SetPublished flips the publish flag.
func (s *ArticleService) SetPublished(ctx context.Context, id int64, toggle models.PublishToggle, actor Actor) error {
	if err := s.validator.Struct(toggle); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nilai is_published harus 0 atau 1")
	}
	if err := s.repo.SetPublished(ctx, id, toggle.IsPublished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "artikel tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal mengubah status publikasi")
	}
	s.recordAudit(ctx, actor, models.AuditActionArticlePublish, id, map[string]interface{}{"is_published": toggle.IsPublished})
	s.invalidatePublicCache(ctx)
	return nil
}

// SetFeatured flips the featured flag.
func (s *ArticleService) SetFeatured(ctx context.Context, id int64, toggle models.FeatureToggle, actor Actor) error {
	if err := s.validator.Struct(toggle); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nilai is_featured harus 0 atau 1")
	}
	if err := s.repo.SetFeatured(ctx, id, toggle.IsFeatured); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "artikel tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal mengubah status unggulan")
	}
	s.recordAudit(ctx, actor, models.AuditActionArticleFeature, id, map[string]interface{}{"is_featured": toggle.IsFeatured})
	s.invalidatePublicCache(ctx)
	return nil
}

// Categories lists all categories with article counts.
func (s *ArticleService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat kategori")
	}
	return categories, nil
}

// CreateCategory validates and stores a new category.
func (s *ArticleService) CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "nama kategori minimal 3 karakter")
	}
	category := &models.Category{
		Name:  strings.TrimSpace(input.Name),
		Slug:  slugify(input.Slug),
		Color: input.Color,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan kategori")
	}
	s.invalidatePublicCache(ctx)
	return category, nil
}

// UploadImage stores an article image under a random name and returns its
// public path.
func (s *ArticleService) UploadImage(ctx context.Context, originalName, contentType string, data []byte) (string, error) {
	if s.config.MaxImageBytes > 0 && int64(len(data)) > s.config.MaxImageBytes {
		return "", appErrors.Clone(appErrors.ErrFileTooLarge, "")
	}
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedFileType, "gambar harus berformat JPG, PNG, atau WebP")
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	name := filepath.Join(s.config.ImageDir, uuid.NewString()+ext)
	stored, err := s.store.Save(name, data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan gambar")
	}
	return "/uploads/" + filepath.ToSlash(stored), nil
}

func (s *ArticleService) buildArticle(ctx context.Context, excludeID int64, input models.ArticleInput, featuredImage string) (*models.Article, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data artikel tidak lengkap")
	}
	slug := slugify(input.Slug)
	taken, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memeriksa slug")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slug artikel sudah digunakan")
	}
	if _, err := s.repo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "kategori tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memeriksa kategori")
	}

	content := richtext.Normalize(input.Content)
	excerpt := strings.TrimSpace(input.Excerpt)
	if excerpt == "" {
		excerpt = richtext.Excerpt(content, s.config.ExcerptMaxLength)
	}

	var publishDate *time.Time
	if input.PublishDate != "" {
		parsed, err := parseDate(input.PublishDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "format tanggal_publish tidak valid")
		}
		publishDate = &parsed
	} else if input.IsPublished == 1 {
		now := time.Now().UTC()
		publishDate = &now
	}

	return &models.Article{
		Title:           strings.TrimSpace(input.Title),
		Slug:            slug,
		Excerpt:         excerpt,
		Content:         content,
		FeaturedImage:   featuredImage,
		CategoryID:      input.CategoryID,
		Author:          strings.TrimSpace(input.Author),
		IsPublished:     input.IsPublished,
		IsFeatured:      input.IsFeatured,
		PublishDate:     publishDate,
		MetaDescription: input.MetaDescription,
		Tags:            input.Tags,
	}, nil
}

func (s *ArticleService) cacheUsable() bool {
	return s.config.CacheEnabled && s.cache != nil
}

func (s *ArticleService) invalidatePublicCache(ctx context.Context) {
	if !s.cacheUsable() {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "articles:public:*"); err != nil {
		s.logger.Warn("article cache invalidation failed", zap.Error(err))
	}
}

func (s *ArticleService) publicListKey(filter models.ArticleFilter) string {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	featured := ""
	if filter.IsFeatured != nil {
		featured = fmt.Sprintf("%d", *filter.IsFeatured)
	}
	return fmt.Sprintf("articles:public:%d:%d:%s:%s:%s", page, limit, filter.CategorySlug, featured, strings.ToLower(filter.Search))
}

func (s *ArticleService) recordAudit(ctx context.Context, actor Actor, action string, articleID int64, values map[string]interface{}) {
	if s.audit == nil {
		return
	}
	resourceID := fmt.Sprintf("%d", articleID)
	var payload []byte
	if values != nil {
		payload, _ = json.Marshal(values)
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "articles",
		ResourceID: &resourceID,
		NewValues:  payload,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record article audit log", zap.Error(err))
	}
}

func slugify(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	lastDash := false
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", raw)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
