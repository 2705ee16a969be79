package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smk-nusantara/cms-api/internal/models"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
)

type mockArticleRepo struct {
	articles   []models.Article
	bySlug     map[string]*models.Article
	byID       map[int64]*models.Article
	categories []models.Category
	slugTaken  bool
	created    *models.Article
	updated    *models.Article
	deleted    []int64
	published  map[int64]int
	featured   map[int64]int
	views      map[int64]int
}

func (m *mockArticleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return m.articles, len(m.articles), nil
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockArticleRepo) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if a, ok := m.bySlug[slug]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockArticleRepo) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return m.slugTaken, nil
}

func (m *mockArticleRepo) IncrementViews(ctx context.Context, id int64) error {
	if m.views == nil {
		m.views = map[int64]int{}
	}
	m.views[id]++
	return nil
}

func (m *mockArticleRepo) Create(ctx context.Context, article *models.Article) error {
	article.ID = 5
	m.created = article
	return nil
}

func (m *mockArticleRepo) Update(ctx context.Context, article *models.Article) error {
	m.updated = article
	return nil
}

func (m *mockArticleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok && m.byID != nil {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockArticleRepo) SetPublished(ctx context.Context, id int64, published int) error {
	if m.published == nil {
		m.published = map[int64]int{}
	}
	m.published[id] = published
	return nil
}

func (m *mockArticleRepo) SetFeatured(ctx context.Context, id int64, featured int) error {
	if m.featured == nil {
		m.featured = map[int64]int{}
	}
	m.featured[id] = featured
	return nil
}

func (m *mockArticleRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *mockArticleRepo) FindCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			return &m.categories[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockArticleRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	category.ID = 3
	m.categories = append(m.categories, *category)
	return nil
}

type memoryCache struct {
	entries map[string][]byte
	deletes []string
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = nil
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deletes = append(c.deletes, pattern)
	return nil
}

type memoryStore struct {
	saved map[string][]byte
}

func (s *memoryStore) Save(filename string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *memoryStore) Delete(filename string) error {
	delete(s.saved, filename)
	return nil
}

func testArticleService(repo *mockArticleRepo, cache *memoryCache, store *memoryStore) *ArticleService {
	return NewArticleService(repo, cache, &mockAudit{}, store, nil, nil, ArticleConfig{
		MaxImageBytes: 2 * 1024 * 1024,
		CacheEnabled:  cache != nil,
	})
}

func articleFixture() models.ArticleInput {
	return models.ArticleInput{
		Title:       "Juara Robotika Provinsi",
		Slug:        "juara-robotika-provinsi",
		Excerpt:     "Siswa meraih juara pertama.",
		Content:     "<p>Tim robotika sekolah meraih <strong>juara pertama</strong>.</p>",
		CategoryID:  2,
		Author:      "Admin",
		IsPublished: 1,
	}
}

func TestArticleCreateNormalizesContent(t *testing.T) {
	repo := &mockArticleRepo{categories: []models.Category{{ID: 2, Name: "Prestasi"}}}
	cache := &memoryCache{}
	svc := testArticleService(repo, cache, &memoryStore{})

	input := articleFixture()
	input.Content = `<p>Aman</p><script>alert("x")</script>`
	article, err := svc.Create(context.Background(), input, "", Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, "<p>Aman</p>", article.Content)
	assert.Equal(t, int64(5), article.ID)
	assert.NotNil(t, article.PublishDate)
	assert.Contains(t, cache.deletes, "articles:public:*")
}

func TestArticleCreateRejectsDuplicateSlug(t *testing.T) {
	repo := &mockArticleRepo{categories: []models.Category{{ID: 2}}, slugTaken: true}
	svc := testArticleService(repo, nil, &memoryStore{})

	_, err := svc.Create(context.Background(), articleFixture(), "", Actor{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestArticleCreateRejectsUnknownCategory(t *testing.T) {
	repo := &mockArticleRepo{}
	svc := testArticleService(repo, nil, &memoryStore{})

	_, err := svc.Create(context.Background(), articleFixture(), "", Actor{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestArticlePublicDetailIncrementsViews(t *testing.T) {
	article := &models.Article{ID: 1, Slug: "juara", Views: 9}
	repo := &mockArticleRepo{bySlug: map[string]*models.Article{"juara": article}}
	svc := testArticleService(repo, nil, &memoryStore{})

	got, err := svc.PublicDetail(context.Background(), "juara")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Views)
	assert.Equal(t, 1, repo.views[1])
}

func TestArticlePublicDetailNotFound(t *testing.T) {
	svc := testArticleService(&mockArticleRepo{}, nil, &memoryStore{})

	_, err := svc.PublicDetail(context.Background(), "hilang")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestArticleUploadImageChecksTypeAndSize(t *testing.T) {
	store := &memoryStore{}
	svc := testArticleService(&mockArticleRepo{}, nil, store)

	url, err := svc.UploadImage(context.Background(), "foto.jpg", "image/jpeg", []byte("jpegdata"))
	require.NoError(t, err)
	assert.Contains(t, url, "/uploads/articles/")
	assert.Contains(t, url, ".jpg")

	_, err = svc.UploadImage(context.Background(), "doc.pdf", "application/pdf", []byte("pdfdata"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFileType.Code, appErrors.FromError(err).Code)

	_, err = svc.UploadImage(context.Background(), "besar.png", "image/png", make([]byte, 3*1024*1024))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileTooLarge.Code, appErrors.FromError(err).Code)
}

func TestArticleSetPublishedValidatesToggle(t *testing.T) {
	svc := testArticleService(&mockArticleRepo{}, nil, &memoryStore{})

	err := svc.SetPublished(context.Background(), 1, models.PublishToggle{IsPublished: 2}, Actor{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestArticleCreateCategorySlugified(t *testing.T) {
	svc := testArticleService(&mockArticleRepo{}, nil, &memoryStore{})

	category, err := svc.CreateCategory(context.Background(), models.CategoryInput{Name: "Kegiatan Sekolah", Slug: "Kegiatan Sekolah!"})
	require.NoError(t, err)
	assert.Equal(t, "kegiatan-sekolah", category.Slug)
}
