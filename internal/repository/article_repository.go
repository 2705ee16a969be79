package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smk-nusantara/cms-api/internal/models"
)

const articleColumns = `a.id, a.judul, a.slug, a.konten_singkat, a.konten_lengkap, a.gambar_utama,
        a.kategori_id, k.nama_kategori, k.slug AS slug_kategori, k.warna AS warna_kategori,
        a.penulis, a.is_published, a.is_featured, a.tanggal_publish, a.meta_description, a.tags,
        a.views, a.created_at, a.updated_at`

// ArticleRepository manages persistence for articles and categories.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository constructs an ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// List returns articles matching the provided filters along with the total count.
func (r *ArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	base := "FROM articles a JOIN categories k ON k.id = a.kategori_id"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.PublishedOnly {
		conditions = append(conditions, "a.is_published = 1")
	}
	if filter.IsPublished != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_published = $%d", len(args)+1))
		args = append(args, *filter.IsPublished)
	}
	if filter.IsFeatured != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_featured = $%d", len(args)+1))
		args = append(args, *filter.IsFeatured)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("a.kategori_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
	}
	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("k.slug = $%d", len(args)+1))
		args = append(args, filter.CategorySlug)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(a.judul) LIKE $%d OR LOWER(a.konten_singkat) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s %s ORDER BY a.tanggal_publish DESC NULLS LAST, a.created_at DESC LIMIT %d OFFSET %d`,
		articleColumns, base, limit, offset)

	var articles []models.Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(a.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}
	return articles, total, nil
}

// FindByID fetches an article by ID.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles a JOIN categories k ON k.id = a.kategori_id WHERE a.id = $1`, articleColumns)
	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		return nil, err
	}
	return &article, nil
}

// FindBySlug fetches a published article by slug.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles a JOIN categories k ON k.id = a.kategori_id WHERE a.slug = $1 AND a.is_published = 1`, articleColumns)
	var article models.Article
	if err := r.db.GetContext(ctx, &article, query, slug); err != nil {
		return nil, err
	}
	return &article, nil
}

// ExistsBySlug checks if an article with given slug exists optionally excluding an ID.
func (r *ArticleRepository) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM articles WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check article slug: %w", err)
	}
	return true, nil
}

// IncrementViews bumps the view counter of a published article.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id int64) error {
	const query = `UPDATE articles SET views = views + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment article views: %w", err)
	}
	return nil
}

// Create inserts a new article and fills in its generated ID.
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now
	const query = `INSERT INTO articles (judul, slug, konten_singkat, konten_lengkap, gambar_utama, kategori_id, penulis, is_published, is_featured, tanggal_publish, meta_description, tags, views, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $14) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		article.Title, article.Slug, article.Excerpt, article.Content, article.FeaturedImage,
		article.CategoryID, article.Author, article.IsPublished, article.IsFeatured,
		article.PublishDate, article.MetaDescription, article.Tags,
		article.CreatedAt, article.UpdatedAt,
	).Scan(&article.ID); err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Update modifies an existing article.
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	article.UpdatedAt = time.Now().UTC()
	const query = `UPDATE articles SET judul = :judul, slug = :slug, konten_singkat = :konten_singkat, konten_lengkap = :konten_lengkap, gambar_utama = :gambar_utama, kategori_id = :kategori_id, penulis = :penulis, is_published = :is_published, is_featured = :is_featured, tanggal_publish = :tanggal_publish, meta_description = :meta_description, tags = :tags, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, article); err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes an article by ID.
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetPublished flips the publication flag; publishing stamps tanggal_publish
// when the article never had one.
func (r *ArticleRepository) SetPublished(ctx context.Context, id int64, published int) error {
	const query = `UPDATE articles SET is_published = $2,
        tanggal_publish = CASE WHEN $2 = 1 AND tanggal_publish IS NULL THEN NOW() ELSE tanggal_publish END,
        updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, published)
	if err != nil {
		return fmt.Errorf("set article published: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetFeatured flips the featured flag.
func (r *ArticleRepository) SetFeatured(ctx context.Context, id int64, featured int) error {
	const query = `UPDATE articles SET is_featured = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, featured)
	if err != nil {
		return fmt.Errorf("set article featured: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListCategories returns all categories with their article counts.
func (r *ArticleRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT k.id, k.nama_kategori, k.slug, k.warna, COUNT(a.id) AS article_count, k.created_at
        FROM categories k LEFT JOIN articles a ON a.kategori_id = k.id
        GROUP BY k.id, k.nama_kategori, k.slug, k.warna, k.created_at
        ORDER BY k.nama_kategori ASC`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindCategoryByID fetches a category by ID.
func (r *ArticleRepository) FindCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	const query = `SELECT id, nama_kategori, slug, warna, 0 AS article_count, created_at FROM categories WHERE id = $1`
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category and fills in its generated ID.
func (r *ArticleRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO categories (nama_kategori, slug, warna, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, category.Name, category.Slug, category.Color, category.CreatedAt).Scan(&category.ID); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// CountPublished returns the number of published articles.
func (r *ArticleRepository) CountPublished(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM articles WHERE is_published = 1"); err != nil {
		return 0, fmt.Errorf("count published articles: %w", err)
	}
	return total, nil
}
