package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smk-nusantara/cms-api/internal/models"
)

func newArticleMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func articleRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "judul", "slug", "konten_singkat", "konten_lengkap", "gambar_utama",
		"kategori_id", "nama_kategori", "slug_kategori", "warna_kategori",
		"penulis", "is_published", "is_featured", "tanggal_publish", "meta_description", "tags",
		"views", "created_at", "updated_at"}).
		AddRow(int64(1), "Judul", "judul", "Ringkasan", "<p>Isi</p>", "/uploads/a.jpg",
			int64(2), "Prestasi", "prestasi", "#16a34a",
			"Admin", 1, 0, now, "", "", int64(5), now, now)
}

func TestArticleRepositoryListPublishedOnly(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery("SELECT a.id, a.judul").WillReturnRows(articleRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(a.id) FROM articles a JOIN categories k ON k.id = a.kategori_id WHERE 1=1 AND a.is_published = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	articles, total, err := repo.List(context.Background(), models.ArticleFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Prestasi", articles[0].CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery("SELECT a.id, a.judul").
		WithArgs("%juara%").
		WillReturnRows(articleRows())
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%juara%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, total, err := repo.List(context.Background(), models.ArticleFilter{Search: "Juara"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryFindBySlug(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery("SELECT a.id, a.judul").
		WithArgs("judul").
		WillReturnRows(articleRows())

	article, err := repo.FindBySlug(context.Background(), "judul")
	require.NoError(t, err)
	assert.Equal(t, int64(1), article.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectQuery("INSERT INTO articles").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	article := &models.Article{Title: "Judul", Slug: "judul", Excerpt: "Ringkasan", Content: "<p>Isi</p>", CategoryID: 2, Author: "Admin"}
	err := repo.Create(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, int64(7), article.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositorySetPublishedNotFound(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectExec("UPDATE articles SET is_published").
		WithArgs(int64(99), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPublished(context.Background(), 99, 1)
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryListCategories(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nama_kategori", "slug", "warna", "article_count", "created_at"}).
		AddRow(int64(1), "Berita", "berita", "#2563eb", 3, time.Now()).
		AddRow(int64(2), "Prestasi", "prestasi", "#16a34a", 0, time.Now())
	mock.ExpectQuery("SELECT k.id, k.nama_kategori").WillReturnRows(rows)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 3, categories[0].ArticleCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticleRepositoryIncrementViews(t *testing.T) {
	db, mock, cleanup := newArticleMock(t)
	defer cleanup()
	repo := NewArticleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET views = views + 1 WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
