package models

import "time"

// Article represents a published or draft news article.
type Article struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"judul" json:"judul"`
	Slug            string     `db:"slug" json:"slug"`
	Excerpt         string     `db:"konten_singkat" json:"konten_singkat"`
	Content         string     `db:"konten_lengkap" json:"konten_lengkap,omitempty"`
	FeaturedImage   string     `db:"gambar_utama" json:"gambar_utama"`
	CategoryID      int64      `db:"kategori_id" json:"kategori_id"`
	CategoryName    string     `db:"nama_kategori" json:"nama_kategori"`
	CategorySlug    string     `db:"slug_kategori" json:"slug_kategori"`
	CategoryColor   string     `db:"warna_kategori" json:"warna_kategori"`
	Author          string     `db:"penulis" json:"penulis"`
	IsPublished     int        `db:"is_published" json:"is_published"`
	IsFeatured      int        `db:"is_featured" json:"is_featured"`
	PublishDate     *time.Time `db:"tanggal_publish" json:"tanggal_publish,omitempty"`
	MetaDescription string     `db:"meta_description" json:"meta_description,omitempty"`
	Tags            string     `db:"tags" json:"tags,omitempty"`
	Views           int64      `db:"views" json:"views"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Category groups articles; ArticleCount is populated on listing.
type Category struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"nama_kategori" json:"nama_kategori"`
	Slug         string    `db:"slug" json:"slug"`
	Color        string    `db:"warna" json:"warna"`
	ArticleCount int       `db:"article_count" json:"article_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ArticleFilter captures admin and public list criteria.
type ArticleFilter struct {
	Search        string
	CategorySlug  string
	CategoryID    *int64
	IsPublished   *int
	IsFeatured    *int
	PublishedOnly bool
	Page          int
	Limit         int
}

// ArticleInput is the create/update payload for an article.
type ArticleInput struct {
	Title           string `json:"judul" validate:"required,min=3"`
	Slug            string `json:"slug" validate:"required,min=3"`
	Excerpt         string `json:"konten_singkat" validate:"required"`
	Content         string `json:"konten_lengkap" validate:"required"`
	CategoryID      int64  `json:"kategori_id" validate:"required,gt=0"`
	Author          string `json:"penulis" validate:"required"`
	IsPublished     int    `json:"is_published" validate:"oneof=0 1"`
	IsFeatured      int    `json:"is_featured" validate:"oneof=0 1"`
	PublishDate     string `json:"tanggal_publish"`
	MetaDescription string `json:"meta_description"`
	Tags            string `json:"tags"`
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name  string `json:"nama_kategori" validate:"required,min=3"`
	Slug  string `json:"slug" validate:"required,min=3"`
	Color string `json:"warna"`
}

// PublishToggle flips the publication flag.
type PublishToggle struct {
	IsPublished int `json:"is_published" validate:"oneof=0 1"`
}

// FeatureToggle flips the featured flag.
type FeatureToggle struct {
	IsFeatured int `json:"is_featured" validate:"oneof=0 1"`
}
