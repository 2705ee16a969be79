package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smk-nusantara/cms-api/internal/models"
)

// ContentRepository manages persistence for alumni and testimonial records.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs a ContentRepository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListAlumni returns alumni ordered for the public showcase.
func (r *ContentRepository) ListAlumni(ctx context.Context, limit int) ([]models.Alumni, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, nama_lengkap, tahun_lulus, pekerjaan_sekarang, deskripsi, photo_path, display_order, created_at
        FROM alumni ORDER BY display_order ASC, tahun_lulus DESC LIMIT %d`, limit)
	var alumni []models.Alumni
	if err := r.db.SelectContext(ctx, &alumni, query); err != nil {
		return nil, fmt.Errorf("list alumni: %w", err)
	}
	return alumni, nil
}

// ListTestimonials returns testimonials ordered for the public showcase.
func (r *ContentRepository) ListTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT id, nama_lengkap, status, deskripsi, display_order, created_at
        FROM testimonials ORDER BY display_order ASC, created_at DESC LIMIT %d`, limit)
	var testimonials []models.Testimonial
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return testimonials, nil
}

// CountAlumni returns the total number of alumni records.
func (r *ContentRepository) CountAlumni(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM alumni"); err != nil {
		return 0, fmt.Errorf("count alumni: %w", err)
	}
	return total, nil
}

// CountTestimonials returns the total number of testimonial records.
func (r *ContentRepository) CountTestimonials(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM testimonials"); err != nil {
		return 0, fmt.Errorf("count testimonials: %w", err)
	}
	return total, nil
}
