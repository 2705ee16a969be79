package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/smk-nusantara/cms-api/internal/models"
)

// CalendarRepository manages persistence for academic calendar events.
type CalendarRepository struct {
	db *sqlx.DB
}

// NewCalendarRepository constructs a CalendarRepository.
func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// ListPublic returns published events matching the provided filters.
func (r *CalendarRepository) ListPublic(ctx context.Context, filter models.EventFilter) ([]models.AcademicEvent, error) {
	args := []interface{}{models.EventStatusPublished}
	conditions := []string{"status = $1"}

	if filter.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("tahun_ajaran = $%d", len(args)+1))
		args = append(args, filter.AcademicYear)
	}
	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("jenis_kegiatan = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Month >= 1 && filter.Month <= 12 {
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM tanggal_mulai) = $%d", len(args)+1))
		args = append(args, filter.Month)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(judul_kegiatan) LIKE $%d OR LOWER(deskripsi) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	query := fmt.Sprintf(`SELECT id, judul_kegiatan, deskripsi, tanggal_mulai, tanggal_selesai, waktu_mulai, waktu_selesai,
        lokasi, jenis_kegiatan, tingkat, status, tahun_ajaran, semester, created_at
        FROM academic_events WHERE %s ORDER BY tanggal_mulai ASC`, strings.Join(conditions, " AND "))

	var events []models.AcademicEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return events, nil
}

// CountPublished returns the number of published events.
func (r *CalendarRepository) CountPublished(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM academic_events WHERE status = $1", models.EventStatusPublished); err != nil {
		return 0, fmt.Errorf("count published events: %w", err)
	}
	return total, nil
}
