package models

import "time"

// Academic event type and status enums mirror the calendar table.
const (
	EventTypeAcademic        = "akademik"
	EventTypeExtracurricular = "ekstrakurikuler"
	EventTypeExam            = "ujian"
	EventTypeHoliday         = "libur"
	EventTypeSpecial         = "acara_khusus"

	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// AcademicEvent is a school calendar entry.
type AcademicEvent struct {
	ID           int64      `db:"id" json:"id"`
	Title        string     `db:"judul_kegiatan" json:"judul_kegiatan"`
	Description  string     `db:"deskripsi" json:"deskripsi,omitempty"`
	StartDate    time.Time  `db:"tanggal_mulai" json:"tanggal_mulai"`
	EndDate      *time.Time `db:"tanggal_selesai" json:"tanggal_selesai,omitempty"`
	StartTime    string     `db:"waktu_mulai" json:"waktu_mulai,omitempty"`
	EndTime      string     `db:"waktu_selesai" json:"waktu_selesai,omitempty"`
	Location     string     `db:"lokasi" json:"lokasi,omitempty"`
	Type         string     `db:"jenis_kegiatan" json:"jenis_kegiatan"`
	Level        string     `db:"tingkat" json:"tingkat"`
	Status       string     `db:"status" json:"status"`
	AcademicYear string     `db:"tahun_ajaran" json:"tahun_ajaran"`
	Semester     string     `db:"semester" json:"semester"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// EventFilter captures the public calendar query parameters.
type EventFilter struct {
	AcademicYear string
	Semester     string
	Type         string
	Month        int
	Search       string
}
