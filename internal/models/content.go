package models

import "time"

// Alumni is a graduate showcased on the public site.
type Alumni struct {
	ID             int64     `db:"id" json:"id"`
	FullName       string    `db:"nama_lengkap" json:"nama_lengkap"`
	GraduationYear int       `db:"tahun_lulus" json:"tahun_lulus"`
	CurrentJob     string    `db:"pekerjaan_sekarang" json:"pekerjaan_sekarang"`
	Description    string    `db:"deskripsi" json:"deskripsi"`
	PhotoPath      string    `db:"photo_path" json:"photo_path,omitempty"`
	DisplayOrder   int       `db:"display_order" json:"display_order"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Testimonial is a quote shown on the public site.
type Testimonial struct {
	ID           int64     `db:"id" json:"id"`
	FullName     string    `db:"nama_lengkap" json:"nama_lengkap"`
	Status       string    `db:"status" json:"status"`
	Description  string    `db:"deskripsi" json:"deskripsi"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
