package models

import "time"

// Registration status enum (matches the status_pendaftaran column).
const (
	RegistrationPending  = "pending"
	RegistrationAccepted = "diterima"
	RegistrationRejected = "ditolak"
	RegistrationWaitlist = "cadangan"
)

// ValidRegistrationStatus reports whether s is a known status value.
func ValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationPending, RegistrationAccepted, RegistrationRejected, RegistrationWaitlist:
		return true
	}
	return false
}

// Department is a study program applicants choose from (jurusan).
type Department struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"nama_jurusan" json:"nama_jurusan"`
	Code        string `db:"kode_jurusan" json:"kode_jurusan"`
	Description string `db:"deskripsi" json:"deskripsi"`
	Quota       int    `db:"kuota_siswa" json:"kuota_siswa"`
}

// PaymentOption is an admission payment plan.
type PaymentOption struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"nama_pembayaran" json:"nama_pembayaran"`
	Amount          int64  `db:"jumlah_pembayaran" json:"jumlah_pembayaran"`
	RegistrationFee int64  `db:"uang_pendaftaran" json:"uang_pendaftaran"`
	Total           int64  `db:"total_pembayaran" json:"total_pembayaran"`
	Description     string `db:"description" json:"description"`
	IsRecommended   bool   `db:"is_recommended" json:"is_recommended"`
}

// FormConfig is the payload served to the public registration form.
type FormConfig struct {
	Departments    []Department    `json:"jurusan"`
	PaymentOptions []PaymentOption `json:"payment_options"`
}

// Registration is a stored SPMB application.
type Registration struct {
	ID                 int64      `db:"id" json:"id"`
	RegistrationNumber string     `db:"no_pendaftaran" json:"no_pendaftaran"`
	PINHash            string     `db:"pin_hash" json:"-"`
	FullName           string     `db:"nama_lengkap" json:"nama_lengkap"`
	NISN               string     `db:"nisn" json:"nisn,omitempty"`
	WhatsApp           string     `db:"nomor_whatsapp_aktif" json:"nomor_whatsapp_aktif"`
	BirthPlace         string     `db:"tempat_lahir" json:"tempat_lahir"`
	BirthDate          string     `db:"tanggal_lahir" json:"tanggal_lahir"`
	Gender             string     `db:"jenis_kelamin" json:"jenis_kelamin"`
	BloodType          string     `db:"golongan_darah" json:"golongan_darah,omitempty"`
	Religion           string     `db:"agama" json:"agama"`
	CurrentStatus      string     `db:"status_sekarang" json:"status_sekarang,omitempty"`
	Address            string     `db:"alamat_siswa" json:"alamat_siswa"`
	SchoolOfOrigin     string     `db:"asal_sekolah" json:"asal_sekolah"`
	SchoolAddress      string     `db:"alamat_sekolah" json:"alamat_sekolah,omitempty"`
	GraduationYear     string     `db:"tahun_lulus" json:"tahun_lulus"`
	ParentName         string     `db:"nama_orang_tua" json:"nama_orang_tua"`
	ParentWhatsApp     string     `db:"nomor_whatsapp_ortu" json:"nomor_whatsapp_ortu,omitempty"`
	ParentEducation    string     `db:"pendidikan_orang_tua" json:"pendidikan_orang_tua,omitempty"`
	ParentOccupation   string     `db:"pekerjaan_orang_tua" json:"pekerjaan_orang_tua"`
	ParentEmployer     string     `db:"instansi_orang_tua" json:"instansi_orang_tua,omitempty"`
	ParentIncome       string     `db:"penghasilan_orang_tua" json:"penghasilan_orang_tua,omitempty"`
	ParentAddress      string     `db:"alamat_orang_tua" json:"alamat_orang_tua,omitempty"`
	DepartmentID       int64      `db:"pilihan_jurusan_id" json:"pilihan_jurusan_id"`
	DepartmentName     string     `db:"nama_jurusan" json:"nama_jurusan,omitempty"`
	PaymentOptionID    int64      `db:"pilihan_pembayaran_id" json:"pilihan_pembayaran_id"`
	PaymentName        string     `db:"nama_pembayaran" json:"nama_pembayaran,omitempty"`
	TotalPayment       int64      `db:"total_pembayaran" json:"total_pembayaran,omitempty"`
	Status             string     `db:"status_pendaftaran" json:"status_pendaftaran"`
	ReceiptPath        string     `db:"bukti_pdf_path" json:"bukti_pdf_path,omitempty"`
	RegisteredAt       time.Time  `db:"tanggal_daftar" json:"tanggal_daftar"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at" json:"-"`
}

// RegistrationDocument is one uploaded file belonging to a registration.
type RegistrationDocument struct {
	ID             int64     `db:"id" json:"id"`
	RegistrationID int64     `db:"registration_id" json:"registration_id"`
	Kind           string    `db:"kind" json:"kind"`
	OriginalName   string    `db:"original_name" json:"original_name"`
	StoredPath     string    `db:"stored_path" json:"-"`
	ContentType    string    `db:"content_type" json:"content_type"`
	SizeBytes      int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Document kinds accepted by the registration form. The first four are
// mandatory, the final two optional.
var (
	RequiredDocumentKinds = []string{"bukti_pembayaran", "akta_kelahiran", "kartu_keluarga", "pas_foto"}
	OptionalDocumentKinds = []string{"ijazah", "surat_keterangan_lulus"}
)

// RegistrationInput is the text-field portion of the multipart submit.
type RegistrationInput struct {
	NISN             string `form:"nisn" json:"nisn"`
	FullName         string `form:"nama_lengkap" json:"nama_lengkap" validate:"required"`
	WhatsApp         string `form:"nomor_whatsapp_aktif" json:"nomor_whatsapp_aktif" validate:"required"`
	BirthPlace       string `form:"tempat_lahir" json:"tempat_lahir" validate:"required"`
	BirthDate        string `form:"tanggal_lahir" json:"tanggal_lahir" validate:"required"`
	Gender           string `form:"jenis_kelamin" json:"jenis_kelamin" validate:"required"`
	BloodType        string `form:"golongan_darah" json:"golongan_darah"`
	Religion         string `form:"agama" json:"agama" validate:"required"`
	CurrentStatus    string `form:"status_sekarang" json:"status_sekarang"`
	Address          string `form:"alamat_siswa" json:"alamat_siswa" validate:"required"`
	SchoolOfOrigin   string `form:"asal_sekolah" json:"asal_sekolah" validate:"required"`
	SchoolAddress    string `form:"alamat_sekolah" json:"alamat_sekolah"`
	GraduationYear   string `form:"tahun_lulus" json:"tahun_lulus" validate:"required"`
	ParentName       string `form:"nama_orang_tua" json:"nama_orang_tua" validate:"required"`
	ParentWhatsApp   string `form:"nomor_whatsapp_ortu" json:"nomor_whatsapp_ortu"`
	ParentEducation  string `form:"pendidikan_orang_tua" json:"pendidikan_orang_tua"`
	ParentOccupation string `form:"pekerjaan_orang_tua" json:"pekerjaan_orang_tua" validate:"required"`
	ParentEmployer   string `form:"instansi_orang_tua" json:"instansi_orang_tua"`
	ParentIncome     string `form:"penghasilan_orang_tua" json:"penghasilan_orang_tua"`
	ParentAddress    string `form:"alamat_orang_tua" json:"alamat_orang_tua"`
	DepartmentID     int64  `form:"pilihan_jurusan_id" json:"pilihan_jurusan_id" validate:"required,gt=0"`
	PaymentOptionID  int64  `form:"pilihan_pembayaran_id" json:"pilihan_pembayaran_id" validate:"required,gt=0"`
}

// RegistrationResult is the confirmation payload shown to the applicant.
type RegistrationResult struct {
	RegistrationNumber string `json:"no_pendaftaran"`
	PIN                string `json:"pin_login"`
	FullName           string `json:"nama_lengkap"`
	Department         string `json:"pilihan_jurusan"`
	PaymentPlan        string `json:"jenis_pembayaran"`
	TotalPayment       int64  `json:"total_pembayaran"`
	DownloadPDFURL     string `json:"download_pdf_url"`
}

// StatusUpdate is the admin payload changing an application's status.
type StatusUpdate struct {
	Status string `json:"status_pendaftaran" validate:"required"`
}

// RegistrationFilter captures admin list criteria.
type RegistrationFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}
