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

const registrationColumns = `r.id, r.no_pendaftaran, r.pin_hash, r.nama_lengkap, r.nisn, r.nomor_whatsapp_aktif,
        r.tempat_lahir, r.tanggal_lahir, r.jenis_kelamin, r.golongan_darah, r.agama, r.status_sekarang,
        r.alamat_siswa, r.asal_sekolah, r.alamat_sekolah, r.tahun_lulus,
        r.nama_orang_tua, r.nomor_whatsapp_ortu, r.pendidikan_orang_tua, r.pekerjaan_orang_tua,
        r.instansi_orang_tua, r.penghasilan_orang_tua, r.alamat_orang_tua,
        r.pilihan_jurusan_id, j.nama_jurusan, r.pilihan_pembayaran_id, p.nama_pembayaran, p.total_pembayaran,
        r.status_pendaftaran, r.bukti_pdf_path, r.tanggal_daftar, r.updated_at, r.deleted_at`

const registrationJoins = `FROM registrations r
        JOIN departments j ON j.id = r.pilihan_jurusan_id
        JOIN payment_options p ON p.id = r.pilihan_pembayaran_id`

// RegistrationRepository manages persistence for admission applications.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// ListDepartments returns all study programs offered on the form.
func (r *RegistrationRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, nama_jurusan, kode_jurusan, deskripsi, kuota_siswa FROM departments ORDER BY nama_jurusan ASC`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// ListPaymentOptions returns the admission payment plans.
func (r *RegistrationRepository) ListPaymentOptions(ctx context.Context) ([]models.PaymentOption, error) {
	const query = `SELECT id, nama_pembayaran, jumlah_pembayaran, uang_pendaftaran, total_pembayaran, description, is_recommended FROM payment_options ORDER BY total_pembayaran ASC`
	var options []models.PaymentOption
	if err := r.db.SelectContext(ctx, &options, query); err != nil {
		return nil, fmt.Errorf("list payment options: %w", err)
	}
	return options, nil
}

// FindDepartment fetches a study program by ID.
func (r *RegistrationRepository) FindDepartment(ctx context.Context, id int64) (*models.Department, error) {
	const query = `SELECT id, nama_jurusan, kode_jurusan, deskripsi, kuota_siswa FROM departments WHERE id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// FindPaymentOption fetches a payment plan by ID.
func (r *RegistrationRepository) FindPaymentOption(ctx context.Context, id int64) (*models.PaymentOption, error) {
	const query = `SELECT id, nama_pembayaran, jumlah_pembayaran, uang_pendaftaran, total_pembayaran, description, is_recommended FROM payment_options WHERE id = $1`
	var option models.PaymentOption
	if err := r.db.GetContext(ctx, &option, query, id); err != nil {
		return nil, err
	}
	return &option, nil
}

// NextSequence reserves the next registration sequence number for a year.
func (r *RegistrationRepository) NextSequence(ctx context.Context, year int) (int, error) {
	const query = `INSERT INTO registration_sequences (year, last_value) VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET last_value = registration_sequences.last_value + 1
        RETURNING last_value`
	var seq int
	if err := r.db.QueryRowxContext(ctx, query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next registration sequence: %w", err)
	}
	return seq, nil
}

// Create stores an application together with its documents in one transaction.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration, docs []models.RegistrationDocument) error {
	now := time.Now().UTC()
	if reg.RegisteredAt.IsZero() {
		reg.RegisteredAt = now
	}
	reg.UpdatedAt = now
	if reg.Status == "" {
		reg.Status = models.RegistrationPending
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback()

	const insertReg = `INSERT INTO registrations (no_pendaftaran, pin_hash, nama_lengkap, nisn, nomor_whatsapp_aktif,
        tempat_lahir, tanggal_lahir, jenis_kelamin, golongan_darah, agama, status_sekarang,
        alamat_siswa, asal_sekolah, alamat_sekolah, tahun_lulus,
        nama_orang_tua, nomor_whatsapp_ortu, pendidikan_orang_tua, pekerjaan_orang_tua,
        instansi_orang_tua, penghasilan_orang_tua, alamat_orang_tua,
        pilihan_jurusan_id, pilihan_pembayaran_id, status_pendaftaran, tanggal_daftar, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
        RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertReg,
		reg.RegistrationNumber, reg.PINHash, reg.FullName, reg.NISN, reg.WhatsApp,
		reg.BirthPlace, reg.BirthDate, reg.Gender, reg.BloodType, reg.Religion, reg.CurrentStatus,
		reg.Address, reg.SchoolOfOrigin, reg.SchoolAddress, reg.GraduationYear,
		reg.ParentName, reg.ParentWhatsApp, reg.ParentEducation, reg.ParentOccupation,
		reg.ParentEmployer, reg.ParentIncome, reg.ParentAddress,
		reg.DepartmentID, reg.PaymentOptionID, reg.Status, reg.RegisteredAt, reg.UpdatedAt,
	).Scan(&reg.ID); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}

	const insertDoc = `INSERT INTO registration_documents (registration_id, kind, original_name, stored_path, content_type, size_bytes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range docs {
		docs[i].RegistrationID = reg.ID
		if docs[i].CreatedAt.IsZero() {
			docs[i].CreatedAt = now
		}
		if _, err := tx.ExecContext(ctx, insertDoc,
			docs[i].RegistrationID, docs[i].Kind, docs[i].OriginalName,
			docs[i].StoredPath, docs[i].ContentType, docs[i].SizeBytes, docs[i].CreatedAt,
		); err != nil {
			return fmt.Errorf("create registration document %s: %w", docs[i].Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}

// List returns applications matching the provided filters and the total count.
// Soft-deleted records are excluded.
func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	args := []interface{}{}
	conditions := []string{"r.deleted_at IS NULL"}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status_pendaftaran = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(r.nama_lengkap) LIKE $%d OR LOWER(r.no_pendaftaran) LIKE $%d OR LOWER(r.asal_sekolah) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base := fmt.Sprintf("%s WHERE %s", registrationJoins, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT %s %s ORDER BY r.tanggal_daftar DESC LIMIT %d OFFSET %d`,
		registrationColumns, base, limit, offset)

	var registrations []models.Registration
	if err := r.db.SelectContext(ctx, &registrations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(r.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}
	return registrations, total, nil
}

// FindByID fetches an application by ID, excluding soft-deleted records.
func (r *RegistrationRepository) FindByID(ctx context.Context, id int64) (*models.Registration, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE r.id = $1 AND r.deleted_at IS NULL`, registrationColumns, registrationJoins)
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByNumber fetches an application by registration number.
func (r *RegistrationRepository) FindByNumber(ctx context.Context, number string) (*models.Registration, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE r.no_pendaftaran = $1 AND r.deleted_at IS NULL`, registrationColumns, registrationJoins)
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, number); err != nil {
		return nil, err
	}
	return &reg, nil
}

// UpdateStatus changes an application's admission status.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	const query = `UPDATE registrations SET status_pendaftaran = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update registration status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetReceiptPath records where the generated receipt PDF was stored.
func (r *RegistrationRepository) SetReceiptPath(ctx context.Context, id int64, path string) error {
	const query = `UPDATE registrations SET bukti_pdf_path = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, path); err != nil {
		return fmt.Errorf("set receipt path: %w", err)
	}
	return nil
}

// SoftDelete marks an application as deleted without removing its row.
func (r *RegistrationRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE registrations SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete registration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Documents returns the uploaded files belonging to an application.
func (r *RegistrationRepository) Documents(ctx context.Context, registrationID int64) ([]models.RegistrationDocument, error) {
	const query = `SELECT id, registration_id, kind, original_name, stored_path, content_type, size_bytes, created_at
        FROM registration_documents WHERE registration_id = $1 ORDER BY kind ASC`
	var docs []models.RegistrationDocument
	if err := r.db.SelectContext(ctx, &docs, query, registrationID); err != nil {
		return nil, fmt.Errorf("list registration documents: %w", err)
	}
	return docs, nil
}

// CountByStatus returns the number of live applications in a given status.
func (r *RegistrationRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM registrations WHERE status_pendaftaran = $1 AND deleted_at IS NULL", status); err != nil {
		return 0, fmt.Errorf("count registrations by status: %w", err)
	}
	return total, nil
}

// CountAll returns the number of live applications.
func (r *RegistrationRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(id) FROM registrations WHERE deleted_at IS NULL"); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}
