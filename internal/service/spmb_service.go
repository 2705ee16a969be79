package service

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/pkg/config"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/export"
	"github.com/smk-nusantara/cms-api/pkg/jobs"
)

// JobReceiptPDF is the queue job type for receipt generation.
const JobReceiptPDF = "receipt_pdf"

// ReceiptJobPayload carries what the receipt worker needs. The PIN is only
// available in plaintext at registration time, so it travels with the job.
type ReceiptJobPayload struct {
	RegistrationID int64  `json:"registration_id"`
	PIN            string `json:"pin"`
}

// UploadedDocument is one file received on the registration form.
type UploadedDocument struct {
	Kind         string
	OriginalName string
	ContentType  string
	Data         []byte
}

type registrationRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListPaymentOptions(ctx context.Context) ([]models.PaymentOption, error)
	FindDepartment(ctx context.Context, id int64) (*models.Department, error)
	FindPaymentOption(ctx context.Context, id int64) (*models.PaymentOption, error)
	NextSequence(ctx context.Context, year int) (int, error)
	Create(ctx context.Context, reg *models.Registration, docs []models.RegistrationDocument) error
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	FindByID(ctx context.Context, id int64) (*models.Registration, error)
	FindByNumber(ctx context.Context, number string) (*models.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetReceiptPath(ctx context.Context, id int64, path string) error
	SoftDelete(ctx context.Context, id int64) error
	Documents(ctx context.Context, registrationID int64) ([]models.RegistrationDocument, error)
}

type fileStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Path(filename string) string
}

type receiptSigner interface {
	Generate(refID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (refID, relPath string, expiresAt time.Time, err error)
}

type receiptRenderer interface {
	Render(data export.ReceiptData) ([]byte, error)
}

type pinHasher interface {
	Hash(pin string) (string, error)
}

// BcryptPINHasher hashes applicant PINs with bcrypt.
type BcryptPINHasher struct{}

// Hash implements pinHasher.
func (BcryptPINHasher) Hash(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// SPMBService implements the student admission flow: the public form, receipt
// generation and the admin management screens.
type SPMBService struct {
	repo      registrationRepository
	audit     auditRecorder
	docs      fileStore
	receipts  fileStore
	signer    receiptSigner
	renderer  receiptRenderer
	hasher    pinHasher
	queue     jobEnqueuer
	csv       *export.CSVExporter
	validator *validator.Validate
	logger    *zap.Logger
	school    config.SchoolConfig
	spmb      config.SPMBConfig
}

// NewSPMBService constructs an SPMBService.
func NewSPMBService(repo registrationRepository, audit auditRecorder, docs, receipts fileStore, signer receiptSigner, renderer receiptRenderer, queue jobEnqueuer, validate *validator.Validate, logger *zap.Logger, school config.SchoolConfig, spmb config.SPMBConfig) *SPMBService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SPMBService{
		repo:      repo,
		audit:     audit,
		docs:      docs,
		receipts:  receipts,
		signer:    signer,
		renderer:  renderer,
		hasher:    BcryptPINHasher{},
		queue:     queue,
		csv:       export.NewCSVExporter(),
		validator: validate,
		logger:    logger,
		school:    school,
		spmb:      spmb,
	}
}

// SchoolInfo assembles the branding payload for the registration page.
func (s *SPMBService) SchoolInfo(_ context.Context) *models.SchoolInfo {
	status := "closed"
	if s.spmb.RegistrationOpen {
		status = "open"
	}
	return &models.SchoolInfo{
		SchoolName:         s.school.Name,
		SchoolAddress:      s.school.Address,
		SchoolPhone:        s.school.Phone,
		SchoolEmail:        s.school.Email,
		SchoolWebsite:      s.school.Website,
		SchoolLogo:         s.school.LogoURL,
		PrimaryColor:       s.school.PrimaryColor,
		SecondaryColor:     s.school.SecondaryColor,
		RegistrationStatus: status,
		AcademicYear:       s.school.AcademicYear,
		ContactPerson:      s.school.ContactPerson,
		ContactWhatsApp:    s.school.ContactWhatsApp,
	}
}

// FormConfig returns the study programs and payment plans for the form.
func (s *SPMBService) FormConfig(ctx context.Context) (*models.FormConfig, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pilihan jurusan")
	}
	options, err := s.repo.ListPaymentOptions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pilihan pembayaran")
	}
	return &models.FormConfig{Departments: departments, PaymentOptions: options}, nil
}

// Register processes a new application: validation, document storage, number
// and PIN issuance, then queues the receipt PDF.
func (s *SPMBService) Register(ctx context.Context, input models.RegistrationInput, uploads []UploadedDocument) (*models.RegistrationResult, error) {
	if !s.spmb.RegistrationOpen {
		return nil, appErrors.Clone(appErrors.ErrRegistrationClosed, "")
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, s.validationError(err)
	}
	if err := s.checkDocuments(uploads); err != nil {
		return nil, err
	}

	department, err := s.repo.FindDepartment(ctx, input.DepartmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "pilihan jurusan tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memeriksa jurusan")
	}
	payment, err := s.repo.FindPaymentOption(ctx, input.PaymentOptionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "pilihan pembayaran tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memeriksa pembayaran")
	}

	year := time.Now().Year()
	seq, err := s.repo.NextSequence(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat nomor pendaftaran")
	}
	number := fmt.Sprintf("SPMB-%d-%04d", year, seq)

	pin, err := generatePIN()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat PIN")
	}
	pinHash, err := s.hasher.Hash(pin)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal mengamankan PIN")
	}

	docs := make([]models.RegistrationDocument, 0, len(uploads))
	for _, upload := range uploads {
		ext := strings.ToLower(filepath.Ext(upload.OriginalName))
		if ext == "" {
			ext = extensionFor(upload.ContentType)
		}
		rel := filepath.Join("docs", number, upload.Kind+"-"+uuid.NewString()+ext)
		stored, err := s.docs.Save(rel, upload.Data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan dokumen")
		}
		docs = append(docs, models.RegistrationDocument{
			Kind:         upload.Kind,
			OriginalName: upload.OriginalName,
			StoredPath:   stored,
			ContentType:  upload.ContentType,
			SizeBytes:    int64(len(upload.Data)),
		})
	}

	reg := &models.Registration{
		RegistrationNumber: number,
		PINHash:            pinHash,
		FullName:           strings.TrimSpace(input.FullName),
		NISN:               strings.TrimSpace(input.NISN),
		WhatsApp:           strings.TrimSpace(input.WhatsApp),
		BirthPlace:         strings.TrimSpace(input.BirthPlace),
		BirthDate:          input.BirthDate,
		Gender:             input.Gender,
		BloodType:          input.BloodType,
		Religion:           input.Religion,
		CurrentStatus:      input.CurrentStatus,
		Address:            strings.TrimSpace(input.Address),
		SchoolOfOrigin:     strings.TrimSpace(input.SchoolOfOrigin),
		SchoolAddress:      strings.TrimSpace(input.SchoolAddress),
		GraduationYear:     input.GraduationYear,
		ParentName:         strings.TrimSpace(input.ParentName),
		ParentWhatsApp:     strings.TrimSpace(input.ParentWhatsApp),
		ParentEducation:    input.ParentEducation,
		ParentOccupation:   strings.TrimSpace(input.ParentOccupation),
		ParentEmployer:     strings.TrimSpace(input.ParentEmployer),
		ParentIncome:       input.ParentIncome,
		ParentAddress:      strings.TrimSpace(input.ParentAddress),
		DepartmentID:       department.ID,
		PaymentOptionID:    payment.ID,
		Status:             models.RegistrationPending,
	}
	if err := s.repo.Create(ctx, reg, docs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan pendaftaran")
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(jobs.Job{
			ID:      uuid.NewString(),
			Type:    JobReceiptPDF,
			Payload: ReceiptJobPayload{RegistrationID: reg.ID, PIN: pin},
		}); err != nil {
			s.logger.Warn("failed to queue receipt generation", zap.String("no_pendaftaran", number), zap.Error(err))
		}
	}

	downloadURL := ""
	if s.signer != nil {
		token, _, err := s.signer.Generate(number, s.receiptRelPath(number))
		if err != nil {
			s.logger.Warn("failed to sign receipt url", zap.String("no_pendaftaran", number), zap.Error(err))
		} else {
			downloadURL = "/api/spmb/receipt/" + token
		}
	}

	return &models.RegistrationResult{
		RegistrationNumber: number,
		PIN:                pin,
		FullName:           reg.FullName,
		Department:         department.Name,
		PaymentPlan:        payment.Name,
		TotalPayment:       payment.Total,
		DownloadPDFURL:     downloadURL,
	}, nil
}

// GenerateReceipt renders and stores the receipt PDF for a registration.
// Runs on the jobs queue after Register.
func (s *SPMBService) GenerateReceipt(ctx context.Context, payload ReceiptJobPayload) error {
	reg, err := s.repo.FindByID(ctx, payload.RegistrationID)
	if err != nil {
		return fmt.Errorf("load registration %d: %w", payload.RegistrationID, err)
	}

	pdf, err := s.renderer.Render(export.ReceiptData{
		SchoolName:         s.school.Name,
		SchoolAddress:      s.school.Address,
		AcademicYear:       s.school.AcademicYear,
		RegistrationNumber: reg.RegistrationNumber,
		PIN:                payload.PIN,
		FullName:           reg.FullName,
		BirthPlace:         reg.BirthPlace,
		BirthDate:          reg.BirthDate,
		SchoolOfOrigin:     reg.SchoolOfOrigin,
		Department:         reg.DepartmentName,
		PaymentPlan:        reg.PaymentName,
		TotalPayment:       formatRupiah(reg.TotalPayment),
		RegisteredAt:       reg.RegisteredAt.Format("02-01-2006 15:04"),
		ContactPerson:      s.school.ContactPerson,
		ContactWhatsApp:    s.school.ContactWhatsApp,
	})
	if err != nil {
		return fmt.Errorf("render receipt %s: %w", reg.RegistrationNumber, err)
	}

	rel := s.receiptRelPath(reg.RegistrationNumber)
	if _, err := s.receipts.Save(rel, pdf); err != nil {
		return fmt.Errorf("store receipt %s: %w", reg.RegistrationNumber, err)
	}
	if err := s.repo.SetReceiptPath(ctx, reg.ID, rel); err != nil {
		return fmt.Errorf("record receipt path %s: %w", reg.RegistrationNumber, err)
	}
	s.logger.Info("receipt generated", zap.String("no_pendaftaran", reg.RegistrationNumber))
	return nil
}

// ReceiptByToken validates a signed token and opens the stored receipt.
// The caller must close the returned file.
func (s *SPMBService) ReceiptByToken(ctx context.Context, token string) (*os.File, string, error) {
	number, rel, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "tautan unduhan tidak valid atau kedaluwarsa")
	}
	reg, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "pendaftaran tidak ditemukan")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pendaftaran")
	}
	if reg.ReceiptPath == "" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "bukti pendaftaran sedang diproses, coba beberapa saat lagi")
	}
	file, err := s.receipts.Open(rel)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "bukti pendaftaran sedang diproses, coba beberapa saat lagi")
	}
	return file, fmt.Sprintf("bukti-%s.pdf", number), nil
}

// AdminList returns applications for the management screen.
func (s *SPMBService) AdminList(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, *models.Pagination, error) {
	if filter.Status != "" && !models.ValidRegistrationStatus(filter.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "status_pendaftaran tidak dikenal")
	}
	registrations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pendaftaran")
	}
	return registrations, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// Detail fetches one application.
func (s *SPMBService) Detail(ctx context.Context, id int64) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pendaftaran tidak ditemukan")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pendaftaran")
	}
	return reg, nil
}

// UpdateStatus changes the admission decision for an application.
func (s *SPMBService) UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate, actor Actor) error {
	if !models.ValidRegistrationStatus(update.Status) {
		return appErrors.Clone(appErrors.ErrValidation, "status_pendaftaran harus pending, diterima, ditolak, atau cadangan")
	}
	if err := s.repo.UpdateStatus(ctx, id, update.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "pendaftaran tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal mengubah status pendaftaran")
	}
	s.recordAudit(ctx, actor, models.AuditActionRegistrationStatus, id, map[string]interface{}{"status_pendaftaran": update.Status})
	return nil
}

// Delete soft-deletes an application.
func (s *SPMBService) Delete(ctx context.Context, id int64, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "pendaftaran tidak ditemukan")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menghapus pendaftaran")
	}
	s.recordAudit(ctx, actor, models.AuditActionRegistrationDelete, id, nil)
	return nil
}

// DownloadPackage bundles an application's documents and receipt into a zip.
func (s *SPMBService) DownloadPackage(ctx context.Context, id int64) ([]byte, string, error) {
	reg, err := s.Detail(ctx, id)
	if err != nil {
		return nil, "", err
	}
	docs, err := s.repo.Documents(ctx, id)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat dokumen pendaftaran")
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, doc := range docs {
		if err := s.addToZip(zw, s.docs, doc.StoredPath, doc.Kind+filepath.Ext(doc.StoredPath)); err != nil {
			s.logger.Warn("skipping missing document", zap.String("path", doc.StoredPath), zap.Error(err))
		}
	}
	if reg.ReceiptPath != "" {
		if err := s.addToZip(zw, s.receipts, reg.ReceiptPath, "bukti-pendaftaran.pdf"); err != nil {
			s.logger.Warn("skipping missing receipt", zap.String("path", reg.ReceiptPath), zap.Error(err))
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat berkas zip")
	}
	return buf.Bytes(), fmt.Sprintf("%s.zip", reg.RegistrationNumber), nil
}

// ExportCSV renders the filtered registration list as CSV.
func (s *SPMBService) ExportCSV(ctx context.Context, filter models.RegistrationFilter) ([]byte, string, error) {
	filter.Page = 1
	filter.Limit = 100
	headers := []string{"No Pendaftaran", "Nama Lengkap", "NISN", "Asal Sekolah", "Jurusan", "Pembayaran", "Total", "Status", "Tanggal Daftar"}
	rows := make([]map[string]string, 0)

	for {
		registrations, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal memuat pendaftaran")
		}
		for _, reg := range registrations {
			rows = append(rows, map[string]string{
				"No Pendaftaran": reg.RegistrationNumber,
				"Nama Lengkap":   reg.FullName,
				"NISN":           reg.NISN,
				"Asal Sekolah":   reg.SchoolOfOrigin,
				"Jurusan":        reg.DepartmentName,
				"Pembayaran":     reg.PaymentName,
				"Total":          formatRupiah(reg.TotalPayment),
				"Status":         reg.Status,
				"Tanggal Daftar": reg.RegisteredAt.Format("2006-01-02 15:04"),
			})
		}
		if len(rows) >= total || len(registrations) == 0 {
			break
		}
		filter.Page++
	}

	data, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal membuat berkas CSV")
	}
	name := fmt.Sprintf("pendaftaran-spmb-%s.csv", time.Now().Format("20060102"))
	return data, name, nil
}

func (s *SPMBService) addToZip(zw *zip.Writer, store fileStore, rel, name string) error {
	file, err := store.Open(rel)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}

func (s *SPMBService) checkDocuments(uploads []UploadedDocument) error {
	seen := map[string]bool{}
	allowed := map[string]bool{}
	for _, kind := range models.RequiredDocumentKinds {
		allowed[kind] = true
	}
	for _, kind := range models.OptionalDocumentKinds {
		allowed[kind] = true
	}
	for _, upload := range uploads {
		if !allowed[upload.Kind] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("jenis dokumen %s tidak dikenal", upload.Kind))
		}
		if seen[upload.Kind] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("dokumen %s dikirim lebih dari satu kali", upload.Kind))
		}
		seen[upload.Kind] = true
		if s.spmb.MaxFileSizeBytes > 0 && int64(len(upload.Data)) > s.spmb.MaxFileSizeBytes {
			return appErrors.Clone(appErrors.ErrFileTooLarge, fmt.Sprintf("dokumen %s melebihi ukuran maksimal 5MB", upload.Kind))
		}
		if !s.mimeAllowed(upload.ContentType) {
			return appErrors.Clone(appErrors.ErrUnsupportedFileType, fmt.Sprintf("dokumen %s harus berformat JPG, PNG, atau PDF", upload.Kind))
		}
	}
	for _, kind := range models.RequiredDocumentKinds {
		if !seen[kind] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("dokumen %s wajib diunggah", kind))
		}
	}
	return nil
}

func (s *SPMBService) mimeAllowed(contentType string) bool {
	if len(s.spmb.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range s.spmb.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func (s *SPMBService) receiptRelPath(number string) string {
	return filepath.Join("receipts", number+".pdf")
}

func (s *SPMBService) validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		labels := map[string]string{
			"FullName":         "nama_lengkap",
			"WhatsApp":         "nomor_whatsapp_aktif",
			"BirthPlace":       "tempat_lahir",
			"BirthDate":        "tanggal_lahir",
			"Gender":           "jenis_kelamin",
			"Religion":         "agama",
			"Address":          "alamat_siswa",
			"SchoolOfOrigin":   "asal_sekolah",
			"GraduationYear":   "tahun_lulus",
			"ParentName":       "nama_orang_tua",
			"ParentOccupation": "pekerjaan_orang_tua",
			"DepartmentID":     "pilihan_jurusan_id",
			"PaymentOptionID":  "pilihan_pembayaran_id",
		}
		first := fieldErrors[0]
		label := labels[first.Field()]
		if label == "" {
			label = strings.ToLower(first.Field())
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("kolom %s wajib diisi", label))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data pendaftaran tidak lengkap")
}

func (s *SPMBService) recordAudit(ctx context.Context, actor Actor, action string, registrationID int64, values map[string]interface{}) {
	if s.audit == nil {
		return
	}
	resourceID := fmt.Sprintf("%d", registrationID)
	var payload []byte
	if values != nil {
		payload, _ = json.Marshal(values)
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "registrations",
		ResourceID: &resourceID,
		NewValues:  payload,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record registration audit log", zap.Error(err))
	}
}

func generatePIN() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

func formatRupiah(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return "Rp " + b.String()
}
