package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/pkg/config"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/export"
	"github.com/smk-nusantara/cms-api/pkg/jobs"
	"github.com/smk-nusantara/cms-api/pkg/storage"
)

type mockRegistrationRepo struct {
	departments   []models.Department
	payments      []models.PaymentOption
	sequence      int
	created       *models.Registration
	createdDocs   []models.RegistrationDocument
	registrations []models.Registration
	byID          map[int64]*models.Registration
	statusUpdates map[int64]string
	deleted       []int64
	receiptPaths  map[int64]string
	documents     []models.RegistrationDocument
}

func (m *mockRegistrationRepo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return m.departments, nil
}

func (m *mockRegistrationRepo) ListPaymentOptions(ctx context.Context) ([]models.PaymentOption, error) {
	return m.payments, nil
}

func (m *mockRegistrationRepo) FindDepartment(ctx context.Context, id int64) (*models.Department, error) {
	for i := range m.departments {
		if m.departments[i].ID == id {
			return &m.departments[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRegistrationRepo) FindPaymentOption(ctx context.Context, id int64) (*models.PaymentOption, error) {
	for i := range m.payments {
		if m.payments[i].ID == id {
			return &m.payments[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRegistrationRepo) NextSequence(ctx context.Context, year int) (int, error) {
	m.sequence++
	return m.sequence, nil
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *models.Registration, docs []models.RegistrationDocument) error {
	reg.ID = 10
	m.created = reg
	m.createdDocs = docs
	return nil
}

func (m *mockRegistrationRepo) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	return m.registrations, len(m.registrations), nil
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id int64) (*models.Registration, error) {
	if reg, ok := m.byID[id]; ok {
		return reg, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRegistrationRepo) FindByNumber(ctx context.Context, number string) (*models.Registration, error) {
	for _, reg := range m.byID {
		if reg.RegistrationNumber == number {
			return reg, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRegistrationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	if m.statusUpdates == nil {
		m.statusUpdates = map[int64]string{}
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *mockRegistrationRepo) SetReceiptPath(ctx context.Context, id int64, path string) error {
	if m.receiptPaths == nil {
		m.receiptPaths = map[int64]string{}
	}
	m.receiptPaths[id] = path
	return nil
}

func (m *mockRegistrationRepo) SoftDelete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRegistrationRepo) Documents(ctx context.Context, registrationID int64) ([]models.RegistrationDocument, error) {
	return m.documents, nil
}

type mockAudit struct {
	logs []*models.AuditLog
}

func (m *mockAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, log)
	return nil
}

type captureQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *captureQueue) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func testSPMBService(t *testing.T, repo *mockRegistrationRepo, queue jobEnqueuer, open bool) *SPMBService {
	t.Helper()
	docs, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, err)
	receipts, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "receipts"))
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test_secret", 0)
	return NewSPMBService(repo, &mockAudit{}, docs, receipts, signer, export.NewReceiptRenderer(), queue, nil, nil,
		config.SchoolConfig{Name: "SMK Nusantara Tech", AcademicYear: "2026/2027", ContactPerson: "Panitia SPMB"},
		config.SPMBConfig{
			RegistrationOpen: open,
			MaxFileSizeBytes: 5 * 1024 * 1024,
			AllowedMIMEs:     []string{"image/jpeg", "image/png", "application/pdf"},
		})
}

func validRegistrationInput() models.RegistrationInput {
	return models.RegistrationInput{
		FullName:         "Budi Santoso",
		WhatsApp:         "081234567890",
		BirthPlace:       "Bandung",
		BirthDate:        "2010-04-12",
		Gender:           "L",
		Religion:         "Islam",
		Address:          "Jl. Merdeka 1",
		SchoolOfOrigin:   "SMPN 5 Bandung",
		GraduationYear:   "2026",
		ParentName:       "Agus Santoso",
		ParentOccupation: "Wiraswasta",
		DepartmentID:     1,
		PaymentOptionID:  2,
	}
}

func requiredUploads() []UploadedDocument {
	uploads := make([]UploadedDocument, 0, len(models.RequiredDocumentKinds))
	for _, kind := range models.RequiredDocumentKinds {
		uploads = append(uploads, UploadedDocument{
			Kind:         kind,
			OriginalName: kind + ".pdf",
			ContentType:  "application/pdf",
			Data:         []byte("%PDF-1.4 test"),
		})
	}
	return uploads
}

func spmbFixtures() *mockRegistrationRepo {
	return &mockRegistrationRepo{
		departments: []models.Department{{ID: 1, Name: "Rekayasa Perangkat Lunak", Code: "RPL"}},
		payments:    []models.PaymentOption{{ID: 2, Name: "Pembayaran Lunas", Total: 4500000}},
	}
}

func TestSPMBRegisterSuccess(t *testing.T) {
	repo := spmbFixtures()
	queue := &captureQueue{}
	svc := testSPMBService(t, repo, queue, true)

	result, err := svc.Register(context.Background(), validRegistrationInput(), requiredUploads())
	require.NoError(t, err)

	assert.Regexp(t, `^SPMB-\d{4}-0001$`, result.RegistrationNumber)
	assert.Regexp(t, `^\d{6}$`, result.PIN)
	assert.Equal(t, "Rekayasa Perangkat Lunak", result.Department)
	assert.Equal(t, int64(4500000), result.TotalPayment)
	assert.True(t, strings.HasPrefix(result.DownloadPDFURL, "/api/spmb/receipt/"))

	require.NotNil(t, repo.created)
	assert.Equal(t, models.RegistrationPending, repo.created.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PINHash), []byte(result.PIN)))
	assert.Len(t, repo.createdDocs, len(models.RequiredDocumentKinds))

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobReceiptPDF, queue.jobs[0].Type)
	payload := queue.jobs[0].Payload.(ReceiptJobPayload)
	assert.Equal(t, int64(10), payload.RegistrationID)
	assert.Equal(t, result.PIN, payload.PIN)
}

func TestSPMBRegisterClosed(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, false)

	_, err := svc.Register(context.Background(), validRegistrationInput(), requiredUploads())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRegistrationClosed.Code, appErr.Code)
	assert.Equal(t, "pendaftaran sedang ditutup", appErr.Message)
}

func TestSPMBRegisterMissingRequiredDocument(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	uploads := requiredUploads()[1:]
	_, err := svc.Register(context.Background(), validRegistrationInput(), uploads)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "bukti_pembayaran")
}

func TestSPMBRegisterRejectsOversizedFile(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	uploads := requiredUploads()
	uploads[0].Data = make([]byte, 6*1024*1024)
	_, err := svc.Register(context.Background(), validRegistrationInput(), uploads)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileTooLarge.Code, appErrors.FromError(err).Code)
}

func TestSPMBRegisterRejectsUnsupportedType(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	uploads := requiredUploads()
	uploads[0].ContentType = "application/zip"
	_, err := svc.Register(context.Background(), validRegistrationInput(), uploads)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFileType.Code, appErrors.FromError(err).Code)
}

func TestSPMBRegisterValidationMessageNamesField(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	input := validRegistrationInput()
	input.FullName = ""
	_, err := svc.Register(context.Background(), input, requiredUploads())
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "nama_lengkap")
}

func TestSPMBGenerateReceiptStoresPDF(t *testing.T) {
	repo := spmbFixtures()
	repo.byID = map[int64]*models.Registration{
		10: {
			ID:                 10,
			RegistrationNumber: "SPMB-2026-0001",
			FullName:           "Budi Santoso",
			DepartmentName:     "Rekayasa Perangkat Lunak",
			PaymentName:        "Pembayaran Lunas",
			TotalPayment:       4500000,
		},
	}
	svc := testSPMBService(t, repo, &captureQueue{}, true)

	err := svc.GenerateReceipt(context.Background(), ReceiptJobPayload{RegistrationID: 10, PIN: "123456"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("receipts", "SPMB-2026-0001.pdf"), repo.receiptPaths[10])

	file, err := svc.receipts.Open(repo.receiptPaths[10])
	require.NoError(t, err)
	defer file.Close()
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSPMBReceiptByTokenRoundTrip(t *testing.T) {
	repo := spmbFixtures()
	repo.byID = map[int64]*models.Registration{
		10: {ID: 10, RegistrationNumber: "SPMB-2026-0001", FullName: "Budi Santoso"},
	}
	svc := testSPMBService(t, repo, &captureQueue{}, true)

	require.NoError(t, svc.GenerateReceipt(context.Background(), ReceiptJobPayload{RegistrationID: 10, PIN: "123456"}))
	repo.byID[10].ReceiptPath = repo.receiptPaths[10]

	token, _, err := svc.signer.Generate("SPMB-2026-0001", repo.receiptPaths[10])
	require.NoError(t, err)

	file, name, err := svc.ReceiptByToken(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "bukti-SPMB-2026-0001.pdf", name)
}

func TestSPMBReceiptByTokenRejectsTampered(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	token, _, err := svc.signer.Generate("SPMB-2026-0001", "receipts/SPMB-2026-0001.pdf")
	require.NoError(t, err)

	_, _, err = svc.ReceiptByToken(context.Background(), token+"x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestSPMBUpdateStatus(t *testing.T) {
	repo := spmbFixtures()
	repo.byID = map[int64]*models.Registration{10: {ID: 10}}
	svc := testSPMBService(t, repo, &captureQueue{}, true)

	err := svc.UpdateStatus(context.Background(), 10, models.StatusUpdate{Status: models.RegistrationAccepted}, Actor{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationAccepted, repo.statusUpdates[10])
}

func TestSPMBUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)

	err := svc.UpdateStatus(context.Background(), 10, models.StatusUpdate{Status: "lulus"}, Actor{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSPMBExportCSV(t *testing.T) {
	repo := spmbFixtures()
	repo.registrations = []models.Registration{
		{RegistrationNumber: "SPMB-2026-0001", FullName: "Budi Santoso", DepartmentName: "RPL", PaymentName: "Lunas", TotalPayment: 4500000, Status: models.RegistrationPending},
	}
	svc := testSPMBService(t, repo, &captureQueue{}, true)

	data, name, err := svc.ExportCSV(context.Background(), models.RegistrationFilter{})
	require.NoError(t, err)
	assert.Contains(t, name, "pendaftaran-spmb-")
	assert.Contains(t, string(data), "SPMB-2026-0001")
	assert.Contains(t, string(data), "Rp 4.500.000")
}

func TestSPMBSchoolInfoRegistrationStatus(t *testing.T) {
	openSvc := testSPMBService(t, spmbFixtures(), &captureQueue{}, true)
	assert.Equal(t, "open", openSvc.SchoolInfo(context.Background()).RegistrationStatus)

	closedSvc := testSPMBService(t, spmbFixtures(), &captureQueue{}, false)
	assert.Equal(t, "closed", closedSvc.SchoolInfo(context.Background()).RegistrationStatus)
}
