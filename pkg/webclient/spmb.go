package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"
)

// Document kinds the registration form must carry.
var requiredDocumentKinds = []string{"bukti_pembayaran", "akta_kelahiran", "kartu_keluarga", "pas_foto"}

const maxUploadBytes = 5 << 20

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// FileUpload is one attachment for the registration form.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// FieldError is a per-field validation failure with its Indonesian message.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Message }

// RegistrationConfirmation is the successful submit response.
type RegistrationConfirmation struct {
	RegistrationNumber string `json:"no_pendaftaran"`
	PIN                string `json:"pin_login"`
	FullName           string `json:"nama_lengkap"`
	Department         string `json:"pilihan_jurusan"`
	PaymentPlan        string `json:"jenis_pembayaran"`
	TotalPayment       int64  `json:"total_pembayaran"`
	DownloadPDFURL     string `json:"download_pdf_url"`
}

// RegistrationForm collects the SPMB submission. Field names mirror the
// multipart keys the API reads.
type RegistrationForm struct {
	NISN             string
	FullName         string
	WhatsApp         string
	BirthPlace       string
	BirthDate        string
	Gender           string
	BloodType        string
	Religion         string
	CurrentStatus    string
	Address          string
	SchoolOfOrigin   string
	SchoolAddress    string
	GraduationYear   string
	ParentName       string
	ParentWhatsApp   string
	ParentEducation  string
	ParentOccupation string
	ParentEmployer   string
	ParentIncome     string
	ParentAddress    string
	DepartmentID     int64
	PaymentOptionID  int64

	// Files is keyed by document kind (bukti_pembayaran, pas_foto, ...).
	Files map[string]FileUpload
}

// Validate runs the same presence and file checks the form applies before
// submission. A non-empty result blocks Submit.
func (f *RegistrationForm) Validate() []FieldError {
	var errs []FieldError
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, FieldError{Field: field, Message: "kolom " + field + " wajib diisi"})
		}
	}

	require("nama_lengkap", f.FullName)
	require("nomor_whatsapp_aktif", f.WhatsApp)
	require("tempat_lahir", f.BirthPlace)
	require("tanggal_lahir", f.BirthDate)
	require("jenis_kelamin", f.Gender)
	require("agama", f.Religion)
	require("alamat_siswa", f.Address)
	require("asal_sekolah", f.SchoolOfOrigin)
	require("tahun_lulus", f.GraduationYear)
	require("nama_orang_tua", f.ParentName)
	require("pekerjaan_orang_tua", f.ParentOccupation)
	if f.DepartmentID <= 0 {
		errs = append(errs, FieldError{Field: "pilihan_jurusan_id", Message: "kolom pilihan_jurusan_id wajib diisi"})
	}
	if f.PaymentOptionID <= 0 {
		errs = append(errs, FieldError{Field: "pilihan_pembayaran_id", Message: "kolom pilihan_pembayaran_id wajib diisi"})
	}

	for _, kind := range requiredDocumentKinds {
		file, ok := f.Files[kind]
		if !ok || len(file.Data) == 0 {
			errs = append(errs, FieldError{Field: kind, Message: "dokumen " + kind + " wajib diunggah"})
			continue
		}
		if len(file.Data) > maxUploadBytes {
			errs = append(errs, FieldError{Field: kind, Message: "dokumen " + kind + " melebihi ukuran maksimal 5MB"})
		}
		if !allowedUploadTypes[file.ContentType] {
			errs = append(errs, FieldError{Field: kind, Message: "dokumen " + kind + " harus berupa JPG, PNG, atau PDF"})
		}
	}

	return errs
}

// Submit validates and, only when clean, posts the multipart payload. No
// request is issued when validation fails.
func (f *RegistrationForm) Submit(ctx context.Context, c *Client) (*RegistrationConfirmation, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range f.textFields() {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	kinds := make([]string, 0, len(f.Files))
	for kind := range f.Files {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		file := f.Files[kind]
		part, err := w.CreateFormFile(kind, file.Name)
		if err != nil {
			return nil, fmt.Errorf("write file %s: %w", kind, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, fmt.Errorf("write file %s: %w", kind, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish payload: %w", err)
	}

	env, err := c.PostMultipart(ctx, "/api/spmb/register", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var confirmation RegistrationConfirmation
	if err := json.Unmarshal(env.Data, &confirmation); err != nil {
		return nil, fmt.Errorf("decode confirmation: %w", err)
	}
	return &confirmation, nil
}

func (f *RegistrationForm) textFields() map[string]string {
	return map[string]string{
		"nisn":                  f.NISN,
		"nama_lengkap":          f.FullName,
		"nomor_whatsapp_aktif":  f.WhatsApp,
		"tempat_lahir":          f.BirthPlace,
		"tanggal_lahir":         f.BirthDate,
		"jenis_kelamin":         f.Gender,
		"golongan_darah":        f.BloodType,
		"agama":                 f.Religion,
		"status_sekarang":       f.CurrentStatus,
		"alamat_siswa":          f.Address,
		"asal_sekolah":          f.SchoolOfOrigin,
		"alamat_sekolah":        f.SchoolAddress,
		"tahun_lulus":           f.GraduationYear,
		"nama_orang_tua":        f.ParentName,
		"nomor_whatsapp_ortu":   f.ParentWhatsApp,
		"pendidikan_orang_tua":  f.ParentEducation,
		"pekerjaan_orang_tua":   f.ParentOccupation,
		"instansi_orang_tua":    f.ParentEmployer,
		"penghasilan_orang_tua": f.ParentIncome,
		"alamat_orang_tua":      f.ParentAddress,
		"pilihan_jurusan_id":    strconv.FormatInt(f.DepartmentID, 10),
		"pilihan_pembayaran_id": strconv.FormatInt(f.PaymentOptionID, 10),
	}
}
