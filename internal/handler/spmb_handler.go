package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/service"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/response"
)

// SPMBHandler exposes the student admission endpoints: the public form,
// receipt download and the admin management screens.
type SPMBHandler struct {
	spmb *service.SPMBService
}

// NewSPMBHandler constructs SPMBHandler.
func NewSPMBHandler(spmb *service.SPMBService) *SPMBHandler {
	return &SPMBHandler{spmb: spmb}
}

// SchoolInfo godoc
// @Summary School branding for the registration page
// @Tags SPMB
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /spmb/school-info [get]
func (h *SPMBHandler) SchoolInfo(c *gin.Context) {
	response.OK(c, "informasi sekolah", h.spmb.SchoolInfo(c.Request.Context()))
}

// FormConfig godoc
// @Summary Study programs and payment plans
// @Tags SPMB
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /spmb/form-config [get]
func (h *SPMBHandler) FormConfig(c *gin.Context) {
	cfg, err := h.spmb.FormConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "konfigurasi formulir", cfg)
}

// Register godoc
// @Summary Submit a new registration
// @Tags SPMB
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /spmb/register [post]
func (h *SPMBHandler) Register(c *gin.Context) {
	input := registrationInputFrom(c)
	uploads, err := h.collectDocuments(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.spmb.Register(c.Request.Context(), input, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "pendaftaran berhasil", result)
}

// Receipt streams the registration receipt PDF referenced by a signed token.
func (h *SPMBHandler) Receipt(c *gin.Context) {
	file, name, err := h.spmb.ReceiptByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

// AdminList returns registrations for the management screen.
func (h *SPMBHandler) AdminList(c *gin.Context) {
	filter := registrationFilterFrom(c)
	registrations, pagination, err := h.spmb.AdminList(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "daftar pendaftaran", registrations, pagination)
}

// AdminDetail returns one registration with its documents.
func (h *SPMBHandler) AdminDetail(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	reg, err := h.spmb.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "detail pendaftaran", reg)
}

// UpdateStatus changes the admission decision.
func (h *SPMBHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var update models.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload status tidak valid"))
		return
	}
	if err := h.spmb.UpdateStatus(c.Request.Context(), id, update, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "status pendaftaran diperbarui", nil)
}

// Delete soft-deletes a registration.
func (h *SPMBHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.spmb.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "pendaftaran berhasil dihapus", nil)
}

// DownloadPackage streams a zip of the registration's documents and receipt.
func (h *SPMBHandler) DownloadPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, name, err := h.spmb.DownloadPackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// Export streams the filtered registration list as CSV.
func (h *SPMBHandler) Export(c *gin.Context) {
	filter := registrationFilterFrom(c)
	data, name, err := h.spmb.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *SPMBHandler) collectDocuments(c *gin.Context) ([]service.UploadedDocument, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "formulir multipart tidak valid")
	}
	kinds := make([]string, 0, len(models.RequiredDocumentKinds)+len(models.OptionalDocumentKinds))
	kinds = append(kinds, models.RequiredDocumentKinds...)
	kinds = append(kinds, models.OptionalDocumentKinds...)

	uploads := make([]service.UploadedDocument, 0, len(kinds))
	for _, kind := range kinds {
		headers := form.File[kind]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "gagal membaca berkas "+kind)
		}
		data, err := io.ReadAll(file)
		file.Close() //nolint:errcheck
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "gagal membaca berkas "+kind)
		}
		uploads = append(uploads, service.UploadedDocument{
			Kind:         kind,
			OriginalName: header.Filename,
			ContentType:  header.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	return uploads, nil
}

func registrationInputFrom(c *gin.Context) models.RegistrationInput {
	departmentID, _ := strconv.ParseInt(c.PostForm("pilihan_jurusan_id"), 10, 64)
	paymentID, _ := strconv.ParseInt(c.PostForm("pilihan_pembayaran_id"), 10, 64)
	return models.RegistrationInput{
		NISN:             c.PostForm("nisn"),
		FullName:         c.PostForm("nama_lengkap"),
		WhatsApp:         c.PostForm("nomor_whatsapp_aktif"),
		BirthPlace:       c.PostForm("tempat_lahir"),
		BirthDate:        c.PostForm("tanggal_lahir"),
		Gender:           c.PostForm("jenis_kelamin"),
		BloodType:        c.PostForm("golongan_darah"),
		Religion:         c.PostForm("agama"),
		CurrentStatus:    c.PostForm("status_sekarang"),
		Address:          c.PostForm("alamat_siswa"),
		SchoolOfOrigin:   c.PostForm("asal_sekolah"),
		SchoolAddress:    c.PostForm("alamat_sekolah"),
		GraduationYear:   c.PostForm("tahun_lulus"),
		ParentName:       c.PostForm("nama_orang_tua"),
		ParentWhatsApp:   c.PostForm("nomor_whatsapp_ortu"),
		ParentEducation:  c.PostForm("pendidikan_orang_tua"),
		ParentOccupation: c.PostForm("pekerjaan_orang_tua"),
		ParentEmployer:   c.PostForm("instansi_orang_tua"),
		ParentIncome:     c.PostForm("penghasilan_orang_tua"),
		ParentAddress:    c.PostForm("alamat_orang_tua"),
		DepartmentID:     departmentID,
		PaymentOptionID:  paymentID,
	}
}

func registrationFilterFrom(c *gin.Context) models.RegistrationFilter {
	var filter models.RegistrationFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Status = c.Query("status")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.Limit = limit
	}
	return filter
}
