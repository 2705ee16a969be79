package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/service"
	"github.com/smk-nusantara/cms-api/pkg/config"
)

func newSPMBHandlerForTest(t *testing.T, open bool) *SPMBHandler {
	t.Helper()
	svc := service.NewSPMBService(nil, nil, nil, nil, nil, nil, nil, nil, zap.NewNop(),
		config.SchoolConfig{
			Name:         "SMK Nusantara Tech",
			AcademicYear: "2026/2027",
		},
		config.SPMBConfig{RegistrationOpen: open},
	)
	return NewSPMBHandler(svc)
}

func TestSPMBHandlerSchoolInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("open", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/spmb/school-info", nil)

		newSPMBHandlerForTest(t, true).SchoolInfo(c)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"registration_status":"open"`)
		assert.Contains(t, rec.Body.String(), "SMK Nusantara Tech")
	})

	t.Run("closed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/spmb/school-info", nil)

		newSPMBHandlerForTest(t, false).SchoolInfo(c)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"registration_status":"closed"`)
	})
}

func TestSPMBHandlerRegisterWhenClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("nama_lengkap", "Budi Santoso"))
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/spmb/register", &body)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())

	newSPMBHandlerForTest(t, false).Register(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "pendaftaran")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
