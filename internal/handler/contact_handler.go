package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/service"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/response"
)

// ContactHandler serves the contact page payload and the message form.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Info godoc
// @Summary School contact information
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /contact/info [get]
func (h *ContactHandler) Info(c *gin.Context) {
	response.OK(c, "informasi kontak", h.contact.Info(c.Request.Context()))
}

// Message godoc
// @Summary Submit contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body models.ContactMessageInput true "Message"
// @Success 201 {object} response.Envelope
// @Router /contact/message [post]
func (h *ContactHandler) Message(c *gin.Context) {
	var input models.ContactMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "payload pesan tidak valid"))
		return
	}
	msg, err := h.contact.SubmitMessage(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "pesan berhasil dikirim", msg)
}
