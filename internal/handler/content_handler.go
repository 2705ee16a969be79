package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/service"
	"github.com/smk-nusantara/cms-api/pkg/response"
)

// ContentHandler serves the public alumni and testimonial showcases.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs ContentHandler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Alumni godoc
// @Summary Public alumni showcase
// @Tags Public
// @Produce json
// @Param limit query int false "Max records"
// @Success 200 {object} response.Envelope
// @Router /public/alumni [get]
func (h *ContentHandler) Alumni(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	alumni, err := h.content.Alumni(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daftar alumni", alumni)
}

// Testimonials godoc
// @Summary Public testimonials
// @Tags Public
// @Produce json
// @Param limit query int false "Max records"
// @Success 200 {object} response.Envelope
// @Router /public/testimoni [get]
func (h *ContentHandler) Testimonials(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	testimonials, err := h.content.Testimonials(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "daftar testimoni", testimonials)
}
