package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/internal/service"
	"github.com/smk-nusantara/cms-api/pkg/response"
)

// CalendarHandler serves the public academic calendar. The same handler backs
// both the canonical route and the legacy alias, so the payloads never drift.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// PublicEvents godoc
// @Summary Published calendar events
// @Tags Calendar
// @Produce json
// @Param tahun_ajaran query string false "Academic year"
// @Param semester query string false "Semester"
// @Param jenis_kegiatan query string false "Event type"
// @Param bulan query int false "Month (1-12)"
// @Param search query string false "Search"
// @Success 200 {object} response.Envelope
// @Router /calendar/public/events [get]
func (h *CalendarHandler) PublicEvents(c *gin.Context) {
	var filter models.EventFilter
	filter.AcademicYear = c.Query("tahun_ajaran")
	filter.Semester = c.Query("semester")
	// The public site sends jenis_kegiatan; jenis is kept for older clients.
	filter.Type = c.Query("jenis_kegiatan")
	if filter.Type == "" {
		filter.Type = c.Query("jenis")
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	if month, err := strconv.Atoi(c.Query("bulan")); err == nil {
		filter.Month = month
	}

	events, err := h.calendar.PublicEvents(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "kalender akademik", events)
}
