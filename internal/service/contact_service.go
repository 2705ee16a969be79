package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smk-nusantara/cms-api/internal/models"
	"github.com/smk-nusantara/cms-api/pkg/config"
	appErrors "github.com/smk-nusantara/cms-api/pkg/errors"
	"github.com/smk-nusantara/cms-api/pkg/jobs"
	"github.com/smk-nusantara/cms-api/pkg/mail"
)

// JobContactNotification is the queue job type for contact form emails.
const JobContactNotification = "contact_notification"

type contactRepository interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ContactService serves the contact page payload and the message form.
type ContactService struct {
	repo      contactRepository
	queue     jobEnqueuer
	validator *validator.Validate
	logger    *zap.Logger
	school    config.SchoolConfig
	contact   config.ContactConfig
	notifyTo  string
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, queue jobEnqueuer, validate *validator.Validate, logger *zap.Logger, school config.SchoolConfig, contact config.ContactConfig, notifyTo string) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContactService{repo: repo, queue: queue, validator: validate, logger: logger, school: school, contact: contact, notifyTo: notifyTo}
}

// Info assembles the contact page payload from deployment configuration.
func (s *ContactService) Info(_ context.Context) *models.ContactInfo {
	return &models.ContactInfo{
		SchoolName:    s.school.Name,
		SchoolAddress: s.school.Address,
		SchoolPhone:   s.school.Phone,
		SchoolEmail:   s.school.Email,
		SchoolWebsite: s.school.Website,
		MapsLatitude:  s.contact.MapsLatitude,
		MapsLongitude: s.contact.MapsLongitude,
		MapsEmbedURL:  s.contact.MapsEmbedURL,
		OfficeHours:   s.contact.OfficeHours,
		WhatsApp:      s.school.ContactWhatsApp,
		Instagram:     s.contact.Instagram,
		Facebook:      s.contact.Facebook,
		Departments: []models.ContactDepartment{
			{Name: "Tata Usaha", Phone: s.school.Phone, Email: s.school.Email},
			{Name: "Panitia SPMB", Phone: s.school.ContactWhatsApp, Email: s.school.Email},
		},
	}
}

// SubmitMessage validates and stores a contact message, then queues the
// notification email. A queue failure never fails the submission.
func (s *ContactService) SubmitMessage(ctx context.Context, input models.ContactMessageInput) (*models.ContactMessage, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "data pesan tidak lengkap")
	}
	msg := &models.ContactMessage{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Subject:  strings.TrimSpace(input.Subject),
		Message:  strings.TrimSpace(input.Message),
		Category: input.Category,
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "gagal menyimpan pesan")
	}

	if s.queue != nil && s.notifyTo != "" {
		body := fmt.Sprintf("Pesan baru dari %s <%s>\nKategori: %s\nSubjek: %s\n\n%s",
			msg.Name, msg.Email, msg.Category, msg.Subject, msg.Message)
		if err := s.queue.Enqueue(jobs.Job{
			ID:   uuid.NewString(),
			Type: JobContactNotification,
			Payload: mail.Message{
				To:      s.notifyTo,
				Subject: fmt.Sprintf("[Kontak] %s", msg.Subject),
				Body:    body,
			},
		}); err != nil {
			s.logger.Warn("failed to queue contact notification", zap.Error(err))
		}
	}
	return msg, nil
}
