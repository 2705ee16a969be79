package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smk-nusantara/cms-api/internal/models"
)

// ContactRepository manages persistence for contact form messages.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// CreateMessage stores a submitted contact message and fills in its ID.
func (r *ContactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO contact_messages (name, email, phone, subject, message, category, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.Category, msg.CreatedAt,
	).Scan(&msg.ID); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}
