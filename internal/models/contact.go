package models

import "time"

// Contact message categories accepted by the public contact form.
const (
	ContactCategoryGeneral   = "general"
	ContactCategoryAdmission = "admission"
	ContactCategoryAcademic  = "academic"
	ContactCategoryTechnical = "technical"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Category  string    `db:"category" json:"category"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ContactMessageInput is the contact form payload.
type ContactMessageInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject" validate:"required,min=3"`
	Message  string `json:"message" validate:"required,min=10"`
	Category string `json:"category" validate:"required,oneof=general admission academic technical"`
}

// ContactDepartment is one school office listed on the contact page.
type ContactDepartment struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ContactInfo is the contact-page payload assembled from config.
type ContactInfo struct {
	SchoolName    string              `json:"school_name"`
	SchoolAddress string              `json:"school_address"`
	SchoolPhone   string              `json:"school_phone"`
	SchoolEmail   string              `json:"school_email"`
	SchoolWebsite string              `json:"school_website"`
	MapsLatitude  float64             `json:"maps_latitude"`
	MapsLongitude float64             `json:"maps_longitude"`
	MapsEmbedURL  string              `json:"maps_embed_url"`
	OfficeHours   string              `json:"office_hours"`
	WhatsApp      string              `json:"whatsapp"`
	Instagram     string              `json:"instagram"`
	Facebook      string              `json:"facebook"`
	Departments   []ContactDepartment `json:"departments"`
}
