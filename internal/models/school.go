package models

// SchoolInfo is the branding payload served to the registration page.
type SchoolInfo struct {
	SchoolName         string `json:"school_name"`
	SchoolAddress      string `json:"school_address"`
	SchoolPhone        string `json:"school_phone"`
	SchoolEmail        string `json:"school_email"`
	SchoolWebsite      string `json:"school_website"`
	SchoolLogo         string `json:"school_logo"`
	PrimaryColor       string `json:"primary_color"`
	SecondaryColor     string `json:"secondary_color"`
	RegistrationStatus string `json:"registration_status"`
	AcademicYear       string `json:"academic_year"`
	ContactPerson      string `json:"contact_person"`
	ContactWhatsApp    string `json:"contact_whatsapp"`
}

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents        int `json:"totalStudents"`
	TotalArticles        int `json:"totalArticles"`
	TotalTestimonials    int `json:"totalTestimoni"`
	TotalAlumni          int `json:"totalAlumni"`
	TotalCalendarEvents  int `json:"totalCalendarEvents"`
	PendingRegistrations int `json:"pendingRegistrations"`
}
