package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Submission statuses. The Arabic labels are the wire contract the dashboard
// and the mobile form already speak, so they are stored verbatim.
const (
	StatusPending  = "قيد المراجعة"
	StatusApproved = "مُعتمد"
	StatusRejected = "مرفوض"
)

// Branding color defaults applied when the form leaves them empty.
const (
	DefaultPrimaryColor   = "#2563eb"
	DefaultSecondaryColor = "#1e40af"
	DefaultAccentColor    = "#3b82f6"
	DefaultTextColor      = "#1f2937"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

var Specialties = []string{
	"dentist", "dermatologist", "cardiologist", "orthopedic",
	"ophthalmologist", "neurologist", "psychiatrist", "other",
}

var FilmingDays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var Languages = []string{"arabic", "french", "english"}

// Submission is one clinic's onboarding application.
type Submission struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ClinicName string    `db:"clinic_name" json:"clinicName"`
	DoctorName string    `db:"doctor_name" json:"doctorName"`
	Specialty  string    `db:"specialty" json:"specialty"`

	PhoneNumber    string `db:"phone_number" json:"phoneNumber"`
	ClinicAddress  string `db:"clinic_address" json:"clinicAddress"`
	GoogleMapsLink string `db:"google_maps_link" json:"googleMapsLink"`
	WorkingHours   string `db:"working_hours" json:"workingHours"`

	GmailAccount  string `db:"gmail_account" json:"gmailAccount"`
	GmailPassword string `db:"gmail_password" json:"-"`

	FilmingDay      string `db:"filming_day" json:"filmingDay"`
	ContentApprover string `db:"content_approver" json:"contentApprover"`
	GMBCategory     string `db:"gmb_category" json:"gmbCategory"`

	InstagramAccess         bool `db:"instagram_access" json:"instagramAccess"`
	FacebookAccess          bool `db:"facebook_access" json:"facebookAccess"`
	PlatformAccessAgreement bool `db:"platform_access_agreement" json:"platformAccessAgreement"`
	AcceptPaidAds           bool `db:"accept_paid_ads" json:"acceptPaidAds"`
	ConfirmInfo             bool `db:"confirm_info" json:"confirmInfo"`
	AgreeTerms              bool `db:"agree_terms" json:"agreeTerms"`

	Logo             string         `db:"logo" json:"logo"`
	PricingFile      string         `db:"pricing_file" json:"pricingFile"`
	FrontDeskPhoto   string         `db:"front_desk_photo" json:"frontDeskPhoto"`
	WaitingRoomPhoto string         `db:"waiting_room_photo" json:"waitingRoomPhoto"`
	SignagePhoto     string         `db:"signage_photo" json:"signagePhoto"`
	DoctorPhotos     pq.StringArray `db:"doctor_photos" json:"doctorPhotos"`

	ClinicServices string `db:"clinic_services" json:"clinicServices"`
	DoctorBio      string `db:"doctor_bio" json:"doctorBio"`

	PrimaryColor   string `db:"primary_color" json:"primaryColor"`
	SecondaryColor string `db:"secondary_color" json:"secondaryColor"`
	AccentColor    string `db:"accent_color" json:"accentColor"`
	TextColor      string `db:"text_color" json:"textColor"`

	Languages pq.StringArray `db:"languages" json:"languages"`

	Status               string    `db:"status" json:"status"`
	CompletionPercentage int       `db:"completion_percentage" json:"completionPercentage"`
	SubmissionDate       time.Time `db:"submission_date" json:"submissionDate"`
	LastUpdated          time.Time `db:"last_updated" json:"lastUpdated"`
}

// ApplyDefaults fills the optional branding colors and the workflow fields a
// fresh submission starts with.
func (s *Submission) ApplyDefaults() {
	if s.PrimaryColor == "" {
		s.PrimaryColor = DefaultPrimaryColor
	}
	if s.SecondaryColor == "" {
		s.SecondaryColor = DefaultSecondaryColor
	}
	if s.AccentColor == "" {
		s.AccentColor = DefaultAccentColor
	}
	if s.TextColor == "" {
		s.TextColor = DefaultTextColor
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
}

// optionalFieldCount is the denominator of the completion metric.
const optionalFieldCount = 6

// Recompute refreshes the completion percentage from the optional-field fill
// rate: clinicServices, doctorBio, doctorPhotos, frontDeskPhoto,
// waitingRoomPhoto and signagePhoto.
func (s *Submission) Recompute() {
	filled := 0
	if s.ClinicServices != "" {
		filled++
	}
	if s.DoctorBio != "" {
		filled++
	}
	if len(s.DoctorPhotos) > 0 {
		filled++
	}
	if s.FrontDeskPhoto != "" {
		filled++
	}
	if s.WaitingRoomPhoto != "" {
		filled++
	}
	if s.SignagePhoto != "" {
		filled++
	}
	s.CompletionPercentage = int(math.Round(float64(filled) / optionalFieldCount * 100))
}

// SubmissionAck is the minimal acknowledgment returned after a create.
type SubmissionAck struct {
	ID             uuid.UUID `json:"id"`
	ClinicName     string    `json:"clinicName"`
	SubmissionDate time.Time `json:"submissionDate"`
	Status         string    `json:"status"`
}

// StatusAck is returned after a status update.
type StatusAck struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// SubmissionFilter narrows list queries.
type SubmissionFilter struct {
	Status    string `form:"status"`
	Specialty string `form:"specialty"`
	Search    string `form:"search"`
}

// StatsOverview aggregates submission counts by workflow state.
type StatsOverview struct {
	Total    int `db:"total" json:"total"`
	Pending  int `db:"pending" json:"pending"`
	Approved int `db:"approved" json:"approved"`
	Rejected int `db:"rejected" json:"rejected"`
}

// SpecialtyCount is one row of the per-specialty breakdown. The _id key
// mirrors the aggregation shape the dashboard consumes.
type SpecialtyCount struct {
	Specialty string `db:"specialty" json:"_id"`
	Count     int    `db:"count" json:"count"`
}

// Stats is the stats/overview payload.
type Stats struct {
	Overview           StatsOverview    `json:"overview"`
	SpecialtyBreakdown []SpecialtyCount `json:"specialtyBreakdown"`
}
