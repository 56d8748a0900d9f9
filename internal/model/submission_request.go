package model

import "strings"

// SubmissionRequest is the raw create payload. File fields arrive already
// resolved to hosted URLs by the upload relay. Booleans and the languages
// field are loosely typed on the wire, so the coercion happens here, in one
// place, through FlexBool and StringList.
type SubmissionRequest struct {
	ClinicName     string `json:"clinicName"`
	DoctorName     string `json:"doctorName"`
	Specialty      string `json:"specialty"`
	PhoneNumber    string `json:"phoneNumber"`
	ClinicAddress  string `json:"clinicAddress"`
	GoogleMapsLink string `json:"googleMapsLink"`
	WorkingHours   string `json:"workingHours"`

	GmailAccount  string `json:"gmailAccount"`
	GmailPassword string `json:"gmailPassword"`

	FilmingDay      string `json:"filmingDay"`
	ContentApprover string `json:"contentApprover"`
	GMBCategory     string `json:"gmbCategory"`

	InstagramAccess         FlexBool `json:"instagramAccess"`
	FacebookAccess          FlexBool `json:"facebookAccess"`
	PlatformAccessAgreement FlexBool `json:"platformAccessAgreement"`
	AcceptPaidAds           FlexBool `json:"acceptPaidAds"`
	ConfirmInfo             FlexBool `json:"confirmInfo"`
	AgreeTerms              FlexBool `json:"agreeTerms"`

	Logo             string     `json:"logo"`
	PricingFile      string     `json:"pricingFile"`
	FrontDeskPhoto   string     `json:"frontDeskPhoto"`
	WaitingRoomPhoto string     `json:"waitingRoomPhoto"`
	SignagePhoto     string     `json:"signagePhoto"`
	DoctorPhotos     StringList `json:"doctorPhotos"`

	ClinicServices string `json:"clinicServices"`
	DoctorBio      string `json:"doctorBio"`

	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
	TextColor      string `json:"textColor"`

	Languages StringList `json:"languages"`
}

// ToSubmission converts the coerced payload into the persisted entity.
// Identity and workflow fields are set by the service, not here.
func (r *SubmissionRequest) ToSubmission() *Submission {
	return &Submission{
		ClinicName:     strings.TrimSpace(r.ClinicName),
		DoctorName:     strings.TrimSpace(r.DoctorName),
		Specialty:      r.Specialty,
		PhoneNumber:    strings.ReplaceAll(strings.TrimSpace(r.PhoneNumber), " ", ""),
		ClinicAddress:  strings.TrimSpace(r.ClinicAddress),
		GoogleMapsLink: strings.TrimSpace(r.GoogleMapsLink),
		WorkingHours:   strings.TrimSpace(r.WorkingHours),

		GmailAccount:  strings.ToLower(strings.TrimSpace(r.GmailAccount)),
		GmailPassword: r.GmailPassword,

		FilmingDay:      r.FilmingDay,
		ContentApprover: strings.TrimSpace(r.ContentApprover),
		GMBCategory:     strings.TrimSpace(r.GMBCategory),

		InstagramAccess:         r.InstagramAccess.Bool(),
		FacebookAccess:          r.FacebookAccess.Bool(),
		PlatformAccessAgreement: r.PlatformAccessAgreement.Bool(),
		AcceptPaidAds:           r.AcceptPaidAds.Bool(),
		ConfirmInfo:             r.ConfirmInfo.Bool(),
		AgreeTerms:              r.AgreeTerms.Bool(),

		Logo:             r.Logo,
		PricingFile:      r.PricingFile,
		FrontDeskPhoto:   r.FrontDeskPhoto,
		WaitingRoomPhoto: r.WaitingRoomPhoto,
		SignagePhoto:     r.SignagePhoto,
		DoctorPhotos:     []string(r.DoctorPhotos),

		ClinicServices: strings.TrimSpace(r.ClinicServices),
		DoctorBio:      strings.TrimSpace(r.DoctorBio),

		PrimaryColor:   r.PrimaryColor,
		SecondaryColor: r.SecondaryColor,
		AccentColor:    r.AccentColor,
		TextColor:      r.TextColor,

		Languages: []string(r.Languages),
	}
}
