// Package validation holds the declarative field rules for clinic onboarding
// submissions. Every rule runs; callers always receive the full list of
// violations, never just the first one.
package validation

import (
	"fmt"
	"regexp"

	"github.com/medlaunch/onboard-api/internal/model"
)

var (
	// Local mobile numbers: 05, 06 or 07 followed by eight digits.
	phonePattern = regexp.MustCompile(`^(07|05|06)[0-9]{8}$`)
	gmailPattern = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)
	hexPattern   = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// FieldError is a single violation, addressed to the form field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the aggregate of all violations found in one pass. It satisfies
// error so services can hand it up the stack intact; the handler unpacks it
// into the structured 400 body.
type Errors []FieldError

func (e Errors) Error() string {
	return fmt.Sprintf("%d validation errors", len(e))
}

type rule struct {
	field string
	check func(*model.Submission) string
}

func requiredBetween(value, missing, badLength string, min, max int) string {
	if value == "" {
		return missing
	}
	if len([]rune(value)) < min || len([]rune(value)) > max {
		return badLength
	}
	return ""
}

func inEnum(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// submissionRules runs in declaration order so the dashboard shows violations
// in the same order the form presents its sections.
var submissionRules = []rule{
	{"clinicName", func(s *model.Submission) string {
		return requiredBetween(s.ClinicName,
			"اسم العيادة مطلوب", "اسم العيادة يجب أن يكون بين 2 و 100 حرف", 2, 100)
	}},
	{"doctorName", func(s *model.Submission) string {
		return requiredBetween(s.DoctorName,
			"اسم الطبيب مطلوب", "اسم الطبيب يجب أن يكون بين 2 و 100 حرف", 2, 100)
	}},
	{"specialty", func(s *model.Submission) string {
		if s.Specialty == "" {
			return "التخصص مطلوب"
		}
		if !inEnum(s.Specialty, model.Specialties) {
			return "التخصص المحدد غير صحيح"
		}
		return ""
	}},
	{"phoneNumber", func(s *model.Submission) string {
		if s.PhoneNumber == "" {
			return "رقم الهاتف مطلوب"
		}
		if !phonePattern.MatchString(s.PhoneNumber) {
			return "رقم الهاتف يجب أن يبدأ بـ 07 أو 05 أو 06 ويتبعه 8 أرقام"
		}
		return ""
	}},
	{"clinicAddress", func(s *model.Submission) string {
		if s.ClinicAddress == "" {
			return "عنوان العيادة مطلوب"
		}
		return ""
	}},
	{"googleMapsLink", func(s *model.Submission) string {
		if s.GoogleMapsLink == "" {
			return "رابط Google Maps مطلوب"
		}
		return ""
	}},
	{"workingHours", func(s *model.Submission) string {
		return requiredBetween(s.WorkingHours,
			"ساعات العمل مطلوبة", "ساعات العمل يجب أن تكون بين 5 و 200 حرف", 5, 200)
	}},
	{"gmailAccount", func(s *model.Submission) string {
		if s.GmailAccount == "" {
			return "حساب Gmail مطلوب"
		}
		if !gmailPattern.MatchString(s.GmailAccount) {
			return "يجب أن يكون بريد Gmail صحيح"
		}
		return ""
	}},
	{"gmailPassword", func(s *model.Submission) string {
		if s.GmailPassword == "" {
			return "كلمة مرور Gmail مطلوبة"
		}
		if len(s.GmailPassword) < 6 || len(s.GmailPassword) > 100 {
			return "كلمة المرور يجب أن تكون على الأقل 6 أحرف"
		}
		return ""
	}},
	{"filmingDay", func(s *model.Submission) string {
		if s.FilmingDay == "" {
			return "يوم التصوير مطلوب"
		}
		if !inEnum(s.FilmingDay, model.FilmingDays) {
			return "يوم التصوير المحدد غير صحيح"
		}
		return ""
	}},
	{"contentApprover", func(s *model.Submission) string {
		return requiredBetween(s.ContentApprover,
			"معلومات موافق المحتوى مطلوبة", "معلومات موافق المحتوى يجب أن تكون بين 2 و 200 حرف", 2, 200)
	}},
	{"gmbCategory", func(s *model.Submission) string {
		if s.GMBCategory == "" {
			return "فئة Google My Business مطلوبة"
		}
		return ""
	}},
	{"logo", func(s *model.Submission) string {
		if s.Logo == "" {
			return "شعار العيادة مطلوب"
		}
		return ""
	}},
	{"pricingFile", func(s *model.Submission) string {
		if s.PricingFile == "" {
			return "ملف الأسعار مطلوب"
		}
		return ""
	}},
	{"platformAccessAgreement", func(s *model.Submission) string {
		if !s.PlatformAccessAgreement {
			return "يجب الموافقة على استخدام منصات التواصل الاجتماعي"
		}
		return ""
	}},
	{"acceptPaidAds", func(s *model.Submission) string {
		if !s.AcceptPaidAds {
			return "يجب الموافقة على إدارة الإعلانات المدفوعة"
		}
		return ""
	}},
	{"confirmInfo", func(s *model.Submission) string {
		if !s.ConfirmInfo {
			return "يجب تأكيد صحة المعلومات"
		}
		return ""
	}},
	{"agreeTerms", func(s *model.Submission) string {
		if !s.AgreeTerms {
			return "يجب الموافقة على الشروط والأحكام"
		}
		return ""
	}},
	{"clinicServices", func(s *model.Submission) string {
		if len([]rune(s.ClinicServices)) > 2000 {
			return "خدمات العيادة يجب أن تكون أقل من 2000 حرف"
		}
		return ""
	}},
	{"doctorBio", func(s *model.Submission) string {
		if len([]rune(s.DoctorBio)) > 2000 {
			return "معلومات الطبيب يجب أن تكون أقل من 2000 حرف"
		}
		return ""
	}},
	{"primaryColor", func(s *model.Submission) string {
		return hexError(s.PrimaryColor, "اللون الأساسي يجب أن يكون بصيغة hex صحيحة")
	}},
	{"secondaryColor", func(s *model.Submission) string {
		return hexError(s.SecondaryColor, "اللون الثانوي يجب أن يكون بصيغة hex صحيحة")
	}},
	{"accentColor", func(s *model.Submission) string {
		return hexError(s.AccentColor, "لون التمييز يجب أن يكون بصيغة hex صحيحة")
	}},
	{"textColor", func(s *model.Submission) string {
		return hexError(s.TextColor, "لون النص يجب أن يكون بصيغة hex صحيحة")
	}},
	{"languages", func(s *model.Submission) string {
		for _, lang := range s.Languages {
			if !inEnum(lang, model.Languages) {
				return "اللغة المحددة غير صحيحة"
			}
		}
		return ""
	}},
}

func hexError(value, message string) string {
	if value == "" {
		return ""
	}
	if !hexPattern.MatchString(value) {
		return message
	}
	return ""
}

// ValidateSubmission runs the full rule list and returns every violation.
// A nil result means the submission may be persisted.
func ValidateSubmission(s *model.Submission) []FieldError {
	var errs []FieldError
	for _, r := range submissionRules {
		if msg := r.check(s); msg != "" {
			errs = append(errs, FieldError{Field: r.field, Message: msg})
		}
	}
	return errs
}

// ValidateStatus checks a bare status label against the workflow enum.
func ValidateStatus(status string) error {
	if status == "" {
		return FieldError{Field: "status", Message: "الحالة مطلوبة"}
	}
	if !inEnum(status, model.Statuses) {
		return FieldError{Field: "status", Message: "الحالة المحددة غير صحيحة"}
	}
	return nil
}
