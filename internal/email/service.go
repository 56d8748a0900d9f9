package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medlaunch/onboard-api/internal/config"
	"github.com/medlaunch/onboard-api/internal/model"
)

// Service notifies clinics about submission review outcomes.
type Service interface {
	SendStatusUpdate(to, clinicName, status string) error
}

type service struct {
	cfg config.SMTPConfig
}

func NewService(cfg config.SMTPConfig) Service {
	return &service{cfg: cfg}
}

func (s *service) SendStatusUpdate(to, clinicName, status string) error {
	subject := fmt.Sprintf("تحديث حالة طلب %s", clinicName)

	var body string
	switch status {
	case model.StatusApproved:
		body = fmt.Sprintf("تهانينا! تم اعتماد طلب انضمام عيادة %s.", clinicName)
	case model.StatusRejected:
		body = fmt.Sprintf("نأسف، تم رفض طلب انضمام عيادة %s. يرجى التواصل معنا لمزيد من التفاصيل.", clinicName)
	default:
		body = fmt.Sprintf("طلب انضمام عيادة %s قيد المراجعة.", clinicName)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send status email: %w", err)
	}
	return nil
}
