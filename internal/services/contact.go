package services

import (
	"context"
	"log"
	"regexp"
	"strings"

	"portfolio-backend/internal/emailjs"
	"portfolio-backend/internal/models"
)

const (
	contactSentMessage     = "Your message has been sent. I will get back to you soon!"
	contactReceivedMessage = "Your message has been received. I will get back to you soon!"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type templateSender interface {
	Send(ctx context.Context, params emailjs.TemplateParams) error
}

// ContactArchive stores submissions. Leave it nil to skip archiving.
type ContactArchive interface {
	Create(ctx context.Context, s *models.ContactSubmission) error
}

// ContactService relays contact form entries to the owner. Delivery failures
// are logged and never reported back to the visitor.
type ContactService struct {
	emailJS templateSender // nil when EmailJS is not fully configured
	smtp    *EmailService
	archive ContactArchive // optional
}

// NewContactService wires the delivery paths. relay may be nil when EmailJS is
// not configured; archive may be nil when no database is configured.
func NewContactService(relay *emailjs.Client, smtp *EmailService, archive ContactArchive) *ContactService {
	s := &ContactService{smtp: smtp, archive: archive}
	if relay != nil {
		s.emailJS = relay
	}
	return s
}

// ValidateContact checks the required fields and the email shape.
func ValidateContact(req models.ContactRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "Message is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: "Name, email, and message are required", Fields: fields}
	}

	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{
			Message: "Please enter a valid email address",
			Fields:  map[string]string{"email": "invalid"},
		}
	}
	return nil
}

// Submit validates and delivers req, returning the acknowledgement text.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (string, error) {
	if err := ValidateContact(req); err != nil {
		return "", err
	}

	delivery, ack := s.deliver(ctx, req)

	if s.archive != nil {
		sub := &models.ContactSubmission{
			Name:     req.Name,
			Email:    req.Email,
			Subject:  contactSubject(req),
			Message:  req.Message,
			Delivery: delivery,
		}
		if err := s.archive.Create(ctx, sub); err != nil {
			log.Printf("contact: failed to archive submission: %v", err)
		}
	}

	return ack, nil
}

func (s *ContactService) deliver(ctx context.Context, req models.ContactRequest) (delivery, ack string) {
	switch {
	case s.emailJS != nil:
		err := s.emailJS.Send(ctx, emailjs.TemplateParams{
			FromName:  req.Name,
			FromEmail: req.Email,
			Subject:   contactSubject(req),
			Message:   req.Message,
			ReplyTo:   req.Email,
		})
		if err != nil {
			log.Printf("contact: EmailJS delivery failed: %v", err)
			return "failed", contactSentMessage
		}
		return "emailjs", contactSentMessage

	case s.smtp != nil && s.smtp.Enabled():
		if err := s.smtp.SendContactNotification(req); err != nil {
			log.Printf("contact: SMTP delivery failed: %v", err)
			return "failed", contactSentMessage
		}
		return "smtp", contactSentMessage

	default:
		log.Println("⚠ Email service configuration is incomplete")
		log.Printf("Contact form submission: name=%q email=%q subject=%q", req.Name, req.Email, contactSubject(req))
		return "logged", contactReceivedMessage
	}
}
