package services

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"portfolio-backend/internal/models"
)

// EmailService delivers contact notifications over SMTP. Without a host or
// user it runs in dev mode and only logs.
type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	owner   string
	devMode bool
	send    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(host, port, user, pass, from, owner string) *EmailService {
	devMode := host == "" || user == "" || owner == ""
	if devMode {
		log.Println("⚠ SMTP delivery running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		owner:   owner,
		devMode: devMode,
		send:    smtp.SendMail,
	}
}

// Enabled reports whether messages actually leave the process.
func (s *EmailService) Enabled() bool {
	return !s.devMode
}

// SendContactNotification forwards a contact form entry to the site owner.
func (s *EmailService) SendContactNotification(req models.ContactRequest) error {
	subject := contactSubject(req)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 12px; padding: 32px;">
    <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">%s</h2>
    <p style="color: #64748b; font-size: 14px; margin: 0 0 8px;">From: %s &lt;%s&gt;</p>
    <p style="color: #1e293b; font-size: 14px; line-height: 1.6; white-space: pre-wrap;">%s</p>
  </div>
</body>
</html>`, html.EscapeString(subject), html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message))

	return s.sendHTML(s.owner, req.Email, subject, body)
}

func (s *EmailService) sendHTML(to, replyTo, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("📧 [DEV EMAIL] To: %s | Reply-To: %s | Subject: %s", to, replyTo, subject)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Reply-To: %s", sanitizeHeader(replyTo)),
		fmt.Sprintf("Subject: %s", sanitizeHeader(subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := s.send(addr, auth, s.from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}

func contactSubject(req models.ContactRequest) string {
	if strings.TrimSpace(req.Subject) != "" {
		return req.Subject
	}
	return fmt.Sprintf("New contact from %s", req.Name)
}

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

func sanitizeHeader(v string) string {
	return headerSanitizer.Replace(v)
}
