package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactSubmission is an archived contact form entry.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Delivery  string    `json:"delivery"` // "emailjs" | "smtp" | "logged" | "failed"
	CreatedAt time.Time `json:"created_at"`
}
