package models

// ContactMessage is a visitor message submitted through the public contact
// form. Messages are delivered through the mailer rather than stored.
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}
