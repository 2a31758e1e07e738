package services

import (
	"fmt"

	"talento_backend/internal/email"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

type ContactService interface {
	Submit(req *dto.ContactRequest) error
}

type ContactServiceImpl struct {
	provider  email.Provider
	recipient string
}

func NewContactService(provider email.Provider, recipient string) ContactService {
	return &ContactServiceImpl{
		provider:  provider,
		recipient: recipient,
	}
}

// Submit delivers a contact-form message to the configured inbox.
// Validation happens before any send attempt so a bad request never
// produces an email.
func (s *ContactServiceImpl) Submit(req *dto.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Description == "" {
		return apperrors.NewBadRequestError("Name, email, and description are required fields.")
	}
	if s.provider == nil || s.recipient == "" {
		return apperrors.New(apperrors.CodeInternalError, "contact", "Contact mailer is not configured", 500)
	}

	subject := fmt.Sprintf("New Contact Form Submission from %s", req.Name)
	err := s.provider.SendTemplate([]string{s.recipient}, subject, "contact_form", email.TemplateData{
		"Name":        req.Name,
		"Email":       req.Email,
		"Description": req.Description,
	})
	if err != nil {
		return apperrors.NewExternalServiceError("contact", "Failed to send email. Please try again later.", err)
	}
	return nil
}
