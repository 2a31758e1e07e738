package email

// Provider defines the email sending interface.
type Provider interface {
	// Send delivers a message
	Send(email *Email) error

	// SendTemplate renders a named template and delivers it
	SendTemplate(to []string, subject, templateName string, data TemplateData) error

	// Validate checks the provider configuration
	Validate() error
}
