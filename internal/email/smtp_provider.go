package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider implements Provider over SMTP using gomail.
type SMTPProvider struct {
	config    Config
	templates *TemplateManager
	dialer    *gomail.Dialer
}

// NewSMTPProvider creates an SMTP email provider.
func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	tm, err := NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create template manager: %w", err)
	}

	return &SMTPProvider{
		config:    config,
		templates: tm,
		dialer:    gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

// Send delivers a message.
func (p *SMTPProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.config.From()
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.Body != "" {
		m.SetBody("text/plain", email.Body)
		if email.HTMLBody != "" {
			m.AddAlternative("text/html", email.HTMLBody)
		}
	} else {
		m.SetBody("text/html", email.HTMLBody)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendTemplate renders a built-in template and sends it.
func (p *SMTPProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	htmlBody, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}

// Validate checks the provider configuration.
func (p *SMTPProvider) Validate() error {
	return p.config.Validate()
}
