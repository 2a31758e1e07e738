package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Built-in templates. Kept in code so deployments need no template
// directory; the set is small.
var builtinTemplates = map[string]string{
	"contact_form": `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #22c5d6; border-bottom: 2px solid #22c5d6; padding-bottom: 10px;">
    New Contact Form Submission
  </h2>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #333; margin-top: 0;">Contact Details:</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
  </div>
  <div style="background-color: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
    <h3 style="color: #333; margin-top: 0;">Message:</h3>
    <p style="line-height: 1.6; color: #555;">{{.Description}}</p>
  </div>
  <div style="margin-top: 20px; padding: 15px; background-color: #e7f3ff; border-radius: 5px;">
    <p style="margin: 0; color: #0066cc; font-size: 14px;">
      This message was sent from the Talento contact form.
    </p>
  </div>
</div>`,

	"payment_confirmation": `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #22c5d6;">Payment Confirmed</h2>
  <p>Your subscription payment was received.</p>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 5px;">
    <p><strong>Order:</strong> {{.OrderID}}</p>
    <p><strong>Payment:</strong> {{.PaymentID}}</p>
    <p><strong>Valid until:</strong> {{.ValidUntil}}</p>
  </div>
</div>`,
}

// TemplateManager renders the built-in HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		t, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tm.templates[name] = t
	}
	return tm, nil
}

// Render executes a template with the given data.
func (tm *TemplateManager) Render(name string, data TemplateData) (string, error) {
	t, ok := tm.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
