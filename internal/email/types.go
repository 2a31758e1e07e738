package email

// Email represents an outgoing message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string // plain text alternative
	HTMLBody string
}

// TemplateData carries values into the mail templates.
type TemplateData map[string]interface{}
