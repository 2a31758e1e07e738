package email

import "fmt"

// Config holds SMTP settings.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.SMTPPort == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// From returns the formatted sender address.
func (c Config) From() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
}
