package services

import (
	"errors"
	"testing"

	"talento_backend/internal/email"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	sendErr  error
	to       [][]string
	subjects []string
	names    []string
	data     []email.TemplateData
}

func (p *recordingProvider) Send(msg *email.Email) error { return p.sendErr }

func (p *recordingProvider) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	p.to = append(p.to, to)
	p.subjects = append(p.subjects, subject)
	p.names = append(p.names, templateName)
	p.data = append(p.data, data)
	return p.sendErr
}

func (p *recordingProvider) Validate() error { return nil }

func TestContactSubmit_MissingFieldsRejectedBeforeSend(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{}
	svc := NewContactService(provider, "support@talento.app")

	cases := []*dto.ContactRequest{
		{Email: "a@b.com", Description: "help"},
		{Name: "Ana", Description: "help"},
		{Name: "Ana", Email: "a@b.com"},
	}
	for _, req := range cases {
		err := svc.Submit(req)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.HTTPCode)
	}
	assert.Empty(t, provider.subjects, "no email should be sent for invalid input")
}

func TestContactSubmit_SendsSingleTemplatedEmail(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{}
	svc := NewContactService(provider, "support@talento.app")

	err := svc.Submit(&dto.ContactRequest{
		Name:        "Ana Petrova",
		Email:       "ana@example.com",
		Description: "I cannot open my assessment results.",
	})
	require.NoError(t, err)

	require.Len(t, provider.subjects, 1)
	assert.Equal(t, []string{"support@talento.app"}, provider.to[0])
	assert.Equal(t, "New Contact Form Submission from Ana Petrova", provider.subjects[0])
	assert.Equal(t, "contact_form", provider.names[0])
	assert.Equal(t, "ana@example.com", provider.data[0]["Email"])
}

func TestContactSubmit_SendFailureSurfacesAsExternalError(t *testing.T) {
	t.Parallel()

	provider := &recordingProvider{sendErr: errors.New("smtp handshake failed")}
	svc := NewContactService(provider, "support@talento.app")

	err := svc.Submit(&dto.ContactRequest{Name: "Ana", Email: "a@b.com", Description: "hi"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
}

func TestContactSubmit_UnconfiguredMailerIsInternalError(t *testing.T) {
	t.Parallel()

	svc := NewContactService(nil, "")

	err := svc.Submit(&dto.ContactRequest{Name: "Ana", Email: "a@b.com", Description: "hi"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
}
