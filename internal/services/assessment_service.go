package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"talento_backend/internal/logger"
	"talento_backend/pkg/apperrors"
)

// formField pairs an upstream form field with the value used when the
// client omits it.
type formField struct {
	Name    string
	Default string
}

type kindSpec struct {
	// Multipart kinds forward the client's files alongside the fields;
	// the rest go upstream urlencoded.
	Multipart    bool
	RequiresFile bool
	Fields       []formField
}

var assessmentKinds = map[string]kindSpec{
	"ats_score": {
		Multipart:    true,
		RequiresFile: true,
		Fields:       []formField{{"job_role", "Software Engineer"}},
	},
	"resume_optimize": {
		Multipart:    true,
		RequiresFile: true,
		Fields:       []formField{{"job_role", "Software Engineer"}},
	},
	"technical_assessment": {
		Fields: []formField{
			{"job_role", "Software Engineer"},
			{"num_questions", "10"},
			{"difficulty", "moderate"},
		},
	},
	"general_aptitude": {
		Fields: []formField{
			{"job_role", "Software Engineer"},
			{"num_questions", "10"},
			{"difficulty", "moderate"},
		},
	},
	"communication_test": {
		Fields: []formField{
			{"num_questions", "10"},
			{"difficulty", "moderate"},
		},
	},
	"personality_assessment": {
		Fields: []formField{
			{"num_questions", "10"},
			{"assessment_focus", "Work Style"},
			{"job_role", "Professional"},
		},
	},
	"linkedin_post": {
		Fields: []formField{
			{"post_type", "Professional Insight"},
			{"topic", "Career Development"},
			{"post_description", "Share insights about career growth and professional development"},
		},
	},
}

// ProxyResult carries the upstream status and JSON body for the handler
// to relay verbatim.
type ProxyResult struct {
	Status int
	Body   json.RawMessage
}

type AssessmentService interface {
	Run(ctx context.Context, kind string, form *multipart.Form) (*ProxyResult, error)
	LinkedInAuthURL(ctx context.Context) (*ProxyResult, error)
	LinkedInExchangeCode(ctx context.Context, authorizationCode string) (*ProxyResult, error)
}

type AssessmentServiceImpl struct {
	baseURL string
	client  *http.Client
}

func NewAssessmentService(baseURL string, timeout time.Duration) AssessmentService {
	return &AssessmentServiceImpl{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *AssessmentServiceImpl) Run(ctx context.Context, kind string, form *multipart.Form) (*ProxyResult, error) {
	spec, ok := assessmentKinds[kind]
	if !ok {
		return nil, apperrors.NewNotFoundError("assessment", "Unknown assessment kind")
	}
	if spec.RequiresFile && !formHasFile(form) {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}

	endpoint := fmt.Sprintf("%s/api/assessment/%s/", s.baseURL, kind)

	var req *http.Request
	var err error
	if spec.Multipart {
		req, err = s.multipartRequest(ctx, endpoint, spec, form)
	} else {
		req, err = s.urlencodedRequest(ctx, endpoint, spec, form)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.relay(req, kind)
}

func (s *AssessmentServiceImpl) LinkedInAuthURL(ctx context.Context) (*ProxyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/linkedin/auth-url/", nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.relay(req, "linkedin_auth_url")
}

func (s *AssessmentServiceImpl) LinkedInExchangeCode(ctx context.Context, authorizationCode string) (*ProxyResult, error) {
	if authorizationCode == "" {
		return nil, apperrors.NewBadRequestError("authorization_code is required")
	}
	values := url.Values{"authorization_code": {authorizationCode}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/linkedin/exchange-code/",
		strings.NewReader(values.Encode()))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.relay(req, "linkedin_exchange_code")
}

func (s *AssessmentServiceImpl) urlencodedRequest(ctx context.Context, endpoint string, spec kindSpec, form *multipart.Form) (*http.Request, error) {
	values := url.Values{}
	for _, f := range spec.Fields {
		values.Set(f.Name, formValue(form, f.Name, f.Default))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (s *AssessmentServiceImpl) multipartRequest(ctx context.Context, endpoint string, spec kindSpec, form *multipart.Form) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range spec.Fields {
		if err := writer.WriteField(f.Name, formValue(form, f.Name, f.Default)); err != nil {
			return nil, err
		}
	}
	if form != nil {
		for name, headers := range form.File {
			for _, fh := range headers {
				src, err := fh.Open()
				if err != nil {
					return nil, err
				}
				part, err := writer.CreateFormFile(name, fh.Filename)
				if err != nil {
					src.Close()
					return nil, err
				}
				if _, err := io.Copy(part, src); err != nil {
					src.Close()
					return nil, err
				}
				src.Close()
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// relay executes the upstream request and returns its status plus body.
// Non-JSON upstream bodies are wrapped into an error object so clients
// always get JSON back.
func (s *AssessmentServiceImpl) relay(req *http.Request, kind string) (*ProxyResult, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("Assessment backend unreachable", "kind", kind, "error", err)
		return nil, apperrors.NewExternalServiceError("assessment", "Failed to process request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, apperrors.NewExternalServiceError("assessment", "Failed to read backend response", err)
	}
	if !json.Valid(body) {
		body, _ = json.Marshal(map[string]string{"error": "Invalid backend response"})
	}
	return &ProxyResult{Status: resp.StatusCode, Body: body}, nil
}

func formValue(form *multipart.Form, name, def string) string {
	if form != nil {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return def
}

func formHasFile(form *multipart.Form) bool {
	if form == nil {
		return false
	}
	for _, headers := range form.File {
		if len(headers) > 0 {
			return true
		}
	}
	return false
}
