package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talento_backend/internal/services/dto"
	"talento_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResumeService struct {
	uploads    int
	lastUserID string
}

func (s *stubResumeService) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (*dto.ResumeUploadResponse, error) {
	s.uploads++
	s.lastUserID = userID
	return &dto.ResumeUploadResponse{
		Success:   true,
		URL:       "https://cdn.example.com/object/public/resume/resume/" + userID + "/1.pdf",
		Path:      "resume/" + userID + "/1.pdf",
		FileName:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		FileType:  fileHeader.Header.Get("Content-Type"),
		Timestamp: time.Now(),
	}, nil
}

func (s *stubResumeService) SignedURL(ctx context.Context, userID string, req *dto.SignedURLRequest) (*dto.SignedURLResponse, error) {
	return &dto.SignedURLResponse{URL: "https://signed.example.com/x"}, nil
}

func (s *stubResumeService) List(userID string) ([]dto.ResumeResponse, error) {
	return []dto.ResumeResponse{}, nil
}

func (s *stubResumeService) Active(userID string) (*dto.ResumeResponse, error) {
	return &dto.ResumeResponse{ID: "resume-1"}, nil
}

func resumeTestRouter(svc *stubResumeService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set("userID", "user-1")
		})
	}
	handler := NewResumeHandler(NewBaseHandler(validator.New()), svc)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestResumeUpload_Unauthenticated(t *testing.T) {
	svc := &stubResumeService{}
	router := resumeTestRouter(svc, false)

	body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, svc.uploads, "service must not be reached without a user")
}

func TestResumeUpload_MissingFileIs400(t *testing.T) {
	svc := &stubResumeService{}
	router := resumeTestRouter(svc, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
	assert.Zero(t, svc.uploads)
}

func TestResumeUpload_Success(t *testing.T) {
	svc := &stubResumeService{}
	router := resumeTestRouter(svc, true)

	body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.7"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.uploads)
	assert.Equal(t, "user-1", svc.lastUserID)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestResumeList_WrapsResponse(t *testing.T) {
	svc := &stubResumeService{}
	router := resumeTestRouter(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resumes":[]}`, w.Body.String())
}
