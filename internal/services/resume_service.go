package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/storage"
	"talento_backend/pkg/apperrors"
)

const signedURLExpiry = time.Hour

type ResumeService interface {
	Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (*dto.ResumeUploadResponse, error)
	SignedURL(ctx context.Context, userID string, req *dto.SignedURLRequest) (*dto.SignedURLResponse, error)
	List(userID string) ([]dto.ResumeResponse, error)
	Active(userID string) (*dto.ResumeResponse, error)
}

type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

type ResumeServiceImpl struct {
	resumeRepo repositories.ResumeRepository
	store      storage.Storage
	bucket     string
	limits     UploadLimits
}

func NewResumeService(resumeRepo repositories.ResumeRepository, store storage.Storage, bucket string, limits UploadLimits) ResumeService {
	return &ResumeServiceImpl{
		resumeRepo: resumeRepo,
		store:      store,
		bucket:     bucket,
		limits:     limits,
	}
}

// Upload stores the file then records its metadata. If the metadata insert
// fails the stored object is deleted so no orphan is left behind.
func (s *ResumeServiceImpl) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader) (*dto.ResumeUploadResponse, error) {
	if fileHeader == nil {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}
	if fileHeader.Size > s.limits.MaxSize {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("File exceeds maximum size of %d bytes", s.limits.MaxSize))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.typeAllowed(contentType) {
		return nil, apperrors.NewBadRequestError("Unsupported file type: " + contentType)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".bin"
	}
	now := time.Now()
	objectPath := fmt.Sprintf("resume/%s/%d%s", userID, now.UnixMilli(), ext)

	if err := s.store.Save(ctx, s.bucket, objectPath, file, contentType); err != nil {
		return nil, apperrors.NewExternalServiceError("storage", "Failed to store file", err)
	}

	fileURL, err := s.store.GetURL(ctx, s.bucket, objectPath)
	if err != nil {
		s.compensate(ctx, objectPath)
		return nil, apperrors.InternalError(err)
	}

	record := &models.ResumeRecord{
		UserID:       userID,
		Path:         objectPath,
		FileURL:      fileURL,
		UploadedAt:   now,
		IsActive:     true,
		OriginalName: fileHeader.Filename,
		MimeType:     contentType,
		Size:         fileHeader.Size,
	}
	if err := s.resumeRepo.Create(record); err != nil {
		s.compensate(ctx, objectPath)
		return nil, apperrors.InternalError(err)
	}

	return &dto.ResumeUploadResponse{
		Success:   true,
		URL:       fileURL,
		Path:      objectPath,
		FileName:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		FileType:  contentType,
		Timestamp: now,
	}, nil
}

func (s *ResumeServiceImpl) SignedURL(ctx context.Context, userID string, req *dto.SignedURLRequest) (*dto.SignedURLResponse, error) {
	objectPath := req.Path
	if objectPath == "" && req.URL != "" {
		objectPath = storage.PublicObjectPath(req.URL, s.bucket)
	}
	if objectPath == "" {
		return nil, apperrors.NewBadRequestError("No object path provided")
	}

	// Users may only sign objects under their own prefix.
	if !strings.HasPrefix(objectPath, "resume/"+userID+"/") {
		return nil, apperrors.NewForbiddenError("Access denied")
	}

	exists, err := s.store.Exists(ctx, s.bucket, objectPath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("resume", "File not found")
	}

	url, err := s.store.GetSignedURL(ctx, s.bucket, objectPath, signedURLExpiry)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.SignedURLResponse{URL: url}, nil
}

func (s *ResumeServiceImpl) List(userID string) ([]dto.ResumeResponse, error) {
	records, err := s.resumeRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.ResumeResponse, 0, len(records))
	for i := range records {
		out = append(out, newResumeResponse(&records[i]))
	}
	return out, nil
}

func (s *ResumeServiceImpl) Active(userID string) (*dto.ResumeResponse, error) {
	rec, err := s.resumeRepo.FindActiveByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.NewNotFoundError("resume", "No active resume")
		}
		return nil, apperrors.InternalError(err)
	}
	resp := newResumeResponse(rec)
	return &resp, nil
}

func (s *ResumeServiceImpl) typeAllowed(contentType string) bool {
	for _, t := range s.limits.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s *ResumeServiceImpl) compensate(ctx context.Context, objectPath string) {
	if err := s.store.Delete(ctx, s.bucket, objectPath); err != nil {
		logger.Error("Failed to delete orphaned upload", "path", objectPath, "error", err)
	}
}

func newResumeResponse(rec *models.ResumeRecord) dto.ResumeResponse {
	return dto.ResumeResponse{
		ID:          rec.ID,
		FileURL:     rec.FileURL,
		UploadedAt:  rec.UploadedAt,
		IsActive:    rec.IsActive,
		HasAnalysis: len(rec.AnalysisOutput) > 0,
	}
}
