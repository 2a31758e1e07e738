package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"talento_backend/internal/cache"
	"talento_backend/internal/logger"
	"talento_backend/internal/metrics"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

const (
	defaultJobLimit    = 20
	descriptionPreview = 200
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// JobSearchParams are the normalized query parameters for a jobs search.
type JobSearchParams struct {
	Query      string
	Location   string
	Limit      int
	Categories []string
}

type JobsService interface {
	Search(ctx context.Context, params JobSearchParams) (*dto.JobSearchResponse, error)
}

// remotiveJob mirrors the fields we consume from the Remotive listing.
type remotiveJob struct {
	Title                     string `json:"title"`
	CompanyName               string `json:"company_name"`
	CandidateRequiredLocation string `json:"candidate_required_location"`
	Description               string `json:"description"`
	URL                       string `json:"url"`
	JobType                   string `json:"job_type"`
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type JobsServiceImpl struct {
	apiBase  string
	client   *http.Client
	redis    *cache.RedisClient
	cacheTTL time.Duration
}

// NewJobsService builds the Remotive-backed search. redis may be nil, in
// which case every search goes upstream.
func NewJobsService(apiBase string, redis *cache.RedisClient, cacheTTL time.Duration) JobsService {
	return &JobsServiceImpl{
		apiBase:  strings.TrimRight(apiBase, "/"),
		client:   &http.Client{Timeout: 15 * time.Second},
		redis:    redis,
		cacheTTL: cacheTTL,
	}
}

func (s *JobsServiceImpl) Search(ctx context.Context, params JobSearchParams) (*dto.JobSearchResponse, error) {
	if params.Limit <= 0 {
		params.Limit = defaultJobLimit
	}

	cacheKey := s.cacheKey(params)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
			var resp dto.JobSearchResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				metrics.JobsCacheHits.WithLabelValues("hit").Inc()
				return &resp, nil
			}
		} else if !cache.IsMiss(err) {
			logger.Warn("Jobs cache read failed", "error", err)
		}
		metrics.JobsCacheHits.WithLabelValues("miss").Inc()
	}

	jobs, err := s.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	if loc := strings.ToLower(strings.TrimSpace(params.Location)); loc != "" {
		filtered := jobs[:0]
		for _, job := range jobs {
			if strings.Contains(strings.ToLower(job.CandidateRequiredLocation), loc) {
				filtered = append(filtered, job)
			}
		}
		jobs = filtered
	}

	resp := &dto.JobSearchResponse{Results: make([]dto.JobResult, 0, len(jobs))}
	for _, job := range jobs {
		resp.Results = append(resp.Results, dto.JobResult{
			Title:       job.Title,
			Company:     job.CompanyName,
			Location:    job.CandidateRequiredLocation,
			Description: previewDescription(job.Description),
			URL:         job.URL,
			JobType:     job.JobType,
		})
	}

	if s.redis != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
				logger.Warn("Jobs cache write failed", "error", err)
			}
		}
	}
	return resp, nil
}

func (s *JobsServiceImpl) fetch(ctx context.Context, params JobSearchParams) ([]remotiveJob, error) {
	values := url.Values{}
	values.Set("search", params.Query)
	values.Set("limit", fmt.Sprintf("%d", params.Limit))
	for _, cat := range params.Categories {
		values.Add("category", cat)
	}

	endpoint := fmt.Sprintf("%s/remote-jobs?%s", s.apiBase, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalServiceError("jobs", "Failed to fetch jobs.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CodeExternalServiceError, "jobs",
			fmt.Sprintf("API request failed: %d", resp.StatusCode), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, apperrors.NewExternalServiceError("jobs", "Failed to fetch jobs.", err)
	}

	var parsed remotiveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewExternalServiceError("jobs", "Failed to fetch jobs.", err)
	}
	return parsed.Jobs, nil
}

// cacheKey normalizes search params so equivalent searches share an entry.
func (s *JobsServiceImpl) cacheKey(params JobSearchParams) string {
	cats := append([]string(nil), params.Categories...)
	sort.Strings(cats)
	return fmt.Sprintf("jobs:%s:%s:%d:%s",
		strings.ToLower(strings.TrimSpace(params.Query)),
		strings.ToLower(strings.TrimSpace(params.Location)),
		params.Limit,
		strings.Join(cats, ","))
}

func previewDescription(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, "")
	runes := []rune(text)
	if len(runes) > descriptionPreview {
		runes = runes[:descriptionPreview]
	}
	return string(runes) + "..."
}
