package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talento_backend/internal/cache"
	"talento_backend/pkg/apperrors"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remotiveServer(t *testing.T, hits *int, jobs []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "/remote-jobs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jobs": jobs})
	}))
}

func TestJobsSearch_MapsRemotiveFields(t *testing.T) {
	t.Parallel()

	hits := 0
	server := remotiveServer(t, &hits, []map[string]any{
		{
			"title":                       "Backend Engineer",
			"company_name":                "Acme",
			"candidate_required_location": "Worldwide",
			"description":                 "<p>Build <b>APIs</b> in Go.</p>",
			"url":                         "https://remotive.com/jobs/1",
			"job_type":                    "full_time",
		},
	})
	defer server.Close()

	svc := NewJobsService(server.URL, nil, time.Minute)

	resp, err := svc.Search(context.Background(), JobSearchParams{Query: "go"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	job := resp.Results[0]
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "Worldwide", job.Location)
	assert.Equal(t, "Build APIs in Go....", job.Description)
	assert.Equal(t, "https://remotive.com/jobs/1", job.URL)
	assert.Equal(t, "full_time", job.JobType)
}

func TestJobsSearch_LocationFilterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	hits := 0
	server := remotiveServer(t, &hits, []map[string]any{
		{"title": "A", "candidate_required_location": "Europe, UK"},
		{"title": "B", "candidate_required_location": "USA Only"},
		{"title": "C", "candidate_required_location": "europe"},
	})
	defer server.Close()

	svc := NewJobsService(server.URL, nil, time.Minute)

	resp, err := svc.Search(context.Background(), JobSearchParams{Location: "EUROPE"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "A", resp.Results[0].Title)
	assert.Equal(t, "C", resp.Results[1].Title)
}

func TestJobsSearch_LongDescriptionTruncated(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 500)
	hits := 0
	server := remotiveServer(t, &hits, []map[string]any{
		{"title": "A", "description": long},
	})
	defer server.Close()

	svc := NewJobsService(server.URL, nil, time.Minute)

	resp, err := svc.Search(context.Background(), JobSearchParams{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, strings.Repeat("a", 200)+"...", resp.Results[0].Description)
}

func TestJobsSearch_SecondCallServedFromCache(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	redisClient := cache.NewRedis(cache.Config{Addr: mr.Addr()})
	defer redisClient.Close()

	hits := 0
	server := remotiveServer(t, &hits, []map[string]any{
		{"title": "Cached Job", "company_name": "Acme"},
	})
	defer server.Close()

	svc := NewJobsService(server.URL, redisClient, time.Minute)
	params := JobSearchParams{Query: "go", Limit: 5}

	first, err := svc.Search(context.Background(), params)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second search must not hit the upstream API")
	assert.Equal(t, first, second)
}

func TestJobsSearch_EquivalentParamsShareCacheEntry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	redisClient := cache.NewRedis(cache.Config{Addr: mr.Addr()})
	defer redisClient.Close()

	hits := 0
	server := remotiveServer(t, &hits, []map[string]any{{"title": "A"}})
	defer server.Close()

	svc := NewJobsService(server.URL, redisClient, time.Minute)

	_, err := svc.Search(context.Background(), JobSearchParams{Query: "Go ", Limit: 5, Categories: []string{"b", "a"}})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), JobSearchParams{Query: " go", Limit: 5, Categories: []string{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestJobsSearch_UpstreamErrorSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewJobsService(server.URL, nil, time.Minute)

	_, err := svc.Search(context.Background(), JobSearchParams{Query: "go"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
	assert.Contains(t, appErr.Message, "429")
}
