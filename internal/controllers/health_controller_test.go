package controllers

import (
	"net/http"
	"net/http/httptest"
	"quranbot/internal/models"
	"quranbot/internal/structures"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostingService struct {
	record *models.ProgressRecord
}

func (s *stubPostingService) Restore() error              { return nil }
func (s *stubPostingService) AttemptPost() (bool, error)  { return false, nil }
func (s *stubPostingService) DryRun() (string, error)     { return "", nil }
func (s *stubPostingService) Persist() error              { return nil }
func (s *stubPostingService) Snapshot() *models.ProgressRecord {
	return s.record
}

func healthTestConfig() *structures.Config {
	return &structures.Config{
		Posting: structures.PostingConfig{MonthlyLimit: 400},
	}
}

func TestHealthController_ReportsProgress(t *testing.T) {
	svc := &stubPostingService{
		record: &models.ProgressRecord{
			CurrentChapter:        18,
			CurrentVerseNumber:    42,
			VersesPostedThisMonth: 41,
			CurrentMonth:          8,
			CurrentYear:           2026,
		},
	}
	hc := NewHealthController(svc, healthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 18, resp.CurrentChapter)
	assert.Equal(t, 42, resp.NextVerse)
	assert.Equal(t, 41, resp.PostedThisMonth)
	assert.Equal(t, 400, resp.MonthlyLimit)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealthController_NoStateYet(t *testing.T) {
	hc := NewHealthController(&stubPostingService{}, healthTestConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.CurrentChapter)
	assert.Equal(t, 0, resp.PostedThisMonth)
}

func TestHealthController_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&stubPostingService{}, healthTestConfig())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	hc.Health(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0h0m0s"},
		{90 * time.Second, "0h1m30s"},
		{time.Hour + 5*time.Minute + 3*time.Second, "1h5m3s"},
		{25 * time.Hour, "25h0m0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.d))
	}
}
