package controllers

import (
	"fmt"
	"net/http"
	"quranbot/internal/services"
	"quranbot/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	service   services.PostingServiceInterface
	config    *structures.Config
	startTime time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	CurrentChapter  int     `json:"current_chapter"`
	NextVerse       int     `json:"next_verse"`
	PostedThisMonth int     `json:"posted_this_month"`
	MonthlyLimit    int     `json:"monthly_limit"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		MonthlyLimit:  hc.config.Posting.MonthlyLimit,
	}
	if rec := hc.service.Snapshot(); rec != nil {
		resp.CurrentChapter = rec.CurrentChapter
		resp.NextVerse = rec.CurrentVerseNumber
		resp.PostedThisMonth = rec.VersesPostedThisMonth
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.PostingServiceInterface, config *structures.Config) *HealthController {
	return &HealthController{
		service:   service,
		config:    config,
		startTime: time.Now(),
	}
}
