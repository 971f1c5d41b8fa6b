package testutil

import (
	"fmt"
	"quranbot/internal/models"
	"quranbot/internal/providers"
	"quranbot/internal/quran"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockVerseSource implements quran.VerseSourceInterface with injectable
// behavior. Verses are keyed "chapter:verse:edition".
type MockVerseSource struct {
	mu        sync.Mutex
	Meta      map[int]*models.ChapterMeta
	Verses    map[string]*quran.Ayah
	MetaErr   error
	VerseErr  error
	MetaCalls int
}

func (m *MockVerseSource) GetChapterMeta(chapterID int) (*models.ChapterMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MetaCalls++
	if m.MetaErr != nil {
		return nil, m.MetaErr
	}
	if meta, ok := m.Meta[chapterID]; ok {
		return meta, nil
	}
	return &models.ChapterMeta{Number: chapterID, EnglishName: "Al-Baqarah", NumberOfAyahs: 286}, nil
}

func (m *MockVerseSource) GetVerse(chapterID, verseID int, edition string) (*quran.Ayah, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VerseErr != nil {
		return nil, m.VerseErr
	}
	key := verseKey(chapterID, verseID, edition)
	if ayah, ok := m.Verses[key]; ok {
		return ayah, nil
	}
	if edition == "" {
		return &quran.Ayah{Text: "بِسْمِ اللَّهِ", SurahName: "Al-Baqarah"}, nil
	}
	return &quran.Ayah{Text: "In the name of Allah", SurahName: "Al-Baqarah"}, nil
}

func verseKey(chapterID, verseID int, edition string) string {
	return fmt.Sprintf("%d:%d:%s", chapterID, verseID, edition)
}

// MockPublisher implements twitter.PublisherInterface.
type MockPublisher struct {
	mu         sync.Mutex
	Published  []string
	PublishErr error
	NextID     string
	Username   string
	VerifyErr  error
}

func (m *MockPublisher) Publish(text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishErr != nil {
		return "", m.PublishErr
	}
	m.Published = append(m.Published, text)
	if m.NextID != "" {
		return m.NextID, nil
	}
	return "1234567890", nil
}

func (m *MockPublisher) Verify() (string, error) {
	if m.VerifyErr != nil {
		return "", m.VerifyErr
	}
	if m.Username != "" {
		return m.Username, nil
	}
	return "quranbot", nil
}

// MockStateStore implements state.StateStoreInterface in memory.
type MockStateStore struct {
	mu        sync.Mutex
	Record    *models.ProgressRecord
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockStateStore) Load() (*models.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Record == nil {
		return nil, nil
	}
	return m.Record.Clone(), nil
}

func (m *MockStateStore) Save(rec *models.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Record = rec.Clone()
	return nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	Posted          int
	Skipped         map[string]int
	FetchFailures   int
	PublishFailures int
	CacheHits       int
	CacheMisses     int
	Cycles          int
}

func (m *MockMetrics) IncPosted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Posted++
}

func (m *MockMetrics) IncSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Skipped == nil {
		m.Skipped = make(map[string]int)
	}
	m.Skipped[reason]++
}

func (m *MockMetrics) IncFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
}

func (m *MockMetrics) IncPublishFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishFailures++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObserveCycleDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cycles++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}
