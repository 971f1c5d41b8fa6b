package services

import (
	"errors"
	"fmt"
	"math/rand"
	"quranbot/internal/models"
	"quranbot/internal/providers"
	"quranbot/internal/quran"
	"quranbot/internal/state"
	"quranbot/internal/structures"
	"quranbot/internal/twitter"
	"sync"
	"time"
	"unicode/utf8"
)

// monthlyChapters are the surahs long enough to feed a full month's quota
// of sequential posts (cycling back to verse 1 where needed).
var monthlyChapters = []int{2, 3, 4, 5, 6, 7, 9, 10, 11, 12, 16, 17, 18, 20, 21, 26, 37}

const (
	tweetLimit = 280
	ellipsis   = "..."
	// tweetChrome is the fixed punctuation around the two texts: two blank
	// lines, the quotation marks and the em-dash before the reference.
	tweetChrome = "\n\n\"\"\n\n— "
	// minTranslationRunes is the smallest truncation budget still worth
	// posting a translation for; below it the translation is dropped.
	minTranslationRunes = 20
)

// Skip reasons, also used as metric labels.
const (
	SkipReasonQuota    = "quota"
	SkipReasonInterval = "interval"
	SkipReasonFormat   = "format"
)

type PostingServiceInterface interface {
	// Restore loads the progress record, falling back to a fresh one when
	// none exists or the file is unreadable.
	Restore() error
	// AttemptPost runs one full posting cycle. The boolean reports whether a
	// verse was published; the error is non-nil only for failures that must
	// surface in the exit status (state persistence), never for skips or
	// collaborator failures.
	AttemptPost() (bool, error)
	// DryRun resolves and formats the next verse without publishing it.
	DryRun() (string, error)
	Persist() error
	Snapshot() *models.ProgressRecord
}

type PostingService struct {
	config    *structures.Config
	logger    providers.Logger
	source    quran.VerseSourceInterface
	publisher twitter.PublisherInterface
	store     state.StateStoreInterface
	metrics   providers.MetricsProviderInterface

	mu    sync.Mutex
	state *models.ProgressRecord

	// Injected for tests.
	now     func() time.Time
	randInt func(n int) int
}

func NewPostingService(
	config *structures.Config,
	logger providers.Logger,
	source quran.VerseSourceInterface,
	publisher twitter.PublisherInterface,
	store state.StateStoreInterface,
	metrics providers.MetricsProviderInterface,
) PostingServiceInterface {
	return &PostingService{
		config:    config,
		logger:    logger,
		source:    source,
		publisher: publisher,
		store:     store,
		metrics:   metrics,
		now:       time.Now,
		randInt:   rand.Intn,
	}
}

func (ps *PostingService) Restore() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	rec, err := ps.store.Load()
	if err != nil {
		ps.logger.Warnf(providers.TypeState, "State unreadable, starting fresh: %s", err)
		rec = nil
	}
	if rec == nil {
		rec = ps.freshRecord()
		ps.logger.Infof(providers.TypeState, "No previous state, selected chapter %d", rec.CurrentChapter)
	}
	ps.state = rec

	ps.logger.Infof(providers.TypeApp, "Current chapter: %d, next verse: %d, monthly progress: %d/%d",
		rec.CurrentChapter, rec.CurrentVerseNumber, rec.VersesPostedThisMonth, ps.config.Posting.MonthlyLimit)
	return nil
}

func (ps *PostingService) Persist() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.state == nil {
		return nil
	}
	return ps.store.Save(ps.state)
}

func (ps *PostingService) Snapshot() *models.ProgressRecord {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.state == nil {
		return nil
	}
	return ps.state.Clone()
}

func (ps *PostingService) AttemptPost() (bool, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	started := time.Now()
	defer func() {
		ps.metrics.ObserveCycleDuration(time.Since(started))
	}()

	if err := ps.checkMonthRollover(); err != nil {
		return false, fmt.Errorf("persisting month rollover: %w", err)
	}

	if ok, reason := ps.canPostNow(); !ok {
		ps.metrics.IncSkipped(reason)
		return false, nil
	}

	ps.logger.Infof(providers.TypeFetch, "Fetching verse %d from chapter %d",
		ps.state.CurrentVerseNumber, ps.state.CurrentChapter)

	verse, err := ps.nextVerse()
	if err != nil {
		ps.logger.Errorf(providers.TypeFetch, "Failed to fetch verse: %s", err)
		ps.metrics.IncFetchFailures()
		return false, nil
	}

	text, err := ps.formatTweet(verse)
	if err != nil {
		ps.logger.Errorf(providers.TypeApp, "Failed to format %s: %s", verse.Reference, err)
		ps.metrics.IncSkipped(SkipReasonFormat)
		return false, nil
	}

	tweetID, err := ps.publisher.Publish(text)
	if err != nil {
		ps.logger.Errorf(providers.TypePublish, "Failed to post tweet: %s", err)
		ps.metrics.IncPublishFailures()
		return false, nil
	}

	now := ps.now()
	ps.state.CurrentVerseNumber++
	ps.state.VersesPostedThisMonth++
	ps.state.LastPostTime = &now
	if err := ps.store.Save(ps.state); err != nil {
		return true, fmt.Errorf("persisting state after tweet %s: %w", tweetID, err)
	}

	ps.metrics.IncPosted()
	ps.logger.Infof(providers.TypePublish, "Posted %s (tweet %s), progress %d/%d",
		verse.Reference, tweetID, ps.state.VersesPostedThisMonth, ps.config.Posting.MonthlyLimit)
	return true, nil
}

func (ps *PostingService) DryRun() (string, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.checkMonthRollover(); err != nil {
		return "", err
	}
	verse, err := ps.nextVerse()
	if err != nil {
		return "", err
	}
	return ps.formatTweet(verse)
}

func (ps *PostingService) freshRecord() *models.ProgressRecord {
	now := ps.now()
	return &models.ProgressRecord{
		CurrentChapter:     ps.selectMonthlyChapter(),
		CurrentVerseNumber: 1,
		CurrentMonth:       int(now.Month()),
		CurrentYear:        now.Year(),
	}
}

func (ps *PostingService) selectMonthlyChapter() int {
	return monthlyChapters[ps.randInt(len(monthlyChapters))]
}

// checkMonthRollover starts a new monthly cycle when the calendar month has
// changed since the record was last touched. Idempotent within a month.
func (ps *PostingService) checkMonthRollover() error {
	now := ps.now()
	if ps.state.SamePeriod(now) {
		return nil
	}

	ps.logger.Infof(providers.TypeState, "New month detected, starting fresh cycle")

	ps.state.CurrentChapter = ps.selectMonthlyChapter()
	ps.state.CurrentVerseNumber = 1
	ps.state.VersesPostedThisMonth = 0
	ps.state.CurrentMonth = int(now.Month())
	ps.state.CurrentYear = now.Year()
	ps.state.ChapterVerseCount = nil

	ps.logger.Infof(providers.TypeState, "Selected chapter %d for this month", ps.state.CurrentChapter)
	return ps.store.Save(ps.state)
}

func (ps *PostingService) canPostNow() (bool, string) {
	if ps.state.VersesPostedThisMonth >= ps.config.Posting.MonthlyLimit {
		ps.logger.Infof(providers.TypeApp, "Monthly limit of %d verses reached", ps.config.Posting.MonthlyLimit)
		return false, SkipReasonQuota
	}

	if ps.config.Posting.HourlyGate && ps.state.LastPostTime != nil {
		elapsed := ps.now().Sub(*ps.state.LastPostTime)
		if elapsed < ps.config.Posting.MinInterval {
			remaining := int((ps.config.Posting.MinInterval - elapsed).Minutes())
			ps.logger.Infof(providers.TypeApp, "Must wait %d more minutes before next post", remaining)
			return false, SkipReasonInterval
		}
	}

	return true, ""
}

// ensureChapterMeta caches the chapter's verse count into the record on
// first use. The cache write is persisted immediately even though the post
// may still fail later; the value is re-derivable, so that is harmless.
func (ps *PostingService) ensureChapterMeta() error {
	if ps.state.ChapterVerseCount != nil {
		return nil
	}

	meta, err := ps.source.GetChapterMeta(ps.state.CurrentChapter)
	if err != nil {
		return err
	}

	count := meta.NumberOfAyahs
	ps.state.ChapterVerseCount = &count
	return ps.store.Save(ps.state)
}

// nextVerse resolves the cursor (wrapping to verse 1 past the end of the
// chapter) and fetches the verse in Arabic plus the configured translation.
func (ps *PostingService) nextVerse() (*models.Verse, error) {
	if err := ps.ensureChapterMeta(); err != nil {
		return nil, err
	}

	if ps.state.CurrentVerseNumber > *ps.state.ChapterVerseCount {
		ps.logger.Infof(providers.TypeState, "Reached end of chapter %d, cycling back to verse 1", ps.state.CurrentChapter)
		ps.state.CurrentVerseNumber = 1
	}

	chapter := ps.state.CurrentChapter
	verse := ps.state.CurrentVerseNumber

	arabic, err := ps.source.GetVerse(chapter, verse, "")
	if err != nil {
		return nil, err
	}
	english, err := ps.source.GetVerse(chapter, verse, ps.config.Quran.Edition)
	if err != nil {
		return nil, err
	}

	return &models.Verse{
		Arabic:      arabic.Text,
		English:     english.Text,
		SurahName:   arabic.SurahName,
		SurahNumber: chapter,
		AyahNumber:  verse,
		Reference:   fmt.Sprintf("Surah %s (%d:%d)", arabic.SurahName, chapter, verse),
	}, nil
}

// formatTweet composes the tweet and enforces the 280 code point ceiling.
// When the full text is too long the translation is truncated to whatever
// budget remains; when that budget is too small to be worth reading the
// translation is dropped entirely rather than risking an oversized post.
func (ps *PostingService) formatTweet(v *models.Verse) (string, error) {
	if v == nil {
		return "", errors.New("no verse")
	}

	tweet := v.Arabic + "\n\n\"" + v.English + "\"\n\n— " + v.Reference
	if utf8.RuneCountInString(tweet) <= tweetLimit {
		return tweet, nil
	}

	overhead := utf8.RuneCountInString(v.Arabic) +
		utf8.RuneCountInString(v.Reference) +
		utf8.RuneCountInString(tweetChrome)
	budget := tweetLimit - overhead - utf8.RuneCountInString(ellipsis)

	if budget > minTranslationRunes {
		truncated := string([]rune(v.English)[:budget]) + ellipsis
		return v.Arabic + "\n\n\"" + truncated + "\"\n\n— " + v.Reference, nil
	}

	tweet = v.Arabic + "\n\n— " + v.Reference
	if utf8.RuneCountInString(tweet) > tweetLimit {
		return "", fmt.Errorf("verse does not fit in %d characters even without translation", tweetLimit)
	}
	return tweet, nil
}
