package models

import "time"

// ProgressRecord is the bot's sole persisted state: which chapter is being
// cycled this month, where the verse cursor stands, and how far along the
// monthly quota is. One instance, round-tripped through the state file
// between invocations.
type ProgressRecord struct {
	CurrentChapter        int        `json:"current_chapter"`
	CurrentVerseNumber    int        `json:"current_verse_number"`
	VersesPostedThisMonth int        `json:"verses_posted_this_month"`
	CurrentMonth          int        `json:"current_month"`
	CurrentYear           int        `json:"current_year"`
	LastPostTime          *time.Time `json:"last_post_time"`
	ChapterVerseCount     *int       `json:"chapter_verse_count"`
}

// Clone returns a deep copy, used to hand snapshots to the health endpoint
// without exposing the live record.
func (p *ProgressRecord) Clone() *ProgressRecord {
	if p == nil {
		return nil
	}
	c := *p
	if p.LastPostTime != nil {
		t := *p.LastPostTime
		c.LastPostTime = &t
	}
	if p.ChapterVerseCount != nil {
		n := *p.ChapterVerseCount
		c.ChapterVerseCount = &n
	}
	return &c
}

// SamePeriod reports whether the record's counters belong to the given
// calendar month.
func (p *ProgressRecord) SamePeriod(t time.Time) bool {
	return p.CurrentMonth == int(t.Month()) && p.CurrentYear == t.Year()
}
