package models

// ChapterMeta is the subset of surah metadata the bot needs: how many verses
// the chapter holds and its display name.
type ChapterMeta struct {
	Number        int
	EnglishName   string
	NumberOfAyahs int
}

// Verse is one fully resolved verse, ready for formatting.
type Verse struct {
	Arabic      string
	English     string
	SurahName   string
	SurahNumber int
	AyahNumber  int
	Reference   string
}
