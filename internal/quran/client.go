package quran

import (
	"fmt"
	"io"
	"net/http"
	"quranbot/internal/models"
	"quranbot/internal/providers"
	"quranbot/internal/structures"

	json "github.com/goccy/go-json"
)

// VerseSourceInterface is the read side of api.alquran.cloud: chapter
// metadata plus per-edition verse text. An empty edition means the original
// Arabic text.
type VerseSourceInterface interface {
	GetChapterMeta(chapterID int) (*models.ChapterMeta, error)
	GetVerse(chapterID, verseID int, edition string) (*Ayah, error)
}

// Ayah is one verse text together with the display name of its surah.
type Ayah struct {
	Text      string
	SurahName string
}

type Client struct {
	config *structures.Config
	cache  providers.CacheProviderInterface
	logger providers.Logger
	http   *http.Client
}

func NewClient(config *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger) VerseSourceInterface {
	return &Client{
		config: config,
		cache:  cache,
		logger: logger,
		http:   &http.Client{Timeout: config.Quran.Timeout},
	}
}

type surahResponse struct {
	Code int `json:"code"`
	Data struct {
		Number        int    `json:"number"`
		EnglishName   string `json:"englishName"`
		NumberOfAyahs int    `json:"numberOfAyahs"`
	} `json:"data"`
}

type ayahResponse struct {
	Code int `json:"code"`
	Data struct {
		Text  string `json:"text"`
		Surah struct {
			EnglishName string `json:"englishName"`
		} `json:"surah"`
	} `json:"data"`
}

func (c *Client) GetChapterMeta(chapterID int) (*models.ChapterMeta, error) {
	var resp surahResponse
	if err := c.getJSON(fmt.Sprintf("/surah/%d", chapterID), &resp); err != nil {
		return nil, err
	}
	return &models.ChapterMeta{
		Number:        resp.Data.Number,
		EnglishName:   resp.Data.EnglishName,
		NumberOfAyahs: resp.Data.NumberOfAyahs,
	}, nil
}

func (c *Client) GetVerse(chapterID, verseID int, edition string) (*Ayah, error) {
	path := fmt.Sprintf("/ayah/%d:%d", chapterID, verseID)
	if edition != "" {
		path += "/" + edition
	}

	var resp ayahResponse
	if err := c.getJSON(path, &resp); err != nil {
		return nil, err
	}
	return &Ayah{
		Text:      resp.Data.Text,
		SurahName: resp.Data.Surah.EnglishName,
	}, nil
}

// getJSON fetches a path relative to the API base, checks the envelope code
// and decodes the body into out. Successful bodies are cached keyed by path;
// verse data is immutable, so a hit is always valid.
func (c *Client) getJSON(path string, out interface{}) error {
	if body, ok := c.cache.Get(path); ok {
		return json.Unmarshal(body, out)
	}

	url := c.config.Quran.BaseURL + path
	c.logger.Debugf(providers.TypeFetch, "GET %s", url)

	resp, err := c.http.Get(url)
	if err != nil {
		return fmt.Errorf("quran api request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("quran api read %s: %w", path, err)
	}

	var envelope struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("quran api decode %s: %w", path, err)
	}
	if envelope.Code != http.StatusOK {
		return fmt.Errorf("quran api returned code %d for %s", envelope.Code, path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("quran api decode %s: %w", path, err)
	}

	c.cache.Set(path, body)
	return nil
}
