package twitter

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"quranbot/internal/providers"
	"quranbot/internal/structures"

	"github.com/dghubble/oauth1"
	json "github.com/goccy/go-json"
)

// PublisherInterface posts formatted text and reports the resulting tweet id.
// Verify is a credential smoke check used at daemon startup.
type PublisherInterface interface {
	Publish(text string) (string, error)
	Verify() (string, error)
}

type Publisher struct {
	config *structures.Config
	logger providers.Logger
	http   *http.Client
}

// NewPublisher builds a client signing every request with OAuth 1.0a user
// context, which is what the v2 create-tweet endpoint requires for posting
// on behalf of the bot account.
func NewPublisher(config *structures.Config, logger providers.Logger) PublisherInterface {
	oauthConfig := oauth1.NewConfig(config.Twitter.APIKey, config.Twitter.APISecret)
	token := oauth1.NewToken(config.Twitter.AccessToken, config.Twitter.AccessTokenSecret)

	httpClient := oauthConfig.Client(oauth1.NoContext, token)
	httpClient.Timeout = config.Twitter.Timeout

	return &Publisher{
		config: config,
		logger: logger,
		http:   httpClient,
	}
}

type createTweetRequest struct {
	Text string `json:"text"`
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type usersMeResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

func (p *Publisher) Publish(text string) (string, error) {
	payload, err := json.Marshal(createTweetRequest{Text: text})
	if err != nil {
		return "", err
	}

	url := p.config.Twitter.BaseURL + "/2/tweets"
	resp, err := p.http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create tweet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("create tweet read: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create tweet returned status %d: %s", resp.StatusCode, body)
	}

	var out createTweetResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("create tweet decode: %w", err)
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("create tweet returned no id")
	}

	p.logger.Debugf(providers.TypePublish, "Tweet created: %s", out.Data.ID)
	return out.Data.ID, nil
}

func (p *Publisher) Verify() (string, error) {
	url := p.config.Twitter.BaseURL + "/2/users/me"
	resp, err := p.http.Get(url)
	if err != nil {
		return "", fmt.Errorf("verify credentials: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("verify credentials read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("verify credentials returned status %d: %s", resp.StatusCode, body)
	}

	var out usersMeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("verify credentials decode: %w", err)
	}
	return out.Data.Username, nil
}
