package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newsdesk/pkg/config"
)

// WebhookConfig contains configuration for the chat webhook poster.
type WebhookConfig struct {
	Enabled bool
	// WebhookURL includes the authentication token.
	WebhookURL string
	Timeout    time.Duration
}

// WebhookConfigFromEnv reads webhook settings from environment variables.
func WebhookConfigFromEnv() WebhookConfig {
	return WebhookConfig{
		Enabled:    config.GetEnvBool("SHARE_WEBHOOK_ENABLED", false),
		WebhookURL: config.GetEnvString("SHARE_WEBHOOK_URL", ""),
		Timeout:    config.GetEnvDuration("SHARE_WEBHOOK_TIMEOUT", 5*time.Second),
	}
}

// WebhookPoster posts announcements to a chat Incoming Webhook.
// A circuit breaker opens after consecutive endpoint failures and a token
// bucket keeps posts under the webhook's 1 message/second limit.
type WebhookPoster struct {
	config     WebhookConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewWebhookPoster creates a WebhookPoster with the specified configuration.
func NewWebhookPoster(cfg WebhookConfig) *WebhookPoster {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "share-webhook",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAsBreakerFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("share webhook circuit breaker state change",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return &WebhookPoster{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(1.0, 1),
		breaker:    breaker,
	}
}

// webhookPayload is the Block Kit style JSON body posted to the webhook.
type webhookPayload struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type     string       `json:"type"`
	Text     *textObject  `json:"text,omitempty"`
	Elements []textObject `json:"elements,omitempty"`
}

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const (
	maxSectionTextLength = 3000
	truncationSuffix     = "..."
)

func buildPayload(announcement Announcement) webhookPayload {
	article := announcement.Article

	sectionText := fmt.Sprintf("*%s*\n\n%s", article.Title, article.Summary)
	if len(sectionText) > maxSectionTextLength {
		sectionText = sectionText[:maxSectionTextLength-len(truncationSuffix)] + truncationSuffix
	}

	contextText := "by " + announcement.AuthorName
	if announcement.PublisherName != "" {
		contextText += " • " + announcement.PublisherName
	}
	if article.PublishedAt != nil {
		contextText += " • " + article.PublishedAt.Format(time.RFC3339)
	}

	return webhookPayload{
		Text: article.Title,
		Blocks: []block{
			{Type: "section", Text: &textObject{Type: "mrkdwn", Text: sectionText}},
			{Type: "context", Elements: []textObject{{Type: "mrkdwn", Text: contextText}}},
		},
	}
}

// PostArticle sends one announcement through the rate limiter and the
// circuit breaker.
func (p *WebhookPoster) PostArticle(ctx context.Context, announcement Announcement) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.post(ctx, announcement)
	})
	if err != nil {
		return fmt.Errorf("share webhook: %w", err)
	}

	slog.Info("article shared to webhook",
		slog.Int64("article_id", announcement.Article.ID),
		slog.String("title", announcement.Article.Title))
	return nil
}

func (p *WebhookPoster) post(ctx context.Context, announcement Announcement) error {
	jsonData, err := json.Marshal(buildPayload(announcement))
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook client error: %s", string(body)),
		}
	default:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook server error: %s", string(body)),
		}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}
