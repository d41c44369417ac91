package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"TrendsReporter/internal/ports"
)

// Telegram rejects messages longer than this.
const maxMessageRunes = 4096

// Notifier announces finished reports to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	endpoint string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		endpoint: "https://api.telegram.org",
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishReport posts a Markdown message, truncated to the API limit.
func (n *Notifier) PublishReport(ctx context.Context, report string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	if runes := []rune(report); len(runes) > maxMessageRunes {
		report = string(runes[:maxMessageRunes])
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.endpoint, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", report)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
