package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"
)

// maxMessageLen keeps messages under the Telegram 4096-char limit with
// headroom for the truncation suffix and HTML entities.
const maxMessageLen = 3800

const truncationSuffix = "\n... (truncated)"

// Notifier sends alerts to a Telegram chat via the Bot API.
type Notifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
	enabled    bool
	baseURL    string // overridable for testing; defaults to Telegram API
}

// NewNotifier creates a Notifier. Notifications are enabled only when both
// botToken and chatID are non-empty.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 8 * time.Second},
		enabled:    botToken != "" && chatID != "",
	}
}

// Enabled reports whether the notifier is active.
func (n *Notifier) Enabled() bool { return n.enabled }

// truncate cuts msg to at most limit bytes without splitting a rune, then
// appends the truncation suffix.
func truncate(msg string, limit int) string {
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut] + truncationSuffix
}

// Send posts a message to the configured Telegram chat. Messages over the
// size limit are truncated.
func (n *Notifier) Send(ctx context.Context, msg string) error {
	if !n.enabled {
		return nil
	}
	msg = truncate(msg, maxMessageLen)

	endpoint := n.baseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	}
	vals := url.Values{
		"chat_id":    {n.chatID},
		"text":       {msg},
		"parse_mode": {"HTML"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.URL.RawQuery = vals.Encode()

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("notify: telegram %d: %s", resp.StatusCode, body.Description)
	}
	return nil
}

// NotifySpinReport sends a pre-rendered spin report.
func (n *Notifier) NotifySpinReport(ctx context.Context, textHTML string) error {
	return n.Send(ctx, textHTML)
}

// NotifyAlert sends one table alert.
func (n *Notifier) NotifyAlert(ctx context.Context, priority, message string) error {
	msg := fmt.Sprintf("<b>Alert (%s)</b>\n%s", priority, message)
	return n.Send(ctx, msg)
}

// NotifyStopLoss sends a stop-loss alert when the bankroll floor is hit.
func (n *Notifier) NotifyStopLoss(ctx context.Context, balance, loss float64) error {
	msg := fmt.Sprintf("<b>STOP LOSS</b>\nBalance: %.2f\nSession loss: %.2f\nStop playing.", balance, loss)
	return n.Send(ctx, msg)
}

// NotifyStopProfit sends a take-profit alert when the target is reached.
func (n *Notifier) NotifyStopProfit(ctx context.Context, balance, profit float64) error {
	msg := fmt.Sprintf("<b>PROFIT TARGET</b>\nBalance: %.2f\nSession profit: %.2f\nLock it in.", balance, profit)
	return n.Send(ctx, msg)
}
