package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tasktrack/domain/ports"
	"tasktrack/pkg/logger"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier sends fired reminders to a Telegram chat
type TelegramNotifier struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

type Config struct {
	BotToken string
	ChatID   string
	// APIBase override for tests, defaults to api.telegram.org
	APIBase string
}

func NewTelegramNotifier(cfg Config) *TelegramNotifier {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &TelegramNotifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ ports.ReminderNotifierPort = (*TelegramNotifier)(nil)

// IsEnabled both the bot token and the chat id are configured
func (n *TelegramNotifier) IsEnabled() bool {
	return n.botToken != "" && n.chatID != ""
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, message string) error {
	if !n.IsEnabled() {
		logger.DebugContext(ctx, "Telegram notification disabled, skipping")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)

	payload := map[string]interface{}{
		"chat_id":    n.chatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to send Telegram message", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.ErrorContext(ctx, "Telegram API error", "status", resp.StatusCode)
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// SendReminder one message per fired reminder
func (n *TelegramNotifier) SendReminder(ctx context.Context, event *ports.ReminderEvent) error {
	message := fmt.Sprintf(`⏰ <b>Promemoria scadenza</b>

📌 <b>%s</b>
🔥 Priorità: %s
📅 Scadenza: %s
⏳ Anticipo: %s
👤 %s`,
		escapeHTML(truncateString(event.Title, 200)),
		escapeHTML(event.Priority),
		event.DueDate.Format("02/01/2006"),
		escapeHTML(event.Offset),
		escapeHTML(event.Username),
	)

	return n.sendMessage(ctx, message)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// escapeHTML minimal escaping required by Telegram's HTML parse mode
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
