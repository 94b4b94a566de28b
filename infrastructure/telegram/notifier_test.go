package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tasktrack/domain/ports"
)

func TestSendReminder(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottoken-1/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(Config{BotToken: "token-1", ChatID: "42", APIBase: srv.URL + "/"})
	err := n.SendReminder(context.Background(), &ports.ReminderEvent{
		Title:    "Exam <prep> & review",
		Priority: "Urgente",
		DueDate:  time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		Offset:   "2 days",
		Username: "ada",
	})
	if err != nil {
		t.Fatalf("SendReminder() error = %v", err)
	}

	if got["chat_id"] != "42" || got["parse_mode"] != "HTML" {
		t.Errorf("payload = %+v", got)
	}
	for _, want := range []string{"Exam &lt;prep&gt; &amp; review", "Urgente", "03/06/2024", "2 days", "ada"} {
		if !strings.Contains(got["text"], want) {
			t.Errorf("text missing %q:\n%s", want, got["text"])
		}
	}
}

func TestSendReminderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewTelegramNotifier(Config{BotToken: "t", ChatID: "1", APIBase: srv.URL})
	if err := n.SendReminder(context.Background(), &ports.ReminderEvent{Title: "x"}); err == nil {
		t.Error("SendReminder() should fail on a non-200 reply")
	}
}

func TestDisabledNotifierSkips(t *testing.T) {
	n := NewTelegramNotifier(Config{APIBase: "http://127.0.0.1:1"})
	if n.IsEnabled() {
		t.Fatal("notifier without credentials reports enabled")
	}
	if err := n.SendReminder(context.Background(), &ports.ReminderEvent{Title: "x"}); err != nil {
		t.Errorf("disabled notifier returned %v", err)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("àèìòù", 3); got != "àèì..." {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
}
