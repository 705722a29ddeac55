package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Sender delivers outbound messages to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewTelegram creates a Telegram sender with the given bot token.
func NewTelegram(token string) *Telegram {
	return &Telegram{
		token:   token,
		baseURL: "https://api.telegram.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage posts a sendMessage call to the Bot API.
func (t *Telegram) SendMessage(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("familyforest: telegram sendMessage returned %s", resp.Status)
	}
	return nil
}
