package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notifier delivers operator notifications.
type Notifier interface {
	Send(text string) error
}

// ChatNotifier posts plain-text messages to a chat webhook.
type ChatNotifier struct {
	webhookURL string
	client     *http.Client
}

func NewChatNotifier(webhookURL string) *ChatNotifier {
	return &ChatNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type chatMessage struct {
	Text string `json:"text"`
}

// Send posts one message. Only HTTP 200 counts as delivered.
func (n *ChatNotifier) Send(text string) error {
	body, err := json.Marshal(chatMessage{Text: text})
	if err != nil {
		return fmt.Errorf("marshaling chat message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending chat notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat webhook returned status %d", resp.StatusCode)
	}
	return nil
}
